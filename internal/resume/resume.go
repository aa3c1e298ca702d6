// Package resume 根据内容仓库生成 PDF 简历
package resume

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/gonewx/portfolio/pkg/config"
	"github.com/jung-kurt/gofpdf/v2"
)

const (
	margin    = 48.0
	lineH     = 14.0
	headingH  = 20.0
	bodySize  = 10.0
	titleSize = 22.0
)

// Generate 生成 A4 简历：个人信息、技能、经历、教育、项目
func Generate(c *config.Content) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("resume: no content")
	}
	p := c.Profile

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(p.Name+" - Resume", true)
	pdf.SetAuthor(p.Name, true)
	pdf.AddPage()
	// 核心字体只支持 cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetTextColor(30, 30, 40)
	pdf.CellFormat(0, titleSize+4, tr(p.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(90, 90, 110)
	pdf.CellFormat(0, 16, tr(p.Title), "", 1, "L", false, 0, "")

	var contact []string
	for _, s := range []string{p.Email, p.Location} {
		if s != "" {
			contact = append(contact, s)
		}
	}
	keys := make([]string, 0, len(p.Links))
	for k := range p.Links {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		contact = append(contact, p.Links[k])
	}
	if len(contact) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 12, tr(strings.Join(contact, "  |  ")), "", "L", false)
	}

	heading := func(title string) {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(40, 70, 140)
		pdf.CellFormat(0, headingH, tr(title), "B", 1, "L", false, 0, "")
		pdf.Ln(4)
		pdf.SetTextColor(30, 30, 40)
		pdf.SetFont("Helvetica", "", bodySize)
	}

	if p.Summary != "" {
		heading("Summary")
		pdf.MultiCell(0, lineH, tr(p.Summary), "", "L", false)
	}

	if len(c.Skills) > 0 {
		heading("Skills")
		for _, g := range c.Skills {
			pdf.SetFont("Helvetica", "B", bodySize)
			pdf.CellFormat(110, lineH, tr(g.Category), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", bodySize)
			pdf.MultiCell(0, lineH, tr(strings.Join(g.Items, ", ")), "", "L", false)
		}
	}

	if len(p.Experience) > 0 {
		heading("Experience")
		for _, e := range p.Experience {
			pdf.SetFont("Helvetica", "B", bodySize)
			pdf.CellFormat(0, lineH, tr(fmt.Sprintf("%s, %s", e.Role, e.Company)), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, lineH, tr(e.Period), "", 1, "R", false, 0, "")
			pdf.SetFont("Helvetica", "", bodySize)
			if e.Summary != "" {
				pdf.MultiCell(0, lineH, tr(e.Summary), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if len(p.Education) > 0 {
		heading("Education")
		for _, e := range p.Education {
			pdf.CellFormat(0, lineH, tr(fmt.Sprintf("%s, %s (%s)", e.Degree, e.School, e.Period)), "", 1, "L", false, 0, "")
		}
	}

	if len(c.Projects) > 0 {
		heading("Projects")
		for _, pr := range c.Projects {
			pdf.SetFont("Helvetica", "B", bodySize)
			pdf.CellFormat(0, lineH, tr(fmt.Sprintf("%s  [%s]", pr.Name, pr.Category)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", bodySize)
			pdf.MultiCell(0, lineH, tr(pr.Description), "", "L", false)
			if len(pr.TechStack) > 0 {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.MultiCell(0, 12, tr(strings.Join(pr.TechStack, " / ")), "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("resume: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
