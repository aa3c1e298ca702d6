// Package idcard 渲染角色身份卡 PNG
package idcard

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/gonewx/portfolio/pkg/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	Width  = 600
	Height = 340

	portraitSize = 200
	bandHeight   = 56
	padding      = 24
)

// Render 绘制身份卡；portrait 为 nil 时画角色色块占位
func Render(c *config.CharacterProfile, portrait image.Image) (image.Image, error) {
	if c == nil {
		return nil, fmt.Errorf("idcard: no character")
	}
	title, err := face(gobold.TTF, 28)
	if err != nil {
		return nil, err
	}
	body, err := face(goregular.TTF, 16)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(Width, Height)
	dc.SetHexColor("#1b1d2a")
	dc.Clear()

	// 顶部色带
	dc.SetHexColor(bandColor(c))
	dc.DrawRectangle(0, 0, Width, bandHeight)
	dc.Fill()
	dc.SetFontFace(body)
	dc.SetColor(color.White)
	dc.DrawStringAnchored("PORTFOLIO BATTLE · HERO ID", padding, bandHeight/2, 0, 0.5)

	px, py := float64(padding), float64(bandHeight+padding)
	if portrait != nil {
		fitted := imaging.Fill(portrait, portraitSize, portraitSize, imaging.Center, imaging.Lanczos)
		dc.DrawImage(fitted, int(px), int(py))
	} else {
		dc.SetHexColor(bandColor(c))
		dc.DrawRoundedRectangle(px, py, portraitSize, portraitSize, 12)
		dc.Fill()
		dc.SetFontFace(title)
		dc.SetColor(color.White)
		dc.DrawStringAnchored(initial(c.Name), px+portraitSize/2, py+portraitSize/2, 0.5, 0.5)
	}

	tx := px + portraitSize + padding
	textW := Width - tx - padding
	dc.SetColor(color.White)
	dc.SetFontFace(title)
	dc.DrawString(c.Name, tx, py+28)

	dc.SetFontFace(body)
	dc.SetHexColor("#9aa3c7")
	dc.DrawString(c.Role, tx, py+56)

	dc.SetColor(color.White)
	dc.DrawStringWrapped("Weapon: "+c.Weapon, tx, py+72, 0, 0, textW, 1.4, gg.AlignLeft)
	if c.Villain.Name != "" {
		dc.SetHexColor("#e06c75")
		dc.DrawStringWrapped("Nemesis: "+c.Villain.Name, tx, py+140, 0, 0, textW, 1.4, gg.AlignLeft)
	}

	return dc.Image(), nil
}

// WritePNG 渲染并编码为 PNG
func WritePNG(w io.Writer, c *config.CharacterProfile, portrait image.Image) error {
	img, err := Render(c, portrait)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("idcard: encode png: %w", err)
	}
	return nil
}

func face(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("idcard: parse font: %w", err)
	}
	ff, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("idcard: font face: %w", err)
	}
	return ff, nil
}

func bandColor(c *config.CharacterProfile) string {
	if c.ColorHex != "" {
		return c.ColorHex
	}
	return "#4a6cf7"
}

func initial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}
