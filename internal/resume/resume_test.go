package resume

import (
	"bytes"
	"testing"

	"github.com/gonewx/portfolio/pkg/config"
)

func TestGenerate(t *testing.T) {
	c := &config.Content{
		Profile: config.Profile{
			Name:    "Alex Rivera",
			Title:   "Full-Stack Engineer",
			Summary: "Builds things, résumé test with non-ASCII.",
			Email:   "alex@example.com",
			Links:   map[string]string{"github": "https://github.com/alex"},
			Experience: []config.Experience{
				{Company: "Acme", Role: "Engineer", Period: "2021-2024", Summary: "Shipped."},
			},
			Education: []config.Education{{School: "State U", Degree: "BSc", Period: "2017-2021"}},
		},
		Skills:   []config.SkillGroup{{Category: "Backend", Items: []string{"Go", "Postgres"}}},
		Projects: []config.ProjectRecord{{ID: "p1", Name: "Storefront", Category: "frontend", Description: "Shop.", TechStack: []string{"React"}}},
	}

	tests := []struct {
		name    string
		content *config.Content
		wantErr bool
	}{
		{"完整内容", c, false},
		{"空内容", &config.Content{}, false},
		{"nil 内容", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Generate(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !bytes.HasPrefix(data, []byte("%PDF-")) {
				t.Errorf("output is not a PDF: %q", data[:min(8, len(data))])
			}
		})
	}
}
