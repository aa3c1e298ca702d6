package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/gonewx/portfolio/pkg/config"
)

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, viewportWidth, viewportHeight))
	for x := 0; x < viewportWidth; x++ {
		for y := 0; y < viewportHeight; y++ {
			src.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	thumb, err := thumbnail(buf.Bytes())
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != config.MockupThumbWidth || b.Dy() != config.MockupThumbHeight {
		t.Errorf("size = %v", b)
	}

	if _, err := thumbnail([]byte("not an image")); err == nil {
		t.Error("非图片数据应报错")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		project config.ProjectRecord
		want    string
	}{
		{"使用 mockup 字段", config.ProjectRecord{ID: "a", Mockup: "assets/mockups/a.png"}, filepath.Join("out", "assets", "mockups", "a.png")},
		{"按 ID 命名", config.ProjectRecord{ID: "b"}, filepath.Join("out", "assets", "mockups", "b.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath("out", tt.project); got != tt.want {
				t.Errorf("outputPath = %q, want %q", got, tt.want)
			}
		})
	}
}
