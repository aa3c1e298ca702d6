// mockshot 为有在线地址的项目截图，生成 400x220 的 mockup 缩略图
//
// 用法（需要本机安装 Chrome/Chromium）：
//
//	go run ./cmd/mockshot [-out .] [-only proj-id] [-wait 2s]
//
// 输出路径取自项目的 mockup 字段，例如 assets/mockups/storefront.png。
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/embedded"
)

const (
	viewportWidth  = 1280
	viewportHeight = 704
)

// thumbnail 截图裁剪为 mockup 尺寸（保留页面顶部）
func thumbnail(screenshot []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(screenshot))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return imaging.Fill(img, config.MockupThumbWidth, config.MockupThumbHeight, imaging.Top, imaging.Lanczos), nil
}

// outputPath mockup 输出路径，项目未配置 mockup 时按 ID 命名
func outputPath(outDir string, p config.ProjectRecord) string {
	name := p.Mockup
	if name == "" {
		name = filepath.Join("assets", "mockups", p.ID+".png")
	}
	return filepath.Join(outDir, filepath.FromSlash(name))
}

// capture 打开页面并截取视口
func capture(ctx context.Context, url string, wait time.Duration) ([]byte, error) {
	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate(url),
		chromedp.Sleep(wait),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", url, err)
	}
	return buf, nil
}

func main() {
	dataDir := flag.String("data", "data", "数据目录")
	outDir := flag.String("out", ".", "输出根目录")
	only := flag.String("only", "", "只处理指定项目 ID")
	wait := flag.Duration("wait", 2*time.Second, "页面加载后等待时间")
	timeout := flag.Duration("timeout", 45*time.Second, "单个项目超时")
	flag.Parse()

	root := os.DirFS(".")
	embedded.Init(root, root)

	content, err := config.LoadContent(*dataDir)
	if err != nil {
		log.Fatalf("[MockShot] %v", err)
	}

	browser, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	failed := 0
	for _, p := range content.Projects {
		if p.LiveLink == "" || (*only != "" && p.ID != *only) {
			continue
		}

		ctx, cancelTimeout := context.WithTimeout(browser, *timeout)
		shot, err := capture(ctx, p.LiveLink, *wait)
		cancelTimeout()
		if err != nil {
			log.Printf("[MockShot] %s: %v", p.ID, err)
			failed++
			continue
		}

		thumb, err := thumbnail(shot)
		if err != nil {
			log.Printf("[MockShot] %s: %v", p.ID, err)
			failed++
			continue
		}
		path := outputPath(*outDir, p)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Fatalf("[MockShot] %v", err)
		}
		if err := imaging.Save(thumb, path); err != nil {
			log.Printf("[MockShot] %s: save %s: %v", p.ID, path, err)
			failed++
			continue
		}
		fmt.Printf("%s -> %s\n", p.ID, path)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
