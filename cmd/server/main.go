// server 作品集 HTTP API
//
// 用法：
//
//	go run ./cmd/server                 # 使用 data/server.yaml
//	PORT=9000 MAIL_API_KEY=re_xxx go run ./cmd/server
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/gonewx/portfolio/internal/api"
	"github.com/gonewx/portfolio/internal/contact"
	"github.com/gonewx/portfolio/internal/metrics"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/embedded"
)

func main() {
	root := flag.String("root", ".", "仓库根目录（包含 assets/ 和 data/）")
	configPath := flag.String("config", "data/server.yaml", "服务配置文件")
	flag.Parse()

	fsys := os.DirFS(*root)
	embedded.Init(fsys, fsys)

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}
	content, err := config.LoadContent(cfg.DataDir)
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &api.Server{
		Content: content,
		Contact: &contact.Service{
			Mailer: contact.NewMailer(cfg.Mail.APIKey, cfg.Mail.Endpoint),
			From:   cfg.Mail.From,
			To:     cfg.Mail.To,
		},
		Metrics:     metrics.New(),
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Portraits:   loadPortrait,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[Server] listening on http://localhost:%s (%s)", cfg.Port, cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Server] %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Server] shutdown: %v", err)
	}
	log.Printf("[Server] stopped")
}

// loadPortrait 从资源目录读取头像
func loadPortrait(path string) (image.Image, error) {
	f, err := embedded.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imaging.Decode(f)
}
