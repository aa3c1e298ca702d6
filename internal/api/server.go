// Package api 作品集 HTTP API（gin）
//
// 路由：健康检查、个人信息、项目列表、联系表单、访问事件、Prometheus 指标、
// PDF 简历和角色身份卡。
package api

import (
	"bytes"
	"errors"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gonewx/portfolio/internal/contact"
	"github.com/gonewx/portfolio/internal/idcard"
	"github.com/gonewx/portfolio/internal/metrics"
	"github.com/gonewx/portfolio/internal/resume"
	"github.com/gonewx/portfolio/pkg/config"
)

// PortraitLoader 按资源路径加载角色头像
type PortraitLoader func(path string) (image.Image, error)

// Server API 依赖
type Server struct {
	Content     *config.Content
	Contact     *contact.Service
	Metrics     *metrics.Metrics
	Environment string
	Version     string

	// Portraits 可为 nil，此时身份卡使用色块占位
	Portraits PortraitLoader
	// Now 可在测试中替换
	Now func() time.Time
}

// Routes 构建路由
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/profile", s.handleProfile)
	api.GET("/projects", s.handleProjects)
	api.GET("/projects/:id", s.handleProject)
	api.GET("/characters/:id/card.png", s.handleCard)
	api.GET("/resume.pdf", s.handleResume)
	api.POST("/contact", s.handleContact)
	api.POST("/events", s.handleEvent)
	api.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	return r
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "UP",
		"timestamp":   s.now().UTC().Format(time.RFC3339),
		"version":     s.Version,
		"environment": s.Environment,
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.Content.Profile)
}

func (s *Server) handleProjects(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		projects := s.Content.ProjectsByCategory(category)
		if projects == nil {
			projects = []config.ProjectRecord{}
		}
		c.JSON(http.StatusOK, projects)
		return
	}
	c.JSON(http.StatusOK, s.Content.Projects)
}

func (s *Server) handleProject(c *gin.Context) {
	p, err := s.Content.Project(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleCard(c *gin.Context) {
	ch, err := s.Content.Character(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Character not found"})
		return
	}

	var portrait image.Image
	if s.Portraits != nil && ch.Assets.Portrait != "" {
		if img, err := s.Portraits(ch.Assets.Portrait); err == nil {
			portrait = img
		} else {
			log.Printf("[API] Portrait %s unavailable: %v", ch.Assets.Portrait, err)
		}
	}

	var buf bytes.Buffer
	if err := idcard.WritePNG(&buf, ch, portrait); err != nil {
		log.Printf("[API] ID card error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleResume(c *gin.Context) {
	data, err := resume.Generate(s.Content)
	if err != nil {
		log.Printf("[API] Resume error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.Header("Content-Disposition", `inline; filename="resume.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) handleContact(c *gin.Context) {
	log.Printf("[API] /api/contact called")
	var form contact.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, contact.Result{Message: contact.MessageInvalid})
		return
	}

	res, err := s.Contact.Submit(c.Request.Context(), form)
	switch {
	case errors.Is(err, contact.ErrDelivery):
		c.JSON(http.StatusBadGateway, res)
	case err != nil:
		log.Printf("[API] Contact error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	case !res.Success:
		c.JSON(http.StatusBadRequest, res)
	default:
		c.JSON(http.StatusOK, res)
	}
}

// eventRequest 前端上报的访问事件
type eventRequest struct {
	Type string `json:"type" binding:"required,oneof=page_view game_start"`
	Page string `json:"page"`
}

func (s *Server) handleEvent(c *gin.Context) {
	var ev eventRequest
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown event"})
		return
	}
	switch ev.Type {
	case "page_view":
		s.Metrics.PageView(ev.Page)
	case "game_start":
		s.Metrics.GameStart()
	}
	c.Status(http.StatusNoContent)
}
