// Package metrics 站点访问计数（Prometheus）
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 持有独立的 Registry，测试之间互不影响
type Metrics struct {
	Registry   *prometheus.Registry
	PageViews  *prometheus.CounterVec
	GameStarts prometheus.Counter
	APIHits    prometheus.Counter
}

// New 创建计数器并注册 Go 运行时指标
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_page_views_total",
			Help: "Total number of page views",
		}, []string{"page"}),
		GameStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_game_starts_total",
			Help: "Total number of game sessions started",
		}),
		APIHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_api_hits_total",
			Help: "Total number of API hits to the metrics endpoint",
		}),
	}
	m.Registry.MustRegister(
		m.PageViews, m.GameStarts, m.APIHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// PageView 记录一次页面访问
func (m *Metrics) PageView(page string) {
	if page == "" {
		page = "unknown"
	}
	m.PageViews.WithLabelValues(page).Inc()
}

// GameStart 记录一次游戏开始
func (m *Metrics) GameStart() {
	m.GameStarts.Inc()
}

// Handler 返回文本格式的指标导出，每次请求计一次 APIHits
func (m *Metrics) Handler() http.Handler {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.APIHits.Inc()
		h.ServeHTTP(w, r)
	})
}
