package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// Mail 一封待发送的邮件
type Mail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// Mailer 邮件投递
type Mailer interface {
	Send(ctx context.Context, m Mail) error
	// Simulated 为 true 时不会真正发出邮件
	Simulated() bool
}

// NewMailer 未配置 API key 时返回模拟投递
func NewMailer(apiKey, endpoint string) Mailer {
	if apiKey == "" {
		log.Printf("[Contact] No mail API key configured, using simulated delivery")
		return &SimulatedMailer{Delay: time.Second}
	}
	return &HTTPMailer{APIKey: apiKey, Endpoint: endpoint, Client: &http.Client{Timeout: 10 * time.Second}}
}

// simulatedKeep 模拟投递保留的最近邮件数
const simulatedKeep = 16

// SimulatedMailer 只记录日志，等待 Delay 后返回成功
// 可被多个请求 goroutine 并发调用，只保留最近 simulatedKeep 封
type SimulatedMailer struct {
	Delay time.Duration

	mu     sync.Mutex
	count  int
	recent []Mail
}

func (m *SimulatedMailer) Send(ctx context.Context, mail Mail) error {
	log.Printf("[Contact] Simulating email send (No API Key): subject=%q", mail.Subject)
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	m.recent = append(m.recent, mail)
	if len(m.recent) > simulatedKeep {
		m.recent = append(m.recent[:0], m.recent[len(m.recent)-simulatedKeep:]...)
	}
	return nil
}

// Count 模拟发出的邮件总数
func (m *SimulatedMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Recent 最近发出的邮件（旧到新）
func (m *SimulatedMailer) Recent() []Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Mail, len(m.recent))
	copy(out, m.recent)
	return out
}

func (m *SimulatedMailer) Simulated() bool { return true }

// HTTPMailer 以 JSON POST 调用事务邮件服务
type HTTPMailer struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
}

func (m *HTTPMailer) Send(ctx context.Context, mail Mail) error {
	body, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("failed to encode mail: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}

func (m *HTTPMailer) Simulated() bool { return false }
