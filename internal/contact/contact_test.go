package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		form   Form
		fields []string
	}{
		{"合法表单", Form{Name: "Ada", Email: "ada@example.com", Message: "Hello there, long enough."}, nil},
		{"全部为空", Form{}, []string{"name", "email", "message"}},
		{"名字太短", Form{Name: "A", Email: "ada@example.com", Message: "Hello there, long enough."}, []string{"name"}},
		{"邮箱格式错误", Form{Name: "Ada", Email: "not-an-email", Message: "Hello there, long enough."}, []string{"email"}},
		{"留言太短", Form{Name: "Ada", Email: "ada@example.com", Message: "short"}, []string{"message"}},
		{"空白不计入长度", Form{Name: "  A  ", Email: "ada@example.com", Message: "          x"}, []string{"name", "message"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if len(errs) != len(tt.fields) {
				t.Fatalf("Validate() = %v, want fields %v", errs, tt.fields)
			}
			for _, f := range tt.fields {
				if len(errs[f]) == 0 || errs[f][0] != fieldMessages[f] {
					t.Errorf("errors[%s] = %v, want %q", f, errs[f], fieldMessages[f])
				}
			}
		})
	}
}

// failingMailer 总是失败的投递
type failingMailer struct{}

func (failingMailer) Send(context.Context, Mail) error { return errors.New("boom") }
func (failingMailer) Simulated() bool                  { return false }

func TestService_Submit(t *testing.T) {
	valid := Form{Name: "Test User", Email: "test@example.com", Message: "This is a long enough message for validation."}

	t.Run("校验失败", func(t *testing.T) {
		s := &Service{Mailer: &SimulatedMailer{}}
		res, err := s.Submit(context.Background(), Form{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success || res.Message != MessageInvalid || len(res.Errors) == 0 {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("无 API key 时模拟成功", func(t *testing.T) {
		mailer := &SimulatedMailer{}
		s := &Service{Mailer: mailer, From: "from@example.com", To: "to@example.com"}
		res, err := s.Submit(context.Background(), valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success || res.Message != MessageSimulated {
			t.Errorf("result = %+v", res)
		}
		sent := mailer.Recent()
		if mailer.Count() != 1 || len(sent) != 1 || sent[0].Subject != "New Message from Portfolio: Test User" {
			t.Errorf("count=%d sent=%+v", mailer.Count(), sent)
		}
	})

	t.Run("投递失败返回通用文案", func(t *testing.T) {
		s := &Service{Mailer: failingMailer{}}
		res, err := s.Submit(context.Background(), valid)
		if !errors.Is(err, ErrDelivery) {
			t.Fatalf("err = %v, want ErrDelivery", err)
		}
		if res.Success || res.Message != MessageFailed {
			t.Errorf("result = %+v", res)
		}
	})
}

func TestService_SubmitConcurrent(t *testing.T) {
	mailer := &SimulatedMailer{}
	s := &Service{Mailer: mailer, From: "from@example.com", To: "to@example.com"}
	valid := Form{Name: "Test User", Email: "test@example.com", Message: "This is a long enough message for validation."}

	const n = 50
	var wg sync.WaitGroup
	failures := make(chan Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Submit(context.Background(), valid)
			if err != nil || !res.Success {
				failures <- res
			}
		}()
	}
	wg.Wait()
	close(failures)

	for res := range failures {
		t.Errorf("并发提交失败: %+v", res)
	}
	if got := mailer.Count(); got != n {
		t.Errorf("Count = %d, want %d", got, n)
	}
	if got := len(mailer.Recent()); got != simulatedKeep {
		t.Errorf("Recent 保留 %d 封, want %d", got, simulatedKeep)
	}
}

func TestHTTPMailer(t *testing.T) {
	var got Mail
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got.To == "reject@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"test-id"}`))
	}))
	defer srv.Close()

	m := NewMailer("re_test_123", srv.URL)
	if m.Simulated() {
		t.Fatal("配置了 API key 不应模拟")
	}

	if err := m.Send(context.Background(), Mail{To: "me@example.com", Subject: "hi"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "Bearer re_test_123" || got.Subject != "hi" {
		t.Errorf("auth=%q mail=%+v", auth, got)
	}

	if err := m.Send(context.Background(), Mail{To: "reject@example.com"}); err == nil {
		t.Error("服务返回 422 时应报错")
	}
}

func TestNewMailer_Simulated(t *testing.T) {
	if m := NewMailer("", "http://unused"); !m.Simulated() {
		t.Error("未配置 API key 时应使用模拟投递")
	}
}
