// Package contact 联系表单：字段校验和邮件投递
package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 返回给用户的固定文案
const (
	MessageInvalid   = "Missing Fields. Failed to send email."
	MessageSent      = "Email sent successfully!"
	MessageSimulated = "Email sent successfully! (Simulation)"
	MessageFailed    = "Failed to send email."
)

// Form 联系表单
type Form struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"email"`
	Message string `json:"message" validate:"min=10"`
}

// FieldErrors 字段名 → 错误提示
type FieldErrors map[string][]string

// fieldMessages 每个字段的提示文案
var fieldMessages = map[string]string{
	"name":    "Name must be at least 2 characters",
	"email":   "Invalid email address",
	"message": "Message must be at least 10 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 使用 json 标签作为字段名，错误键与请求体一致
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate 校验表单，全部合法时返回 nil
func (f Form) Validate() FieldErrors {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": {err.Error()}}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

// Result 提交结果
type Result struct {
	Success bool        `json:"success,omitempty"`
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

// ErrDelivery 邮件服务调用失败
var ErrDelivery = errors.New("email delivery failed")

// Service 处理联系表单提交
type Service struct {
	Mailer Mailer
	From   string
	To     string
}

// Submit 校验并投递
//
// 校验失败返回字段错误；投递失败返回 ErrDelivery（具体原因只记录日志）。
func (s *Service) Submit(ctx context.Context, f Form) (Result, error) {
	if errs := f.Validate(); errs != nil {
		return Result{Message: MessageInvalid, Errors: errs}, nil
	}

	mail := Mail{
		From:    s.From,
		To:      s.To,
		Subject: "New Message from Portfolio: " + strings.TrimSpace(f.Name),
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", f.Name, f.Email, f.Message),
		ReplyTo: strings.TrimSpace(f.Email),
	}
	if err := s.Mailer.Send(ctx, mail); err != nil {
		log.Printf("[Contact] Error sending email: %v", err)
		return Result{Message: MessageFailed}, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	if s.Mailer.Simulated() {
		return Result{Success: true, Message: MessageSimulated}, nil
	}
	return Result{Success: true, Message: MessageSent}, nil
}
