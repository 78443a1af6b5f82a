package narrator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"TalentMatch/internal/config"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Completer 单次补全调用抽象（便于测试打桩）
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// 失败分类：限流立即换模型，瞬时错误退避重试，其余直接放弃当前模型
type errClass int

const (
	classRateLimit errClass = iota // 429：立即切换下一个模型
	classTransient                 // 5xx/网关/超时：指数退避后重试
	classFatal                     // 其余：当前模型不再重试
)

// Service 岗位画像生成服务。按顺序尝试模型列表，
// 每个模型内部有界重试（瞬时错误指数退避），限流时立即切到下一个模型，
// 全部模型耗尽后以最后一个错误终态失败
type Service struct {
	completer      Completer
	models         []string
	maxAttempts    int
	initialBackoff time.Duration
	sleep          func(time.Duration)
	logger         *logrus.Logger
}

// NewService 创建 Service（走OpenRouter的OpenAI兼容接口）
func NewService(cfg *config.NarratorConfig, logger *logrus.Logger) *Service {
	maxAttempts := cfg.RetryCount
	if maxAttempts <= 0 {
		maxAttempts = 4
	}
	return &Service{
		completer:      newOpenRouterCompleter(cfg, logger),
		models:         cfg.Models,
		maxAttempts:    maxAttempts,
		initialBackoff: time.Second,
		sleep:          time.Sleep,
		logger:         logger,
	}
}

// GenerateJobProfile 生成岗位画像文本（岗位要求/岗位描述/关键胜任力三段）
func (s *Service) GenerateJobProfile(ctx context.Context, roleName, jobLevel, rolePurpose string) (string, error) {
	if len(s.models) == 0 {
		return "", errors.New("未配置任何可用模型")
	}
	prompt := buildJobProfilePrompt(roleName, jobLevel, rolePurpose)

	var lastErr error
	for _, model := range s.models {
		text, err := s.tryModel(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("所有模型尝试均失败: %w", lastErr)
}

// tryModel 单个模型的有界重试。返回错误即表示该模型已放弃，由调用方切换下一个
func (s *Service) tryModel(ctx context.Context, model, prompt string) (string, error) {
	backoff := s.initialBackoff
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		text, err := s.completer.Complete(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		switch classify(err) {
		case classRateLimit:
			s.logger.WithError(err).WithField("model", model).Warn("模型被上游限流，立即切换下一个模型")
			return "", err
		case classTransient:
			if attempt == s.maxAttempts {
				return "", err
			}
			s.logger.WithError(err).WithFields(logrus.Fields{
				"model":   model,
				"attempt": attempt,
				"backoff": backoff.String(),
			}).Warn("瞬时错误，退避后重试")
			s.sleep(backoff)
			backoff *= 2
		default:
			return "", err
		}
	}
	return "", lastErr
}

// classify 按HTTP状态与网络错误分类失败
func classify(err error) errClass {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return classTransient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return classTransient
	}
	return classFatal
}

func classifyStatus(status int) errClass {
	switch {
	case status == http.StatusTooManyRequests:
		return classRateLimit
	case status >= http.StatusInternalServerError:
		return classTransient
	default:
		return classFatal
	}
}

// buildJobProfilePrompt 拼装岗位画像提示词（与分析口径一致，不用于对外招聘文案）
func buildJobProfilePrompt(roleName, jobLevel, rolePurpose string) string {
	return fmt.Sprintf(`You are an HR analyst. Create three sections for a job profile:
1) Job requirements (bullet points),
2) Job description (1 short paragraph),
3) Key competencies (bullet points).
Role: %s; Level: %s; Purpose: %s.
Keep it concise, business-ready, bias-aware, and tailored to analytics roles.`, roleName, jobLevel, rolePurpose)
}
