package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	dm "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// PromptPrefix 摘要提示词前缀
const PromptPrefix = "Summarize the following article: "

// Summarizer 调用文本生成服务生成文章摘要
type Summarizer struct {
	chatModel   model.BaseChatModel
	limiter     *rate.Limiter
	modelName   string
	maxTokens   int
	temperature float32
}

// Option Summarizer 可选项
type Option func(*Summarizer)

// WithLimiter 设置限流器
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Summarizer) { s.limiter = l }
}

// WithModelName 每次请求指定模型名称
func WithModelName(name string) Option {
	return func(s *Summarizer) { s.modelName = name }
}

// WithMaxTokens 限制摘要长度
func WithMaxTokens(n int) Option {
	return func(s *Summarizer) { s.maxTokens = n }
}

// WithTemperature 设置随机度
func WithTemperature(t float32) Option {
	return func(s *Summarizer) { s.temperature = t }
}

// New 创建 Summarizer，默认 max tokens 100、temperature 0.5
func New(cm model.BaseChatModel, opts ...Option) *Summarizer {
	s := &Summarizer{
		chatModel:   cm,
		limiter:     rate.NewLimiter(rate.Inf, 0),
		maxTokens:   100,
		temperature: 0.5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize 生成摘要。text 为空时直接返回占位值，不调用模型。
// 不做重试，模型错误直接返回。
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return dm.SummaryUnavailable, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("limiter wait error: %w", err)
	}

	messages := []*schema.Message{
		schema.UserMessage(PromptPrefix + text),
	}

	opts := []model.Option{
		model.WithMaxTokens(s.maxTokens),
		model.WithTemperature(s.temperature),
	}
	if s.modelName != "" {
		opts = append(opts, model.WithModel(s.modelName))
	}

	resp, err := s.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("summarize: generate failed: %w", err)
	}

	return strings.TrimSpace(resp.Content), nil
}
