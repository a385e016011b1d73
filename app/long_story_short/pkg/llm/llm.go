package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
)

// NewChatModel 初始化 OpenAI 兼容协议的对话模型
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (model.BaseChatModel, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return chatModel, nil
}

// NewLimiter 按 RPM/QPS 创建限流器，RPM 未配置时不限流
func NewLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	if cfg.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), burst)
}
