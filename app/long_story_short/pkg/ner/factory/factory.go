package factory

import (
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner/llmner"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner/spacy"
)

// NewRecognizer 根据配置创建实体识别器，llm 模式复用对话模型
func NewRecognizer(cfg config.NERConfig, cm model.BaseChatModel, limiter *rate.Limiter) (ner.Recognizer, error) {
	switch cfg.Provider {
	case "", "spacy":
		if cfg.SpaCy.Endpoint == "" {
			return nil, fmt.Errorf("spacy ner endpoint is missing")
		}
		return spacy.NewClient(cfg.SpaCy.Endpoint, cfg.SpaCy.Model, cfg.SpaCy.Timeout), nil

	case "llm":
		if cm == nil {
			return nil, fmt.Errorf("llm ner requires a chat model")
		}
		return llmner.New(cm, limiter), nil

	default:
		return nil, fmt.Errorf("unknown ner provider: %s", cfg.Provider)
	}
}
