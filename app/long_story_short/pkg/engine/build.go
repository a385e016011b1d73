package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/linker"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/llm"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner"
	nerfactory "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner/factory"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news"
	newsfactory "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news/factory"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news/readable"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/storage"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/summarize"
)

// NewFromConfig 按配置初始化各个外部服务客户端并创建引擎，store 可为 nil
func NewFromConfig(ctx context.Context, cfg *config.Config, store storage.Store) (*Engine, error) {
	chatModel, err := llm.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	limiter := llm.NewLimiter(cfg.Concurrency)

	source, err := newsfactory.NewSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("新闻源初始化失败: %w", err)
	}
	var fetcherOpts []news.FetcherOption
	if cfg.Summary.FullText {
		fetcherOpts = append(fetcherOpts, news.WithEnricher(readable.NewEnricher(30*time.Second)))
	}

	recognizer, err := nerfactory.NewRecognizer(cfg.NER, chatModel, limiter)
	if err != nil {
		return nil, fmt.Errorf("实体识别初始化失败: %w", err)
	}

	summaryOpts := []summarize.Option{
		summarize.WithLimiter(limiter),
		summarize.WithModelName(cfg.LLM.Model),
		summarize.WithMaxTokens(cfg.Summary.MaxTokens),
	}
	if cfg.Summary.Temperature != nil {
		summaryOpts = append(summaryOpts, summarize.WithTemperature(*cfg.Summary.Temperature))
	}

	return NewEngine(ctx, Deps{
		Fetcher:    news.NewFetcher(source, fetcherOpts...),
		Summarizer: summarize.New(chatModel, summaryOpts...),
		Extractor: ner.NewExtractor(recognizer),
		Linker:    linker.New(cfg.Linker.BaseURL),
		Store:     store,
		Workers:   cfg.Concurrency.Workers,
		FullText:  cfg.Summary.FullText,
	})
}
