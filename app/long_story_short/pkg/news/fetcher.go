package news

import (
	"context"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/logger"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// Fetcher 根据话题获取最多 model.MaxArticles 篇文章
type Fetcher struct {
	source   Source
	enricher Enricher
}

// Enricher 为文章补充正文全文
type Enricher interface {
	Enrich(ctx context.Context, articles []model.Article) []model.Article
}

// FetcherOption Fetcher 可选项
type FetcherOption func(*Fetcher)

// WithEnricher 在过滤后为文章补充正文
func WithEnricher(e Enricher) FetcherOption {
	return func(f *Fetcher) {
		f.enricher = e
	}
}

// NewFetcher 创建 Fetcher
func NewFetcher(source Source, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{source: source}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch 搜索并过滤文章。搜索失败时记录日志并返回空切片，不返回错误。
func (f *Fetcher) Fetch(ctx context.Context, query string) []model.Article {
	resp, err := f.source.Search(ctx, &Request{
		Query:      query,
		MaxResults: model.MaxArticles,
	})
	if err != nil {
		logger.Log.Errorf("Error fetching news: %v", err)
		return []model.Article{}
	}

	articles := truncate(resp.Articles)
	kept := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if a.Description == model.RemovedDescription {
			continue
		}
		kept = append(kept, a)
	}
	kept = truncate(kept)

	if f.enricher != nil && len(kept) > 0 {
		kept = f.enricher.Enrich(ctx, kept)
	}

	logger.Log.Infof("话题 [%s] 获取到 %d 篇文章", query, len(kept))
	return kept
}

func truncate(articles []model.Article) []model.Article {
	if len(articles) > model.MaxArticles {
		return articles[:model.MaxArticles]
	}
	return articles
}
