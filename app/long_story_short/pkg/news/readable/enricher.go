package readable

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/logger"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news"
)

const maxContentRunes = 5000

// Enricher 使用 readability 抓取原文正文
type Enricher struct {
	timeout time.Duration
	fetch   func(url string, timeout time.Duration) (string, error)
}

var _ news.Enricher = (*Enricher)(nil)

// NewEnricher 创建正文抓取器
func NewEnricher(timeout time.Duration) *Enricher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Enricher{timeout: timeout, fetch: fetchAndCleanContent}
}

// Enrich 为带有描述和链接的文章填充 Content，失败时保持为空
func (e *Enricher) Enrich(ctx context.Context, articles []model.Article) []model.Article {
	for i := range articles {
		a := &articles[i]
		if !a.HasDescription() || a.URL == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		content, err := e.fetch(a.URL, e.timeout)
		if err != nil {
			logger.Log.Warnf("原文抓取失败，使用描述 [%s]: %v", a.Title, err)
			continue
		}
		a.Content = truncate(content, maxContentRunes)
	}
	return articles
}

// fetchAndCleanContent 抓取 URL 并提取核心文本
func fetchAndCleanContent(url string, timeout time.Duration) (string, error) {
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
