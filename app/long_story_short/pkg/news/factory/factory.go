package factory

import (
	"fmt"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news/newsapi"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news/searxng"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news/tavily"
)

// NewSource 根据配置创建新闻源
func NewSource(cfg *config.Config) (news.Source, error) {
	provider := cfg.News.Provider
	if provider == "" {
		// 默认回退逻辑：有 NewsAPI key 则使用 newsapi
		if cfg.News.NewsAPI.APIKey == "" {
			return nil, fmt.Errorf("news provider not configured")
		}
		provider = "newsapi"
	}

	switch provider {
	case "newsapi":
		// key 缺失时不在本地校验，由服务端返回鉴权错误
		c := cfg.News.NewsAPI
		return newsapi.NewClient(c.APIKey, c.BaseURL, c.Timeout), nil

	case "tavily":
		if cfg.News.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.News.Tavily.APIKey), nil

	case "searxng":
		baseURL := cfg.News.SearXNG.BaseURL
		if baseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(baseURL, cfg.News.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown news provider: %s", provider)
	}
}
