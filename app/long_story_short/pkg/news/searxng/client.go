package searxng

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client 自建 SearXNG 实例的新闻搜索
type Client struct {
	baseURL string
	client  *http.Client
}

var _ news.Source = (*Client)(nil)

// NewClient timeout 单位为秒，0 表示 30 秒
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{baseURL: baseURL, client: &http.Client{Timeout: t}}
}

type searchResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	Engine        string `json:"engine"`
	PublishedDate string `json:"publishedDate"`
}

// Search 只查询 news 分类；SearXNG 不支持条数限制，由 Fetcher 截断
func (c *Client) Search(ctx context.Context, req *news.Request) (*news.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("searxng: invalid base URL: %w", err)
	}
	u = u.JoinPath("search")
	u.RawQuery = url.Values{
		"q":          {req.Query},
		"format":     {"json"},
		"categories": {"news"},
	}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("searxng: create request failed: %w", err)
	}
	// 部分实例会拦截默认的 Go User-Agent
	httpReq.Header.Set("User-Agent", userAgent)

	var body struct {
		Results []searchResult `json:"results"`
	}
	if err := news.DoJSON(c.client, httpReq, "searxng", &body, nil); err != nil {
		return nil, err
	}

	resp := &news.Response{Articles: make([]model.Article, 0, len(body.Results))}
	for _, r := range body.Results {
		resp.Articles = append(resp.Articles, model.Article{
			Title:       r.Title,
			Description: r.Content,
			URL:         r.URL,
			Source:      r.Engine,
			PublishedAt: r.PublishedDate,
		})
	}
	return resp, nil
}
