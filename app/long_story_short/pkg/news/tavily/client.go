package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news"
)

const defaultBaseURL = "https://api.tavily.com/search"

// Client Tavily API 客户端
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Tavily 客户端
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
	}
}

// Ensure Client implements news.Source
var _ news.Source = (*Client)(nil)

// SearchRequest Tavily 搜索请求参数
type SearchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"` // basic or advanced
	Topic       string `json:"topic,omitempty"`        // general or news
	MaxResults  int    `json:"max_results,omitempty"`
}

// SearchResponse Tavily 搜索响应
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// SearchResult 单个搜索结果
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

// Search implements news.Source，content 作为文章描述
func (c *Client) Search(ctx context.Context, req *news.Request) (*news.Response, error) {
	resp, err := c.doSearch(ctx, SearchRequest{
		Query:       req.Query,
		SearchDepth: "basic",
		Topic:       "news",
		MaxResults:  req.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(resp.Results))
	for _, r := range resp.Results {
		articles = append(articles, model.Article{
			Title:       r.Title,
			Description: r.Content,
			URL:         r.URL,
			Source:      "tavily",
			PublishedAt: r.PublishedDate,
		})
	}

	return &news.Response{Articles: articles}, nil
}

// doSearch 执行搜索 (Internal)
func (c *Client) doSearch(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.MaxResults == 0 {
		req.MaxResults = 5
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	httpReq.Header.Add("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Add("Content-Type", "application/json")

	var searchResp SearchResponse
	if err := news.DoJSON(c.client, httpReq, "tavily", &searchResp, nil); err != nil {
		return nil, err
	}

	return &searchResp, nil
}
