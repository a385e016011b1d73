package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news"
)

// DefaultBaseURL newsapi.org everything 接口
const DefaultBaseURL = "https://newsapi.org/v2/everything"

// Client newsapi.org API 客户端
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 NewsAPI 客户端，baseURL 为空时使用官方地址
func NewClient(apiKey, baseURL string, timeout int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: t},
	}
}

// Ensure Client implements news.Source
var _ news.Source = (*Client)(nil)

// SearchResponse NewsAPI 响应结构，出错时 status 为 error 并带有 message
type SearchResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     *[]SearchArticle `json:"articles"`
}

// SearchArticle NewsAPI 单篇文章
type SearchArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string  `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	PublishedAt string  `json:"publishedAt"`
	Content     *string `json:"content"`
}

// Search 执行搜索
func (c *Client) Search(ctx context.Context, req *news.Request) (*news.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("apiKey", c.apiKey)
	if req.MaxResults > 0 {
		q.Set("pageSize", fmt.Sprintf("%d", req.MaxResults))
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: create request failed: %w", err)
	}

	var searchResp SearchResponse
	if err := news.DoJSON(c.client, httpReq, "newsapi", &searchResp, errorMessage); err != nil {
		return nil, err
	}
	// status 为 ok 但缺少 articles 同样视为失败
	if searchResp.Articles == nil {
		return nil, &news.StatusError{Provider: "newsapi", StatusCode: http.StatusOK, Message: messageOrUnknown(searchResp.Message)}
	}

	articles := make([]model.Article, 0, len(*searchResp.Articles))
	for _, a := range *searchResp.Articles {
		article := model.Article{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		}
		if a.Description != nil {
			article.Description = *a.Description
		}
		articles = append(articles, article)
	}

	return &news.Response{Articles: articles}, nil
}

// errorMessage 错误响应形如 {"status":"error","code":"...","message":"..."}
func errorMessage(body []byte) string {
	var resp SearchResponse
	_ = json.Unmarshal(body, &resp)
	return messageOrUnknown(resp.Message)
}

func messageOrUnknown(msg string) string {
	if msg == "" {
		return "Unknown error"
	}
	return msg
}
