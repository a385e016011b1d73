package spacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner"
)

// Client 调用 spaCy 风格的 NER HTTP 服务
type Client struct {
	endpoint string
	model    string
	http     *http.Client
}

var _ ner.Recognizer = (*Client)(nil)

// NewClient 创建客户端，model 为服务端加载的 spaCy 模型名，例如 en_core_web_sm
func NewClient(endpoint, model string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 15 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		http:     &http.Client{Timeout: t},
	}
}

type recognizeRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type recognizeResponse struct {
	Ents []ner.Span `json:"ents"`
}

// Recognize 发送 POST {endpoint}/ner 请求
func (c *Client) Recognize(ctx context.Context, text string) ([]ner.Span, error) {
	body, err := json.Marshal(recognizeRequest{Text: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/ner", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("spacy ner error (status %d): %s", resp.StatusCode, string(msg))
	}

	var out recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Ents, nil
}
