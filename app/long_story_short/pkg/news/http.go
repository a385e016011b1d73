package news

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError 搜索服务返回了错误响应
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// MessageFunc 从错误响应体中提取错误描述
type MessageFunc func(body []byte) string

// RawMessage 直接使用响应体作为错误描述
func RawMessage(body []byte) string {
	return strings.TrimSpace(string(body))
}

// DoJSON 发送请求并把 200 响应体解码到 out，其他状态返回 *StatusError
func DoJSON(client *http.Client, req *http.Request, provider string, out any, message MessageFunc) error {
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%s read body failed: %w", provider, err)
	}

	if res.StatusCode != http.StatusOK {
		if message == nil {
			message = RawMessage
		}
		return &StatusError{Provider: provider, StatusCode: res.StatusCode, Message: message(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s unmarshal response failed: %w", provider, err)
	}
	return nil
}
