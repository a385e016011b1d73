package news

import (
	"context"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// Source 定义通用的新闻搜索接口
type Source interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	MaxResults int
}

// Response 通用搜索响应，文章按相关度排序
type Response struct {
	Articles []model.Article
}
