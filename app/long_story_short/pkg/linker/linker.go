// Package linker 为实体生成搜索引擎链接，不做任何 I/O。
package linker

import (
	"strings"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// DefaultBaseURL Google 搜索
const DefaultBaseURL = "https://www.google.com/search?q="

type Linker struct {
	baseURL string
}

func New(baseURL string) *Linker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Linker{baseURL: baseURL}
}

// URL 空格替换为 '+' 后拼接到 baseURL
func (l *Linker) URL(text string) string {
	return l.baseURL + strings.ReplaceAll(text, " ", "+")
}

// Link 按输入顺序生成链接，相同实体各自保留
func (l *Linker) Link(entities []model.Entity) []model.LinkedEntity {
	linked := make([]model.LinkedEntity, 0, len(entities))
	for _, e := range entities {
		linked = append(linked, model.LinkedEntity{Entity: e, URL: l.URL(e.Text)})
	}
	return linked
}
