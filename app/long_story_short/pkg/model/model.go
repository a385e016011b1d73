package model

const (
	// MaxArticles 单次运行最多保留的文章数
	MaxArticles = 10
	// RemovedDescription 新闻源对已下架文章返回的占位描述
	RemovedDescription = "[Removed]"
	// SummaryUnavailable 文章没有描述时使用的摘要占位值
	SummaryUnavailable = "Summary not available"
)

// Article 基础文章信息
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"` // 为空表示新闻源未提供描述
	URL         string `json:"url,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Content     string `json:"-"` // 可选的正文全文，仅用于 LLM 总结
}

// HasDescription 判断文章是否带有可用的描述
func (a Article) HasDescription() bool {
	return a.Description != ""
}

// Entity 命名实体 (文本, 类别)
type Entity struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// LinkedEntity 附带搜索链接的命名实体
type LinkedEntity struct {
	Entity
	URL string `json:"url"`
}

// State 在流水线各阶段之间传递的共享状态。
// 所有切片按文章下标对齐。
type State struct {
	Query          string           `json:"query"`
	Articles       []Article        `json:"articles"`
	Summaries      []string         `json:"summaries"`
	Entities       [][]Entity       `json:"entities"`
	LinkedEntities [][]LinkedEntity `json:"linked_entities"`
}

// NewState 为一次查询创建空状态
func NewState(query string) *State {
	return &State{
		Query:          query,
		Articles:       []Article{},
		Summaries:      []string{},
		Entities:       [][]Entity{},
		LinkedEntities: [][]LinkedEntity{},
	}
}

// Aligned 检查各阶段结果是否与文章一一对应
func (s *State) Aligned() bool {
	n := len(s.Articles)
	return len(s.Summaries) == n && len(s.Entities) == n && len(s.LinkedEntities) == n
}
