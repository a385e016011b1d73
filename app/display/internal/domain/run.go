package domain

// Run 一次流水线运行的摘要信息
type Run struct {
	ID           string `json:"id"`
	Query        string `json:"query"`
	ArticleCount int    `json:"article_count"`
	CreatedAt    string `json:"created_at"`
}
