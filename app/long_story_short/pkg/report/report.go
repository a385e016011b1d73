package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// 界面提示文案
const (
	MsgEmptyTopic   = "Please enter a topic to fetch news articles."
	MsgNoArticles   = "No articles found for the given topic."
	MsgComplete     = "Workflow complete."
	AppTitle        = "LongStoryShort"
	AppIntroduction = "Enter a topic to fetch and get the summary of the latest news articles."
)

// Item 单篇文章的展示数据
type Item struct {
	Index       int
	Title       string
	URL         string
	Description string
	Summary     string
	Entities    string
	Links       []model.LinkedEntity
}

// Section 一个话题的展示数据
type Section struct {
	Query   string
	Steps   []string
	Message string
	Error   string
	Items   []Item
	Done    bool
}

// Page 页面数据
type Page struct {
	Title    string
	Intro    string
	Date     string
	Query    string
	ShowForm bool
	Sections []Section
}

// NewPage 创建页面
func NewPage(showForm bool, sections ...Section) Page {
	var query string
	if len(sections) > 0 {
		query = sections[0].Query
	}
	return Page{
		Title:    AppTitle,
		Query:    query,
		Intro:    AppIntroduction,
		Date:     time.Now().Format("2006-01-02"),
		ShowForm: showForm,
		Sections: sections,
	}
}

// NewSection 根据运行结果生成展示数据，只展示有描述的文章
func NewSection(query string, steps []string, state *model.State, runErr error) Section {
	sec := Section{Query: query}
	// 完成提示由 Done 单独渲染
	for _, step := range steps {
		if step != MsgComplete {
			sec.Steps = append(sec.Steps, step)
		}
	}
	switch {
	case strings.TrimSpace(query) == "":
		sec.Message = MsgEmptyTopic
		return sec
	case runErr != nil:
		sec.Error = runErr.Error()
		return sec
	case state == nil || len(state.Articles) == 0:
		sec.Message = MsgNoArticles
		return sec
	}

	for i, a := range state.Articles {
		if !a.HasDescription() {
			continue
		}
		item := Item{
			Index:       i + 1,
			Title:       a.Title,
			URL:         a.URL,
			Description: a.Description,
			Summary:     model.SummaryUnavailable,
		}
		if i < len(state.Summaries) {
			item.Summary = state.Summaries[i]
		}
		if i < len(state.Entities) {
			item.Entities = FormatEntities(state.Entities[i])
		}
		if i < len(state.LinkedEntities) {
			item.Links = state.LinkedEntities[i]
		}
		sec.Items = append(sec.Items, item)
	}
	sec.Done = true
	return sec
}

// FormatEntities 原始实体列表，例如 [(Paris, GPE), (Monday, DATE)]
func FormatEntities(entities []model.Entity) string {
	parts := make([]string, 0, len(entities))
	for _, e := range entities {
		parts = append(parts, fmt.Sprintf("(%s, %s)", e.Text, e.Category))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Render 渲染 HTML
func Render(w io.Writer, page Page) error {
	return tpl.Execute(w, page)
}

var tpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"complete": func() string { return MsgComplete },
}).Parse(htmlTpl))

const htmlTpl = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{ .Title }}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; color: #333; }
        .article { border-bottom: 1px solid #eee; padding-bottom: 20px; margin-bottom: 20px; }
        .title { font-size: 1.2em; font-weight: bold; color: #2c3e50; text-decoration: none; }
        .summary { background-color: #f9f9f9; padding: 15px; border-radius: 5px; border-left: 4px solid #3498db; }
        .steps { font-size: 0.9em; color: #7f8c8d; }
        .error { color: #e74c3c; }
        h1 { text-align: center; color: #2c3e50; }
    </style>
</head>
<body>
    <h1>{{ .Title }}</h1>
    <p style="text-align:center; color:#666;">{{ .Intro }}</p>
    {{ if .ShowForm }}
    <form method="get" action="/summarize" style="text-align:center;">
        <label>Enter a news topic <input type="text" name="topic" value="{{ .Query }}"></label>
        <button type="submit">Summarize</button>
    </form>
    {{ end }}
    {{ range .Sections }}
    <section>
        {{ if .Query }}<h2>{{ .Query }}</h2>{{ end }}
        {{ range .Steps }}<div class="steps">{{ . }}</div>{{ end }}
        {{ if .Message }}<p>{{ .Message }}</p>{{ end }}
        {{ if .Error }}<p class="error">{{ .Error }}</p>{{ end }}
        {{ range .Items }}
        <div class="article">
            <h3>{{ if .URL }}<a href="{{ .URL }}" class="title" target="_blank">{{ .Index }}. {{ .Title }}</a>{{ else }}{{ .Index }}. {{ .Title }}{{ end }}</h3>
            <p>{{ .Description }}</p>
            <h3>Summary of Article {{ .Index }}</h3>
            <div class="summary">{{ .Summary }}</div>
            <p>Entities: {{ .Entities }}</p>
            <ul>
            {{ range .Links }}<li><b>{{ .Text }}</b> ({{ .Category }}): <a href="{{ .URL }}" target="_blank">Google Search</a></li>
            {{ end }}
            </ul>
        </div>
        {{ end }}
        {{ if .Done }}<p>{{ complete }}</p>{{ end }}
    </section>
    {{ end }}
</body>
</html>`
