package engine

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/linker"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/logger"
	dm "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/storage"
)

// ArticleFetcher 获取文章，失败时返回空列表
type ArticleFetcher interface {
	Fetch(ctx context.Context, query string) []dm.Article
}

// Summarizer 生成单篇文章摘要
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// EntityExtractor 从摘要中提取实体
type EntityExtractor interface {
	Extract(ctx context.Context, text string) ([]dm.Entity, error)
}

// EntityLinker 为实体生成搜索链接
type EntityLinker interface {
	Link(entities []dm.Entity) []dm.LinkedEntity
}

var (
	_ EntityExtractor = (*ner.Extractor)(nil)
	_ EntityLinker    = (*linker.Linker)(nil)
)

// Deps 引擎依赖
type Deps struct {
	Fetcher    ArticleFetcher
	Summarizer Summarizer
	Extractor  EntityExtractor
	Linker     EntityLinker
	Store      storage.Store // 可为 nil
	Workers    int           // 每阶段并发处理文章数，<=1 为串行
	// FullText 为 true 时优先使用 Article.Content 生成摘要
	FullText bool
}

// Engine 核心处理引擎
type Engine struct {
	deps  Deps
	graph compose.Runnable[*dm.State, *dm.State]
}

// NewEngine 创建引擎实例并编译流水线
func NewEngine(ctx context.Context, deps Deps) (*Engine, error) {
	if deps.Fetcher == nil || deps.Summarizer == nil || deps.Extractor == nil || deps.Linker == nil {
		return nil, fmt.Errorf("engine: missing dependency")
	}
	if deps.Workers < 1 {
		deps.Workers = 1
	}

	e := &Engine{deps: deps}
	graph, err := e.buildGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: compile graph: %w", err)
	}
	e.graph = graph
	return e, nil
}

// RunOptions 运行选项
type RunOptions struct {
	Query            string
	ProgressCallback func(status string, progress int)
}

// Run 执行一次流水线。没有文章时提前结束，返回的状态各列表均为空。
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*dm.State, error) {
	logger.Log.Infof("开始处理话题 [%s]", opts.Query)

	ctx = withProgress(ctx, opts.ProgressCallback)
	state, err := e.graph.Invoke(ctx, dm.NewState(opts.Query))
	if err != nil {
		return nil, err
	}

	if len(state.Articles) > 0 && e.deps.Store != nil {
		if id, err := e.deps.Store.SaveRun(ctx, state); err != nil {
			logger.Log.Errorf("保存运行记录失败 [%s]: %v", opts.Query, err)
		} else {
			logger.Log.Debugf("运行记录已保存: %s", id)
		}
	}

	reportProgress(ctx, StatusCompleted, 100)
	logger.Log.Infof("话题 [%s] 处理完成，共 %d 篇文章", opts.Query, len(state.Articles))
	return state, nil
}

// 进度状态，对应界面上的步骤提示
const (
	StatusFetching    = "Fetching news articles..."
	StatusSummarizing = "Summarizing articles..."
	StatusExtracting  = "Extracting entities from summaries..."
	StatusLinking     = "Linking entities to Google Search..."
	StatusCompleted   = "Workflow complete."
)

type progressKey struct{}

func withProgress(ctx context.Context, cb func(string, int)) context.Context {
	if cb == nil {
		return ctx
	}
	return context.WithValue(ctx, progressKey{}, cb)
}

func reportProgress(ctx context.Context, status string, progress int) {
	if cb, ok := ctx.Value(progressKey{}).(func(string, int)); ok {
		cb(status, progress)
	}
}
