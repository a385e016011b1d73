package engine

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"golang.org/x/sync/errgroup"

	dm "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// 节点名称
const (
	NodeFetch     = "fetch_news"
	NodeSummarize = "summarize_text"
	NodeExtract   = "extract_entities"
	NodeLink      = "link_entities"
)

// buildGraph 按实际执行顺序编排:
// START -> fetch -> (无文章则 END) -> summarize -> extract -> link -> END
func (e *Engine) buildGraph(ctx context.Context) (compose.Runnable[*dm.State, *dm.State], error) {
	g := compose.NewGraph[*dm.State, *dm.State]()

	nodes := []struct {
		key string
		fn  func(context.Context, *dm.State) (*dm.State, error)
	}{
		{NodeFetch, e.fetchNode},
		{NodeSummarize, e.summarizeNode},
		{NodeExtract, e.extractNode},
		{NodeLink, e.linkNode},
	}
	for _, n := range nodes {
		if err := g.AddLambdaNode(n.key, compose.InvokableLambda(n.fn)); err != nil {
			return nil, err
		}
	}

	if err := g.AddEdge(compose.START, NodeFetch); err != nil {
		return nil, err
	}
	branch := compose.NewGraphBranch(func(ctx context.Context, s *dm.State) (string, error) {
		if len(s.Articles) == 0 {
			return compose.END, nil
		}
		return NodeSummarize, nil
	}, map[string]bool{NodeSummarize: true, compose.END: true})
	if err := g.AddBranch(NodeFetch, branch); err != nil {
		return nil, err
	}
	for _, edge := range [][2]string{
		{NodeSummarize, NodeExtract},
		{NodeExtract, NodeLink},
		{NodeLink, compose.END},
	} {
		if err := g.AddEdge(edge[0], edge[1]); err != nil {
			return nil, err
		}
	}

	return g.Compile(ctx, compose.WithGraphName("long_story_short"))
}

func (e *Engine) fetchNode(ctx context.Context, s *dm.State) (*dm.State, error) {
	reportProgress(ctx, StatusFetching, 0)
	s.Articles = e.deps.Fetcher.Fetch(ctx, s.Query)
	return s, nil
}

func (e *Engine) summarizeNode(ctx context.Context, s *dm.State) (*dm.State, error) {
	reportProgress(ctx, StatusSummarizing, 25)
	summaries := make([]string, len(s.Articles))
	err := e.forEach(ctx, len(s.Articles), func(ctx context.Context, i int) error {
		a := s.Articles[i]
		text := a.Description
		if e.deps.FullText && a.HasDescription() && a.Content != "" {
			text = a.Content
		}
		summary, err := e.deps.Summarizer.Summarize(ctx, text)
		if err != nil {
			return fmt.Errorf("article %d [%s]: %w", i+1, a.Title, err)
		}
		summaries[i] = summary
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NodeSummarize, err)
	}
	s.Summaries = summaries
	return s, nil
}

func (e *Engine) extractNode(ctx context.Context, s *dm.State) (*dm.State, error) {
	reportProgress(ctx, StatusExtracting, 50)
	entities := make([][]dm.Entity, len(s.Summaries))
	err := e.forEach(ctx, len(s.Summaries), func(ctx context.Context, i int) error {
		ents, err := e.deps.Extractor.Extract(ctx, s.Summaries[i])
		if err != nil {
			return fmt.Errorf("summary %d: %w", i+1, err)
		}
		entities[i] = ents
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NodeExtract, err)
	}
	s.Entities = entities
	return s, nil
}

func (e *Engine) linkNode(ctx context.Context, s *dm.State) (*dm.State, error) {
	reportProgress(ctx, StatusLinking, 75)
	linked := make([][]dm.LinkedEntity, 0, len(s.Entities))
	for _, ents := range s.Entities {
		linked = append(linked, e.deps.Linker.Link(ents))
	}
	s.LinkedEntities = linked
	return s, nil
}

// forEach 并发处理 n 个下标，每个 goroutine 只写自己的下标
func (e *Engine) forEach(ctx context.Context, n int, fn func(context.Context, int) error) error {
	if e.deps.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.deps.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(gCtx, i)
		})
	}
	return g.Wait()
}
