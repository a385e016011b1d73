package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/linker"
	dm "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/storage"
)

type fakeFetcher struct {
	articles []dm.Article
	calls    int
}

func (f *fakeFetcher) Fetch(ctx context.Context, query string) []dm.Article {
	f.calls++
	out := make([]dm.Article, len(f.articles))
	copy(out, f.articles)
	return out
}

// fakeSummarizer 摘要为 "summary: <text>"，空文本返回占位值
type fakeSummarizer struct {
	calls atomic.Int32
	fail  string
	delay func(text string) time.Duration
}

func (s *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return dm.SummaryUnavailable, nil
	}
	s.calls.Add(1)
	if s.delay != nil {
		time.Sleep(s.delay(text))
	}
	if text == s.fail {
		return "", errors.New("generation provider unavailable")
	}
	return "summary: " + text, nil
}

// wordRecognizer 把每个首字母大写的单词识别为 ORG
type wordRecognizer struct {
	calls atomic.Int32
}

func (r *wordRecognizer) Recognize(ctx context.Context, text string) ([]ner.Span, error) {
	r.calls.Add(1)
	var spans []ner.Span
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,:")
		if w != "" && w[0] >= 'A' && w[0] <= 'Z' {
			spans = append(spans, ner.Span{Text: w, Label: "ORG"})
		}
	}
	return spans, nil
}

type memStore struct {
	mu    sync.Mutex
	saved []*dm.State
}

func (m *memStore) SaveRun(ctx context.Context, state *dm.State) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, state)
	return fmt.Sprintf("run-%d", len(m.saved)), nil
}

func (m *memStore) ListRuns(ctx context.Context, limit int) ([]storage.RunSummary, error) {
	return nil, nil
}

func (m *memStore) GetRun(ctx context.Context, id string) (*dm.State, error) {
	return nil, storage.ErrNotFound
}

func (m *memStore) Close() error { return nil }

type testEnv struct {
	fetcher    *fakeFetcher
	summarizer *fakeSummarizer
	recognizer *wordRecognizer
	store      *memStore
	engine     *Engine
}

func newTestEnv(t *testing.T, articles []dm.Article, workers int) *testEnv {
	t.Helper()
	env := &testEnv{
		fetcher:    &fakeFetcher{articles: articles},
		summarizer: &fakeSummarizer{},
		recognizer: &wordRecognizer{},
		store:      &memStore{},
	}
	eng, err := NewEngine(context.Background(), Deps{
		Fetcher:    env.fetcher,
		Summarizer: env.summarizer,
		Extractor:  ner.NewExtractor(env.recognizer),
		Linker:     linker.New(""),
		Store:      env.store,
		Workers:    workers,
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	env.engine = eng
	return env
}

func climateArticles(n int) []dm.Article {
	articles := make([]dm.Article, n)
	for i := range articles {
		articles[i] = dm.Article{
			Title:       fmt.Sprintf("Climate story %d", i+1),
			Description: fmt.Sprintf("Report %d from Geneva", i+1),
		}
	}
	return articles
}

func TestRun_FullPipeline(t *testing.T) {
	env := newTestEnv(t, climateArticles(10), 1)

	state, err := env.engine.Run(context.Background(), RunOptions{Query: "climate change"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(state.Articles) != 10 || !state.Aligned() {
		t.Fatalf("state not aligned: %d articles, %d summaries, %d entities, %d linked",
			len(state.Articles), len(state.Summaries), len(state.Entities), len(state.LinkedEntities))
	}
	if state.Summaries[0] != "summary: Report 1 from Geneva" {
		t.Errorf("Summaries[0] = %q", state.Summaries[0])
	}
	// "summary:" 小写，不是实体；Report 与 Geneva 是
	wantLinked := []dm.LinkedEntity{
		{Entity: dm.Entity{Text: "Report", Category: "ORG"}, URL: "https://www.google.com/search?q=Report"},
		{Entity: dm.Entity{Text: "Geneva", Category: "ORG"}, URL: "https://www.google.com/search?q=Geneva"},
	}
	got := state.LinkedEntities[3]
	if len(got) != 2 || got[0] != wantLinked[0] || got[1] != wantLinked[1] {
		t.Errorf("LinkedEntities[3] = %+v", got)
	}
	if len(env.store.saved) != 1 {
		t.Errorf("saved runs = %d, want 1", len(env.store.saved))
	}
}

func TestRun_NoArticlesStopsEarly(t *testing.T) {
	env := newTestEnv(t, nil, 1)

	var statuses []string
	state, err := env.engine.Run(context.Background(), RunOptions{
		Query:            "nothing here",
		ProgressCallback: func(status string, progress int) { statuses = append(statuses, status) },
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(state.Articles) != 0 || !state.Aligned() {
		t.Errorf("state = %+v", state)
	}
	if env.summarizer.calls.Load() != 0 || env.recognizer.calls.Load() != 0 {
		t.Errorf("later stages should not run")
	}
	for _, s := range statuses {
		if s == StatusSummarizing || s == StatusExtracting || s == StatusLinking {
			t.Errorf("unexpected status %q", s)
		}
	}
	if len(env.store.saved) != 0 {
		t.Errorf("empty run should not be saved")
	}
}

func TestRun_MissingDescription(t *testing.T) {
	articles := []dm.Article{
		{Title: "With text", Description: "Apple in Cupertino"},
		{Title: "Without text"},
	}
	env := newTestEnv(t, articles, 1)

	state, err := env.engine.Run(context.Background(), RunOptions{Query: "apple"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state.Summaries[1] != dm.SummaryUnavailable {
		t.Errorf("Summaries[1] = %q", state.Summaries[1])
	}
	if len(state.Entities[1]) != 0 || len(state.LinkedEntities[1]) != 0 {
		t.Errorf("entities for missing description = %+v", state.Entities[1])
	}
	if env.summarizer.calls.Load() != 1 {
		t.Errorf("generation calls = %d, want 1", env.summarizer.calls.Load())
	}
	if env.recognizer.calls.Load() != 1 {
		t.Errorf("recognizer calls = %d, want 1", env.recognizer.calls.Load())
	}
}

func TestRun_ProgressOrder(t *testing.T) {
	env := newTestEnv(t, climateArticles(2), 1)

	var statuses []string
	var progress []int
	_, err := env.engine.Run(context.Background(), RunOptions{
		Query: "q",
		ProgressCallback: func(status string, p int) {
			statuses = append(statuses, status)
			progress = append(progress, p)
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{StatusFetching, StatusSummarizing, StatusExtracting, StatusLinking, StatusCompleted}
	if strings.Join(statuses, "|") != strings.Join(want, "|") {
		t.Errorf("statuses = %v, want %v", statuses, want)
	}
	if progress[len(progress)-1] != 100 {
		t.Errorf("last progress = %d", progress[len(progress)-1])
	}
}

func TestRun_ParallelPreservesOrder(t *testing.T) {
	env := newTestEnv(t, climateArticles(8), 4)
	// 下标越小越慢，打乱完成顺序
	env.summarizer.delay = func(text string) time.Duration {
		var n int
		fmt.Sscanf(text, "Report %d", &n)
		return time.Duration(10-n) * time.Millisecond
	}

	state, err := env.engine.Run(context.Background(), RunOptions{Query: "q"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i, s := range state.Summaries {
		want := fmt.Sprintf("summary: Report %d from Geneva", i+1)
		if s != want {
			t.Errorf("Summaries[%d] = %q, want %q", i, s, want)
		}
	}
	if !state.Aligned() {
		t.Error("state not aligned")
	}
}

func TestRun_SummarizerErrorAborts(t *testing.T) {
	env := newTestEnv(t, climateArticles(3), 1)
	env.summarizer.fail = "Report 2 from Geneva"

	_, err := env.engine.Run(context.Background(), RunOptions{Query: "q"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "generation provider unavailable") {
		t.Errorf("error = %v", err)
	}
	if env.recognizer.calls.Load() != 0 {
		t.Errorf("extract stage should not run after failure")
	}
	if len(env.store.saved) != 0 {
		t.Errorf("failed run should not be saved")
	}
}

func TestRun_FullTextPreferred(t *testing.T) {
	articles := []dm.Article{
		{Title: "a", Description: "Short description", Content: "Long Content body"},
		{Title: "b", Content: "Orphan content"},
	}
	fetcher := &fakeFetcher{articles: articles}
	summarizer := &fakeSummarizer{}
	eng, err := NewEngine(context.Background(), Deps{
		Fetcher:    fetcher,
		Summarizer: summarizer,
		Extractor:  ner.NewExtractor(&wordRecognizer{}),
		Linker:     linker.New(""),
		FullText:   true,
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	state, err := eng.Run(context.Background(), RunOptions{Query: "q"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state.Summaries[0] != "summary: Long Content body" {
		t.Errorf("Summaries[0] = %q", state.Summaries[0])
	}
	if state.Summaries[1] != dm.SummaryUnavailable {
		t.Errorf("Summaries[1] = %q, want placeholder", state.Summaries[1])
	}
}

func TestNewEngine_MissingDeps(t *testing.T) {
	if _, err := NewEngine(context.Background(), Deps{}); err == nil {
		t.Fatal("expected error")
	}
}
