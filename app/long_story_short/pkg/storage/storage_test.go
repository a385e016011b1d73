package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewSQLite("")
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleState(query string) *model.State {
	s := model.NewState(query)
	s.Articles = []model.Article{{Title: "t", Description: "d"}}
	s.Summaries = []string{"summary"}
	s.Entities = [][]model.Entity{{{Text: "Berlin", Category: "GPE"}}}
	s.LinkedEntities = [][]model.LinkedEntity{{{
		Entity: model.Entity{Text: "Berlin", Category: "GPE"},
		URL:    "https://www.google.com/search?q=Berlin",
	}}}
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.SaveRun(ctx, sampleState("berlin"))
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() returned empty id")
	}

	got, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Query != "berlin" || !got.Aligned() || got.LinkedEntities[0][0].URL != "https://www.google.com/search?q=Berlin" {
		t.Errorf("GetRun() = %+v", got)
	}
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, q := range []string{"first", "second", "third"} {
		if _, err := s.SaveRun(ctx, sampleState(q)); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", q, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	if runs[0].Query != "third" || runs[1].Query != "second" {
		t.Errorf("order = %s, %s", runs[0].Query, runs[1].Query)
	}
	if runs[0].ArticleCount != 1 || runs[0].CreatedAt.IsZero() {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestSQLiteStore_GetRunNotFound(t *testing.T) {
	_, err := newTestStore(t).GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage(config.DBConfig{})
	if err != nil || s != nil {
		t.Errorf("empty driver: got %v, %v", s, err)
	}
	if _, err := NewStorage(config.DBConfig{Driver: "mysql"}); err == nil {
		t.Error("unknown driver: expected error")
	}
	s, err = NewStorage(config.DBConfig{Driver: "sqlite"})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	s.Close()
}

func TestRebind(t *testing.T) {
	pg := &sqlStore{numberedArg: true}
	if got := pg.rebind("SELECT ? , ?"); got != "SELECT $1 , $2" {
		t.Errorf("rebind = %q", got)
	}
	lite := &sqlStore{}
	if got := lite.rebind("SELECT ?"); got != "SELECT ?" {
		t.Errorf("rebind = %q", got)
	}
}

func TestNewSQLite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "runs.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	defer s.Close()

	if _, err := s.SaveRun(context.Background(), sampleState("berlin")); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("db file not created: %v", err)
	}
}
