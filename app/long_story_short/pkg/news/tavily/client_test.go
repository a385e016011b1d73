package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/news"
)

func TestClient_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tvly-key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "golang" || req.Topic != "news" || req.MaxResults != 10 {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"query":"golang","results":[{"title":"Go 1.25","url":"https://go.dev","content":"Go 1.25 is out.","score":0.9}]}`))
	}))
	defer ts.Close()

	c := NewClient("tvly-key")
	c.baseURL = ts.URL

	resp, err := c.Search(context.Background(), &news.Request{Query: "golang", MaxResults: 10})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Description != "Go 1.25 is out." {
		t.Errorf("articles = %+v", resp.Articles)
	}
}

func TestClient_SearchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient("bad")
	c.baseURL = ts.URL
	if _, err := c.Search(context.Background(), &news.Request{Query: "q"}); err == nil {
		t.Fatal("expected error")
	}
}
