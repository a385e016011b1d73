package ner

import (
	"context"
	"fmt"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// Span 识别出的实体片段
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer 命名实体识别模型，按出现顺序返回实体片段
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// Extractor 从摘要中提取实体
type Extractor struct {
	recognizer Recognizer
}

// NewExtractor 创建 Extractor
func NewExtractor(r Recognizer) *Extractor {
	return &Extractor{recognizer: r}
}

// Extract 提取实体。空文本和摘要占位值直接返回空列表。
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.Entity, error) {
	if text == "" || text == model.SummaryUnavailable {
		return []model.Entity{}, nil
	}

	spans, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("ner: recognize failed: %w", err)
	}
	return mergeSpans(spans), nil
}

// mergeSpans 仅当上一个实体文本与当前片段完全相同时合并，
// 合并结果为 "上一个 当前"，类别取当前片段
func mergeSpans(spans []Span) []model.Entity {
	entities := make([]model.Entity, 0, len(spans))
	for _, sp := range spans {
		if n := len(entities); n > 0 && entities[n-1].Text == sp.Text {
			entities[n-1] = model.Entity{Text: entities[n-1].Text + " " + sp.Text, Category: sp.Label}
			continue
		}
		entities = append(entities, model.Entity{Text: sp.Text, Category: sp.Label})
	}
	return entities
}
