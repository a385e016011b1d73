package llmner

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner"
)

type fakeChatModel struct {
	reply    string
	err      error
	messages []*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.messages = input
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestRecognize_ParsesFencedJSON(t *testing.T) {
	cm := &fakeChatModel{reply: "```json\n[{\"text\":\"NASA\",\"label\":\"ORG\"},{\"text\":\"\",\"label\":\"X\"},{\"text\":\"Mars\",\"label\":\"LOC\"}]\n```"}
	got, err := New(cm, nil).Recognize(context.Background(), "NASA landed on Mars.")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	want := []ner.Span{{Text: "NASA", Label: "ORG"}, {Text: "Mars", Label: "LOC"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recognize() = %+v, want %+v", got, want)
	}
	if len(cm.messages) != 2 || !strings.Contains(cm.messages[1].Content, "NASA landed on Mars.") {
		t.Errorf("messages = %+v", cm.messages)
	}
}

func TestRecognize_InvalidJSON(t *testing.T) {
	cm := &fakeChatModel{reply: "Sorry, I cannot help."}
	if _, err := New(cm, nil).Recognize(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecognize_ModelError(t *testing.T) {
	boom := errors.New("unauthorized")
	_, err := New(&fakeChatModel{err: boom}, nil).Recognize(context.Background(), "x")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v", err)
	}
}
