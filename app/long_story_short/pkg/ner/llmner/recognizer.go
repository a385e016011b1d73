package llmner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/ner"
)

const systemPrompt = "你是一个 JSON 生成器。请只输出 JSON 字符串，不要输出任何其他内容。"

const userPrompt = `Extract the named entities from the text below, in the order they appear.
Use spaCy labels: PERSON, NORP, FAC, ORG, GPE, LOC, PRODUCT, EVENT, WORK_OF_ART, LAW, LANGUAGE, DATE, TIME, PERCENT, MONEY, QUANTITY, ORDINAL, CARDINAL.
Return a JSON array only, for example: [{"text": "Paris", "label": "GPE"}]

Text:
%s`

// Recognizer 使用对话模型完成实体识别
type Recognizer struct {
	chatModel model.BaseChatModel
	limiter   *rate.Limiter
}

var _ ner.Recognizer = (*Recognizer)(nil)

// New 创建 Recognizer，limiter 可为 nil
func New(cm model.BaseChatModel, limiter *rate.Limiter) *Recognizer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Recognizer{chatModel: cm, limiter: limiter}
}

// Recognize 调用模型并解析返回的 JSON 数组
func (r *Recognizer) Recognize(ctx context.Context, text string) ([]ner.Span, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("limiter wait error: %w", err)
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(fmt.Sprintf(userPrompt, text)),
	}

	resp, err := r.chatModel.Generate(ctx, messages, model.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("generate failed: %w", err)
	}

	// 清理可能的 markdown 标记
	cleanContent := strings.TrimSpace(resp.Content)
	cleanContent = strings.TrimPrefix(cleanContent, "```json")
	cleanContent = strings.TrimPrefix(cleanContent, "```")
	cleanContent = strings.TrimSuffix(cleanContent, "```")
	cleanContent = strings.TrimSpace(cleanContent)

	var spans []ner.Span
	if err := json.Unmarshal([]byte(cleanContent), &spans); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w, content: %s", err, cleanContent)
	}

	out := spans[:0]
	for _, sp := range spans {
		if sp.Text == "" {
			continue
		}
		out = append(out, sp)
	}
	return out, nil
}
