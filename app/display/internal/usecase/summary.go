package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/long_story_short/app/display/internal/domain"
	"github.com/iWorld-y/long_story_short/app/display/internal/repo"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/engine"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/report"
)

const defaultRunLimit = 20

// Runner 执行一次流水线
type Runner interface {
	Run(ctx context.Context, opts engine.RunOptions) (*model.State, error)
}

// SummaryUseCase 新闻摘要业务逻辑
type SummaryUseCase struct {
	runner Runner
	runs   repo.RunRepo
	log    *log.Helper
}

// NewSummaryUseCase 创建新闻摘要业务逻辑实例
func NewSummaryUseCase(runner Runner, runs repo.RunRepo, logger log.Logger) *SummaryUseCase {
	return &SummaryUseCase{runner: runner, runs: runs, log: log.NewHelper(logger)}
}

// Page 运行流水线并生成页面数据。空话题与运行失败都渲染为页面内的提示。
func (uc *SummaryUseCase) Page(ctx context.Context, topic string) report.Page {
	if strings.TrimSpace(topic) == "" {
		return report.NewPage(true, report.NewSection(topic, nil, nil, nil))
	}

	var steps []string
	state, err := uc.runner.Run(ctx, engine.RunOptions{
		Query: topic,
		ProgressCallback: func(status string, progress int) {
			steps = append(steps, status)
		},
	})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("pipeline failed, topic=%s: %v", topic, err)
	}
	return report.NewPage(true, report.NewSection(topic, steps, state, err))
}

// Summarize 运行流水线并返回完整结果
func (uc *SummaryUseCase) Summarize(ctx context.Context, topic string) (*model.State, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.BadRequest("EMPTY_TOPIC", report.MsgEmptyTopic)
	}
	state, err := uc.runner.Run(ctx, engine.RunOptions{Query: topic})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("pipeline failed, topic=%s: %v", topic, err)
		return nil, errors.InternalServer("PIPELINE_FAILED", err.Error()).WithCause(err)
	}
	return state, nil
}

// ListRuns 列出最近的运行记录
func (uc *SummaryUseCase) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit < 1 {
		limit = defaultRunLimit
	}
	return uc.runs.ListRuns(ctx, limit)
}

// GetRun 获取一次运行的完整结果
func (uc *SummaryUseCase) GetRun(ctx context.Context, id string) (*model.State, error) {
	return uc.runs.GetRun(ctx, id)
}
