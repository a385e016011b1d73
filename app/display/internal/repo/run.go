package repo

import (
	"context"

	"github.com/iWorld-y/long_story_short/app/display/internal/domain"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
)

// RunRepo 运行记录仓库接口
type RunRepo interface {
	// ListRuns 按时间倒序获取最近的运行记录
	ListRuns(ctx context.Context, limit int) ([]*domain.Run, error)
	// GetRun 根据ID获取一次运行的完整结果
	GetRun(ctx context.Context, id string) (*model.State, error)
}
