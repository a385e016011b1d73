package data

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/long_story_short/app/display/internal/domain"
	"github.com/iWorld-y/long_story_short/app/display/internal/repo"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/storage"
)

type runRepo struct {
	data *Data
	log  *log.Helper
}

func NewRunRepo(data *Data, logger log.Logger) repo.RunRepo {
	return &runRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *runRepo) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	if r.data.store == nil {
		return []*domain.Run{}, nil
	}
	runs, err := r.data.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Run, 0, len(runs))
	for _, run := range runs {
		list = append(list, &domain.Run{
			ID:           run.ID,
			Query:        run.Query,
			ArticleCount: run.ArticleCount,
			CreatedAt:    run.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

func (r *runRepo) GetRun(ctx context.Context, id string) (*model.State, error) {
	if r.data.store == nil {
		return nil, errors.NotFound("RUN_NOT_FOUND", "run history is not enabled")
	}
	state, err := r.data.store.GetRun(ctx, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, errors.NotFound("RUN_NOT_FOUND", "run not found")
		}
		return nil, err
	}
	return state, nil
}
