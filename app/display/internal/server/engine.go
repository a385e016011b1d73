package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/long_story_short/app/display/internal/conf"
	"github.com/iWorld-y/long_story_short/app/display/internal/data"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/engine"
	lssLogger "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/logger"
)

// NewPipelineEngine 初始化 long_story_short 引擎
func NewPipelineEngine(c *conf.Pipeline, d *data.Data, logger log.Logger) (*engine.Engine, error) {
	cfg, err := c.Core()
	if err != nil {
		return nil, err
	}

	// 初始化引擎内部使用的日志
	if err := lssLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init pipeline logger: %v", err)
		_ = lssLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewFromConfig(context.Background(), cfg, d.Store())
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, err
	}
	return eng, nil
}
