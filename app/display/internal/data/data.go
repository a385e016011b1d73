package data

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/long_story_short/app/display/internal/conf"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/storage"
)

type Data struct {
	// 未配置数据库时为 nil
	store storage.Store
}

func NewData(c *conf.Pipeline, logger log.Logger) (*Data, func(), error) {
	cfg, err := c.Core()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewStorage(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		log.NewHelper(logger).Warn("未配置数据库，运行记录不会保存")
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		if store != nil {
			store.Close()
		}
	}
	return &Data{store: store}, cleanup, nil
}

// Store 返回运行记录存储，可能为 nil
func (d *Data) Store() storage.Store {
	return d.store
}
