package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/long_story_short/app/display/internal/conf"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	Name    string = "long_story_short.display"
	Version string

	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/display/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(logger)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		helper.Fatalf("加载配置失败: %v", err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		helper.Fatalf("解析配置失败: %v", err)
	}
	if bc.Pipeline == nil {
		// 全部使用默认值，密钥从环境变量读取
		bc.Pipeline = &conf.Pipeline{}
	}

	app, cleanup, err := initApp(bc.Server, bc.Pipeline, logger)
	if err != nil {
		helper.Fatalf("初始化服务失败: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		helper.Errorf("服务异常退出: %v", err)
	}
}
