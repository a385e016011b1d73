package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/engine"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/logger"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/report"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/storage"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "app/long_story_short/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if len(cfg.Topics) == 0 {
		log.Fatal("配置错误: 未设置话题 (topics)")
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动 LongStoryShort...")

	ctx := context.Background()

	// 3. 运行记录存储 (可选)
	store, err := storage.NewStorage(cfg.DB)
	if err != nil {
		logger.Log.Errorf("无法连接数据库: %v. 将仅生成 HTML 文件。", err)
		store = nil
	} else if store != nil {
		defer store.Close()
		logger.Log.Infof("已启用运行记录存储 (%s)", cfg.DB.Driver)
	}

	// 4. 初始化引擎
	eng, err := engine.NewFromConfig(ctx, cfg, store)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	// 5. 逐个话题运行
	var sections []report.Section
	for _, topic := range cfg.Topics {
		var steps []string
		state, err := eng.Run(ctx, engine.RunOptions{
			Query: topic,
			ProgressCallback: func(status string, progress int) {
				logger.Log.Infof("[%s] %s (%d%%)", topic, status, progress)
				steps = append(steps, status)
			},
		})
		if err != nil {
			logger.Log.Errorf("话题处理失败 [%s]: %v", topic, err)
		}
		sections = append(sections, report.NewSection(topic, steps, state, err))
	}

	// 6. 生成 HTML
	if err := writeReport(cfg.Report.Output, report.NewPage(false, sections...)); err != nil {
		logger.Log.Fatalf("生成 HTML 失败: %v", err)
	}

	logger.Log.Infof("✅ 报告生成完毕: %s", cfg.Report.Output)
}

func writeReport(path string, page report.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.Render(f, page)
}
