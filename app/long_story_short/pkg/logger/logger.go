package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例，未初始化时使用默认配置
var Log = newLogger(os.Stdout, logrus.InfoLevel)

// CustomFormatter 输出格式: [TIME] [LEVL] [FILE:LINE] MSG k=v ...
type CustomFormatter struct{}

// Format 实现 logrus.Formatter 接口
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileLine = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] [%s] %s",
		entry.Time.Format("2006-01-02 15:04:05"), levelTag(entry.Level), fileLine, entry.Message)

	// 字段按 key 排序，保证输出稳定
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
	}
	sb.WriteByte('\n')

	return []byte(sb.String()), nil
}

// levelTag 对齐级别长度，例如 INFO, WARN, ERRO
func levelTag(level logrus.Level) string {
	tag := strings.ToUpper(level.String())
	if len(tag) > 4 {
		tag = tag[:4]
	}
	return tag
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(&CustomFormatter{})
	l.SetLevel(level)
	l.SetOutput(out)
	return l
}

// InitLogger 初始化日志，filePath 非空时同时写入文件
func InitLogger(levelStr string, filePath string) error {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	Log = newLogger(io.MultiWriter(writers...), level)
	return nil
}
