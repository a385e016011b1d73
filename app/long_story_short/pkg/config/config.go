package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 环境变量名，优先级高于配置文件
const (
	EnvNewsAPIKey   = "NEWS_API_KEY"
	EnvCohereAPIKey = "COHERE_API_KEY"
	EnvLLMAPIKey    = "LLM_API_KEY"
)

// DefaultTemperature 摘要生成的默认随机度
const DefaultTemperature float32 = 0.5

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	News        NewsConfig        `yaml:"news"`
	NER         NERConfig         `yaml:"ner"`
	Summary     SummaryConfig     `yaml:"summary"`
	Linker      LinkerConfig      `yaml:"linker"`
	Topics      []string          `yaml:"topics"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Report      ReportConfig      `yaml:"report"`
}

// LLMConfig 文本生成服务配置 (OpenAI 兼容协议)
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// NewsConfig 新闻搜索相关配置
type NewsConfig struct {
	Provider string        `yaml:"provider"`
	NewsAPI  NewsAPIConfig `yaml:"newsapi"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// NewsAPIConfig newsapi.org 配置
type NewsAPIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// NERConfig 命名实体识别配置
type NERConfig struct {
	Provider string      `yaml:"provider"` // spacy or llm
	SpaCy    SpaCyConfig `yaml:"spacy"`
}

// SpaCyConfig spaCy NER 服务配置
type SpaCyConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	Timeout  int    `yaml:"timeout"`
}

// SummaryConfig 摘要生成配置
type SummaryConfig struct {
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float32 `yaml:"temperature"` // 未配置时为 0.5，可显式配置为 0
	FullText    bool     `yaml:"full_text"`   // 是否抓取原文全文用于总结
}

// LinkerConfig 实体链接配置
type LinkerConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS     int `yaml:"qps"`
	RPM     int `yaml:"rpm"`
	Workers int `yaml:"workers"`
}

// DBConfig 运行记录存储配置，Driver 为空时不保存
type DBConfig struct {
	Driver   string `yaml:"driver"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"` // sqlite 文件路径
}

// ReportConfig 批处理报告输出配置
type ReportConfig struct {
	Output string `yaml:"output"`
}

// LoadConfig 从指定路径加载配置，并应用环境变量与默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()

	return &cfg, nil
}

// ApplyEnv 加载 .env 文件 (如果存在)，并用环境变量覆盖密钥
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if v := os.Getenv(EnvNewsAPIKey); v != "" {
		cfg.News.NewsAPI.APIKey = v
	}
	if v := os.Getenv(EnvCohereAPIKey); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		cfg.LLM.APIKey = v
	}
	return nil
}

// Defaults 填充未配置的默认值
func (c *Config) Defaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.cohere.ai/compatibility/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "command-r"
	}
	if c.Summary.MaxTokens == 0 {
		c.Summary.MaxTokens = 100
	}
	if c.Summary.Temperature == nil {
		t := DefaultTemperature
		c.Summary.Temperature = &t
	}
	if c.NER.Provider == "" {
		c.NER.Provider = "spacy"
	}
	if c.NER.SpaCy.Model == "" {
		c.NER.SpaCy.Model = "en_core_web_sm"
	}
	if c.Linker.BaseURL == "" {
		c.Linker.BaseURL = "https://www.google.com/search?q="
	}
	if c.Concurrency.Workers <= 0 {
		c.Concurrency.Workers = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Report.Output == "" {
		c.Report.Output = "index.html"
	}
}
