package conf

import "github.com/iWorld-y/long_story_short/app/long_story_short/pkg/config"

type Bootstrap struct {
	Server   *Server
	Pipeline *Pipeline
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

// Pipeline 流水线配置，字段与 long_story_short 的 config.yaml 一致
type Pipeline struct {
	Llm         *LLM         `json:"llm"`
	News        *News        `json:"news"`
	Ner         *NER         `json:"ner"`
	Summary     *Summary     `json:"summary"`
	Linker      *Linker      `json:"linker"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Db          *DB          `json:"db"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type News struct {
	Provider string   `json:"provider"`
	Newsapi  *NewsAPI `json:"newsapi"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type NewsAPI struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type NER struct {
	Provider string `json:"provider"`
	Spacy    *SpaCy `json:"spacy"`
}

type SpaCy struct {
	Endpoint string `json:"endpoint"`
	Model    string `json:"model"`
	Timeout  int32  `json:"timeout"`
}

type Summary struct {
	MaxTokens   int32    `json:"max_tokens"`
	Temperature *float32 `json:"temperature"`
	FullText    bool     `json:"full_text"`
}

type Linker struct {
	BaseUrl string `json:"base_url"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps     int32 `json:"qps"`
	Rpm     int32 `json:"rpm"`
	Workers int32 `json:"workers"`
}

type DB struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

// Core 转换为 pkg/config.Config，并应用环境变量与默认值
func (p *Pipeline) Core() (*config.Config, error) {
	cfg := &config.Config{}
	if p != nil {
		p.fill(cfg)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()
	return cfg, nil
}

func (p *Pipeline) fill(cfg *config.Config) {
	if c := p.Llm; c != nil {
		cfg.LLM = config.LLMConfig{BaseURL: c.BaseUrl, APIKey: c.ApiKey, Model: c.Model}
	}
	if c := p.News; c != nil {
		cfg.News.Provider = c.Provider
		if c.Newsapi != nil {
			cfg.News.NewsAPI = config.NewsAPIConfig{
				APIKey:  c.Newsapi.ApiKey,
				BaseURL: c.Newsapi.BaseUrl,
				Timeout: int(c.Newsapi.Timeout),
			}
		}
		if c.Tavily != nil {
			cfg.News.Tavily = config.TavilyConfig{APIKey: c.Tavily.ApiKey}
		}
		if c.Searxng != nil {
			cfg.News.SearXNG = config.SearXNGConfig{
				BaseURL: c.Searxng.BaseUrl,
				Timeout: int(c.Searxng.Timeout),
			}
		}
	}
	if c := p.Ner; c != nil {
		cfg.NER.Provider = c.Provider
		if c.Spacy != nil {
			cfg.NER.SpaCy = config.SpaCyConfig{
				Endpoint: c.Spacy.Endpoint,
				Model:    c.Spacy.Model,
				Timeout:  int(c.Spacy.Timeout),
			}
		}
	}
	if c := p.Summary; c != nil {
		cfg.Summary = config.SummaryConfig{
			MaxTokens:   int(c.MaxTokens),
			Temperature: c.Temperature,
			FullText:    c.FullText,
		}
	}
	if c := p.Linker; c != nil {
		cfg.Linker.BaseURL = c.BaseUrl
	}
	if c := p.Log; c != nil {
		cfg.Log = config.LogConfig{Level: c.Level, File: c.File}
	}
	if c := p.Concurrency; c != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS:     int(c.Qps),
			RPM:     int(c.Rpm),
			Workers: int(c.Workers),
		}
	}
	if c := p.Db; c != nil {
		cfg.DB = config.DBConfig{
			Driver:   c.Driver,
			Host:     c.Host,
			Port:     int(c.Port),
			User:     c.User,
			Password: c.Password,
			Name:     c.Name,
			Path:     c.Path,
		}
	}
}
