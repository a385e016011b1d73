package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/long_story_short/app/display/internal/conf"
	"github.com/iWorld-y/long_story_short/app/display/internal/service"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/report"
)

// 流水线需要依次调用多个外部服务，默认超时放宽
const defaultTimeout = 5 * time.Minute

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Timeout(defaultTimeout),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	service.RegisterDisplayHTTPServer(srv, s)

	helper := log.NewHelper(logger)
	render := func(w nethttp.ResponseWriter, page report.Page) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.Render(w, page); err != nil {
			helper.Errorf("render page failed: %v", err)
		}
	}

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		render(w, s.IndexPage())
	})

	srv.HandleFunc("/summarize", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		render(w, s.SummaryPage(r.Context(), r.URL.Query().Get("topic")))
	})

	return srv
}
