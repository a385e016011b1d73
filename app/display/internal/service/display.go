package service

import (
	"context"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/long_story_short/app/display/internal/domain"
	"github.com/iWorld-y/long_story_short/app/display/internal/usecase"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/model"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/report"
)

const (
	OperationCreateSummary = "/display.v1.Display/CreateSummary"
	OperationListRuns      = "/display.v1.Display/ListRuns"
	OperationGetRun        = "/display.v1.Display/GetRun"
)

type CreateSummaryReq struct {
	Topic string `json:"topic"`
}

type ListRunsReq struct {
	Limit int `json:"limit"`
}

type ListRunsReply struct {
	Runs []*domain.Run `json:"runs"`
}

type GetRunReq struct {
	Id string `json:"id"`
}

type DisplayService struct {
	uc  *usecase.SummaryUseCase
	log *log.Helper
}

func NewDisplayService(uc *usecase.SummaryUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// IndexPage 首页，只包含表单
func (s *DisplayService) IndexPage() report.Page {
	return report.NewPage(true)
}

// SummaryPage 运行流水线后的结果页
func (s *DisplayService) SummaryPage(ctx context.Context, topic string) report.Page {
	return s.uc.Page(ctx, topic)
}

func (s *DisplayService) CreateSummary(ctx context.Context, req *CreateSummaryReq) (*model.State, error) {
	return s.uc.Summarize(ctx, req.Topic)
}

func (s *DisplayService) ListRuns(ctx context.Context, req *ListRunsReq) (*ListRunsReply, error) {
	runs, err := s.uc.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	return &ListRunsReply{Runs: runs}, nil
}

func (s *DisplayService) GetRun(ctx context.Context, req *GetRunReq) (*model.State, error) {
	return s.uc.GetRun(ctx, req.Id)
}

// RegisterDisplayHTTPServer 注册 JSON 接口
func RegisterDisplayHTTPServer(s *http.Server, srv *DisplayService) {
	r := s.Route("/api/v1")
	r.POST("/summaries", createSummaryHandler(srv))
	r.GET("/runs", listRunsHandler(srv))
	r.GET("/runs/{id}", getRunHandler(srv))
}

func createSummaryHandler(srv *DisplayService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CreateSummaryReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationCreateSummary)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.CreateSummary(ctx, req.(*CreateSummaryReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*model.State))
	}
}

func listRunsHandler(srv *DisplayService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListRunsReq
		if v := ctx.Query().Get("limit"); v != "" {
			limit, err := strconv.Atoi(v)
			if err != nil {
				return errors.BadRequest("INVALID_LIMIT", "limit must be an integer")
			}
			in.Limit = limit
		}
		http.SetOperation(ctx, OperationListRuns)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListRuns(ctx, req.(*ListRunsReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*ListRunsReply))
	}
}

func getRunHandler(srv *DisplayService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		in := GetRunReq{Id: ctx.Vars().Get("id")}
		http.SetOperation(ctx, OperationGetRun)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetRun(ctx, req.(*GetRunReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*model.State))
	}
}
