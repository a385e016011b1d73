package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/long_story_short/app/display/internal/data"
	"github.com/iWorld-y/long_story_short/app/display/internal/service"
	"github.com/iWorld-y/long_story_short/app/display/internal/usecase"
	"github.com/iWorld-y/long_story_short/app/long_story_short/pkg/engine"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewPipelineEngine,

	// Data providers
	data.NewData,
	data.NewRunRepo,

	// UseCase providers
	usecase.NewSummaryUseCase,
	wire.Bind(new(usecase.Runner), new(*engine.Engine)),

	// Service providers
	service.NewDisplayService,
)
