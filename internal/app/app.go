package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/handlers"
	"github.com/lumilearn/lumilearn-backend/internal/middleware"
	"github.com/lumilearn/lumilearn-backend/internal/observability"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/repos"
	"github.com/lumilearn/lumilearn-backend/internal/server"
	"github.com/lumilearn/lumilearn-backend/internal/services"
	"github.com/lumilearn/lumilearn-backend/internal/storage"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

type Repos struct {
	Goal       repos.GoalRepo
	Path       repos.PathRepo
	CourseUnit repos.CourseUnitRepo
}

type Services struct {
	Activation services.ActivationService
	Stats      services.StatsService
}

type App struct {
	Log          *logger.Logger
	Cfg          Config
	Adapter      storage.Adapter
	Store        *store.CoreStore
	Repos        Repos
	Services     Services
	Router       *gin.Engine
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	adapter, err := storage.ResolveAdapter(log, cfg.Storage)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	coreStore := store.NewCoreStore(adapter, log)

	reposet := Repos{
		Goal:       repos.NewGoalRepo(coreStore, log),
		Path:       repos.NewPathRepo(coreStore, log),
		CourseUnit: repos.NewCourseUnitRepo(coreStore, log),
	}

	serviceset := Services{
		Activation: services.NewActivationService(coreStore, reposet.Goal, reposet.Path, log),
		Stats:      services.NewStatsService(coreStore, log),
	}

	profileMiddleware := middleware.NewProfileMiddleware(log, coreStore)

	router := server.NewRouter(server.RouterConfig{
		ServiceName:       cfg.ServiceName,
		AllowOrigins:      cfg.AllowOrigins,
		ProfileMiddleware: profileMiddleware,
		GoalHandler:       handlers.NewGoalHandler(reposet.Goal, serviceset.Activation),
		PathHandler:       handlers.NewPathHandler(reposet.Path, serviceset.Activation),
		CourseUnitHandler: handlers.NewCourseUnitHandler(reposet.CourseUnit),
		StatsHandler:      handlers.NewStatsHandler(serviceset.Stats),
		EventHandler:      handlers.NewEventHandler(coreStore),
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Adapter:      adapter,
		Store:        coreStore,
		Repos:        reposet,
		Services:     serviceset,
		Router:       router,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
