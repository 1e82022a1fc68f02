package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	analyticsdomain "github.com/smallbiznis/txnsight/internal/analytics/domain"
	"github.com/smallbiznis/txnsight/internal/config"
	ingestdomain "github.com/smallbiznis/txnsight/internal/ingest/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(HTTPMetrics())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	analyticsSvc analyticsdomain.Service
	ingestSvc    ingestdomain.Service
	reader       ingestdomain.Reader
}

type Params struct {
	fx.In

	Engine       *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	AnalyticsSvc analyticsdomain.Service
	IngestSvc    ingestdomain.Service
	Reader       ingestdomain.Reader
}

func NewServer(p Params) *Server {
	s := &Server{
		engine:       p.Engine,
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		analyticsSvc: p.AnalyticsSvc,
		ingestSvc:    p.IngestSvc,
		reader:       p.Reader,
	}
	s.RegisterAPIRoutes()
	return s
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")
	api.GET("/analytics/merchants", s.ListMerchantAnalytics)
	api.POST("/transactions/upload", s.UploadTransactions)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)
