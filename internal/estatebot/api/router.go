// Package api exposes the dialogue engine over HTTP and websocket for
// web-widget clients, alongside health and monitoring endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/dialogue"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/leads"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/monitoring"
)

// Router wires the gin engine with its dependencies.
type Router struct {
	engine  *gin.Engine
	config  *config.Config
	logger  *logx.Logger
	bot     *dialogue.Engine
	leads   leads.Store
	metrics *monitoring.Metrics
}

func NewRouter(cfg *config.Config, logger *logx.Logger, bot *dialogue.Engine, leadStore leads.Store, metrics *monitoring.Metrics) *Router {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(CORSMiddleware(cfg.API.CORSOrigins))

	r := &Router{
		engine:  engine,
		config:  cfg,
		logger:  logger,
		bot:     bot,
		leads:   leadStore,
		metrics: metrics,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.handleHealth)
	r.engine.GET("/ping", r.handlePing)

	monitorGroup := r.engine.Group("/monitor")
	{
		monitorGroup.GET("/metrics", r.handleMetrics)
	}

	v1 := r.engine.Group("/api/v1")
	{
		v1.POST("/messages", r.handleMessage)
		v1.POST("/sessions/:user_id/reset", r.handleSessionReset)
		v1.GET("/leads", r.handleListLeads)
	}

	r.engine.GET("/ws/chat", r.handleChatSocket)
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func (r *Router) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", r.config.API.Host, r.config.API.Port),
		Handler: r.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler exposes the underlying handler for tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}
