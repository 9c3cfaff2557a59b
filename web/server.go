package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/newsnow/config"
	"github.com/pevans/newsnow/headlines"
	"github.com/pevans/newsnow/render"
	"github.com/rs/zerolog"
)

// Server exposes the headlines page and the UI events over HTTP.
type Server struct {
	controller *headlines.Controller
	view       *render.View
	configAPI  *config.ConfigAPIServer
	logger     zerolog.Logger
}

// NewServer creates a server driving controller and reading from view, which
// must be the controller's renderer.
func NewServer(controller *headlines.Controller, view *render.View, cfg config.Config, logger zerolog.Logger) *Server {
	return &Server{
		controller: controller,
		view:       view,
		configAPI:  config.NewConfigAPIServer(cfg),
		logger:     logger,
	}
}

// SetupRouter configures the Gin router with the page and API routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(corsMiddleware())

	router.GET("/", s.HandlePage)

	api := router.Group("/api/v1")
	api.GET("/headlines", s.HandleGetHeadlines)
	api.GET("/catalog", s.HandleGetCatalog)
	api.PUT("/query/country", s.HandleSetCountry)
	api.PUT("/query/category", s.HandleSetCategory)
	api.PUT("/query/search", s.HandleSetSearch)
	api.PUT("/query/page", s.HandleSetPage)
	api.POST("/refresh", s.HandleRefresh)
	api.PUT("/auto-refresh", s.HandleSetAutoRefresh)
	s.configAPI.Register(api)

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("starting NewsNow server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down NewsNow server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// corsMiddleware adds CORS headers to responses.
func corsMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}

		ctx.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		s.logger.Debug().
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
