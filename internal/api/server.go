package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/sellerops/commercedesk/internal/api/handlers"
	"github.com/sellerops/commercedesk/internal/config"
	"github.com/sellerops/commercedesk/internal/store"
	"github.com/sellerops/commercedesk/internal/tasks"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	store  *store.Store
	log    *logrus.Logger
}

func NewServer(cfg *config.Config, st *store.Store, log *logrus.Logger) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Upload.MaxBodySize, 10)))

	s := &Server{
		echo:   e,
		config: cfg,
		store:  st,
		log:    log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	policy := tasks.DefaultPolicy()
	policy.SetThreshold("CTR", s.config.Thresholds.CTRFloor)
	policy.SetThreshold("Conversion", s.config.Thresholds.ConversionFloor)
	policy.SetThreshold("Cancellation Rate", s.config.Thresholds.CancellationCeiling)
	policy.SetThreshold("Return Rate", s.config.Thresholds.ReturnCeiling)

	h := handlers.NewHandlers(s.config, s.store, tasks.NewAnalyzer(policy), s.log)

	api := s.echo.Group("/api")

	// Catalog
	api.POST("/catalog/upload", h.UploadCatalog)
	api.POST("/catalog/generate", h.GenerateListings)
	api.GET("/catalog/summary", h.GetCatalogSummary)
	api.GET("/catalog/:platform/listings", h.ListListings)
	api.GET("/catalog/:platform/export", h.ExportListings)

	// Performance metrics and tasks
	api.POST("/metrics/analyze", h.AnalyzeMetrics)
	api.GET("/tasks", h.ListTasks)
	api.PATCH("/tasks/:id", h.UpdateTaskStatus)

	// Conversation
	api.GET("/conversation", h.GetConversation)
	api.POST("/conversation/messages", h.PostMessage)
}

func (s *Server) Start(ctx context.Context) error {
	addr := ":" + s.config.Server.Port
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
