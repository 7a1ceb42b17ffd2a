package handlers

import (
	"net/http"
	"time"

	al "antarctica_live"
	"antarctica_live/internal/logger"
	"antarctica_live/internal/metrics"
	"antarctica_live/internal/service"
	"antarctica_live/web"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dashboard carries what the browser page shows besides live data.
type Dashboard struct {
	Title     string
	SourceURL string
	Interval  time.Duration
	Capacity  int
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	metrics   *metrics.Metrics
	dashboard Dashboard
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMetrics records request metrics and serves /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithDashboard sets the page texts and the advertised tick interval.
func WithDashboard(d Dashboard) Option {
	return func(h *Handler) { h.dashboard = d }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		log:      log,
		dashboard: Dashboard{
			Title:     al.DefaultTitle,
			SourceURL: al.DefaultSourceURL,
			Interval:  al.DefaultUpdateInterval,
			Capacity:  al.DefaultDequeSize,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Browser dashboard and its live stream
	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", http.FS(web.Static()))
	router.GET("/", h.dashboardPage)
	router.GET("/ws", h.wsConnect)

	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerSessionRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerSessionRoutes(api *gin.RouterGroup) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.openSession)
		sessions.GET("", h.listSessions)

		one := sessions.Group("/:id", h.sessionIDMiddleware)
		one.GET("", h.getSession)
		one.DELETE("", h.closeSession)
		one.GET("/views", h.getViews)
		one.GET("/table", h.getTable)
		one.GET("/latest", h.getLatest)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}

// @Summary      Dashboard page
// @Tags         dashboard
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Handler) dashboardPage(c *gin.Context) {
	c.HTML(http.StatusOK, web.DashboardTemplate, web.Page{
		Title:       h.dashboard.Title,
		Heading:     "Exploring Antarctica data",
		Description: "Real-time temperature readings in Antarctica.",
		SourceURL:   h.dashboard.SourceURL,
		IntervalMs:  h.dashboard.Interval.Milliseconds(),
		Capacity:    h.dashboard.Capacity,
	})
}
