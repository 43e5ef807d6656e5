package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"weather-lookup/models"
	"weather-lookup/weathercode"
)

// Lookuper синхронный поиск погоды
type Lookuper interface {
	Lookup(ctx context.Context, query models.SearchQuery) models.LookupResult
}

type Handler struct {
	lookup Lookuper
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(lookup Lookuper, logger *slog.Logger) *Handler {
	return &Handler{
		lookup: lookup,
		logger: logger.With("component", "api.handler"),
		now:    time.Now,
	}
}

// NewServer собирает gin роутер и HTTP сервер
func NewServer(addr string, handler *Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(h.logger),
		errorHandler(h.logger),
	)

	api := router.Group("/api")
	{
		api.GET("/weather", h.Weather)
		api.GET("/codes", h.Codes)
		api.GET("/health", h.Health)
	}
	return router
}

// Weather GET /api/weather?city=Paris
func (h *Handler) Weather(c *gin.Context) {
	query, err := models.NewSearchQuery(c.Query("city"))
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	result := h.lookup.Lookup(c.Request.Context(), query)
	if err := result.Err(); err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.JSON(http.StatusOK, newWeatherResponse(result))
}

// Codes GET /api/codes
func (h *Handler) Codes(c *gin.Context) {
	codes := weathercode.Codes()
	out := make([]CodeResponse, 0, len(codes))
	for _, code := range codes {
		out = append(out, CodeResponse{Code: code, Description: weathercode.Describe(code)})
	}
	c.JSON(http.StatusOK, out)
}

// Health GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().Format(time.RFC3339),
	})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", time.Since(start).Milliseconds())
	}
}

func errorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", "code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "error", httpErr.Err)
		} else {
			logger.Warn("request failed", "code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "error", httpErr.Err)
		}

		c.JSON(httpErr.Status, models.ErrorResponse{
			Error: httpErr.Message,
			Code:  httpErr.Code,
		})
	}
}
