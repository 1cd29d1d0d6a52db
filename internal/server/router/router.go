package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sitestock/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. A nil metrics
// handler leaves /metrics unregistered.
func New(inv *handlers.InventoryHandler, msg *handlers.MessageHandler, metrics http.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}
	r.POST("/send-message", msg.SendMessage)

	api := r.Group("/api")
	api.GET("/equipment/summary", inv.EquipmentSummary)
	api.GET("/materials/summary", inv.MaterialSummary)
	api.GET("/notifications", inv.Notifications)
	api.POST("/materials/:id/order", inv.MarkOrderSent)
	api.GET("/export/:file", inv.Export)

	if logger != nil {
		logger.Info("router initialized", zap.Bool("metrics", metrics != nil))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Request.URL.Path == "/metrics" || c.Request.URL.Path == "/healthz" {
			logger.Debug("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
