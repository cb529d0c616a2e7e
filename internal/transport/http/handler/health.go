package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gigboard/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK        bool   `json:"ok"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Message   string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := gin.H{
		"mysql":    h.checkMySQL(ctx),
		"redis":    h.checkRedis(ctx),
		"rabbitmq": h.checkRabbitMQ(),
	}

	status := "ok"
	statusCode := http.StatusOK
	for _, v := range deps {
		if !v.(dependencyStatus).OK {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(statusCode, gin.H{
		"app":            h.app.Config.App.Name,
		"env":            h.app.Config.App.Env,
		"status":         status,
		"uptime_seconds": int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies":   deps,
	})
}

func (h *HealthHandler) checkMySQL(ctx context.Context) dependencyStatus {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return dependencyStatus{Message: err.Error()}
	}
	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		return dependencyStatus{Message: err.Error()}
	}
	return dependencyStatus{OK: true, LatencyMS: time.Since(start).Milliseconds()}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	start := time.Now()
	if err := h.app.Redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{Message: err.Error()}
	}
	return dependencyStatus{OK: true, LatencyMS: time.Since(start).Milliseconds()}
}

func (h *HealthHandler) checkRabbitMQ() dependencyStatus {
	if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
		return dependencyStatus{Message: "connection closed"}
	}

	ch, err := h.app.MQConn.Channel()
	if err != nil {
		return dependencyStatus{Message: err.Error()}
	}
	defer ch.Close()

	// passive declare reports the backlog without creating the queue
	q, err := ch.QueueDeclarePassive(h.app.Config.RabbitMQ.AuditQueue, true, false, false, false, nil)
	if err != nil {
		// queue not declared yet means no audit traffic, broker is still fine
		return dependencyStatus{OK: true}
	}

	status := dependencyStatus{OK: true}
	if q.Messages > 0 {
		status.Message = "audit backlog present"
	}
	return status
}
