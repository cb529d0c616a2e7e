package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gigboard/internal/app"
	"gigboard/internal/transport/http/middleware"
	"gigboard/internal/transport/http/response"
)

type ActivityHandler struct {
	auditService *app.AuditService
}

func NewActivityHandler(auditService *app.AuditService) *ActivityHandler {
	return &ActivityHandler{auditService: auditService}
}

// Recent returns the caller's own recent post mutations.
func (h *ActivityHandler) Recent(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.auditService.RecentActivity(identity.UserID, limit)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list activity failed")
		}
		return
	}

	response.OK(c, entries)
}
