package payroll

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetForFile(c *gin.Context) {
	// Plain worker accounts go through /payrolls/me.
	if c.GetString("role") == "Usuario" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "cannot read another worker's payroll", nil)
		return
	}

	resp, err := h.service.GetForFile(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetMine serves the calculation for the caller's own employment file.
func (h *Handler) GetMine(c *gin.Context) {
	workerID := c.GetString("worker_id")
	if workerID == "" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "account is not linked to a worker", nil)
		return
	}

	resp, err := h.service.GetForWorker(c.Request.Context(), workerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
