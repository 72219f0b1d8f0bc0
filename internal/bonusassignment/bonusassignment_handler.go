package bonusassignment

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
	l := zap.L().Named("bonusassignment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bonusassignment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("bonus assignment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Assign(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http assign bonus validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "invalid input", err.Error())
		return
	}

	resp, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update assignment validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ListByFile serves assignments for one employment file. Non-HR callers only
// see active rows; HR and administrators also get the deactivated history.
func (h *Handler) ListByFile(c *gin.Context) {
	role := c.GetString("role")

	// Plain worker accounts go through /bonus-assignments/me.
	if role == "Usuario" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cannot read another worker's bonus assignments", nil)
		return
	}

	activeOnly := role != "RecursosHumanos" && role != "Administrador" && role != "SuperAdministrador"

	resp, err := h.service.ListByFile(c.Request.Context(), c.Param("fileId"), activeOnly)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ListMine serves the caller's own active assignments, resolved through the
// worker linked to the authenticated account.
func (h *Handler) ListMine(c *gin.Context) {
	workerID := c.GetString("worker_id")
	if workerID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "account has no linked worker", nil)
		return
	}

	resp, err := h.service.ListForWorker(c.Request.Context(), workerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
