package employmentfile

import (
	"net/http"
	"path/filepath"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service    Service
	uploadRoot string
	logger     *zap.Logger
}

func NewHandler(service Service, uploadRoot string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employmentfile.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employmentfile.handler")
	}
	return &Handler{service: service, uploadRoot: uploadRoot, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employment file request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchEmploymentFilesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warn("http search employment files validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "invalid query parameters", err.Error())
		return
	}

	// Plain worker accounts only see their own file.
	if c.GetString("role") == "Usuario" {
		workerID := c.GetString("worker_id")
		if workerID == "" {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "account has no linked worker", nil)
			return
		}
		req.WorkerID = workerID
	}

	resp, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// MyFile returns the authenticated worker's own employment file.
func (h *Handler) MyFile(c *gin.Context) {
	workerID := c.GetString("worker_id")
	if workerID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "account has no linked worker", nil)
		return
	}

	resp, err := h.service.GetByWorker(c.Request.Context(), workerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByWorker(c *gin.Context) {
	// Plain worker accounts go through /employment-files/me.
	if c.GetString("role") == "Usuario" && c.GetString("worker_id") != c.Param("workerId") {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cannot read another worker's employment file", nil)
		return
	}

	resp, err := h.service.GetByWorker(c.Request.Context(), c.Param("workerId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmploymentFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employment file validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req, c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UploadContract(c *gin.Context) {
	fileHeader, err := c.FormFile("contract")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "contract file is required", err.Error())
		return
	}
	if ext := filepath.Ext(fileHeader.Filename); ext != ".pdf" {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "contract must be a PDF document", nil)
		return
	}

	storedFilename := uuid.NewString() + ".pdf"
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(h.uploadRoot, storedFilename)); err != nil {
		h.logger.Error("save contract upload failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "could not store the uploaded contract", nil)
		return
	}

	resp, err := h.service.AttachContract(c.Request.Context(), c.Param("id"), storedFilename, c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteContract(c *gin.Context) {
	if err := h.service.RemoveContract(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
