package machineryerrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrMachineNotFound = apperror.New(
		apperror.CodeNotFound,
		"machine not found",
		http.StatusNotFound,
	)
	ErrInvalidPatente = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vehicle plate",
		http.StatusBadRequest,
	)
	ErrPatenteTaken = apperror.New(
		apperror.CodeConflict,
		"a machine with this plate already exists",
		http.StatusConflict,
	)
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"rental report not found",
		http.StatusNotFound,
	)
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"client not found",
		http.StatusNotFound,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"hourly rate must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period, expected year and month",
		http.StatusBadRequest,
	)
)
