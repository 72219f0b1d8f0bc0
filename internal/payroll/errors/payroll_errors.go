package payrollerrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrFileNotFound = apperror.New(
		apperror.CodeNotFound,
		"employment file not found",
		http.StatusNotFound,
	)
	ErrFileDisengaged = apperror.New(
		apperror.CodeInvalidState,
		"cannot compute salary for a disengaged worker",
		http.StatusConflict,
	)
	ErrNoContractData = apperror.New(
		apperror.CodeInvalidState,
		"employment file has no base salary yet",
		http.StatusConflict,
	)
	ErrUnknownAfp = apperror.New(
		apperror.CodeInvalidState,
		"unknown AFP provider on the employment file",
		http.StatusConflict,
	)
	ErrUnknownHealthInsurer = apperror.New(
		apperror.CodeInvalidState,
		"unknown health insurer on the employment file",
		http.StatusConflict,
	)
)
