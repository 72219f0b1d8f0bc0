package bonuserrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrBonusNotFound = apperror.New(
		apperror.CodeNotFound,
		"bonus not found",
		http.StatusNotFound,
	)
	ErrBonusNameTaken = apperror.New(
		apperror.CodeConflict,
		"a bonus with that name already exists",
		http.StatusConflict,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"bonus amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrUnknownTemporality = apperror.New(
		apperror.CodeInvalidState,
		"unrecognized bonus temporality",
		http.StatusBadRequest,
	)
	ErrBonusHasActiveAssignments = apperror.New(
		apperror.CodeInvalidState,
		"bonus has active assignments and cannot be deleted",
		http.StatusBadRequest,
	)
)
