package bonusassignmenterrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"bonus assignment not found",
		http.StatusNotFound,
	)
	ErrAssignmentInactive = apperror.New(
		apperror.CodeInvalidState,
		"inactive bonus assignments cannot be edited",
		http.StatusBadRequest,
	)
	ErrDuplicateActiveAssignment = apperror.New(
		apperror.CodeConflict,
		"the employment file already has an active assignment for this bonus",
		http.StatusConflict,
	)
	ErrInvalidFileID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employment file id",
		http.StatusBadRequest,
	)
	ErrInvalidBonusID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid bonus id",
		http.StatusBadRequest,
	)
)
