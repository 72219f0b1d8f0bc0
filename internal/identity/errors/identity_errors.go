package identityerrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrEmailConflict = apperror.New(
		apperror.CodeConflict,
		"corporate email was already issued",
		http.StatusConflict,
	)
	ErrEmptyNameParts = apperror.New(
		apperror.CodeInvalidInput,
		"name has no usable letters for a corporate email",
		http.StatusBadRequest,
	)
)
