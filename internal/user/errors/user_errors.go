package usererrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrRoleNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"role is not in the assignable whitelist",
		http.StatusBadRequest,
	)
	ErrCannotEditSuperAdmin = apperror.New(
		apperror.CodeForbidden,
		"the seeded administrator account cannot be modified",
		http.StatusForbidden,
	)
	ErrAccountInactive = apperror.New(
		apperror.CodeInvalidState,
		"account is inactive",
		http.StatusForbidden,
	)
)
