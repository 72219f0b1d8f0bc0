package clienterrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"client not found",
		http.StatusNotFound,
	)
	ErrInvalidRut = apperror.New(
		apperror.CodeInvalidInput,
		"invalid RUT",
		http.StatusBadRequest,
	)
	ErrRutTaken = apperror.New(
		apperror.CodeConflict,
		"a client with this RUT already exists",
		http.StatusConflict,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"invalid email address",
		http.StatusBadRequest,
	)
)
