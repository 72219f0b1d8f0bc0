package workererrors

import (
	"net/http"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/apperror"
)

var (
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found",
		http.StatusNotFound,
	)
	ErrRutTaken = apperror.New(
		apperror.CodeConflict,
		"a worker or user with that RUT already exists",
		http.StatusConflict,
	)
	ErrInvalidRut = apperror.New(
		apperror.CodeInvalidInput,
		"RUT is not valid",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"personal email is not valid",
		http.StatusBadRequest,
	)
	ErrInvalidPhone = apperror.New(
		apperror.CodeInvalidInput,
		"phone number is not valid",
		http.StatusBadRequest,
	)
	ErrWorkerDisengaged = apperror.New(
		apperror.CodeInvalidState,
		"worker is disengaged",
		http.StatusBadRequest,
	)
	ErrWorkerStillActive = apperror.New(
		apperror.CodeInvalidState,
		"worker is still active in the system",
		http.StatusBadRequest,
	)
	ErrWorkerOnLeave = apperror.New(
		apperror.CodeInvalidState,
		"worker is on leave or administrative permit and cannot be disengaged",
		http.StatusBadRequest,
	)
	ErrNoContractStartDate = apperror.New(
		apperror.CodeInvalidState,
		"employment file has no contract start date",
		http.StatusBadRequest,
	)
	ErrNoLinkedUser = apperror.New(
		apperror.CodeInvalidState,
		"worker has no linked user account",
		http.StatusBadRequest,
	)
	ErrNoEmploymentFile = apperror.New(
		apperror.CodeInvalidState,
		"worker has no employment file",
		http.StatusBadRequest,
	)
	ErrDisengageReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a disengagement reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
