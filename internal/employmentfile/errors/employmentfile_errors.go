package employmentfileerrors

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
		"labor fields of a disengaged employment file cannot be modified",
		http.StatusBadRequest,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"base salary must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidContractType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid contract type",
		http.StatusBadRequest,
	)
	ErrInvalidScheduleType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid schedule type",
		http.StatusBadRequest,
	)
	ErrInvalidAfp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid AFP provider",
		http.StatusBadRequest,
	)
	ErrInvalidHealthInsurer = apperror.New(
		apperror.CodeInvalidInput,
		"invalid health insurer",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employment file status",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"contract end date must be after the contract start date",
		http.StatusBadRequest,
	)
	ErrEndWithoutStart = apperror.New(
		apperror.CodeInvalidState,
		"contract end date requires an existing contract start date",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker id",
		http.StatusBadRequest,
	)
	ErrStartDateImmutable = apperror.New(
		apperror.CodeInvalidState,
		"contract start date cannot be changed once set",
		http.StatusBadRequest,
	)
	ErrContractDocumentMissing = apperror.New(
		apperror.CodeNotFound,
		"employment file has no contract document",
		http.StatusNotFound,
	)
)
