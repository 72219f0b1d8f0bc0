package employmentfile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	employmentfileerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/events"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/history"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/clock"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContractStorage is the slice of the file-storage collaborator this service
// needs. Paths and filenames stay opaque.
type ContractStorage interface {
	ResolveContractPath(storedFilename string) string
	Exists(path string) bool
	Delete(path string) bool
}

//go:generate mockgen -source=employmentfile_service.go -destination=mock/employmentfile_service_mock.go -package=mock
type Service interface {
	Search(ctx context.Context, req SearchEmploymentFilesRequest) ([]EmploymentFileResponse, error)
	GetByWorker(ctx context.Context, workerID string) (EmploymentFileResponse, error)
	Update(ctx context.Context, id string, req UpdateEmploymentFileRequest, actorUserID string) (EmploymentFileResponse, error)
	AttachContract(ctx context.Context, id, storedFilename, actorUserID string) (EmploymentFileResponse, error)
	RemoveContract(ctx context.Context, id, actorUserID string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	history history.Repository
	outbox  kafka.OutboxRepository
	storage ContractStorage
	loc     *time.Location
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	historyRepo history.Repository,
	outbox kafka.OutboxRepository,
	storage ContractStorage,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employmentfile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employmentfile.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		history: historyRepo,
		outbox:  outbox,
		storage: storage,
		loc:     loc,
		logger:  l,
	}
}

func (s *service) Search(ctx context.Context, req SearchEmploymentFilesRequest) ([]EmploymentFileResponse, error) {
	opts, err := s.buildSearchOptions(req)
	if err != nil {
		return nil, err
	}

	files, err := s.repo.Search(ctx, opts)
	if err != nil {
		s.logger.Error("search employment files failed", zap.Error(err))
		return nil, err
	}

	// No matches is a valid, empty result, never an error.
	return mapToListResponse(files), nil
}

func (s *service) GetByWorker(ctx context.Context, workerID string) (EmploymentFileResponse, error) {
	file, err := s.repo.FindByWorkerID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmploymentFileResponse{}, employmentfileerrors.ErrFileNotFound
		}
		return EmploymentFileResponse{}, err
	}
	return mapToResponse(*file), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmploymentFileRequest, actorUserID string) (EmploymentFileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employment file requested",
		zap.String("request_id", rid),
		zap.String("file_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employment file begin tx failed", zap.Error(err))
		return EmploymentFileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmploymentFileResponse{}, employmentfileerrors.ErrFileNotFound
		}
		s.logger.Error("update employment file fetch failed", zap.Error(err))
		return EmploymentFileResponse{}, err
	}

	if file.Status == StatusDisengaged && touchesLaborFields(req) {
		return EmploymentFileResponse{}, employmentfileerrors.ErrFileDisengaged
	}

	if err := s.applyUpdate(file, req); err != nil {
		s.logger.Warn("update employment file validation failed",
			zap.String("file_id", id),
			zap.Error(err),
		)
		return EmploymentFileResponse{}, err
	}

	if err := qtx.Update(ctx, file); err != nil {
		s.logger.Error("update employment file persist failed", zap.Error(err))
		return EmploymentFileResponse{}, err
	}

	entry := SnapshotEntry(file, history.KindFileUpdate, req.Observations, actorUserID, s.loc)
	if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
		s.logger.Error("update employment file history persist failed", zap.Error(err))
		return EmploymentFileResponse{}, err
	}

	if touchesPayFields(req) {
		if err := s.enqueueRecalculation(ctx, tx, file.ID.String(), "employment file updated"); err != nil {
			s.logger.Error("update employment file enqueue recalculation failed", zap.Error(err))
			return EmploymentFileResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employment file commit failed", zap.Error(err))
		return EmploymentFileResponse{}, err
	}
	s.logger.Info("update employment file success",
		zap.String("request_id", rid),
		zap.String("file_id", id),
	)

	return mapToResponse(*file), nil
}

func (s *service) AttachContract(ctx context.Context, id, storedFilename, actorUserID string) (EmploymentFileResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmploymentFileResponse{}, err
	}
	defer tx.Rollback()

	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.discardUpload(storedFilename)
			return EmploymentFileResponse{}, employmentfileerrors.ErrFileNotFound
		}
		s.discardUpload(storedFilename)
		return EmploymentFileResponse{}, err
	}

	previous := file.ContractDocument
	file.ContractDocument = storedFilename

	if err := s.repo.WithTx(tx).Update(ctx, file); err != nil {
		// Never leave an orphaned upload behind a failed update.
		s.discardUpload(storedFilename)
		s.logger.Error("attach contract persist failed", zap.Error(err))
		return EmploymentFileResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.discardUpload(storedFilename)
		return EmploymentFileResponse{}, err
	}

	if previous != "" && previous != storedFilename {
		s.discardUpload(previous)
	}

	s.logger.Info("contract document attached",
		zap.String("file_id", id),
		zap.String("actor_user_id", actorUserID),
	)
	return mapToResponse(*file), nil
}

func (s *service) RemoveContract(ctx context.Context, id, actorUserID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employmentfileerrors.ErrFileNotFound
		}
		return err
	}
	if file.ContractDocument == "" {
		return employmentfileerrors.ErrContractDocumentMissing
	}

	stored := file.ContractDocument
	file.ContractDocument = ""

	if err := s.repo.WithTx(tx).Update(ctx, file); err != nil {
		s.logger.Error("remove contract persist failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.discardUpload(stored)
	s.logger.Info("contract document removed",
		zap.String("file_id", id),
		zap.String("actor_user_id", actorUserID),
	)
	return nil
}

func (s *service) discardUpload(storedFilename string) {
	if storedFilename == "" {
		return
	}
	path := s.storage.ResolveContractPath(storedFilename)
	if s.storage.Exists(path) && !s.storage.Delete(path) {
		s.logger.Warn("discard contract upload failed", zap.String("path", path))
	}
}

// touchesLaborFields reports whether the request modifies any field that is
// frozen while the file is DISENGAGED.
func touchesLaborFields(req UpdateEmploymentFileRequest) bool {
	return req.Position != nil ||
		req.Department != nil ||
		req.ContractType != nil ||
		req.ScheduleType != nil ||
		req.BaseSalary != nil ||
		req.Afp != nil ||
		req.HealthInsurer != nil ||
		req.UnemploymentInsurance != nil
}

// touchesPayFields reports whether the request modifies any input of the
// salary calculation, which makes the cached payroll for this file stale.
func touchesPayFields(req UpdateEmploymentFileRequest) bool {
	return req.BaseSalary != nil ||
		req.Afp != nil ||
		req.HealthInsurer != nil ||
		req.UnemploymentInsurance != nil
}

func (s *service) enqueueRecalculation(ctx context.Context, tx *sql.Tx, fileID, reason string) error {
	event := events.PayrollRecalculationEvent{
		EventType:        events.TypePayrollRecalculation,
		RequestID:        contextutil.GetRequestID(ctx),
		EmploymentFileID: fileID,
		Reason:           reason,
		OccurredAt:       time.Now().In(s.loc),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "employment_file",
		AggregateID:   fileID,
		EventType:     events.TypePayrollRecalculation,
		Topic:         events.PayrollRecalculationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) applyUpdate(file *EmploymentFile, req UpdateEmploymentFileRequest) error {
	if req.BaseSalary != nil {
		if *req.BaseSalary <= 0 {
			return employmentfileerrors.ErrInvalidSalary
		}
		file.BaseSalary = *req.BaseSalary
	}
	if req.ContractType != nil {
		if !validContractType(*req.ContractType) {
			return employmentfileerrors.ErrInvalidContractType
		}
		file.ContractType = *req.ContractType
	}
	if req.ScheduleType != nil {
		if !validScheduleType(*req.ScheduleType) {
			return employmentfileerrors.ErrInvalidScheduleType
		}
		file.ScheduleType = *req.ScheduleType
	}
	if req.Afp != nil {
		if !validAfp(*req.Afp) {
			return employmentfileerrors.ErrInvalidAfp
		}
		file.Afp = *req.Afp
	}
	if req.HealthInsurer != nil {
		if !validHealthInsurer(*req.HealthInsurer) {
			return employmentfileerrors.ErrInvalidHealthInsurer
		}
		file.HealthInsurer = *req.HealthInsurer
	}
	if req.UnemploymentInsurance != nil {
		file.UnemploymentInsurance = *req.UnemploymentInsurance
	}
	if req.Position != nil {
		file.Position = strings.TrimSpace(*req.Position)
	}
	if req.Department != nil {
		file.Department = strings.TrimSpace(*req.Department)
	}
	if req.ContractStartDate != nil {
		start, err := s.parseDate(*req.ContractStartDate)
		if err != nil {
			return err
		}
		// Immutable once set; only a file without a start date accepts one.
		if file.ContractStartDate != nil && !clock.SameDay(*file.ContractStartDate, start, s.loc) {
			return employmentfileerrors.ErrStartDateImmutable
		}
		file.ContractStartDate = &start
	}
	if req.ContractEndDate != nil {
		end, err := s.parseDate(*req.ContractEndDate)
		if err != nil {
			return err
		}
		if file.ContractStartDate == nil {
			return employmentfileerrors.ErrEndWithoutStart
		}
		if !end.After(clock.AtMidday(*file.ContractStartDate, s.loc)) {
			return employmentfileerrors.ErrEndBeforeStart
		}
		file.ContractEndDate = &end
	}
	return nil
}

func (s *service) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, employmentfileerrors.ErrInvalidDateFormat
	}
	return clock.AtMidday(t, s.loc), nil
}

func (s *service) buildSearchOptions(req SearchEmploymentFilesRequest) (SearchOptions, error) {
	opts := SearchOptions{
		Rut:                   req.Rut,
		Position:              req.Position,
		Department:            req.Department,
		ContractType:          req.ContractType,
		ScheduleType:          req.ScheduleType,
		SalaryMin:             req.SalaryMin,
		SalaryMax:             req.SalaryMax,
		UnemploymentInsurance: req.UnemploymentInsurance,
		IncludeOpenEnded:      req.IncludeOpenEnded,
	}

	if req.WorkerID != "" {
		id, err := uuid.Parse(req.WorkerID)
		if err != nil {
			return SearchOptions{}, employmentfileerrors.ErrInvalidWorkerID
		}
		opts.WorkerID = &id
	}

	statusValues := req.Statuses
	if req.Status != "" {
		statusValues = append(statusValues, req.Status)
	}
	for _, v := range statusValues {
		status, ok := ParseStatus(strings.ToUpper(strings.TrimSpace(v)))
		if !ok {
			return SearchOptions{}, employmentfileerrors.ErrInvalidStatus
		}
		opts.Statuses = append(opts.Statuses, status)
	}

	var err error
	if opts.StartFrom, err = s.parseOptionalDate(req.StartFrom); err != nil {
		return SearchOptions{}, err
	}
	if opts.StartTo, err = s.parseOptionalDate(req.StartTo); err != nil {
		return SearchOptions{}, err
	}
	if opts.EndFrom, err = s.parseOptionalDate(req.EndFrom); err != nil {
		return SearchOptions{}, err
	}
	if opts.EndTo, err = s.parseOptionalDate(req.EndTo); err != nil {
		return SearchOptions{}, err
	}

	return opts, nil
}

func (s *service) parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := s.parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SnapshotEntry builds a history entry from the file's current state, with
// every date normalized to local midday before storage.
func SnapshotEntry(file *EmploymentFile, kind, observations, actorUserID string, loc *time.Location) *history.Entry {
	entry := &history.Entry{
		ID:                    uuid.New(),
		WorkerID:              file.WorkerID,
		Kind:                  kind,
		Observations:          observations,
		Position:              file.Position,
		Department:            file.Department,
		ContractType:          file.ContractType,
		ScheduleType:          file.ScheduleType,
		BaseSalary:            file.BaseSalary,
		Afp:                   file.Afp,
		HealthInsurer:         file.HealthInsurer,
		UnemploymentInsurance: file.UnemploymentInsurance,
		FileStatus:            string(file.Status),
	}
	if file.ContractStartDate != nil {
		d := clock.AtMidday(*file.ContractStartDate, loc)
		entry.ContractStartDate = &d
	}
	if file.ContractEndDate != nil {
		d := clock.AtMidday(*file.ContractEndDate, loc)
		entry.ContractEndDate = &d
	}
	if actorUserID != "" {
		if id, err := uuid.Parse(actorUserID); err == nil {
			entry.ActorUserID = &id
		}
	}
	return entry
}

func mapToResponse(file EmploymentFile) EmploymentFileResponse {
	resp := EmploymentFileResponse{
		ID:                    file.ID.String(),
		WorkerID:              file.WorkerID.String(),
		Position:              file.Position,
		Department:            file.Department,
		ContractType:          file.ContractType,
		ScheduleType:          file.ScheduleType,
		BaseSalary:            file.BaseSalary,
		Afp:                   file.Afp,
		HealthInsurer:         file.HealthInsurer,
		UnemploymentInsurance: file.UnemploymentInsurance,
		ContractDocument:      file.ContractDocument,
		Status:                string(file.Status),
		DisengagementReason:   file.DisengagementReason,
	}
	if file.ContractStartDate != nil {
		v := file.ContractStartDate.Format("2006-01-02")
		resp.ContractStartDate = &v
	}
	if file.ContractEndDate != nil {
		v := file.ContractEndDate.Format("2006-01-02")
		resp.ContractEndDate = &v
	}
	return resp
}

func mapToListResponse(files []EmploymentFile) []EmploymentFileResponse {
	resp := make([]EmploymentFileResponse, len(files))
	for i, f := range files {
		resp[i] = mapToResponse(f)
	}
	return resp
}
