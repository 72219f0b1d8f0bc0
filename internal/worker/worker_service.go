package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/events"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/history"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/identity"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/mailer"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/clock"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/contextutil"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/rut"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/user"
	workererrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ]{8,15}$`)

//go:generate mockgen -source=worker_service.go -destination=mock/worker_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterWorkerRequest, actorUserID string) (RegisterWorkerResult, error)
	GetAll(ctx context.Context, includeDisengaged bool) ([]WorkerResponse, error)
	GetByID(ctx context.Context, id string) (WorkerResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkerRequest, actorUserID string) (UpdateWorkerResult, error)
	Disengage(ctx context.Context, id string, req DisengageWorkerRequest, actorUserID string) (WorkerResponse, error)
	Reactivate(ctx context.Context, id string, req ReactivateWorkerRequest, actorUserID string) (ReactivateWorkerResult, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	users     user.Repository
	files     employmentfile.Repository
	history   history.Repository
	allocator *identity.Allocator
	mail      mailer.Mailer
	outbox    kafka.OutboxRepository
	loc       *time.Location
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	files employmentfile.Repository,
	historyRepo history.Repository,
	allocator *identity.Allocator,
	mail mailer.Mailer,
	outbox kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("worker.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worker.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		users:     users,
		files:     files,
		history:   historyRepo,
		allocator: allocator,
		mail:      mail,
		outbox:    outbox,
		loc:       loc,
		logger:    l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterWorkerRequest, actorUserID string) (RegisterWorkerResult, error) {
	rid := contextutil.GetRequestID(ctx)

	if !rut.IsValid(req.Rut) {
		return RegisterWorkerResult{}, workererrors.ErrInvalidRut
	}
	canonicalRut := rut.Format(req.Rut)

	if err := validateEmail(req.PersonalEmail); err != nil {
		return RegisterWorkerResult{}, err
	}
	if err := validatePhone(req.Phone); err != nil {
		return RegisterWorkerResult{}, err
	}
	if req.EmergencyContactPhone != "" {
		if err := validatePhone(req.EmergencyContactPhone); err != nil {
			return RegisterWorkerResult{}, err
		}
	}

	birthDate, err := parseOptionalDate(req.BirthDate, s.loc)
	if err != nil {
		return RegisterWorkerResult{}, err
	}

	hireDate := clock.Today(s.loc)
	if req.HireDate != "" {
		parsed, err := parseOptionalDate(req.HireDate, s.loc)
		if err != nil {
			return RegisterWorkerResult{}, err
		}
		hireDate = *parsed
	}

	if _, err := s.repo.FindByRut(ctx, canonicalRut); err == nil {
		return RegisterWorkerResult{}, workererrors.ErrRutTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RegisterWorkerResult{}, err
	}
	if _, err := s.users.FindByRut(ctx, canonicalRut); err == nil {
		return RegisterWorkerResult{}, workererrors.ErrRutTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RegisterWorkerResult{}, err
	}

	w := &Worker{
		ID:                    uuid.New(),
		Rut:                   canonicalRut,
		FirstNames:            normalizeText(req.FirstNames),
		PaternalSurname:       normalizeText(req.PaternalSurname),
		MaternalSurname:       normalizeText(req.MaternalSurname),
		BirthDate:             birthDate,
		PersonalEmail:         strings.ToLower(strings.TrimSpace(req.PersonalEmail)),
		Phone:                 strings.TrimSpace(req.Phone),
		EmergencyContactName:  normalizeText(req.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(req.EmergencyContactPhone),
		Address:               normalizeText(req.Address),
		HireDate:              hireDate,
		InSystem:              true,
	}

	password, err := identity.GeneratePassword()
	if err != nil {
		return RegisterWorkerResult{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterWorkerResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register worker begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RegisterWorkerResult{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, w); err != nil {
		s.logger.Error("register worker persist failed", zap.Error(err))
		return RegisterWorkerResult{}, mapRutConflict(err)
	}

	corporateEmail, err := s.allocator.Allocate(ctx, tx, w.ID, w.FirstNames, w.PaternalSurname)
	if err != nil {
		return RegisterWorkerResult{}, err
	}

	account := &user.User{
		ID:       uuid.New(),
		WorkerID: &w.ID,
		Name:     w.FullName(),
		Rut:      canonicalRut,
		Email:    corporateEmail,
		Password: string(hashed),
		Role:     user.RoleUsuario,
		Status:   user.AccountActive,
	}
	if err := s.users.WithTx(tx).Create(ctx, account); err != nil {
		s.logger.Error("register worker account persist failed", zap.Error(err))
		return RegisterWorkerResult{}, err
	}

	file := defaultEmploymentFile(w.ID)
	if err := s.files.WithTx(tx).Create(ctx, file); err != nil {
		s.logger.Error("register worker file persist failed", zap.Error(err))
		return RegisterWorkerResult{}, err
	}

	entry := employmentfile.SnapshotEntry(file, history.KindRegistration,
		"Registro inicial del trabajador", actorUserID, s.loc)
	if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
		s.logger.Error("register worker history persist failed", zap.Error(err))
		return RegisterWorkerResult{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.WorkerRegisteredEvent{
		EventType:  events.TypeWorkerRegistered,
		RequestID:  rid,
		WorkerID:   w.ID.String(),
		Rut:        canonicalRut,
		OccurredAt: time.Now().In(s.loc),
	}, w.ID.String()); err != nil {
		return RegisterWorkerResult{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register worker commit failed", zap.String("request_id", rid), zap.Error(err))
		return RegisterWorkerResult{}, err
	}

	result := RegisterWorkerResult{
		Worker:            mapToResponse(*w),
		CorporateEmail:    corporateEmail,
		TemporaryPassword: password,
	}

	// Credential delivery is best effort; the registration already committed.
	if err := s.mail.Send(ctx, w.PersonalEmail,
		"Credenciales de acceso S.G. Lamas",
		mailer.CredentialsBody(w.FullName(), corporateEmail, password),
	); err != nil {
		s.logger.Warn("register worker credential email failed",
			zap.String("worker_id", w.ID.String()),
			zap.Error(err),
		)
		result.Warnings = append(result.Warnings,
			"no se pudo enviar el correo con las credenciales: "+err.Error())
	}

	s.logger.Info("register worker success",
		zap.String("request_id", rid),
		zap.String("worker_id", w.ID.String()),
		zap.String("corporate_email", corporateEmail),
	)

	return result, nil
}

func (s *service) GetAll(ctx context.Context, includeDisengaged bool) ([]WorkerResponse, error) {
	workers, err := s.repo.FindAll(ctx, includeDisengaged)
	if err != nil {
		s.logger.Error("get all workers failed", zap.Error(err))
		return nil, err
	}

	resp := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		resp[i] = mapToResponse(w)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkerResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, workererrors.ErrWorkerNotFound
		}
		return WorkerResponse{}, err
	}
	return mapToResponse(*w), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkerRequest, actorUserID string) (UpdateWorkerResult, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UpdateWorkerResult{}, workererrors.ErrWorkerNotFound
		}
		return UpdateWorkerResult{}, err
	}

	account, err := s.users.FindByWorkerID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UpdateWorkerResult{}, workererrors.ErrNoLinkedUser
		}
		return UpdateWorkerResult{}, err
	}

	if req.PersonalEmail != nil {
		if err := validateEmail(*req.PersonalEmail); err != nil {
			return UpdateWorkerResult{}, err
		}
	}
	if req.Phone != nil {
		if err := validatePhone(*req.Phone); err != nil {
			return UpdateWorkerResult{}, err
		}
	}

	var diffs []string
	applyText := func(label string, dst *string, src *string) {
		if src == nil {
			return
		}
		v := normalizeText(*src)
		if v != *dst {
			diffs = append(diffs, fmt.Sprintf("%s: %q → %q", label, *dst, v))
			*dst = v
		}
	}

	oldFirst, oldPaternal := w.FirstNames, w.PaternalSurname

	applyText("nombres", &w.FirstNames, req.FirstNames)
	applyText("apellido paterno", &w.PaternalSurname, req.PaternalSurname)
	applyText("apellido materno", &w.MaternalSurname, req.MaternalSurname)
	applyText("dirección", &w.Address, req.Address)
	applyText("contacto de emergencia", &w.EmergencyContactName, req.EmergencyContactName)
	if req.PersonalEmail != nil {
		v := strings.ToLower(strings.TrimSpace(*req.PersonalEmail))
		if v != w.PersonalEmail {
			diffs = append(diffs, fmt.Sprintf("correo personal: %q → %q", w.PersonalEmail, v))
			w.PersonalEmail = v
		}
	}
	if req.Phone != nil {
		v := strings.TrimSpace(*req.Phone)
		if v != w.Phone {
			diffs = append(diffs, fmt.Sprintf("teléfono: %q → %q", w.Phone, v))
			w.Phone = v
		}
	}
	if req.EmergencyContactPhone != nil {
		v := strings.TrimSpace(*req.EmergencyContactPhone)
		if v != w.EmergencyContactPhone {
			diffs = append(diffs, fmt.Sprintf("teléfono de emergencia: %q → %q", w.EmergencyContactPhone, v))
			w.EmergencyContactPhone = v
		}
	}

	nameChanged := w.FirstNames != oldFirst || w.PaternalSurname != oldPaternal

	if len(diffs) == 0 {
		return UpdateWorkerResult{Worker: mapToResponse(*w)}, nil
	}

	var newPassword string
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpdateWorkerResult{}, err
	}
	defer tx.Rollback()

	emailChanged := false
	if nameChanged {
		// The corporate email always follows the current name. A new base
		// is allocated before any other write so the ledger sees the new
		// name first.
		newEmail, err := s.allocator.Allocate(ctx, tx, w.ID, w.FirstNames, w.PaternalSurname)
		if err != nil {
			return UpdateWorkerResult{}, err
		}
		if newEmail != account.Email {
			emailChanged = true
			diffs = append(diffs, fmt.Sprintf("correo corporativo: %q → %q", account.Email, newEmail))
			account.Email = newEmail

			newPassword, err = identity.GeneratePassword()
			if err != nil {
				return UpdateWorkerResult{}, err
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
			if err != nil {
				return UpdateWorkerResult{}, err
			}
			account.Password = string(hashed)
		}
		account.Name = w.FullName()
	}

	if err := s.repo.WithTx(tx).Update(ctx, w); err != nil {
		s.logger.Error("update worker persist failed", zap.Error(err))
		return UpdateWorkerResult{}, err
	}
	if nameChanged {
		if err := s.users.WithTx(tx).Update(ctx, account); err != nil {
			s.logger.Error("update worker account persist failed", zap.Error(err))
			return UpdateWorkerResult{}, err
		}
	}

	file, err := s.files.FindByWorkerID(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return UpdateWorkerResult{}, err
	}
	if file != nil {
		entry := employmentfile.SnapshotEntry(file, history.KindPersonalDataUpdate,
			strings.Join(diffs, "; "), actorUserID, s.loc)
		if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
			s.logger.Error("update worker history persist failed", zap.Error(err))
			return UpdateWorkerResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return UpdateWorkerResult{}, err
	}

	result := UpdateWorkerResult{
		Worker:       mapToResponse(*w),
		EmailChanged: emailChanged,
	}
	if emailChanged {
		result.CorporateEmail = account.Email
		if err := s.mail.Send(ctx, w.PersonalEmail,
			"Nuevas credenciales de acceso S.G. Lamas",
			mailer.CredentialsBody(w.FullName(), account.Email, newPassword),
		); err != nil {
			s.logger.Warn("update worker credential email failed",
				zap.String("worker_id", id),
				zap.Error(err),
			)
			result.Warnings = append(result.Warnings,
				"no se pudo enviar el correo con las nuevas credenciales: "+err.Error())
		}
	}

	s.logger.Info("update worker success",
		zap.String("worker_id", id),
		zap.Int("changed_fields", len(diffs)),
		zap.Bool("email_changed", emailChanged),
	)

	return result, nil
}

func (s *service) Disengage(ctx context.Context, id string, req DisengageWorkerRequest, actorUserID string) (WorkerResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return WorkerResponse{}, workererrors.ErrDisengageReasonRequired
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, workererrors.ErrWorkerNotFound
		}
		return WorkerResponse{}, err
	}
	if !w.InSystem {
		return WorkerResponse{}, workererrors.ErrWorkerDisengaged
	}

	file, err := s.files.FindByWorkerID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, workererrors.ErrNoEmploymentFile
		}
		return WorkerResponse{}, err
	}
	if file.Status.OnLeave() {
		return WorkerResponse{}, workererrors.ErrWorkerOnLeave
	}
	if file.ContractStartDate == nil {
		return WorkerResponse{}, workererrors.ErrNoContractStartDate
	}

	account, err := s.users.FindByWorkerID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, workererrors.ErrNoLinkedUser
		}
		return WorkerResponse{}, err
	}

	today := clock.Today(s.loc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	w.InSystem = false
	if err := s.repo.WithTx(tx).Update(ctx, w); err != nil {
		s.logger.Error("disengage worker persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	account.Status = user.AccountInactive
	if err := s.users.WithTx(tx).Update(ctx, account); err != nil {
		s.logger.Error("disengage worker account persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	file.Status = employmentfile.StatusDisengaged
	file.ContractEndDate = &today
	file.DisengagementReason = strings.TrimSpace(req.Reason)
	if err := s.files.WithTx(tx).Update(ctx, file); err != nil {
		s.logger.Error("disengage worker file persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	entry := employmentfile.SnapshotEntry(file, history.KindDisengagement,
		"Desvinculación: "+file.DisengagementReason, actorUserID, s.loc)
	if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
		s.logger.Error("disengage worker history persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.WorkerDisengagedEvent{
		EventType:  events.TypeWorkerDisengaged,
		RequestID:  contextutil.GetRequestID(ctx),
		WorkerID:   w.ID.String(),
		Reason:     file.DisengagementReason,
		OccurredAt: time.Now().In(s.loc),
	}, w.ID.String()); err != nil {
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	s.logger.Info("disengage worker success", zap.String("worker_id", id))
	return mapToResponse(*w), nil
}

func (s *service) Reactivate(ctx context.Context, id string, req ReactivateWorkerRequest, actorUserID string) (ReactivateWorkerResult, error) {
	if err := validateEmail(req.PersonalEmail); err != nil {
		return ReactivateWorkerResult{}, err
	}
	if req.Phone != "" {
		if err := validatePhone(req.Phone); err != nil {
			return ReactivateWorkerResult{}, err
		}
	}

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReactivateWorkerResult{}, workererrors.ErrWorkerNotFound
		}
		return ReactivateWorkerResult{}, err
	}
	if w.InSystem {
		return ReactivateWorkerResult{}, workererrors.ErrWorkerStillActive
	}

	account, err := s.users.FindByWorkerID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReactivateWorkerResult{}, workererrors.ErrNoLinkedUser
		}
		return ReactivateWorkerResult{}, err
	}

	file, err := s.files.FindByWorkerID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReactivateWorkerResult{}, workererrors.ErrNoEmploymentFile
		}
		return ReactivateWorkerResult{}, err
	}

	w.FirstNames = normalizeText(req.FirstNames)
	w.PaternalSurname = normalizeText(req.PaternalSurname)
	w.MaternalSurname = normalizeText(req.MaternalSurname)
	w.PersonalEmail = strings.ToLower(strings.TrimSpace(req.PersonalEmail))
	if req.Phone != "" {
		w.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Address != "" {
		w.Address = normalizeText(req.Address)
	}
	w.InSystem = true

	password, err := identity.GeneratePassword()
	if err != nil {
		return ReactivateWorkerResult{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ReactivateWorkerResult{}, err
	}

	today := clock.Today(s.loc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReactivateWorkerResult{}, err
	}
	defer tx.Rollback()

	// Always a fresh email derived from the new name; retired addresses
	// stay burned in the ledger.
	corporateEmail, err := s.allocator.Allocate(ctx, tx, w.ID, w.FirstNames, w.PaternalSurname)
	if err != nil {
		return ReactivateWorkerResult{}, err
	}

	if err := s.repo.WithTx(tx).Update(ctx, w); err != nil {
		s.logger.Error("reactivate worker persist failed", zap.Error(err))
		return ReactivateWorkerResult{}, err
	}

	account.Name = w.FullName()
	account.Email = corporateEmail
	account.Password = string(hashed)
	account.Role = user.RoleUsuario
	account.Status = user.AccountActive
	if err := s.users.WithTx(tx).Update(ctx, account); err != nil {
		s.logger.Error("reactivate worker account persist failed", zap.Error(err))
		return ReactivateWorkerResult{}, err
	}

	resetFileToPlaceholder(file, today)
	if err := s.files.WithTx(tx).Update(ctx, file); err != nil {
		s.logger.Error("reactivate worker file persist failed", zap.Error(err))
		return ReactivateWorkerResult{}, err
	}

	entry := employmentfile.SnapshotEntry(file, history.KindReactivation,
		"Reincorporación del trabajador", actorUserID, s.loc)
	if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
		s.logger.Error("reactivate worker history persist failed", zap.Error(err))
		return ReactivateWorkerResult{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.WorkerReactivatedEvent{
		EventType:  events.TypeWorkerReactivated,
		RequestID:  contextutil.GetRequestID(ctx),
		WorkerID:   w.ID.String(),
		OccurredAt: time.Now().In(s.loc),
	}, w.ID.String()); err != nil {
		return ReactivateWorkerResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ReactivateWorkerResult{}, err
	}

	result := ReactivateWorkerResult{
		Worker:            mapToResponse(*w),
		CorporateEmail:    corporateEmail,
		TemporaryPassword: password,
		CredentialsSent:   true,
	}
	if err := s.mail.Send(ctx, w.PersonalEmail,
		"Credenciales de acceso S.G. Lamas",
		mailer.CredentialsBody(w.FullName(), corporateEmail, password),
	); err != nil {
		s.logger.Warn("reactivate worker credential email failed",
			zap.String("worker_id", id),
			zap.Error(err),
		)
		result.CredentialsSent = false
	}

	s.logger.Info("reactivate worker success",
		zap.String("worker_id", id),
		zap.String("corporate_email", corporateEmail),
	)

	return result, nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, event any, workerID string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var eventType string
	switch e := event.(type) {
	case events.WorkerRegisteredEvent:
		eventType = e.EventType
	case events.WorkerDisengagedEvent:
		eventType = e.EventType
	case events.WorkerReactivatedEvent:
		eventType = e.EventType
	default:
		return fmt.Errorf("unsupported lifecycle event %T", event)
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "worker",
		AggregateID:   workerID,
		EventType:     eventType,
		Topic:         events.WorkerLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func defaultEmploymentFile(workerID uuid.UUID) *employmentfile.EmploymentFile {
	return &employmentfile.EmploymentFile{
		ID:            uuid.New(),
		WorkerID:      workerID,
		Position:      employmentfile.PlaceholderPosition,
		Department:    employmentfile.PlaceholderDepartment,
		ContractType:  employmentfile.ContractIndefinite,
		ScheduleType:  "Diurno",
		BaseSalary:    0,
		Afp:           "Modelo",
		HealthInsurer: "FONASA",
		Status:        employmentfile.StatusActive,
	}
}

// resetFileToPlaceholder returns the file to its freshly provisioned shape
// with a contract starting today.
func resetFileToPlaceholder(file *employmentfile.EmploymentFile, today time.Time) {
	file.Position = employmentfile.PlaceholderPosition
	file.Department = employmentfile.PlaceholderDepartment
	file.ContractType = employmentfile.ContractIndefinite
	file.ScheduleType = "Diurno"
	file.BaseSalary = 0
	file.Afp = "Modelo"
	file.HealthInsurer = "FONASA"
	file.UnemploymentInsurance = false
	file.ContractStartDate = &today
	file.ContractEndDate = nil
	file.DisengagementReason = ""
	file.Status = employmentfile.StatusActive
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return workererrors.ErrInvalidEmail
	}
	return nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(strings.TrimSpace(phone)) {
		return workererrors.ErrInvalidPhone
	}
	return nil
}

// normalizeText trims and collapses internal runs of whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func parseOptionalDate(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return nil, workererrors.ErrInvalidDateFormat
	}
	normalized := clock.AtMidday(parsed, loc)
	return &normalized, nil
}

func mapRutConflict(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return workererrors.ErrRutTaken
	}
	return err
}

func mapToResponse(w Worker) WorkerResponse {
	resp := WorkerResponse{
		ID:                    w.ID.String(),
		Rut:                   w.Rut,
		FirstNames:            w.FirstNames,
		PaternalSurname:       w.PaternalSurname,
		MaternalSurname:       w.MaternalSurname,
		PersonalEmail:         w.PersonalEmail,
		Phone:                 w.Phone,
		EmergencyContactName:  w.EmergencyContactName,
		EmergencyContactPhone: w.EmergencyContactPhone,
		Address:               w.Address,
		HireDate:              w.HireDate.Format("2006-01-02"),
		InSystem:              w.InSystem,
	}
	if w.BirthDate != nil {
		resp.BirthDate = w.BirthDate.Format("2006-01-02")
	}
	return resp
}
