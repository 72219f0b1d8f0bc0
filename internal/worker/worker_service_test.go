package worker

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/history"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/identity"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/user"
	workererrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/worker/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeWorkerRepo struct {
	byID    map[string]*Worker
	byRut   map[string]*Worker
	created []Worker
	updated []Worker
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{
		byID:  make(map[string]*Worker),
		byRut: make(map[string]*Worker),
	}
}

func (f *fakeWorkerRepo) add(w *Worker) {
	f.byID[w.ID.String()] = w
	f.byRut[w.Rut] = w
}

func (f *fakeWorkerRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeWorkerRepo) Create(ctx context.Context, w *Worker) error {
	f.created = append(f.created, *w)
	f.add(w)
	return nil
}

func (f *fakeWorkerRepo) FindByID(ctx context.Context, id string) (*Worker, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWorkerRepo) FindByRut(ctx context.Context, rut string) (*Worker, error) {
	w, ok := f.byRut[rut]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWorkerRepo) FindAll(ctx context.Context, includeDisengaged bool) ([]Worker, error) {
	var out []Worker
	for _, w := range f.byID {
		if !includeDisengaged && !w.InSystem {
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w *Worker) error {
	f.updated = append(f.updated, *w)
	cp := *w
	f.byID[w.ID.String()] = &cp
	f.byRut[w.Rut] = &cp
	return nil
}

type fakeAccountRepo struct {
	byWorker map[string]*user.User
	byRut    map[string]*user.User
	created  []user.User
	updated  []user.User
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byWorker: make(map[string]*user.User),
		byRut:    make(map[string]*user.User),
	}
}

func (f *fakeAccountRepo) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeAccountRepo) Create(ctx context.Context, u *user.User) error {
	f.created = append(f.created, *u)
	if u.WorkerID != nil {
		f.byWorker[u.WorkerID.String()] = u
	}
	f.byRut[u.Rut] = u
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) FindByWorkerID(ctx context.Context, workerID string) (*user.User, error) {
	u, ok := f.byWorker[workerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAccountRepo) FindByRut(ctx context.Context, rut string) (*user.User, error) {
	u, ok := f.byRut[rut]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAccountRepo) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeAccountRepo) Update(ctx context.Context, u *user.User) error {
	f.updated = append(f.updated, *u)
	if u.WorkerID != nil {
		cp := *u
		f.byWorker[u.WorkerID.String()] = &cp
	}
	return nil
}

type fakeFileRepo struct {
	byWorker map[string]*employmentfile.EmploymentFile
	created  []employmentfile.EmploymentFile
	updated  []employmentfile.EmploymentFile
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{byWorker: make(map[string]*employmentfile.EmploymentFile)}
}

func (f *fakeFileRepo) WithTx(tx *sql.Tx) employmentfile.Repository { return f }

func (f *fakeFileRepo) Create(ctx context.Context, file *employmentfile.EmploymentFile) error {
	f.created = append(f.created, *file)
	f.byWorker[file.WorkerID.String()] = file
	return nil
}

func (f *fakeFileRepo) FindByID(ctx context.Context, id string) (*employmentfile.EmploymentFile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFileRepo) FindByWorkerID(ctx context.Context, workerID string) (*employmentfile.EmploymentFile, error) {
	file, ok := f.byWorker[workerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *file
	return &cp, nil
}

func (f *fakeFileRepo) Search(ctx context.Context, opts employmentfile.SearchOptions) ([]employmentfile.EmploymentFile, error) {
	return nil, nil
}

func (f *fakeFileRepo) Update(ctx context.Context, file *employmentfile.EmploymentFile) error {
	f.updated = append(f.updated, *file)
	cp := *file
	f.byWorker[file.WorkerID.String()] = &cp
	return nil
}

type fakeHistoryRepo struct {
	entries []history.Entry
}

func (f *fakeHistoryRepo) WithTx(tx *sql.Tx) history.Repository { return f }

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *history.Entry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) FindByWorker(ctx context.Context, workerID string) ([]history.Entry, error) {
	return f.entries, nil
}

type fakeLedger struct {
	issued []identity.IssuedIdentity
}

func (f *fakeLedger) WithTx(tx *sql.Tx) identity.Repository { return f }

func (f *fakeLedger) NextSuffix(ctx context.Context, base string) (int, error) {
	next := 0
	for _, i := range f.issued {
		if i.Base == base && i.Suffix >= next {
			next = i.Suffix + 1
		}
	}
	return next, nil
}

func (f *fakeLedger) Record(ctx context.Context, issued *identity.IssuedIdentity) error {
	f.issued = append(f.issued, *issued)
	return nil
}

func (f *fakeLedger) FindByWorker(ctx context.Context, workerID string) ([]identity.IssuedIdentity, error) {
	return nil, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type fakeMailer struct {
	sent    []string
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}

type testEnv struct {
	svc     Service
	mock    sqlmock.Sqlmock
	repo    *fakeWorkerRepo
	users   *fakeAccountRepo
	files   *fakeFileRepo
	history *fakeHistoryRepo
	ledger  *fakeLedger
	outbox  *fakeOutbox
	mail    *fakeMailer
	close   func()
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	env := &testEnv{
		mock:    mock,
		repo:    newFakeWorkerRepo(),
		users:   newFakeAccountRepo(),
		files:   newFakeFileRepo(),
		history: &fakeHistoryRepo{},
		ledger:  &fakeLedger{},
		outbox:  &fakeOutbox{},
		mail:    &fakeMailer{},
		close:   func() { db.Close() },
	}

	env.svc = NewService(
		db,
		env.repo,
		env.users,
		env.files,
		env.history,
		identity.NewAllocator(env.ledger, zap.NewNop()),
		env.mail,
		env.outbox,
		time.UTC,
		zap.NewNop(),
	)
	return env
}

func validRegisterRequest() RegisterWorkerRequest {
	return RegisterWorkerRequest{
		Rut:             "12.345.678-5",
		FirstNames:      "Ana María",
		PaternalSurname: "Soto",
		MaternalSurname: "Rojas",
		PersonalEmail:   "ana.soto@gmail.com",
		Phone:           "+56912345678",
	}
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	result, err := env.svc.Register(context.Background(), validRegisterRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, "ana.soto@lamas.com", result.CorporateEmail)
	assert.NotEmpty(t, result.TemporaryPassword)
	assert.Empty(t, result.Warnings)
	assert.True(t, result.Worker.InSystem)

	require.Len(t, env.users.created, 1)
	assert.Equal(t, user.RoleUsuario, env.users.created[0].Role)
	assert.Equal(t, user.AccountActive, env.users.created[0].Status)

	require.Len(t, env.files.created, 1)
	file := env.files.created[0]
	assert.Equal(t, employmentfile.PlaceholderPosition, file.Position)
	assert.Equal(t, employmentfile.StatusActive, file.Status)
	assert.Nil(t, file.ContractStartDate)
	assert.Zero(t, file.BaseSalary)

	require.Len(t, env.history.entries, 1)
	assert.Equal(t, history.KindRegistration, env.history.entries[0].Kind)

	require.Len(t, env.outbox.events, 1)
	assert.Equal(t, "worker_registered", env.outbox.events[0].EventType)

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "ana.soto@gmail.com", env.mail.sent[0])
	require.NoError(t, env.mock.ExpectationsWereMet())
}

func TestRegister_DuplicateRutRejected(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	existing := &Worker{ID: uuid.New(), Rut: "12.345.678-5", InSystem: true}
	env.repo.add(existing)

	_, err := env.svc.Register(context.Background(), validRegisterRequest(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, workererrors.ErrRutTaken)
	assert.Empty(t, env.repo.created)
	assert.Empty(t, env.users.created)
}

func TestRegister_InvalidRutRejected(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	req := validRegisterRequest()
	req.Rut = "12.345.678-9"

	_, err := env.svc.Register(context.Background(), req, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, workererrors.ErrInvalidRut)
}

func TestRegister_EmailFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	env.mail.sendErr = errors.New("smtp timeout")

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	result, err := env.svc.Register(context.Background(), validRegisterRequest(), "")
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "credenciales")
	// Everything else still committed.
	assert.Len(t, env.repo.created, 1)
	assert.Len(t, env.users.created, 1)
}

func TestUpdate_NameChangeRegeneratesEmail(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := &Worker{
		ID:              uuid.New(),
		Rut:             "12.345.678-5",
		FirstNames:      "Ana",
		PaternalSurname: "Soto",
		PersonalEmail:   "ana@gmail.com",
		Phone:           "+56912345678",
		InSystem:        true,
	}
	env.repo.add(w)
	env.users.Create(context.Background(), &user.User{
		ID:       uuid.New(),
		WorkerID: &w.ID,
		Email:    "ana.soto@lamas.com",
		Role:     user.RoleUsuario,
		Status:   user.AccountActive,
	})
	env.users.created = nil
	env.ledger.issued = []identity.IssuedIdentity{
		{Base: "ana.soto", Suffix: 0, Email: "ana.soto@lamas.com"},
	}

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	newSurname := "Pérez"
	result, err := env.svc.Update(context.Background(), w.ID.String(), UpdateWorkerRequest{
		PaternalSurname: &newSurname,
	}, "")
	require.NoError(t, err)

	assert.True(t, result.EmailChanged)
	assert.Equal(t, "ana.perez@lamas.com", result.CorporateEmail)
	require.Len(t, env.users.updated, 1)
	assert.Equal(t, "ana.perez@lamas.com", env.users.updated[0].Email)
	require.Len(t, env.mail.sent, 1)
}

func TestUpdate_ContactChangeLeavesAccountUntouched(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := &Worker{
		ID:              uuid.New(),
		Rut:             "12.345.678-5",
		FirstNames:      "Ana",
		PaternalSurname: "Soto",
		Phone:           "+56912345678",
		InSystem:        true,
	}
	env.repo.add(w)
	env.users.Create(context.Background(), &user.User{
		ID:       uuid.New(),
		WorkerID: &w.ID,
		Email:    "ana.soto@lamas.com",
		Role:     user.RoleUsuario,
		Status:   user.AccountActive,
	})
	env.users.created = nil

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	phone := "+56911112222"
	result, err := env.svc.Update(context.Background(), w.ID.String(), UpdateWorkerRequest{
		Phone: &phone,
	}, "")
	require.NoError(t, err)

	assert.False(t, result.EmailChanged)
	require.Len(t, env.repo.updated, 1)
	assert.Equal(t, phone, env.repo.updated[0].Phone)
	assert.Empty(t, env.users.updated)
	assert.Empty(t, env.mail.sent)
}

func TestUpdate_NoLinkedUserRejected(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := &Worker{ID: uuid.New(), Rut: "12.345.678-5", InSystem: true}
	env.repo.add(w)

	phone := "+56911112222"
	_, err := env.svc.Update(context.Background(), w.ID.String(), UpdateWorkerRequest{Phone: &phone}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, workererrors.ErrNoLinkedUser)
}

func disengageableWorker(env *testEnv) *Worker {
	w := &Worker{
		ID:              uuid.New(),
		Rut:             "12.345.678-5",
		FirstNames:      "Ana",
		PaternalSurname: "Soto",
		InSystem:        true,
	}
	env.repo.add(w)

	start := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	env.files.byWorker[w.ID.String()] = &employmentfile.EmploymentFile{
		ID:                uuid.New(),
		WorkerID:          w.ID,
		Status:            employmentfile.StatusActive,
		ContractStartDate: &start,
	}
	env.users.Create(context.Background(), &user.User{
		ID:       uuid.New(),
		WorkerID: &w.ID,
		Email:    "ana.soto@lamas.com",
		Role:     user.RoleUsuario,
		Status:   user.AccountActive,
	})
	env.users.created = nil
	return w
}

func TestDisengage_Success(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := disengageableWorker(env)

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	resp, err := env.svc.Disengage(context.Background(), w.ID.String(), DisengageWorkerRequest{
		Reason: "Renuncia voluntaria",
	}, "")
	require.NoError(t, err)

	assert.False(t, resp.InSystem)
	require.Len(t, env.users.updated, 1)
	assert.Equal(t, user.AccountInactive, env.users.updated[0].Status)
	require.Len(t, env.files.updated, 1)
	assert.Equal(t, employmentfile.StatusDisengaged, env.files.updated[0].Status)
	require.NotNil(t, env.files.updated[0].ContractEndDate)
	assert.Equal(t, "Renuncia voluntaria", env.files.updated[0].DisengagementReason)
	require.Len(t, env.history.entries, 1)
	assert.Equal(t, history.KindDisengagement, env.history.entries[0].Kind)
	require.Len(t, env.outbox.events, 1)
	assert.Equal(t, "worker_disengaged", env.outbox.events[0].EventType)
}

func TestDisengage_RefusedWhileOnLeave(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := disengageableWorker(env)
	env.files.byWorker[w.ID.String()].Status = employmentfile.StatusLicense

	_, err := env.svc.Disengage(context.Background(), w.ID.String(), DisengageWorkerRequest{
		Reason: "Renuncia",
	}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, workererrors.ErrWorkerOnLeave)
	assert.Empty(t, env.repo.updated)
	assert.Empty(t, env.files.updated)
}

func TestDisengage_RefusedWithoutContractStartDate(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := disengageableWorker(env)
	env.files.byWorker[w.ID.String()].ContractStartDate = nil

	_, err := env.svc.Disengage(context.Background(), w.ID.String(), DisengageWorkerRequest{
		Reason: "Renuncia",
	}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, workererrors.ErrNoContractStartDate)
	assert.Empty(t, env.repo.updated)
}

func TestReactivate_ResetsRoleAndIssuesFreshEmail(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := disengageableWorker(env)
	w.InSystem = false
	env.repo.add(w)
	env.files.byWorker[w.ID.String()].Status = employmentfile.StatusDisengaged
	env.users.byWorker[w.ID.String()].Role = user.RoleHR
	env.ledger.issued = []identity.IssuedIdentity{
		{Base: "ana.soto", Suffix: 0, Email: "ana.soto@lamas.com"},
	}

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	result, err := env.svc.Reactivate(context.Background(), w.ID.String(), ReactivateWorkerRequest{
		FirstNames:      "Ana",
		PaternalSurname: "Soto",
		PersonalEmail:   "ana.nueva@gmail.com",
	}, "")
	require.NoError(t, err)

	// Never reuses the retired address.
	assert.Equal(t, "ana.soto1@lamas.com", result.CorporateEmail)
	assert.True(t, result.CredentialsSent)
	assert.True(t, result.Worker.InSystem)

	require.Len(t, env.users.updated, 1)
	assert.Equal(t, user.RoleUsuario, env.users.updated[0].Role)
	assert.Equal(t, user.AccountActive, env.users.updated[0].Status)

	require.Len(t, env.files.updated, 1)
	file := env.files.updated[0]
	assert.Equal(t, employmentfile.StatusActive, file.Status)
	assert.Equal(t, employmentfile.PlaceholderPosition, file.Position)
	require.NotNil(t, file.ContractStartDate)
	assert.Nil(t, file.ContractEndDate)
	assert.Empty(t, file.DisengagementReason)

	require.Len(t, env.history.entries, 1)
	assert.Equal(t, history.KindReactivation, env.history.entries[0].Kind)
}

func TestReactivate_RefusedWhileStillActive(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()

	w := disengageableWorker(env)

	_, err := env.svc.Reactivate(context.Background(), w.ID.String(), ReactivateWorkerRequest{
		FirstNames:      "Ana",
		PaternalSurname: "Soto",
		PersonalEmail:   "ana@gmail.com",
	}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, workererrors.ErrWorkerStillActive)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Ana María Soto", normalizeText("  Ana   María  Soto "))
	assert.Equal(t, "", normalizeText("   "))
	assert.Equal(t, strings.TrimSpace("Pérez"), normalizeText("Pérez"))
}
