package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/history"
	leaveerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/leave/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/worker"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeLeaveRepo struct {
	byID    map[string]*LeaveRequest
	created []*LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{byID: make(map[string]*LeaveRequest)}
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeLeaveRepo) Create(ctx context.Context, l *LeaveRequest) error {
	f.byID[l.ID.String()] = l
	f.created = append(f.created, l)
	return nil
}

func (f *fakeLeaveRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeLeaveRepo) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	out := make([]LeaveRequest, 0, len(f.byID))
	for _, l := range f.byID {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLeaveRepo) FindByWorker(ctx context.Context, workerID string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range f.byID {
		if l.WorkerID.String() == workerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, l *LeaveRequest) error {
	f.byID[l.ID.String()] = l
	return nil
}

func (f *fakeLeaveRepo) HasOverlappingPeriod(ctx context.Context, workerID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	for _, l := range f.byID {
		if l.WorkerID.String() != workerID {
			continue
		}
		if l.Status != StatusPending && l.Status != StatusApproved {
			continue
		}
		if excludeID != nil && l.ID.String() == *excludeID {
			continue
		}
		if !(l.EndDate.Before(startDate) || l.StartDate.After(endDate)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) FindExpired(ctx context.Context, asOf time.Time) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range f.byID {
		if l.Status == StatusApproved && l.EndDate.Before(asOf) {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakeWorkerRepo struct {
	byID map[string]*worker.Worker
}

func (f *fakeWorkerRepo) WithTx(tx *sql.Tx) worker.Repository { return f }

func (f *fakeWorkerRepo) Create(ctx context.Context, w *worker.Worker) error {
	f.byID[w.ID.String()] = w
	return nil
}

func (f *fakeWorkerRepo) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) FindByRut(ctx context.Context, rut string) (*worker.Worker, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerRepo) FindAll(ctx context.Context, includeDisengaged bool) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w *worker.Worker) error {
	f.byID[w.ID.String()] = w
	return nil
}

type fakeFileRepo struct {
	byWorker map[string]*employmentfile.EmploymentFile
}

func (f *fakeFileRepo) WithTx(tx *sql.Tx) employmentfile.Repository { return f }

func (f *fakeFileRepo) Create(ctx context.Context, file *employmentfile.EmploymentFile) error {
	f.byWorker[file.WorkerID.String()] = file
	return nil
}

func (f *fakeFileRepo) FindByID(ctx context.Context, id string) (*employmentfile.EmploymentFile, error) {
	for _, file := range f.byWorker {
		if file.ID.String() == id {
			return file, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFileRepo) FindByWorkerID(ctx context.Context, workerID string) (*employmentfile.EmploymentFile, error) {
	file, ok := f.byWorker[workerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return file, nil
}

func (f *fakeFileRepo) Search(ctx context.Context, opts employmentfile.SearchOptions) ([]employmentfile.EmploymentFile, error) {
	return nil, nil
}

func (f *fakeFileRepo) Update(ctx context.Context, file *employmentfile.EmploymentFile) error {
	f.byWorker[file.WorkerID.String()] = file
	return nil
}

type fakeHistoryRepo struct {
	entries []*history.Entry
}

func (f *fakeHistoryRepo) WithTx(tx *sql.Tx) history.Repository { return f }

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *history.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryRepo) FindByWorker(ctx context.Context, workerID string) ([]history.Entry, error) {
	return nil, nil
}

type testEnv struct {
	svc     Service
	repo    *fakeLeaveRepo
	workers *fakeWorkerRepo
	files   *fakeFileRepo
	history *fakeHistoryRepo
	mock    sqlmock.Sqlmock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		repo:    newFakeLeaveRepo(),
		workers: &fakeWorkerRepo{byID: make(map[string]*worker.Worker)},
		files:   &fakeFileRepo{byWorker: make(map[string]*employmentfile.EmploymentFile)},
		history: &fakeHistoryRepo{},
		mock:    mock,
	}
	env.svc = NewService(db, env.repo, env.workers, env.files, env.history, time.UTC, zap.NewNop())
	return env
}

func (e *testEnv) expectTx() {
	e.mock.ExpectBegin()
	e.mock.ExpectCommit()
}

func (e *testEnv) seedWorker(t *testing.T, inSystem bool) *worker.Worker {
	t.Helper()
	w := &worker.Worker{
		ID:              uuid.New(),
		Rut:             "12.345.678-5",
		FirstNames:      "Ana María",
		PaternalSurname: "Soto",
		InSystem:        inSystem,
	}
	e.workers.byID[w.ID.String()] = w
	return w
}

func (e *testEnv) seedFile(w *worker.Worker, status employmentfile.Status) *employmentfile.EmploymentFile {
	file := &employmentfile.EmploymentFile{
		ID:       uuid.New(),
		WorkerID: w.ID,
		Status:   status,
	}
	e.files.byWorker[w.ID.String()] = file
	return file
}

func createRequest(workerID string) CreateLeaveRequest {
	return CreateLeaveRequest{
		WorkerID:  workerID,
		Type:      TypeLicense,
		StartDate: "2025-06-02",
		EndDate:   "2025-06-06",
		Reason:    "Reposo médico",
	}
}

func TestCreateLeave_Success(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	env.expectTx()

	resp, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 5, resp.TotalDays)
	require.Len(t, env.repo.created, 1)
	assert.Equal(t, TypeLicense, env.repo.created[0].Type)
}

func TestCreateLeave_RejectsDisengagedWorker(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, false)

	_, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrWorkerDisengaged)
}

func TestCreateLeave_RejectsOverlap(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	env.expectTx()

	_, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	require.NoError(t, err)

	// Same worker, period overlapping by one day.
	req := createRequest(w.ID.String())
	req.StartDate = "2025-06-06"
	req.EndDate = "2025-06-10"
	_, err = env.svc.Create(context.Background(), req, uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
}

func TestCreateLeave_RejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)

	req := createRequest(w.ID.String())
	req.StartDate = "2025-06-10"
	req.EndDate = "2025-06-02"
	_, err := env.svc.Create(context.Background(), req, uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestApproveLeave_FlipsFileStatus(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	file := env.seedFile(w, employmentfile.StatusActive)

	env.expectTx()
	resp, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	require.NoError(t, err)

	env.expectTx()
	approver := uuid.NewString()
	approved, err := env.svc.Approve(context.Background(), resp.ID, approver)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approver, *approved.ApprovedBy)
	assert.Equal(t, employmentfile.StatusLicense, file.Status)

	require.Len(t, env.history.entries, 1)
	assert.Equal(t, history.KindLeaveStart, env.history.entries[0].Kind)
	assert.Contains(t, env.history.entries[0].Observations, "Licencia médica")
}

func TestApproveLeave_AdminPermitUsesOwnStatus(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	file := env.seedFile(w, employmentfile.StatusActive)

	req := createRequest(w.ID.String())
	req.Type = TypeAdminPermit

	env.expectTx()
	resp, err := env.svc.Create(context.Background(), req, uuid.NewString())
	require.NoError(t, err)

	env.expectTx()
	_, err = env.svc.Approve(context.Background(), resp.ID, uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, employmentfile.StatusAdminPermit, file.Status)
}

func TestApproveLeave_RefusedWhileAlreadyOnLeave(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	env.seedFile(w, employmentfile.StatusLicense)

	env.expectTx()
	req := createRequest(w.ID.String())
	resp, err := env.svc.Create(context.Background(), req, uuid.NewString())
	require.NoError(t, err)

	_, err = env.svc.Approve(context.Background(), resp.ID, uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrFileNotOnDuty)
}

func TestApproveLeave_OnlyPending(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	env.seedFile(w, employmentfile.StatusActive)

	env.expectTx()
	resp, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	require.NoError(t, err)

	env.expectTx()
	_, err = env.svc.Approve(context.Background(), resp.ID, uuid.NewString())
	require.NoError(t, err)

	_, err = env.svc.Approve(context.Background(), resp.ID, uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
}

func TestRejectLeave_RequiresReasonAndKeepsFile(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	file := env.seedFile(w, employmentfile.StatusActive)

	env.expectTx()
	resp, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	require.NoError(t, err)

	_, err = env.svc.Reject(context.Background(), resp.ID, RejectLeaveRequest{}, uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)

	env.expectTx()
	rejected, err := env.svc.Reject(context.Background(), resp.ID, RejectLeaveRequest{Reason: "Documentación incompleta"}, uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, employmentfile.StatusActive, file.Status)
	assert.Empty(t, env.history.entries)
}

func TestExpireLeaves_RestoresFileAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	file := env.seedFile(w, employmentfile.StatusActive)

	env.expectTx()
	resp, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	require.NoError(t, err)

	env.expectTx()
	_, err = env.svc.Approve(context.Background(), resp.ID, uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, employmentfile.StatusLicense, file.Status)

	// Period ends 2025-06-06; the sweep only fires once the end date passed.
	env.expectTx()
	result, err := env.svc.ExpireLeaves(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, employmentfile.StatusActive, file.Status)
	assert.Equal(t, StatusCompleted, env.repo.byID[resp.ID].Status)

	entries := env.history.entries
	require.Len(t, entries, 2)
	assert.Equal(t, history.KindLeaveEnd, entries[1].Kind)

	// Second run finds nothing.
	again, err := env.svc.ExpireLeaves(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again.Completed)
}

func TestExpireLeaves_LeavesDisengagedFileAlone(t *testing.T) {
	env := newTestEnv(t)
	w := env.seedWorker(t, true)
	file := env.seedFile(w, employmentfile.StatusActive)

	env.expectTx()
	resp, err := env.svc.Create(context.Background(), createRequest(w.ID.String()), uuid.NewString())
	require.NoError(t, err)

	env.expectTx()
	_, err = env.svc.Approve(context.Background(), resp.ID, uuid.NewString())
	require.NoError(t, err)

	// The worker was disengaged while on leave.
	file.Status = employmentfile.StatusDisengaged

	env.expectTx()
	result, err := env.svc.ExpireLeaves(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, employmentfile.StatusDisengaged, file.Status)
	assert.Equal(t, StatusCompleted, env.repo.byID[resp.ID].Status)
}
