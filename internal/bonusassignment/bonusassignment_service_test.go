package bonusassignment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus"
	assignmenterrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonusassignment/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	fileerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAssignmentRepo struct {
	byID     map[string]*Assignment
	expired  []Assignment
	updated  []Assignment
	created  []Assignment
	hasPair  bool
	findErr  error
	writeErr error
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{byID: make(map[string]*Assignment)}
}

func (f *fakeAssignmentRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *Assignment) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.created = append(f.created, *a)
	return nil
}

func (f *fakeAssignmentRepo) FindByID(ctx context.Context, id string) (*Assignment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssignmentRepo) FindByFile(ctx context.Context, fileID string, activeOnly bool) ([]Assignment, error) {
	var out []Assignment
	for _, a := range f.byID {
		if a.EmploymentFileID.String() != fileID {
			continue
		}
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssignmentRepo) HasActiveAssignment(ctx context.Context, fileID, bonusID, excludeID string) (bool, error) {
	if f.hasPair {
		return true, nil
	}
	for _, a := range f.byID {
		if a.ID.String() == excludeID {
			continue
		}
		if a.Active && a.EmploymentFileID.String() == fileID && a.BonusID.String() == bonusID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignmentRepo) HasActiveAssignmentsForBonus(ctx context.Context, bonusID string) (bool, error) {
	return false, nil
}

func (f *fakeAssignmentRepo) FindExpired(ctx context.Context, asOf time.Time) ([]Assignment, error) {
	// Mirrors the store: only rows still active with a past end date.
	var out []Assignment
	for _, a := range f.expired {
		if a.Active && a.EndDate != nil && a.EndDate.Before(asOf) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, a *Assignment) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updated = append(f.updated, *a)
	for i := range f.expired {
		if f.expired[i].ID == a.ID {
			f.expired[i] = *a
		}
	}
	if stored, ok := f.byID[a.ID.String()]; ok {
		bonusRef := stored.Bonus
		cp := *a
		cp.Bonus = bonusRef
		f.byID[a.ID.String()] = &cp
	}
	return nil
}

type fakeBonusRepo struct {
	byID map[string]*bonus.Bonus
}

func (f *fakeBonusRepo) WithTx(tx *sql.Tx) bonus.Repository { return f }

func (f *fakeBonusRepo) Create(ctx context.Context, b *bonus.Bonus) error { return nil }

func (f *fakeBonusRepo) FindAll(ctx context.Context) ([]bonus.Bonus, error) { return nil, nil }

func (f *fakeBonusRepo) FindByID(ctx context.Context, id string) (*bonus.Bonus, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBonusRepo) Update(ctx context.Context, b *bonus.Bonus) error { return nil }

func (f *fakeBonusRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeOutboxRepo struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeFileRepo struct {
	byID     map[string]*employmentfile.EmploymentFile
	byWorker map[string]*employmentfile.EmploymentFile
}

func (f *fakeFileRepo) WithTx(tx *sql.Tx) employmentfile.Repository { return f }

func (f *fakeFileRepo) Create(ctx context.Context, file *employmentfile.EmploymentFile) error {
	return nil
}

func (f *fakeFileRepo) FindByID(ctx context.Context, id string) (*employmentfile.EmploymentFile, error) {
	file, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *file
	return &cp, nil
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
	return nil
}

func newTestService(t *testing.T, repo Repository, bonuses bonus.Repository, files employmentfile.Repository, outbox kafka.OutboxRepository) (Service, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	svc := NewService(db, repo, bonuses, files, outbox, time.UTC, zap.NewNop())
	return svc, mock, func() { db.Close() }
}

func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func TestAssign_DuplicateActivePairRejected(t *testing.T) {
	fileID := uuid.New()
	bonusID := uuid.New()

	repo := newFakeAssignmentRepo()
	repo.hasPair = true

	bonuses := &fakeBonusRepo{byID: map[string]*bonus.Bonus{
		bonusID.String(): {ID: bonusID, Name: "Colación", Temporality: bonus.TemporalityPermanent, Amount: 50000},
	}}
	files := &fakeFileRepo{byID: map[string]*employmentfile.EmploymentFile{
		fileID.String(): {ID: fileID, Status: employmentfile.StatusActive},
	}}
	outbox := &fakeOutboxRepo{}

	svc, _, done := newTestService(t, repo, bonuses, files, outbox)
	defer done()

	_, err := svc.Assign(context.Background(), CreateAssignmentRequest{
		EmploymentFileID: fileID.String(),
		BonusID:          bonusID.String(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, assignmenterrors.ErrDuplicateActiveAssignment)
	assert.Empty(t, repo.created)
	assert.Empty(t, outbox.events)
}

func TestAssign_PersistsAndEnqueuesRecalculation(t *testing.T) {
	fileID := uuid.New()
	bonusID := uuid.New()
	months := 3

	repo := newFakeAssignmentRepo()
	bonuses := &fakeBonusRepo{byID: map[string]*bonus.Bonus{
		bonusID.String(): {ID: bonusID, Name: "Bono Faena", Temporality: bonus.TemporalityOneOff, DurationMonths: &months, Amount: 80000},
	}}
	files := &fakeFileRepo{byID: map[string]*employmentfile.EmploymentFile{
		fileID.String(): {ID: fileID, Status: employmentfile.StatusActive},
	}}
	outbox := &fakeOutboxRepo{}

	svc, mock, done := newTestService(t, repo, bonuses, files, outbox)
	defer done()

	expectTx(mock)

	resp, err := svc.Assign(context.Background(), CreateAssignmentRequest{
		EmploymentFileID: fileID.String(),
		BonusID:          bonusID.String(),
		Observations:     "acordado en contrato",
	})

	require.NoError(t, err)
	assert.True(t, resp.Active)
	require.NotNil(t, resp.EndDate)
	require.Len(t, repo.created, 1)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, fileID.String(), outbox.events[0].AggregateID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_InactiveAssignmentRejected(t *testing.T) {
	bonusID := uuid.New()
	b := &bonus.Bonus{ID: bonusID, Temporality: bonus.TemporalityPermanent, Amount: 50000}

	a := &Assignment{
		ID:               uuid.New(),
		EmploymentFileID: uuid.New(),
		BonusID:          bonusID,
		Active:           false,
		Bonus:            b,
	}

	repo := newFakeAssignmentRepo()
	repo.byID[a.ID.String()] = a

	bonuses := &fakeBonusRepo{byID: map[string]*bonus.Bonus{bonusID.String(): b}}
	outbox := &fakeOutboxRepo{}

	svc, _, done := newTestService(t, repo, bonuses, &fakeFileRepo{}, outbox)
	defer done()

	_, err := svc.Update(context.Background(), a.ID.String(), UpdateAssignmentRequest{
		BonusID: bonusID.String(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, assignmenterrors.ErrAssignmentInactive)
	assert.Empty(t, repo.updated)
	assert.Empty(t, outbox.events)
}

func TestUpdate_NoChangesSkipsOutbox(t *testing.T) {
	bonusID := uuid.New()
	b := &bonus.Bonus{ID: bonusID, Temporality: bonus.TemporalityPermanent, Amount: 50000, Imponible: true}

	a := &Assignment{
		ID:               uuid.New(),
		EmploymentFileID: uuid.New(),
		BonusID:          bonusID,
		AssignedAt:       time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
		Active:           true,
		Bonus:            b,
	}

	repo := newFakeAssignmentRepo()
	repo.byID[a.ID.String()] = a

	bonuses := &fakeBonusRepo{byID: map[string]*bonus.Bonus{bonusID.String(): b}}
	outbox := &fakeOutboxRepo{}

	svc, _, done := newTestService(t, repo, bonuses, &fakeFileRepo{}, outbox)
	defer done()

	resp, err := svc.Update(context.Background(), a.ID.String(), UpdateAssignmentRequest{
		BonusID: bonusID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, string(ReasonNoChanges), resp.DiffReason)
	assert.Empty(t, repo.updated)
	assert.Empty(t, outbox.events)
}

func TestExpireAssignments_SweepIsIdempotent(t *testing.T) {
	past := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	future := time.Now().AddDate(0, 2, 0)

	repo := newFakeAssignmentRepo()
	repo.expired = []Assignment{
		{ID: uuid.New(), EmploymentFileID: uuid.New(), Active: true, EndDate: &past},
		{ID: uuid.New(), EmploymentFileID: uuid.New(), Active: true, EndDate: &past},
		{ID: uuid.New(), EmploymentFileID: uuid.New(), Active: true, EndDate: &future},
	}

	outbox := &fakeOutboxRepo{}
	svc, mock, done := newTestService(t, repo, &fakeBonusRepo{}, &fakeFileRepo{}, outbox)
	defer done()

	expectTx(mock)
	expectTx(mock)

	result, err := svc.ExpireAssignments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Deactivated)
	assert.Len(t, repo.updated, 2)
	assert.Len(t, outbox.events, 2)
	for _, a := range repo.updated {
		assert.False(t, a.Active)
	}

	// Second run finds nothing: the deactivated rows no longer match.
	result, err = svc.ExpireAssignments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Deactivated)
	assert.Len(t, repo.updated, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListForWorker_OnlyActiveAssignments(t *testing.T) {
	workerID := uuid.New()
	fileID := uuid.New()
	bonusID := uuid.New()
	b := &bonus.Bonus{ID: bonusID, Name: "Colación", Temporality: bonus.TemporalityPermanent, Amount: 50000}

	repo := newFakeAssignmentRepo()
	active := &Assignment{ID: uuid.New(), EmploymentFileID: fileID, BonusID: bonusID, Active: true, Bonus: b}
	inactive := &Assignment{ID: uuid.New(), EmploymentFileID: fileID, BonusID: bonusID, Active: false, Bonus: b}
	repo.byID[active.ID.String()] = active
	repo.byID[inactive.ID.String()] = inactive

	file := &employmentfile.EmploymentFile{ID: fileID, WorkerID: workerID, Status: employmentfile.StatusActive}
	files := &fakeFileRepo{
		byID:     map[string]*employmentfile.EmploymentFile{fileID.String(): file},
		byWorker: map[string]*employmentfile.EmploymentFile{workerID.String(): file},
	}

	svc, _, done := newTestService(t, repo, &fakeBonusRepo{}, files, &fakeOutboxRepo{})
	defer done()

	resp, err := svc.ListForWorker(context.Background(), workerID.String())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, active.ID.String(), resp[0].ID)
	assert.True(t, resp[0].Active)
}

func TestListForWorker_NoFileForWorker(t *testing.T) {
	svc, _, done := newTestService(t, newFakeAssignmentRepo(), &fakeBonusRepo{}, &fakeFileRepo{}, &fakeOutboxRepo{})
	defer done()

	_, err := svc.ListForWorker(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.ErrorIs(t, err, fileerrors.ErrFileNotFound)
}

func boolPtr(v bool) *bool { return &v }

func TestUpdate_ReactivateWithExistingActivePairRejected(t *testing.T) {
	fileID := uuid.New()
	bonusID := uuid.New()
	b := &bonus.Bonus{ID: bonusID, Name: "Colación", Temporality: bonus.TemporalityPermanent, Amount: 50000}

	repo := newFakeAssignmentRepo()
	active := &Assignment{ID: uuid.New(), EmploymentFileID: fileID, BonusID: bonusID, Active: true, Bonus: b}
	dormant := &Assignment{ID: uuid.New(), EmploymentFileID: fileID, BonusID: bonusID, Active: false, Bonus: b}
	repo.byID[active.ID.String()] = active
	repo.byID[dormant.ID.String()] = dormant

	bonuses := &fakeBonusRepo{byID: map[string]*bonus.Bonus{bonusID.String(): b}}
	outbox := &fakeOutboxRepo{}

	svc, _, done := newTestService(t, repo, bonuses, &fakeFileRepo{}, outbox)
	defer done()

	_, err := svc.Update(context.Background(), dormant.ID.String(), UpdateAssignmentRequest{
		Active: boolPtr(true),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, assignmenterrors.ErrDuplicateActiveAssignment)
	assert.Empty(t, repo.updated)
	assert.Empty(t, outbox.events)
}

func TestUpdate_ReactivateWithoutActivePairSucceeds(t *testing.T) {
	fileID := uuid.New()
	bonusID := uuid.New()
	b := &bonus.Bonus{ID: bonusID, Name: "Colación", Temporality: bonus.TemporalityPermanent, Amount: 50000}

	repo := newFakeAssignmentRepo()
	dormant := &Assignment{ID: uuid.New(), EmploymentFileID: fileID, BonusID: bonusID, Active: false, Bonus: b}
	repo.byID[dormant.ID.String()] = dormant

	bonuses := &fakeBonusRepo{byID: map[string]*bonus.Bonus{bonusID.String(): b}}
	outbox := &fakeOutboxRepo{}

	svc, mock, done := newTestService(t, repo, bonuses, &fakeFileRepo{}, outbox)
	defer done()

	expectTx(mock)

	resp, err := svc.Update(context.Background(), dormant.ID.String(), UpdateAssignmentRequest{
		Active: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, resp.Active)
	require.Len(t, repo.updated, 1)
	require.Len(t, outbox.events, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_SwapToAlreadyAssignedBonusRejected(t *testing.T) {
	fileID := uuid.New()
	bonusA := &bonus.Bonus{ID: uuid.New(), Name: "Colación", Temporality: bonus.TemporalityPermanent, Amount: 50000}
	bonusB := &bonus.Bonus{ID: uuid.New(), Name: "Movilización", Temporality: bonus.TemporalityPermanent, Amount: 30000}

	repo := newFakeAssignmentRepo()
	holderA := &Assignment{ID: uuid.New(), EmploymentFileID: fileID, BonusID: bonusA.ID, Active: true, Bonus: bonusA}
	holderB := &Assignment{ID: uuid.New(), EmploymentFileID: fileID, BonusID: bonusB.ID, Active: true, Bonus: bonusB}
	repo.byID[holderA.ID.String()] = holderA
	repo.byID[holderB.ID.String()] = holderB

	bonuses := &fakeBonusRepo{byID: map[string]*bonus.Bonus{
		bonusA.ID.String(): bonusA,
		bonusB.ID.String(): bonusB,
	}}
	outbox := &fakeOutboxRepo{}

	svc, _, done := newTestService(t, repo, bonuses, &fakeFileRepo{}, outbox)
	defer done()

	_, err := svc.Update(context.Background(), holderA.ID.String(), UpdateAssignmentRequest{
		BonusID: bonusB.ID.String(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, assignmenterrors.ErrDuplicateActiveAssignment)
	assert.Empty(t, repo.updated)
	assert.Empty(t, outbox.events)
}
