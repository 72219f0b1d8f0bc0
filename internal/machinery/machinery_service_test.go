package machinery

import (
	"context"
	"testing"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/client"
	machineryerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/machinery/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeMachineryRepo struct {
	machines  map[string]*Machine
	byPatente map[string]*Machine
	reports   map[string]*RentalReport
}

func newFakeMachineryRepo() *fakeMachineryRepo {
	return &fakeMachineryRepo{
		machines:  make(map[string]*Machine),
		byPatente: make(map[string]*Machine),
		reports:   make(map[string]*RentalReport),
	}
}

func (f *fakeMachineryRepo) CreateMachine(ctx context.Context, m *Machine) error {
	f.machines[m.ID.String()] = m
	f.byPatente[m.Patente] = m
	return nil
}

func (f *fakeMachineryRepo) FindMachineByID(ctx context.Context, id string) (*Machine, error) {
	m, ok := f.machines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMachineryRepo) FindMachineByPatente(ctx context.Context, patente string) (*Machine, error) {
	m, ok := f.byPatente[patente]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMachineryRepo) FindAllMachines(ctx context.Context) ([]Machine, error) {
	out := make([]Machine, 0, len(f.machines))
	for _, m := range f.machines {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMachineryRepo) UpdateMachine(ctx context.Context, m *Machine) error {
	f.machines[m.ID.String()] = m
	return nil
}

func (f *fakeMachineryRepo) DeleteMachine(ctx context.Context, id string) error {
	m, ok := f.machines[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byPatente, m.Patente)
	delete(f.machines, id)
	return nil
}

func (f *fakeMachineryRepo) CreateReport(ctx context.Context, r *RentalReport) error {
	f.reports[r.ID.String()] = r
	return nil
}

func (f *fakeMachineryRepo) FindReportByID(ctx context.Context, id string) (*RentalReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeMachineryRepo) FindReports(ctx context.Context, machineID, clientID string, from, to *time.Time) ([]RentalReport, error) {
	var out []RentalReport
	for _, r := range f.reports {
		if machineID != "" && r.MachineID.String() != machineID {
			continue
		}
		if clientID != "" && r.ClientID.String() != clientID {
			continue
		}
		if from != nil && r.WorkDate.Before(*from) {
			continue
		}
		if to != nil && !r.WorkDate.Before(*to) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeMachineryRepo) DeleteReport(ctx context.Context, id string) error {
	if _, ok := f.reports[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeMachineryRepo) ClientTotals(ctx context.Context, from, to time.Time) ([]ClientTotalRow, error) {
	acc := make(map[string]*ClientTotalRow)
	for _, r := range f.reports {
		if r.WorkDate.Before(from) || !r.WorkDate.Before(to) {
			continue
		}
		key := r.ClientID.String()
		row, ok := acc[key]
		if !ok {
			row = &ClientTotalRow{ClientID: key}
			acc[key] = row
		}
		row.ReportCount++
		row.TotalHours += r.Hours
		row.TotalValue += r.Total
	}

	out := make([]ClientTotalRow, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	return out, nil
}

type fakeClientRepo struct {
	byID map[string]*client.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, c *client.Client) error {
	f.byID[c.ID.String()] = c
	return nil
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id string) (*client.Client, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) FindByRut(ctx context.Context, rut string) (*client.Client, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClientRepo) FindAll(ctx context.Context) ([]client.Client, error) { return nil, nil }

func (f *fakeClientRepo) Update(ctx context.Context, c *client.Client) error { return nil }

func (f *fakeClientRepo) Delete(ctx context.Context, id string) error { return nil }

type testEnv struct {
	svc     Service
	repo    *fakeMachineryRepo
	clients *fakeClientRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:    newFakeMachineryRepo(),
		clients: &fakeClientRepo{byID: make(map[string]*client.Client)},
	}
	env.svc = NewService(env.repo, env.clients, time.UTC, zap.NewNop())
	return env
}

func (e *testEnv) seedClient() *client.Client {
	c := &client.Client{ID: uuid.New(), Name: "Constructora Andes Ltda.", Rut: "12.345.678-5"}
	e.clients.byID[c.ID.String()] = c
	return c
}

func (e *testEnv) seedMachine(t *testing.T, patente string) MachineResponse {
	t.Helper()
	resp, err := e.svc.CreateMachine(context.Background(), CreateMachineRequest{
		Patente: patente,
		Brand:   "Caterpillar",
		Model:   "320D",
		Year:    2019,
	})
	require.NoError(t, err)
	return resp
}

func TestNormalizePatente(t *testing.T) {
	cases := map[string]string{
		"ab-1234":   "AB1234",
		"BB·BB 12":  "BBBB12",
		" gh.78.23": "GH7823",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePatente(in))
	}
}

func TestCreateMachine_ValidatesPlate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateMachine(context.Background(), CreateMachineRequest{
		Patente: "123-XYZ",
		Brand:   "Komatsu",
		Model:   "PC200",
	})
	assert.ErrorIs(t, err, machineryerrors.ErrInvalidPatente)

	resp := env.seedMachine(t, "bbbb-12")
	assert.Equal(t, "BBBB12", resp.Patente)
}

func TestCreateMachine_RejectsDuplicatePlate(t *testing.T) {
	env := newTestEnv(t)
	env.seedMachine(t, "AB1234")

	_, err := env.svc.CreateMachine(context.Background(), CreateMachineRequest{
		Patente: "ab 1234",
		Brand:   "Volvo",
		Model:   "EC220",
	})
	assert.ErrorIs(t, err, machineryerrors.ErrPatenteTaken)
}

func TestUpdateMachine_PlateStaysPut(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMachine(t, "AB1234")

	brand := "Volvo"
	updated, err := env.svc.UpdateMachine(context.Background(), m.ID, UpdateMachineRequest{Brand: &brand})
	require.NoError(t, err)

	assert.Equal(t, "Volvo", updated.Brand)
	assert.Equal(t, "AB1234", updated.Patente)
}

func TestCreateReport_ComputesTotal(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMachine(t, "AB1234")
	cl := env.seedClient()

	resp, err := env.svc.CreateReport(context.Background(), CreateReportRequest{
		MachineID:  m.ID,
		ClientID:   cl.ID.String(),
		WorkDate:   "2025-06-03",
		Hours:      7.5,
		HourlyRate: 42000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(315000), resp.Total)
	assert.Equal(t, "2025-06-03", resp.WorkDate)
}

func TestCreateReport_ValidatesInputs(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMachine(t, "AB1234")
	cl := env.seedClient()

	req := CreateReportRequest{
		MachineID:  m.ID,
		ClientID:   cl.ID.String(),
		WorkDate:   "2025-06-03",
		Hours:      8,
		HourlyRate: 40000,
	}

	bad := req
	bad.Hours = 0
	_, err := env.svc.CreateReport(context.Background(), bad)
	assert.ErrorIs(t, err, machineryerrors.ErrInvalidHours)

	bad = req
	bad.HourlyRate = -1
	_, err = env.svc.CreateReport(context.Background(), bad)
	assert.ErrorIs(t, err, machineryerrors.ErrInvalidRate)

	bad = req
	bad.WorkDate = "03-06-2025"
	_, err = env.svc.CreateReport(context.Background(), bad)
	assert.ErrorIs(t, err, machineryerrors.ErrInvalidDateFormat)

	bad = req
	bad.ClientID = uuid.NewString()
	_, err = env.svc.CreateReport(context.Background(), bad)
	assert.ErrorIs(t, err, machineryerrors.ErrClientNotFound)

	bad = req
	bad.MachineID = uuid.NewString()
	_, err = env.svc.CreateReport(context.Background(), bad)
	assert.ErrorIs(t, err, machineryerrors.ErrMachineNotFound)
}

func TestMonthlyTotals_GroupsByClient(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMachine(t, "AB1234")
	first := env.seedClient()
	second := env.seedClient()

	mk := func(clientID, date string, hours float64) {
		_, err := env.svc.CreateReport(context.Background(), CreateReportRequest{
			MachineID:  m.ID,
			ClientID:   clientID,
			WorkDate:   date,
			Hours:      hours,
			HourlyRate: 10000,
		})
		require.NoError(t, err)
	}

	mk(first.ID.String(), "2025-06-03", 8)
	mk(first.ID.String(), "2025-06-04", 4)
	mk(second.ID.String(), "2025-06-05", 6)
	// Outside the period.
	mk(first.ID.String(), "2025-07-01", 9)

	totals, err := env.svc.MonthlyTotals(context.Background(), "2025-06")
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byClient := make(map[string]ClientMonthlyTotal)
	for _, tot := range totals {
		byClient[tot.ClientID] = tot
	}

	assert.Equal(t, 2, byClient[first.ID.String()].ReportCount)
	assert.Equal(t, float64(12), byClient[first.ID.String()].TotalHours)
	assert.Equal(t, int64(120000), byClient[first.ID.String()].TotalValue)
	assert.Equal(t, int64(60000), byClient[second.ID.String()].TotalValue)

	_, err = env.svc.MonthlyTotals(context.Background(), "junio")
	assert.ErrorIs(t, err, machineryerrors.ErrInvalidPeriod)
}

func TestDeleteReport(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMachine(t, "AB1234")
	cl := env.seedClient()

	resp, err := env.svc.CreateReport(context.Background(), CreateReportRequest{
		MachineID:  m.ID,
		ClientID:   cl.ID.String(),
		WorkDate:   "2025-06-03",
		Hours:      8,
		HourlyRate: 40000,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteReport(context.Background(), resp.ID))
	err = env.svc.DeleteReport(context.Background(), resp.ID)
	assert.ErrorIs(t, err, machineryerrors.ErrReportNotFound)
}
