package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantage/internal/core"
	"vantage/internal/session"
	"vantage/internal/store"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// newFixture builds a session manager over a real file store with one
// registered, logged-in account.
func newFixture(t *testing.T) *session.Manager {
	t.Helper()
	backend := store.NewFileStore(filepath.Join(t.TempDir(), "vantage.json"), nil)
	accounts := store.NewAccountStore(backend, nil, store.WithClock(clock))
	sessions := session.NewManager(accounts, nil)

	_, err := sessions.Register(context.Background(), "Ana", "ana@example.com", "secret")
	require.NoError(t, err)
	return sessions
}

type fakeNotifier struct {
	bodies []string
}

func (f *fakeNotifier) Notify(_ context.Context, _, body string) { f.bodies = append(f.bodies, body) }
func (f *fakeNotifier) Pulse(context.Context)                    {}

func TestTaskServiceAdd(t *testing.T) {
	sessions := newFixture(t)
	svc := NewTaskService(sessions, nil)
	svc.now = clock
	ctx := context.Background()

	task, err := svc.Add(ctx, "Review proposal", core.CategoryWork)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", task.Date)
	assert.Equal(t, "14:30", task.Time)
	assert.False(t, task.Completed)

	tasks, err := svc.List(ctx, FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 4, "3 seeded defaults plus the new task")
	assert.Equal(t, task.ID, tasks[0].ID, "new tasks are prepended")
}

func TestTaskServiceAddInvalid(t *testing.T) {
	sessions := newFixture(t)
	svc := NewTaskService(sessions, nil)
	svc.now = clock
	ctx := context.Background()

	_, err := svc.Add(ctx, "   ", core.CategoryWork)
	assert.True(t, errors.Is(err, core.ErrEmptyText))

	_, err = svc.Add(ctx, "Laundry", "Chores")
	assert.True(t, errors.Is(err, core.ErrInvalidCategory))
}

func TestTaskServiceToggleAndFilters(t *testing.T) {
	sessions := newFixture(t)
	svc := NewTaskService(sessions, nil)
	svc.now = clock
	ctx := context.Background()

	tasks, err := svc.List(ctx, FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	toggled, err := svc.Toggle(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	pending, err := svc.List(ctx, FilterPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	today, err := svc.List(ctx, FilterToday)
	require.NoError(t, err)
	assert.Len(t, today, 3)

	back, err := svc.Toggle(ctx, toggled.ID)
	require.NoError(t, err)
	assert.False(t, back.Completed)

	_, err = svc.Toggle(ctx, "missing")
	assert.True(t, errors.Is(err, ErrTaskNotFound))
}

func TestTaskServiceDelete(t *testing.T) {
	sessions := newFixture(t)
	svc := NewTaskService(sessions, nil)
	svc.now = clock
	ctx := context.Background()

	tasks, err := svc.List(ctx, FilterAll)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tasks[0].ID))

	remaining, err := svc.List(ctx, FilterAll)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	assert.True(t, errors.Is(svc.Delete(ctx, tasks[0].ID), ErrTaskNotFound))
}

func TestMutationsPersistAcrossLogin(t *testing.T) {
	backend := store.NewFileStore(filepath.Join(t.TempDir(), "vantage.json"), nil)
	accounts := store.NewAccountStore(backend, nil, store.WithClock(clock))
	sessions := session.NewManager(accounts, nil)
	ctx := context.Background()

	_, err := sessions.Register(ctx, "Ana", "ana@example.com", "secret")
	require.NoError(t, err)

	svc := NewTaskService(sessions, nil)
	svc.now = clock
	added, err := svc.Add(ctx, "Review proposal", core.CategoryWork)
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(ctx))
	_, err = sessions.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	tasks, err := svc.List(ctx, FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.Equal(t, added.ID, tasks[0].ID)
}

func TestLeadServiceAdd(t *testing.T) {
	sessions := newFixture(t)
	notifier := &fakeNotifier{}
	svc := NewLeadService(sessions, notifier, nil)
	svc.now = clock
	ctx := context.Background()

	lead, err := svc.Add(ctx, "Acme", "", "", 1200)
	require.NoError(t, err)
	assert.Equal(t, core.StatusPotential, lead.Status)
	assert.Equal(t, "Personal", lead.Company, "empty company falls back")
	assert.Equal(t, "2024-03-05", lead.LastContact)

	// Adding a lead drops an onboarding task into today's schedule.
	data, err := sessions.Snapshot()
	require.NoError(t, err)
	require.NotEmpty(t, data.Tasks)
	followUp := data.Tasks[0]
	assert.Equal(t, "Optimize: Acme", followUp.Text)
	assert.Equal(t, "09:00", followUp.Time)
	assert.Equal(t, core.CategoryWork, followUp.Category)

	require.Len(t, notifier.bodies, 1)
	assert.Contains(t, notifier.bodies[0], "Acme")
}

func TestLeadServiceAddInvalid(t *testing.T) {
	sessions := newFixture(t)
	svc := NewLeadService(sessions, nil, nil)
	svc.now = clock

	_, err := svc.Add(context.Background(), "Acme", "", "", 0)
	assert.True(t, errors.Is(err, core.ErrInvalidValue))
}

func TestLeadServiceMove(t *testing.T) {
	sessions := newFixture(t)
	svc := NewLeadService(sessions, nil, nil)
	svc.now = clock
	ctx := context.Background()

	lead, err := svc.Add(ctx, "Acme", "Consulting", "", 900)
	require.NoError(t, err)

	moved, err := svc.Move(ctx, lead.ID, core.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, core.StatusActive, moved.Status)

	_, err = svc.Move(ctx, lead.ID, "Won")
	assert.True(t, errors.Is(err, core.ErrInvalidStatus))

	_, err = svc.Move(ctx, "missing", core.StatusArchived)
	assert.True(t, errors.Is(err, ErrLeadNotFound))
}

func TestLeadServiceTogglePayment(t *testing.T) {
	sessions := newFixture(t)
	svc := NewLeadService(sessions, nil, nil)
	svc.now = clock
	ctx := context.Background()

	lead, err := svc.Add(ctx, "Acme", "Consulting", "", 900)
	require.NoError(t, err)

	state, err := svc.TogglePayment(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, core.PaymentPaid, state)

	state, err = svc.TogglePayment(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, core.PaymentPending, state)

	leads, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, core.PaymentPending, leads[0].Payments["2024-03"])
	assert.Len(t, leads[0].Payments, 1, "only the current month is touched")
}

func TestLeadServiceNotesAndDelete(t *testing.T) {
	sessions := newFixture(t)
	svc := NewLeadService(sessions, nil, nil)
	svc.now = clock
	ctx := context.Background()

	lead, err := svc.Add(ctx, "Acme", "Consulting", "", 900)
	require.NoError(t, err)

	require.NoError(t, svc.SetNotes(ctx, lead.ID, "prefers morning calls"))
	leads, err := svc.List(ctx, core.StatusPotential)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "prefers morning calls", leads[0].Notes)

	require.NoError(t, svc.Delete(ctx, lead.ID))
	leads, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestGoalServiceAdvanceClamps(t *testing.T) {
	sessions := newFixture(t)
	svc := NewGoalService(sessions, nil)
	ctx := context.Background()

	goal, err := svc.Add(ctx, "Read books", "books", "2024-12-31", 5, 4)
	require.NoError(t, err)

	advanced, err := svc.Advance(ctx, goal.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(5), advanced.CurrentValue)

	advanced, err = svc.Advance(ctx, goal.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(5), advanced.CurrentValue, "advance past target clamps")
	assert.True(t, advanced.Completed())

	_, err = svc.Advance(ctx, "missing", 1)
	assert.True(t, errors.Is(err, ErrGoalNotFound))
}

func TestGoalServiceAddDefaultsAndValidation(t *testing.T) {
	sessions := newFixture(t)
	svc := NewGoalService(sessions, nil)
	ctx := context.Background()

	goal, err := svc.Add(ctx, "Run", "", "2024-12-31", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, "times", goal.Unit)

	_, err = svc.Add(ctx, "", "km", "", 50, 0)
	assert.True(t, errors.Is(err, core.ErrEmptyTitle))

	_, err = svc.Add(ctx, "Run", "km", "", 0, 0)
	assert.True(t, errors.Is(err, core.ErrInvalidTarget))
}

func TestFinanceService(t *testing.T) {
	sessions := newFixture(t)
	svc := NewFinanceService(sessions, nil)
	leadSvc := NewLeadService(sessions, nil, nil)
	leadSvc.now = clock
	ctx := context.Background()

	out, err := svc.Update(ctx, 5000, 3500)
	require.NoError(t, err)
	assert.Equal(t, float64(1500), out.Remaining)
	assert.Equal(t, 70, out.CommittedPercent)

	lead, err := leadSvc.Add(ctx, "Acme", "", "", 1200)
	require.NoError(t, err)
	_, err = leadSvc.Move(ctx, lead.ID, core.StatusActive)
	require.NoError(t, err)

	got, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1200), got.ActiveRevenue)

	_, err = svc.Update(ctx, -1, 0)
	assert.True(t, errors.Is(err, ErrNegativeAmount))
}

func TestReportServiceMonthly(t *testing.T) {
	sessions := newFixture(t)
	taskSvc := NewTaskService(sessions, nil)
	taskSvc.now = clock
	svc := NewReportService(sessions, nil)
	ctx := context.Background()

	// Complete one of the three seeded defaults.
	tasks, err := taskSvc.List(ctx, FilterAll)
	require.NoError(t, err)
	_, err = taskSvc.Toggle(ctx, tasks[0].ID)
	require.NoError(t, err)

	report, err := svc.Monthly(ctx, 2024, time.March)
	require.NoError(t, err)

	assert.Len(t, report.Days, 31)
	assert.Equal(t, core.DayStats{Total: 3, Completed: 1, Score: 33}, report.Days["2024-03-05"])
	assert.Equal(t, 3, report.Summary.TotalTasks)
	assert.Equal(t, 1, report.Summary.CompletedTasks)
	assert.Equal(t, 33, report.Summary.Rate)
	assert.Equal(t, 0, report.Summary.PerfectDays)
}

func TestServicesRequireSession(t *testing.T) {
	backend := store.NewFileStore(filepath.Join(t.TempDir(), "vantage.json"), nil)
	accounts := store.NewAccountStore(backend, nil, store.WithClock(clock))
	sessions := session.NewManager(accounts, nil)

	taskSvc := NewTaskService(sessions, nil)
	taskSvc.now = clock
	_, err := taskSvc.Add(context.Background(), "Anything", core.CategoryWork)
	assert.True(t, errors.Is(err, session.ErrNotAuthenticated))

	_, err = taskSvc.List(context.Background(), FilterAll)
	assert.True(t, errors.Is(err, session.ErrNotAuthenticated))
}
