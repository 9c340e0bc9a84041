package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

type fakePayrollStore struct {
	mu        sync.Mutex
	rows      map[string]models.PayrollRecord
	order     []string
	saveErr   error
	saveCalls int
}

func newFakePayrollStore() *fakePayrollStore {
	return &fakePayrollStore{rows: make(map[string]models.PayrollRecord)}
}

func payrollKey(workspaceID, driverID, month string) string {
	return workspaceID + "|" + driverID + "|" + month
}

func (f *fakePayrollStore) SaveClosed(_ context.Context, records []models.PayrollRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, rec := range records {
		key := payrollKey(rec.WorkspaceID, rec.DriverID, rec.Month)
		existing, found := f.rows[key]
		if found && existing.IsClosed {
			continue
		}
		if !found {
			f.order = append(f.order, key)
		}
		f.rows[key] = rec
	}
	return nil
}

func (f *fakePayrollStore) ListPayroll(_ context.Context, workspaceID, month string) ([]models.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := []models.PayrollRecord{}
	for _, key := range f.order {
		rec := f.rows[key]
		if rec.WorkspaceID == workspaceID && rec.Month == month {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakePayrollStore) record(driverID string) models.PayrollRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.rows {
		if rec.DriverID == driverID {
			return rec
		}
	}
	return models.PayrollRecord{}
}

type fakeDriverStore struct {
	drivers []models.Driver
	calls   int
}

func (f *fakeDriverStore) ListDrivers(_ context.Context, workspaceID string, activeOnly bool) ([]models.Driver, error) {
	f.calls++
	out := []models.Driver{}
	for _, d := range f.drivers {
		if d.WorkspaceID == workspaceID && (!activeOnly || d.IsActive()) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDriverStore) GetDriver(_ context.Context, workspaceID, id string) (*models.Driver, error) {
	f.calls++
	for _, d := range f.drivers {
		if d.WorkspaceID == workspaceID && d.ID == id {
			return &d, nil
		}
	}
	return nil, utils.NewNotFoundError("Driver")
}

func (f *fakeDriverStore) CreateDriver(_ context.Context, driver *models.Driver) error {
	f.calls++
	f.drivers = append(f.drivers, *driver)
	return nil
}

func (f *fakeDriverStore) UpdateDriver(_ context.Context, driver *models.Driver) error {
	f.calls++
	for i, d := range f.drivers {
		if d.WorkspaceID == driver.WorkspaceID && d.ID == driver.ID {
			f.drivers[i] = *driver
			return nil
		}
	}
	return utils.NewNotFoundError("Driver")
}

func (f *fakeDriverStore) SetDriverStatus(_ context.Context, workspaceID, id string, status models.DriverStatus) error {
	f.calls++
	for i, d := range f.drivers {
		if d.WorkspaceID == workspaceID && d.ID == id {
			f.drivers[i].Status = status
			return nil
		}
	}
	return utils.NewNotFoundError("Driver")
}

type fakeLedgerStore struct {
	advances   []models.Advance
	deductions []models.Deduction
	calls      int
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func (f *fakeLedgerStore) ListAdvances(_ context.Context, workspaceID string, from, to time.Time) ([]models.Advance, error) {
	f.calls++
	out := []models.Advance{}
	for _, a := range f.advances {
		if a.WorkspaceID == workspaceID && inRange(a.Date, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) CreateAdvance(_ context.Context, a *models.Advance) error {
	f.calls++
	f.advances = append(f.advances, *a)
	return nil
}

func (f *fakeLedgerStore) DeleteAdvance(_ context.Context, workspaceID, id string) (bool, error) {
	f.calls++
	n := len(f.advances)
	f.advances = slices.DeleteFunc(f.advances, func(a models.Advance) bool {
		return a.WorkspaceID == workspaceID && a.ID == id
	})
	return len(f.advances) < n, nil
}

func (f *fakeLedgerStore) ListDeductions(_ context.Context, workspaceID string, from, to time.Time) ([]models.Deduction, error) {
	f.calls++
	out := []models.Deduction{}
	for _, d := range f.deductions {
		if d.WorkspaceID == workspaceID && inRange(d.Date, from, to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) CreateDeduction(_ context.Context, d *models.Deduction) error {
	f.calls++
	f.deductions = append(f.deductions, *d)
	return nil
}

func (f *fakeLedgerStore) DeleteDeduction(_ context.Context, workspaceID, id string) (bool, error) {
	f.calls++
	n := len(f.deductions)
	f.deductions = slices.DeleteFunc(f.deductions, func(d models.Deduction) bool {
		return d.WorkspaceID == workspaceID && d.ID == id
	})
	return len(f.deductions) < n, nil
}

type fakeTripStore struct {
	trips     []models.Trip
	templates []models.TripTemplate
	calls     int
}

func (f *fakeTripStore) ListTrips(_ context.Context, workspaceID string, from, to time.Time) ([]models.Trip, error) {
	f.calls++
	out := []models.Trip{}
	for _, t := range f.trips {
		if t.WorkspaceID == workspaceID && inRange(t.Date, from, to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTripStore) GetTrip(_ context.Context, workspaceID, id string) (*models.Trip, error) {
	f.calls++
	for _, t := range f.trips {
		if t.WorkspaceID == workspaceID && t.ID == id {
			return &t, nil
		}
	}
	return nil, utils.NewNotFoundError("Trip")
}

func (f *fakeTripStore) SaveTrip(_ context.Context, trip *models.Trip) error {
	f.calls++
	for i, t := range f.trips {
		if t.ID == trip.ID {
			if t.WorkspaceID == trip.WorkspaceID {
				f.trips[i] = *trip
			}
			return nil
		}
	}
	f.trips = append(f.trips, *trip)
	return nil
}

func (f *fakeTripStore) DeleteTrip(_ context.Context, workspaceID, id string) (bool, error) {
	f.calls++
	n := len(f.trips)
	f.trips = slices.DeleteFunc(f.trips, func(t models.Trip) bool {
		return t.WorkspaceID == workspaceID && t.ID == id
	})
	return len(f.trips) < n, nil
}

func (f *fakeTripStore) ListTemplates(_ context.Context, workspaceID string) ([]models.TripTemplate, error) {
	f.calls++
	out := []models.TripTemplate{}
	for _, t := range f.templates {
		if t.WorkspaceID == workspaceID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTripStore) CreateTemplate(_ context.Context, t *models.TripTemplate) error {
	f.calls++
	f.templates = append(f.templates, *t)
	return nil
}

func (f *fakeTripStore) DeleteTemplate(_ context.Context, workspaceID, id string) (bool, error) {
	f.calls++
	n := len(f.templates)
	f.templates = slices.DeleteFunc(f.templates, func(t models.TripTemplate) bool {
		return t.WorkspaceID == workspaceID && t.ID == id
	})
	return len(f.templates) < n, nil
}

type fakeWorkspaceStore struct {
	accounts   map[string]*models.Account
	workspaces []models.Workspace
	settings   map[string]models.Settings
	stats      models.DashboardStats
	calls      int
}

func newFakeWorkspaceStore() *fakeWorkspaceStore {
	return &fakeWorkspaceStore{
		accounts: map[string]*models.Account{"acc-1": {ID: "acc-1", Name: "Acme Fleet"}},
		workspaces: []models.Workspace{
			{ID: testWorkspace, AccountID: "acc-1", Name: "North Hub"},
		},
		settings: map[string]models.Settings{},
	}
}

func (f *fakeWorkspaceStore) GetAccount(_ context.Context, id string) (*models.Account, error) {
	f.calls++
	a, ok := f.accounts[id]
	if !ok {
		return nil, utils.NewNotFoundError("Account")
	}
	copied := *a
	return &copied, nil
}

func (f *fakeWorkspaceStore) SetAccountLocked(_ context.Context, id string, locked bool) error {
	f.calls++
	a, ok := f.accounts[id]
	if !ok {
		return utils.NewNotFoundError("Account")
	}
	a.IsLocked = locked
	return nil
}

func (f *fakeWorkspaceStore) ListWorkspaces(_ context.Context, accountID string) ([]models.Workspace, error) {
	f.calls++
	out := []models.Workspace{}
	for _, w := range f.workspaces {
		if w.AccountID == accountID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkspaceStore) GetWorkspace(_ context.Context, id string) (*models.Workspace, error) {
	f.calls++
	for _, w := range f.workspaces {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, utils.NewNotFoundError("Workspace")
}

func (f *fakeWorkspaceStore) CreateWorkspace(_ context.Context, w *models.Workspace, settings models.Settings) error {
	f.calls++
	f.workspaces = append(f.workspaces, *w)
	f.settings[w.ID] = settings
	return nil
}

func (f *fakeWorkspaceStore) UpdateWorkspace(_ context.Context, w *models.Workspace) error {
	f.calls++
	for i, existing := range f.workspaces {
		if existing.ID == w.ID && existing.AccountID == w.AccountID {
			f.workspaces[i] = *w
			return nil
		}
	}
	return utils.NewNotFoundError("Workspace")
}

func (f *fakeWorkspaceStore) DeleteWorkspace(_ context.Context, accountID, id string) (bool, error) {
	f.calls++
	n := len(f.workspaces)
	f.workspaces = slices.DeleteFunc(f.workspaces, func(w models.Workspace) bool {
		return w.AccountID == accountID && w.ID == id
	})
	return len(f.workspaces) < n, nil
}

func (f *fakeWorkspaceStore) GetSettings(_ context.Context, workspaceID string) (*models.Settings, error) {
	f.calls++
	s, ok := f.settings[workspaceID]
	if !ok {
		s = models.DefaultSettings(workspaceID)
	}
	return &s, nil
}

func (f *fakeWorkspaceStore) SaveSettings(_ context.Context, s *models.Settings) error {
	f.calls++
	f.settings[s.WorkspaceID] = *s
	return nil
}

func (f *fakeWorkspaceStore) DashboardStats(_ context.Context, _, _ string) (*models.DashboardStats, error) {
	f.calls++
	stats := f.stats
	return &stats, nil
}

type fakeManagerStore struct {
	managers []models.Manager
	calls    int
}

func (f *fakeManagerStore) ListManagers(_ context.Context, accountID string) ([]models.Manager, error) {
	f.calls++
	out := []models.Manager{}
	for _, m := range f.managers {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeManagerStore) GetManager(_ context.Context, accountID, id string) (*models.Manager, error) {
	f.calls++
	for _, m := range f.managers {
		if m.AccountID == accountID && m.ID == id {
			return &m, nil
		}
	}
	return nil, utils.NewNotFoundError("Manager")
}

func (f *fakeManagerStore) SaveManager(_ context.Context, m *models.Manager) error {
	f.calls++
	for i, existing := range f.managers {
		if existing.ID == m.ID {
			f.managers[i] = *m
			return nil
		}
	}
	f.managers = append(f.managers, *m)
	return nil
}

func (f *fakeManagerStore) DeleteManager(_ context.Context, accountID, id string) (bool, error) {
	f.calls++
	n := len(f.managers)
	f.managers = slices.DeleteFunc(f.managers, func(m models.Manager) bool {
		return m.AccountID == accountID && m.ID == id
	})
	return len(f.managers) < n, nil
}
