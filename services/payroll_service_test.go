package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

type payrollHarness struct {
	service    *PayrollService
	drivers    *fakeDriverStore
	ledger     *fakeLedgerStore
	trips      *fakeTripStore
	payroll    *fakePayrollStore
	workspaces *fakeWorkspaceStore
}

func newPayrollHarness(t *testing.T) *payrollHarness {
	t.Helper()
	h := &payrollHarness{
		drivers:    &fakeDriverStore{},
		ledger:     &fakeLedgerStore{},
		trips:      &fakeTripStore{},
		payroll:    newFakePayrollStore(),
		workspaces: newFakeWorkspaceStore(),
	}
	stores := Stores{
		Drivers:    h.drivers,
		Ledger:     h.ledger,
		Trips:      h.trips,
		Payroll:    h.payroll,
		Workspaces: h.workspaces,
		Managers:   &fakeManagerStore{},
	}
	h.service = NewPayrollService(NewPayrollEngine(), newTestGate(t), stores, NewExcelService(), zap.NewNop())
	h.service.now = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func (h *payrollHarness) seedJanuary() {
	h.workspaces.settings[testWorkspace] = models.Settings{
		WorkspaceID:  testWorkspace,
		CalcType:     models.CalcProrated,
		Currency:     "INR",
		PaymentTypes: []string{"Cash", "Bank Transfer"},
	}
	h.drivers.drivers = []models.Driver{
		driver("d1", "2024-01-10", 3000),
		driver("d2", "2023-01-01", 3100),
		driver("d3", "2024-03-01", 5000),
	}
	h.ledger.advances = []models.Advance{
		{ID: "a1", WorkspaceID: testWorkspace, DriverID: "d2", Amount: money(100), Date: day("2024-01-05"), Description: "fuel"},
		{ID: "a2", WorkspaceID: testWorkspace, DriverID: "d2", Amount: money(999), Date: day("2024-02-01")},
	}
	h.ledger.deductions = []models.Deduction{
		{ID: "x1", WorkspaceID: testWorkspace, DriverID: "d2", Amount: money(50), Date: day("2024-01-20"), Reason: "late"},
	}
	h.trips.trips = []models.Trip{
		{ID: "t1", WorkspaceID: testWorkspace, DriverID: "d2", Route: "Depot - Port", Allowance: money(200), Date: day("2024-01-11"), Status: models.TripCompleted},
		{ID: "t2", WorkspaceID: testWorkspace, DriverID: "d2", Route: "Depot - Mall", Allowance: money(500), Date: day("2024-01-12"), Status: models.TripPending},
	}
}

func TestPayrollService_Preview(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()

	sheet, err := h.service.Preview(context.Background(), owner(), "2024-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-01", sheet.Month)
	assert.Equal(t, "₹", sheet.Symbol)
	assert.Equal(t, models.CalcProrated, sheet.CalcType)
	assert.False(t, sheet.IsMonthClosed)
	require.Len(t, sheet.Lines, 2)

	assert.Equal(t, "d1", sheet.Lines[0].DriverID)
	assert.Equal(t, 22, sheet.Lines[0].ActiveDays)

	d2 := sheet.Lines[1]
	assert.True(t, d2.BaseSalary.Equal(money(3100)))
	assert.True(t, d2.FinalSalary.Equal(money(3150)), "got %s", d2.FinalSalary)
	assert.Equal(t, 1, d2.TripCount)
	assert.Equal(t, "Cash", d2.PaymentType)
}

func TestPayrollService_PreviewInvalidMonthIsEmpty(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()

	sheet, err := h.service.Preview(context.Background(), owner(), "2024-13")
	require.NoError(t, err)
	assert.Empty(t, sheet.Lines)
	assert.False(t, sheet.IsMonthClosed)
}

func TestPayrollService_PreviewAllowedWhenLocked(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()
	actor := owner()
	actor.Locked = true

	sheet, err := h.service.Preview(context.Background(), actor, "2024-01")
	require.NoError(t, err)
	assert.Len(t, sheet.Lines, 2)
}

func TestPayrollService_Close(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()

	sheet, err := h.service.Close(context.Background(), owner(), "2024-01", map[string]string{"d1": "Bank Transfer"})
	require.NoError(t, err)
	assert.True(t, sheet.IsMonthClosed)
	assert.Equal(t, "Bank Transfer", sheet.Lines[0].PaymentType)

	records, err := h.service.History(context.Background(), owner(), "2024-01")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Bank Transfer", h.payroll.record("d1").PaymentType)
	assert.Equal(t, "Cash", h.payroll.record("d2").PaymentType)
	assert.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), *h.payroll.record("d2").ClosedAt)

	preview, err := h.service.Preview(context.Background(), owner(), "2024-01")
	require.NoError(t, err)
	assert.True(t, preview.IsMonthClosed)
}

func TestPayrollService_CloseTwiceIsConflict(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()

	_, err := h.service.Close(context.Background(), owner(), "2024-01", nil)
	require.NoError(t, err)

	_, err = h.service.Close(context.Background(), owner(), "2024-01", nil)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, 1, h.payroll.saveCalls)
}

func TestPayrollService_CloseRejectedBeforeAnyStoreCall(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()
	locked := owner()
	locked.Locked = true

	_, err := h.service.Close(context.Background(), locked, "2024-01", nil)
	assertForbidden(t, err, utils.ErrAccountLocked)

	_, err = h.service.Close(context.Background(), manager(models.Permissions{CanManageTrips: true}), "2024-01", nil)
	assertForbidden(t, err, utils.ErrPermissionDenied)

	assert.Zero(t, h.drivers.calls)
	assert.Zero(t, h.workspaces.calls)
	assert.Zero(t, h.payroll.saveCalls)
}

func TestPayrollService_CloseValidation(t *testing.T) {
	h := newPayrollHarness(t)

	_, err := h.service.Close(context.Background(), owner(), "2024-13", nil)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrInvalidMonth, appErr.Message)

	_, err = h.service.Close(context.Background(), owner(), "2024-01", nil)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrNothingToClose, appErr.Message)
}

func TestPayrollService_ClosePropagatesPersistenceFailure(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()
	boom := errors.New("connection refused")
	h.payroll.saveErr = boom

	_, err := h.service.Close(context.Background(), owner(), "2024-01", nil)
	assert.ErrorIs(t, err, boom)

	preview, err := h.service.Preview(context.Background(), owner(), "2024-01")
	require.NoError(t, err)
	assert.False(t, preview.IsMonthClosed)
}

func TestPayrollService_Export(t *testing.T) {
	h := newPayrollHarness(t)
	h.seedJanuary()

	f, filename, err := h.service.Export(context.Background(), owner(), "2024-01")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "North_Hub_Payroll_2024-01.xlsx", filename)
	assert.Equal(t, []string{"Payroll", "Ledger"}, f.GetSheetList())

	name, err := f.GetCellValue("Payroll", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Driver d1", name)

	total, err := f.GetCellValue("Payroll", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	rows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	// header, one advance, one deduction, one completed trip
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Advance", "2024-01-05", "Driver d2", "fuel", "100"}, rows[1])
	assert.Equal(t, "Trip", rows[3][0])
}

func TestPayrollService_ExportInvalidMonth(t *testing.T) {
	h := newPayrollHarness(t)

	_, _, err := h.service.Export(context.Background(), owner(), "13-2024")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
