package repository

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/fleetpay-backend/models"
	"github.com/fadhlanhapp/fleetpay-backend/utils"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, mock
}

func date(s string) time.Time {
	t, _ := time.Parse(utils.DateLayout, s)
	return t
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

var driverRowColumns = []string{
	"id", "workspace_id", "account_id", "name", "phone", "monthly_salary",
	"joining_date", "leaving_date", "status", "created_at",
}

func TestDriverRepository_ListDrivers(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewDriverRepository(conn)
	now := time.Now()

	rows := sqlmock.NewRows(driverRowColumns).
		AddRow("d1", "ws1", "acc1", "Ravi", "555", "3000.00", date("2024-01-10"), nil, "active", now).
		AddRow("d2", "ws1", "acc1", "Omar", "", "2500", date("2023-05-01"), date("2024-01-15"), "closed", now)
	mock.ExpectQuery("FROM drivers WHERE workspace_id = \\$1 ORDER BY").
		WithArgs("ws1").
		WillReturnRows(rows)

	drivers, err := repo.ListDrivers(context.Background(), "ws1", false)
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	assert.Equal(t, "Ravi", drivers[0].Name)
	assert.True(t, drivers[0].MonthlySalary.Equal(decimal.NewFromInt(3000)))
	assert.Nil(t, drivers[0].LeavingDate)
	assert.Equal(t, models.DriverActive, drivers[0].Status)

	require.NotNil(t, drivers[1].LeavingDate)
	assert.Equal(t, date("2024-01-15"), *drivers[1].LeavingDate)
	assert.Equal(t, models.DriverClosed, drivers[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepository_ListDrivers_ActiveOnly(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewDriverRepository(conn)

	mock.ExpectQuery("status = 'active'").
		WithArgs("ws1").
		WillReturnRows(sqlmock.NewRows(driverRowColumns))

	drivers, err := repo.ListDrivers(context.Background(), "ws1", true)
	require.NoError(t, err)
	assert.Empty(t, drivers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepository_GetDriver_NotFound(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewDriverRepository(conn)

	mock.ExpectQuery("FROM drivers WHERE workspace_id").
		WithArgs("ws1", "missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDriver(context.Background(), "ws1", "missing")
	assertStatus(t, err, http.StatusNotFound)
}

func TestDriverRepository_SetDriverStatus(t *testing.T) {
	t.Run("soft deletes", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewDriverRepository(conn)

		mock.ExpectExec("UPDATE drivers SET status").
			WithArgs("closed", "ws1", "d1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetDriverStatus(context.Background(), "ws1", "d1", models.DriverClosed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown driver", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewDriverRepository(conn)

		mock.ExpectExec("UPDATE drivers SET status").
			WithArgs("closed", "ws1", "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetDriverStatus(context.Background(), "ws1", "nope", models.DriverClosed)
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestLedgerRepository_ListAdvances_UsesDateRange(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewLedgerRepository(conn)
	month, _ := models.ParseMonth("2024-02")

	mock.ExpectQuery("FROM advances").
		WithArgs("ws1", month.Start(), month.End()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "workspace_id", "account_id", "driver_id", "amount", "date", "description", "created_at",
		}).AddRow("a1", "ws1", "acc1", "d1", "150.50", date("2024-02-29"), "fuel", time.Now()))

	advances, err := repo.ListAdvances(context.Background(), "ws1", month.Start(), month.End())
	require.NoError(t, err)
	require.Len(t, advances, 1)
	assert.Equal(t, "150.5", advances[0].Amount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_DeleteDeduction_ReportsMiss(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewLedgerRepository(conn)

	mock.ExpectExec("DELETE FROM deductions").
		WithArgs("ws1", "x").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteDeduction(context.Background(), "ws1", "x")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTripRepository_SaveTrip(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTripRepository(conn)

	trip := &models.Trip{
		ID: "t1", WorkspaceID: "ws1", AccountID: "acc1", DriverID: "d1",
		Route: "Depot - Airport", Date: date("2024-01-05"),
		Allowance: decimal.NewFromInt(200), Status: models.TripCompleted, CreatedAt: time.Now(),
	}
	mock.ExpectExec("ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("t1", "ws1", "acc1", "d1", "Depot - Airport", trip.Date, sqlmock.AnyArg(), "completed", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveTrip(context.Background(), trip))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_SaveClosed(t *testing.T) {
	closedAt := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	records := []models.PayrollRecord{
		{ID: "p1", WorkspaceID: "ws1", AccountID: "acc1", DriverID: "d1", Month: "2024-01", IsClosed: true, PaymentType: "Cash", ClosedAt: &closedAt},
		{ID: "p2", WorkspaceID: "ws1", AccountID: "acc1", DriverID: "d2", Month: "2024-01", IsClosed: true, PaymentType: "Bank Transfer", ClosedAt: &closedAt},
	}

	t.Run("commits all rows", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewPayrollRepository(conn)

		mock.ExpectBegin()
		stmt := mock.ExpectPrepare("WHERE NOT payroll.is_closed")
		stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveClosed(context.Background(), records))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a row fails", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewPayrollRepository(conn)
		boom := errors.New("connection reset")

		mock.ExpectBegin()
		stmt := mock.ExpectPrepare("INSERT INTO payroll")
		stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		stmt.ExpectExec().WillReturnError(boom)
		mock.ExpectRollback()

		err := repo.SaveClosed(context.Background(), records)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "d2")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPayrollRepository_ListPayroll(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewPayrollRepository(conn)

	mock.ExpectQuery("FROM payroll WHERE workspace_id").
		WithArgs("ws1", "2024-01").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "workspace_id", "account_id", "driver_id", "month", "base_salary", "days_in_month", "active_days",
			"total_advances", "total_deductions", "total_allowances", "final_salary",
			"is_prorated", "is_closed", "payment_type", "closed_at",
		}).AddRow("p1", "ws1", "acc1", "d1", "2024-01", "2000", 31, 31, "300", "100", "250", "1850",
			false, true, "Cash", nil))

	records, err := repo.ListPayroll(context.Background(), "ws1", "2024-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsClosed)
	assert.Nil(t, records[0].ClosedAt)
	assert.True(t, records[0].FinalSalary.Equal(decimal.NewFromInt(1850)))
}

func TestWorkspaceRepository_CreateWorkspace(t *testing.T) {
	t.Run("stores workspace and settings together", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewWorkspaceRepository(conn)
		ws := &models.Workspace{ID: "ws1", AccountID: "acc1", Name: "North Hub", CreatedAt: time.Now()}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO workspaces").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO settings").
			WithArgs("ws1", "prorated", "USD", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateWorkspace(context.Background(), ws, models.DefaultSettings("ws1")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when settings fail", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewWorkspaceRepository(conn)
		ws := &models.Workspace{ID: "ws1", AccountID: "acc1", Name: "North Hub", CreatedAt: time.Now()}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO workspaces").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO settings").WillReturnError(errors.New("constraint"))
		mock.ExpectRollback()

		require.Error(t, repo.CreateWorkspace(context.Background(), ws, models.DefaultSettings("ws1")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWorkspaceRepository_GetSettings(t *testing.T) {
	t.Run("reads payment types array", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewWorkspaceRepository(conn)

		mock.ExpectQuery("FROM settings WHERE workspace_id").
			WithArgs("ws1").
			WillReturnRows(sqlmock.NewRows([]string{"calc_type", "currency", "payment_types"}).
				AddRow("monthly", "INR", `{Cash,"Bank Transfer",UPI}`))

		s, err := repo.GetSettings(context.Background(), "ws1")
		require.NoError(t, err)
		assert.Equal(t, models.CalcMonthly, s.CalcType)
		assert.Equal(t, "INR", s.Currency)
		assert.Equal(t, []string{"Cash", "Bank Transfer", "UPI"}, s.PaymentTypes)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		conn, mock := newMock(t)
		repo := NewWorkspaceRepository(conn)

		mock.ExpectQuery("FROM settings WHERE workspace_id").
			WithArgs("ws1").
			WillReturnError(sql.ErrNoRows)

		s, err := repo.GetSettings(context.Background(), "ws1")
		require.NoError(t, err)
		assert.Equal(t, models.DefaultSettings("ws1"), *s)
	})
}

func TestWorkspaceRepository_SetAccountLocked(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewWorkspaceRepository(conn)

	mock.ExpectExec("UPDATE accounts SET is_locked").
		WithArgs(true, "acc1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET is_locked").
		WithArgs(false, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetAccountLocked(context.Background(), "acc1", true))
	assertStatus(t, repo.SetAccountLocked(context.Background(), "ghost", false), http.StatusNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerRepository_GetManager(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewManagerRepository(conn)

	mock.ExpectQuery("FROM managers WHERE account_id").
		WithArgs("acc1", "m1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "account_id", "workspace_id", "name", "email",
			"can_manage_drivers", "can_manage_advances", "can_manage_deductions", "can_manage_trips", "can_close_payroll",
			"created_at",
		}).AddRow("m1", "acc1", "ws1", "Lena", "lena@example.com", true, false, false, true, false, time.Now()))

	m, err := repo.GetManager(context.Background(), "acc1", "m1")
	require.NoError(t, err)
	assert.True(t, m.CanManageDrivers)
	assert.True(t, m.CanManageTrips)
	assert.False(t, m.CanClosePayroll)
	assert.Equal(t, "ws1", m.WorkspaceID)
}
