package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	"github.com/coiffurelab/salon-booking-service/pkg/dbmetrics"
	"github.com/coiffurelab/salon-booking-service/pkg/psqlbuilder"
	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

var appointmentColumns = []string{
	"id",
	"user_id",
	"staff_id",
	"service_id",
	"appointment_date",
	"start_time",
	"end_time",
	"status",
	"service_name",
	"service_price_cents",
	"service_duration_minutes",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository provides appointment persistence. All methods run on the
// transaction from the context when one is active.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an appointment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment and fills in the generated fields. A
// violation of the (staff_id, appointment_date, start_time) uniqueness
// backstop is reported as ErrDuplicateStart.
func (r *Repository) Create(ctx context.Context, ap *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"user_id",
			"staff_id",
			"service_id",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"service_name",
			"service_price_cents",
			"service_duration_minutes",
			"notes",
		).
		Values(
			ap.ID,
			ap.UserID,
			ap.StaffID,
			ap.ServiceID,
			ap.Date,
			ap.StartTime,
			ap.EndTime,
			ap.Status,
			ap.ServiceName,
			ap.ServicePriceCents,
			ap.ServiceDurationMinutes,
			ap.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateStart
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	ap.CreatedAt = createdAt.Time
	ap.UpdatedAt = updatedAt.Time
	return ap, nil
}

// GetByID fetches one appointment.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	ap, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}
	return ap, nil
}

// GetByUserID returns a user's appointments, newest first.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("appointment_date DESC", "start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListActiveForStaffDay returns the staff member's active appointments for one
// date, ordered by start time. Inside a transaction the rows are locked FOR
// UPDATE so concurrent booking attempts on the same staff/day serialize.
func (r *Repository) ListActiveForStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"staff_id":         staffID,
			"appointment_date": date,
			"status":           statusStrings(domain.ActiveStatuses),
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForStaffDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForStaffDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListForStaffRange returns a staff member's appointments between two dates
// (inclusive), for the admin calendar. Cancelled and no-show rows are included.
func (r *Repository) ListForStaffRange(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"appointment_date": from}).
		Where(squirrel.LtOrEq{"appointment_date": to}).
		OrderBy("appointment_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForStaffRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForStaffRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// FindConflicts returns active appointments of the staff member whose window
// strictly overlaps [start, end) on the given date. excludeID, when non-nil,
// leaves out the appointment being rescheduled.
func (r *Repository) FindConflicts(
	ctx context.Context,
	staffID uuid.UUID,
	date time.Time,
	start, end types.TimeString,
	excludeID *uuid.UUID,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"staff_id":         staffID,
			"appointment_date": date,
			"status":           statusStrings(domain.ActiveStatuses),
		}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update persists a reschedule: staff, date, window, denormalized service
// fields and notes.
func (r *Repository) Update(ctx context.Context, ap *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("staff_id", ap.StaffID).
		Set("service_id", ap.ServiceID).
		Set("appointment_date", ap.Date).
		Set("start_time", ap.StartTime).
		Set("end_time", ap.EndTime).
		Set("service_name", ap.ServiceName).
		Set("service_price_cents", ap.ServicePriceCents).
		Set("service_duration_minutes", ap.ServiceDurationMinutes).
		Set("notes", ap.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": ap.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateStart
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// UpdateStatus changes only the status column.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// Cancel records a cancellation with its reason and timestamp.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Cancel")
}

func checkAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var ap domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&ap.ID,
		&ap.UserID,
		&ap.StaffID,
		&ap.ServiceID,
		&ap.Date,
		&ap.StartTime,
		&ap.EndTime,
		&ap.Status,
		&ap.ServiceName,
		&ap.ServicePriceCents,
		&ap.ServiceDurationMinutes,
		&ap.Notes,
		&ap.CancellationReason,
		&ap.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ap.CreatedAt = createdAt.Time
	ap.UpdatedAt = updatedAt.Time
	return &ap, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		ap, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return appointments, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
