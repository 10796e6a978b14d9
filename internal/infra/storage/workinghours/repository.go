package workinghours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	"github.com/coiffurelab/salon-booking-service/pkg/dbmetrics"
	"github.com/coiffurelab/salon-booking-service/pkg/psqlbuilder"
)

var workingHoursColumns = []string{
	"id",
	"staff_id",
	"weekday",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
}

// Repository provides read access to staff weekly schedules.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffAndWeekday fetches the schedule row for one ISO weekday
// (1 = Monday .. 7 = Sunday).
func (r *Repository) GetByStaffAndWeekday(ctx context.Context, staffID uuid.UUID, weekday int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{
			"staff_id": staffID,
			"weekday":  weekday,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.StaffID,
		&wh.Weekday,
		&wh.StartTime,
		&wh.EndTime,
		&wh.BreakStart,
		&wh.BreakEnd,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - scan row: %v", ErrScanRow, err)
	}

	return &wh, nil
}
