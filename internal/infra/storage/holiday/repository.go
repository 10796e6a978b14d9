package holiday

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	"github.com/coiffurelab/salon-booking-service/pkg/dbmetrics"
	"github.com/coiffurelab/salon-booking-service/pkg/psqlbuilder"
)

var holidayColumns = []string{
	"id",
	"staff_id",
	"name",
	"start_date",
	"end_date",
	"is_recurring",
	"created_at",
}

// Repository provides read access to salon closures and staff leave.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListForStaffOnDate returns holidays that may block the staff member on the
// given date: global and personal rows whose absolute range covers the date,
// plus every recurring row in scope. Recurring rows are returned regardless of
// stored year; the caller matches them with Holiday.Covers.
func (r *Repository) ListForStaffOnDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holidays").
		Where(squirrel.Or{
			squirrel.Eq{"staff_id": nil},
			squirrel.Eq{"staff_id": staffID},
		}).
		Where(squirrel.Or{
			squirrel.Eq{"is_recurring": true},
			squirrel.And{
				squirrel.LtOrEq{"start_date": date},
				squirrel.GtOrEq{"end_date": date},
			},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForStaffOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForStaffOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHolidays(rows)
}

func scanHolidays(rows *sql.Rows) ([]*domain.Holiday, error) {
	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		var staffID uuid.NullUUID

		err := rows.Scan(
			&h.ID,
			&staffID,
			&h.Name,
			&h.StartDate,
			&h.EndDate,
			&h.Recurring,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan holiday: %v", ErrScanRow, err)
		}

		if staffID.Valid {
			h.Scope = domain.StaffScope(staffID.UUID)
		} else {
			h.Scope = domain.GlobalScope()
		}
		holidays = append(holidays, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return holidays, nil
}
