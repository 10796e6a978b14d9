package catalog

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

// Repository provides read access to the service and staff catalog.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService fetches one service by id.
func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "description", "duration_minutes", "price_cents",
		"is_active", "display_order", "created_at", "updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.DurationMinutes,
		&svc.PriceCents,
		&svc.Active,
		&svc.DisplayOrder,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan row: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// ListActiveServices returns the bookable services in display order.
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "description", "duration_minutes", "price_cents",
		"is_active", "display_order", "created_at", "updated_at",
	).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("display_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		err = rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.DurationMinutes,
			&svc.PriceCents,
			&svc.Active,
			&svc.DisplayOrder,
			&svc.CreatedAt,
			&svc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetStaff fetches one staff member by id.
func (r *Repository) GetStaff(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "full_name", "specialty", "is_active", "created_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var sm domain.StaffMember
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sm.ID,
		&sm.FullName,
		&sm.Specialty,
		&sm.Active,
		&sm.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan row: %v", ErrScanRow, err)
	}

	return &sm, nil
}
