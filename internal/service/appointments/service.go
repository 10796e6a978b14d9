package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	appointmentRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/appointment"
	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

// Service covers appointment reads and lifecycle transitions that do not move
// the booked window: cancel, confirm, complete, no-show. Creation and
// rescheduling live in their own use cases because they need the serializable
// conflict guard.
type Service struct {
	appointmentRepo   AppointmentRepository
	catalogRepo       CatalogRepository
	cache             SlotCache
	timeProvider      TimeProvider
	logger            Logger
	cancellationHours int
}

func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	cache SlotCache,
	cancellationHours int,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:   appointmentRepo,
		catalogRepo:       catalogRepo,
		cache:             cache,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
		cancellationHours: cancellationHours,
	}
}

// WithTimeProvider swaps the clock, for tests.
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID fetches one appointment. Clients may only read their own.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && appointment.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments returns the user's booking history, optionally filtered
// by status.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%s, status=%v", req.UserID, req.Status)

	var statusFilter *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		statusFilter = &status
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	if statusFilter != nil {
		filtered := appointments[:0]
		for _, a := range appointments {
			if a.Status == *statusFilter {
				filtered = append(filtered, a)
			}
		}
		appointments = filtered
	}

	s.logger.Info("GetUserAppointments: fetched %d appointments for user=%s", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetStaffAppointments returns a staff member's calendar over a date range.
// Admin only.
func (s *Service) GetStaffAppointments(ctx context.Context, req *models.GetStaffAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetStaffAppointments: staff=%s, period=%s to %s",
		req.StaffID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if !req.IsAdmin {
		s.logger.Warn("GetStaffAppointments: access denied for user=%s", req.UserID)
		return nil, ErrAccessDenied
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: invalid date range", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListForStaffRange(ctx, req.StaffID, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("GetStaffAppointments: repository error for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffAppointments: fetched %d appointments for staff=%s", len(appointments), req.StaffID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel cancels an active appointment. Clients may only cancel their own;
// the cancellation window applies to every caller, admins included.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", id, req.UserID)

	appointment, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !req.IsAdmin && appointment.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%s to appointment id=%s", req.UserID, id)
		return ErrAccessDenied
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()
	startsAt, err := appointment.StartsAt()
	if err != nil {
		s.logger.Error("Cancel: bad start time on appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - bad start time: %v", ErrInternal, err)
	}
	if now.Add(time.Duration(s.cancellationHours) * time.Hour).After(startsAt) {
		s.logger.Warn("Cancel: cancellation window closed for appointment id=%s", id)
		return ErrCancellationTooLate
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.Reason, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Cancel", appointment)
	s.logger.Info("Cancel: cancelled appointment id=%s", id)
	return nil
}

// Confirm moves a pending appointment to confirmed. Admin only.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, req *models.ConfirmAppointmentRequest) error {
	s.logger.Info("Confirm: confirming appointment id=%s by user=%s", id, req.UserID)

	if !req.IsAdmin {
		s.logger.Warn("Confirm: access denied for user=%s", req.UserID)
		return ErrAccessDenied
	}

	appointment, err := s.getAppointment(ctx, "Confirm", id)
	if err != nil {
		return err
	}

	if err := appointment.Confirm(); err != nil {
		s.logger.Warn("Confirm: appointment id=%s has status %s", id, appointment.Status)
		return ErrCannotConfirm
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, appointment.Status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Confirm: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: confirmed appointment id=%s", id)
	return nil
}

// UpdateStatus applies a terminal transition: completed or no_show. Admin
// only. Cancellation goes through Cancel so the reason and timestamp are
// recorded.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	if !req.IsAdmin {
		s.logger.Warn("UpdateStatus: access denied for user=%s", req.UserID)
		return ErrAccessDenied
	}

	status, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return ErrInvalidStatus
	}

	appointment, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return err
	}

	switch status {
	case domain.StatusCompleted:
		err = appointment.Complete()
	case domain.StatusNoShow:
		err = appointment.MarkNoShow()
	default:
		s.logger.Warn("UpdateStatus: status %s is not reachable through this operation", status)
		return ErrInvalidStatus
	}
	if err != nil {
		s.logger.Warn("UpdateStatus: appointment id=%s rejected transition to %s: %v", id, status, err)
		return ErrInvalidStatus
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, appointment.Status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "UpdateStatus", appointment)
	s.logger.Info("UpdateStatus: appointment id=%s moved to %s", id, appointment.Status)
	return nil
}

// ListServices returns the bookable catalog.
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// invalidate drops the cached grid for the appointment's day after a
// transition frees (or keeps occupying) its slot.
func (s *Service) invalidate(ctx context.Context, op string, appointment *domain.Appointment) {
	if err := s.cache.Invalidate(ctx, appointment.StaffID, appointment.Date); err != nil {
		s.logger.Warn("%s: cache invalidation failed for staff=%s date=%s: %v",
			op, appointment.StaffID, appointment.Date.Format(domain.DateFormat), err)
	}
}
