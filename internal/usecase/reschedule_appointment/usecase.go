package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	appointmentRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/workinghours"
)

// UseCase moves an active appointment to a new window. The conflict check
// excludes the appointment itself so moving within its own slot works, and
// runs with the update inside one serializable transaction.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	holidayRepo     HolidayRepository
	catalogRepo     CatalogRepository
	cache           SlotCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	minAdvanceHours int
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	holidayRepo HolidayRepository,
	catalogRepo CatalogRepository,
	cache SlotCache,
	txManager TransactionManager,
	minAdvanceHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		holidayRepo:     holidayRepo,
		catalogRepo:     catalogRepo,
		cache:           cache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		minAdvanceHours: minAdvanceHours,
	}
}

// WithTimeProvider swaps the clock, for tests.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute moves the appointment and returns its new state.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%s, user=%s, date=%s, time=%s",
		req.AppointmentID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment %s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment %s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !req.IsAdmin && appointment.UserID != req.UserID {
		uc.logger.Warn("RescheduleAppointment: user %s does not own appointment %s", req.UserID, req.AppointmentID)
		return nil, ErrUnauthorized
	}
	if !appointment.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment %s has status %s", req.AppointmentID, appointment.Status)
		return nil, ErrNotReschedulable
	}

	targetStaffID := appointment.StaffID
	if req.StaffID != nil {
		targetStaffID = *req.StaffID
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, targetStaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("RescheduleAppointment: staff %s not found", targetStaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get staff %s: %v", targetStaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("RescheduleAppointment: staff %s is inactive", targetStaffID)
		return nil, ErrStaffInactive
	}

	endTime, err := req.StartTime.AddMinutes(appointment.ServiceDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if err := validateAdvance(req.Date, req.StartTime, now, uc.minAdvanceHours); err != nil {
		uc.logger.Warn("RescheduleAppointment: advance validation failed: %v", err)
		return nil, err
	}

	holidays, err := uc.holidayRepo.ListForStaffOnDate(ctx, targetStaffID, req.Date)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}
	if isBlockedByHoliday(holidays, targetStaffID, req.Date) {
		uc.logger.Warn("RescheduleAppointment: %s is a holiday for staff %s",
			req.Date.Format(domain.DateFormat), targetStaffID)
		return nil, ErrStaffUnavailable
	}

	workingHours, err := uc.scheduleRepo.GetByStaffAndWeekday(ctx, targetStaffID, domain.ISOWeekday(req.Date))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Warn("RescheduleAppointment: staff %s does not work on weekday %d",
				targetStaffID, domain.ISOWeekday(req.Date))
			return nil, ErrStaffUnavailable
		}
		uc.logger.Error("RescheduleAppointment: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if err := validateWithinWorkingHours(workingHours, req.Date, req.StartTime, endTime); err != nil {
		uc.logger.Warn("RescheduleAppointment: working hours validation failed: %v", err)
		return nil, err
	}

	oldStaffID := appointment.StaffID
	oldDate := appointment.Date

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := uc.appointmentRepo.FindConflicts(
			txCtx, targetStaffID, req.Date, req.StartTime, endTime, &appointment.ID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("RescheduleAppointment: window %s-%s on %s conflicts with %d appointment(s)",
				req.StartTime, endTime, req.Date.Format(domain.DateFormat), len(conflicts))
			return ErrSlotConflict
		}

		appointment.StaffID = targetStaffID
		appointment.Date = req.Date
		appointment.StartTime = req.StartTime
		appointment.EndTime = endTime

		if err := uc.appointmentRepo.Update(txCtx, appointment); err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateStart) {
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment: %v", err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, oldStaffID, oldDate)
	if targetStaffID != oldStaffID || !domain.SameDay(req.Date, oldDate) {
		uc.invalidate(ctx, targetStaffID, req.Date)
	}

	uc.logger.Info("RescheduleAppointment: moved appointment id=%s to %s %s",
		appointment.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &Response{
		ID:        appointment.ID,
		UserID:    appointment.UserID,
		StaffID:   appointment.StaffID,
		ServiceID: appointment.ServiceID,

		Date:      appointment.Date,
		StartTime: appointment.StartTime,
		EndTime:   appointment.EndTime,
		Status:    string(appointment.Status),

		ServiceName:            appointment.ServiceName,
		ServicePriceCents:      appointment.ServicePriceCents,
		ServiceDurationMinutes: appointment.ServiceDurationMinutes,

		Notes: appointment.Notes,

		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}, nil
}

func (uc *UseCase) invalidate(ctx context.Context, staffID uuid.UUID, date time.Time) {
	if err := uc.cache.Invalidate(ctx, staffID, date); err != nil {
		uc.logger.Warn("RescheduleAppointment: cache invalidation failed for staff=%s date=%s: %v",
			staffID, date.Format(domain.DateFormat), err)
	}
}
