package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	appointmentRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/workinghours"
)

// UseCase books an appointment. The conflict check and the insert run inside
// one serializable transaction so two clients racing for the same window
// cannot both succeed.
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
	observer        ConflictObserver
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

// WithConflictObserver registers an observer for rejected bookings.
func (uc *UseCase) WithConflictObserver(o ConflictObserver) *UseCase {
	uc.observer = o
	return uc
}

func (uc *UseCase) observeConflict() {
	if uc.observer != nil {
		uc.observer.ObserveSlotConflict()
	}
}

// Execute validates the booking attempt and creates a pending appointment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%s, staff=%s, service=%s, date=%s, time=%s",
		req.UserID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service %s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service %s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service %s is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff %s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff %s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("CreateAppointment: staff %s is inactive", req.StaffID)
		return nil, ErrStaffInactive
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if err := validateAdvance(req.Date, req.StartTime, now, uc.minAdvanceHours); err != nil {
		uc.logger.Warn("CreateAppointment: advance validation failed: %v", err)
		return nil, err
	}

	holidays, err := uc.holidayRepo.ListForStaffOnDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}
	if isBlockedByHoliday(holidays, req.StaffID, req.Date) {
		uc.logger.Warn("CreateAppointment: %s is a holiday for staff %s",
			req.Date.Format(domain.DateFormat), req.StaffID)
		return nil, ErrStaffUnavailable
	}

	workingHours, err := uc.scheduleRepo.GetByStaffAndWeekday(ctx, req.StaffID, domain.ISOWeekday(req.Date))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Warn("CreateAppointment: staff %s does not work on weekday %d",
				req.StaffID, domain.ISOWeekday(req.Date))
			return nil, ErrStaffUnavailable
		}
		uc.logger.Error("CreateAppointment: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if err := validateWithinWorkingHours(workingHours, req.Date, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateAppointment: working hours validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := uc.appointmentRepo.FindConflicts(txCtx, req.StaffID, req.Date, req.StartTime, endTime, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateAppointment: window %s-%s on %s conflicts with %d appointment(s)",
				req.StartTime, endTime, req.Date.Format(domain.DateFormat), len(conflicts))
			uc.observeConflict()
			return ErrSlotConflict
		}

		appointment := &domain.Appointment{
			UserID:    req.UserID,
			StaffID:   req.StaffID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   endTime,
			Status:    domain.StatusPending,

			ServiceName:            service.Name,
			ServicePriceCents:      service.PriceCents,
			ServiceDurationMinutes: service.DurationMinutes,

			Notes: req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateStart) {
				uc.observeConflict()
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, req.StaffID, req.Date); err != nil {
		uc.logger.Warn("CreateAppointment: cache invalidation failed: %v", err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s", result.ID)

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		StaffID:   result.StaffID,
		ServiceID: result.ServiceID,

		Date:      result.Date,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Status:    string(result.Status),

		ServiceName:            result.ServiceName,
		ServicePriceCents:      result.ServicePriceCents,
		ServiceDurationMinutes: result.ServiceDurationMinutes,

		Notes: result.Notes,

		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
