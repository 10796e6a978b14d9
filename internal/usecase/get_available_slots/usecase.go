package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	slotcache "github.com/coiffurelab/salon-booking-service/internal/infra/cache/slots"
	catalogRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/workinghours"
)

// UseCase computes the availability grid for one staff member, service and
// date. The cached grid carries working hours, breaks, holidays and booking
// conflicts; the minimum-advance cutoff is applied per request so cached
// entries do not go stale as the clock moves.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	holidayRepo     HolidayRepository
	catalogRepo     CatalogRepository
	cache           SlotCache
	timeProvider    TimeProvider
	logger          Logger
	config          Config
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	holidayRepo HolidayRepository,
	catalogRepo CatalogRepository,
	cache SlotCache,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		holidayRepo:     holidayRepo,
		catalogRepo:     catalogRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		config:          config,
	}
}

// WithTimeProvider swaps the clock, for tests.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute returns the bookable slots. A day off, a covering holiday or an
// inactive staff member yields an empty grid, not an error.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%s, service=%s, date=%s",
		req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service %s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service %s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service %s is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff %s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff %s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Info("GetAvailableSlots: staff %s is inactive, returning empty grid", req.StaffID)
		return uc.respond(req, nil, now), nil
	}

	if grid, err := uc.cache.Get(ctx, req.StaffID, req.Date, req.ServiceID); err == nil {
		uc.logger.Info("GetAvailableSlots: cache hit for staff=%s date=%s", req.StaffID, req.Date.Format(domain.DateFormat))
		return uc.respond(req, grid, now), nil
	} else if !errors.Is(err, slotcache.ErrCacheMiss) {
		uc.logger.Warn("GetAvailableSlots: cache get failed: %v", err)
	}

	grid, err := uc.computeGrid(ctx, req, service)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, req.StaffID, req.Date, req.ServiceID, grid); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache set failed: %v", err)
	}

	return uc.respond(req, grid, now), nil
}

func (uc *UseCase) computeGrid(ctx context.Context, req *Request, service *domain.Service) ([]domain.Slot, error) {
	holidays, err := uc.holidayRepo.ListForStaffOnDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}
	if isBlockedByHoliday(holidays, req.StaffID, req.Date) {
		uc.logger.Info("GetAvailableSlots: %s is a holiday for staff %s",
			req.Date.Format(domain.DateFormat), req.StaffID)
		return []domain.Slot{}, nil
	}

	workingHours, err := uc.scheduleRepo.GetByStaffAndWeekday(ctx, req.StaffID, domain.ISOWeekday(req.Date))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: staff %s has no working hours on weekday %d",
				req.StaffID, domain.ISOWeekday(req.Date))
			return []domain.Slot{}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	candidates, err := generateCandidateSlots(
		workingHours,
		req.Date,
		service.DurationMinutes,
		uc.config.SlotIntervalMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListActiveForStaffDay(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	grid, err := markConflicts(candidates, appointments)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to apply conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to apply conflicts: %v", ErrInternal, err)
	}

	return grid, nil
}

func (uc *UseCase) respond(req *Request, grid []domain.Slot, now time.Time) *Response {
	return &Response{
		Date:      req.Date,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Slots:     filterBookable(grid, now, uc.config.MinAdvanceHours),
	}
}
