package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/coiffurelab/salon-booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingStaffID   = "staffId is required"
	msgInvalidStaffID   = "invalid staff ID"
	msgMissingServiceID = "serviceId is required"
	msgInvalidServiceID = "invalid service ID"
	msgMissingDate      = "date is required"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgStaffNotFound    = "staff member not found"
	msgServiceNotFound  = "service not found"
	msgServiceInactive  = "service is not bookable"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: staffId (required), serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	staffIDStr := query.Get("staffId")
	if staffIDStr == "" {
		h.logger.Warn("GET /slots - Missing staff ID")
		handlers.RespondBadRequest(w, msgMissingStaffID)
		return
	}
	staffID, err := uuid.Parse(staffIDStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(staffID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /slots - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /slots - Service inactive: service_id=%s", serviceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /slots - Failed to get slots: staff_id=%s, service_id=%s, error=%v",
				staffID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slots - Slots retrieved: staff_id=%s, service_id=%s, date=%s, slots_count=%d",
		staffID, serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
