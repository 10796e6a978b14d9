package create_appointment

import (
	"errors"
	"net/http"

	"github.com/coiffurelab/salon-booking-service/internal/api/handlers"
	"github.com/coiffurelab/salon-booking-service/internal/api/middleware"
	createAppointment "github.com/coiffurelab/salon-booking-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format"
	msgStaffNotFound      = "staff member not found"
	msgServiceNotFound    = "service not found"
	msgServiceInactive    = "service is not bookable"
	msgStaffInactive      = "staff member is not bookable"
	msgTooSoon            = "booking start is too soon"
	msgStaffUnavailable   = "staff member is unavailable on this date"
	msgOutsideHours       = "requested time is outside working hours"
	msgSlotConflict       = "slot is already booked"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{Error: "authentication required"})
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrStaffInactive):
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, createAppointment.ErrBookingTooSoon):
			h.logger.Warn("POST /appointments - Too soon: user_id=%s", userID)
			handlers.RespondUnprocessable(w, msgTooSoon)

		case errors.Is(err, createAppointment.ErrStaffUnavailable):
			h.logger.Warn("POST /appointments - Staff unavailable: staff_id=%s, date=%s", req.StaffID, req.Date)
			handlers.RespondUnprocessable(w, msgStaffUnavailable)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: staff_id=%s, time=%s", req.StaffID, req.StartTime)
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
