package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/coiffurelab/salon-booking-service/internal/api/handlers"
	"github.com/coiffurelab/salon-booking-service/internal/api/middleware"
	rescheduleAppointment "github.com/coiffurelab/salon-booking-service/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDateOrTime    = "invalid date or time format"
	msgNotFound             = "appointment not found"
	msgForbidden            = "access denied"
	msgNotReschedulable     = "appointment cannot be rescheduled"
	msgStaffNotFound        = "staff member not found"
	msgStaffInactive        = "staff member is not bookable"
	msgTooSoon              = "booking start is too soon"
	msgStaffUnavailable     = "staff member is unavailable on this date"
	msgOutsideHours         = "requested time is outside working hours"
	msgSlotConflict         = "slot is already booked"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{Error: "authentication required"})
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrUnauthorized):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrNotReschedulable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not reschedulable: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgNotReschedulable)

		case errors.Is(err, rescheduleAppointment.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, rescheduleAppointment.ErrStaffInactive):
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, rescheduleAppointment.ErrBookingTooSoon):
			handlers.RespondUnprocessable(w, msgTooSoon)

		case errors.Is(err, rescheduleAppointment.ErrStaffUnavailable):
			handlers.RespondUnprocessable(w, msgStaffUnavailable)

		case errors.Is(err, rescheduleAppointment.ErrOutsideWorkingHours):
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, rescheduleAppointment.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot conflict: appointment_id=%s, date=%s, time=%s",
				appointmentID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment moved: appointment_id=%s, date=%s, time=%s",
		appointmentID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
