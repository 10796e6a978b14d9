package confirm_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/coiffurelab/salon-booking-service/internal/api/handlers"
	"github.com/coiffurelab/salon-booking-service/internal/api/middleware"
	"github.com/coiffurelab/salon-booking-service/internal/service/appointments"
	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgNotFound             = "appointment not found"
	msgForbidden            = "access denied"
	msgCannotConfirm        = "appointment cannot be confirmed"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{Error: "authentication required"})
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	req := &models.ConfirmAppointmentRequest{
		UserID:  userID,
		IsAdmin: middleware.IsAdmin(r.Context()),
	}

	err = h.service.Confirm(r.Context(), appointmentID, req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrCannotConfirm):
			h.logger.Warn("PATCH /appointments/{id}/confirm - Cannot confirm: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgCannotConfirm)

		default:
			h.logger.Error("PATCH /appointments/{id}/confirm - Failed: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/confirm - Appointment confirmed: appointment_id=%s, user_id=%s",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
