package get_staff_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/coiffurelab/salon-booking-service/internal/api/handlers"
	"github.com/coiffurelab/salon-booking-service/internal/api/middleware"
	"github.com/coiffurelab/salon-booking-service/internal/domain"
	"github.com/coiffurelab/salon-booking-service/internal/service/appointments"
	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

const (
	msgInvalidStaffID = "invalid staff ID"
	msgMissingPeriod  = "startDate and endDate are required"
	msgInvalidPeriod  = "invalid date range, expected YYYY-MM-DD"
	msgForbidden      = "access denied"
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

// Handle GET /api/v1/staff/{staffId}/appointments
// Query params: startDate (required), endDate (required), both YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{Error: "authentication required"})
		return
	}

	vars := mux.Vars(r)
	staffID, err := uuid.Parse(vars["staffId"])
	if err != nil {
		h.logger.Warn("GET /staff/{id}/appointments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	startStr := query.Get("startDate")
	endStr := query.Get("endDate")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /staff/{id}/appointments - Missing period: staff_id=%s", staffID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/appointments - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/appointments - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	req := &models.GetStaffAppointmentsRequest{
		UserID:    userID,
		IsAdmin:   middleware.IsAdmin(r.Context()),
		StaffID:   staffID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	result, err := h.service.GetStaffAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /staff/{id}/appointments - Access denied: staff_id=%s, user_id=%s",
				staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /staff/{id}/appointments - Failed: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/appointments - Retrieved %d appointments: staff_id=%s, period=%s to %s",
		len(result.Appointments), staffID, startStr, endStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
