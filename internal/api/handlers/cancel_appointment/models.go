package cancel_appointment

import (
	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

// CancelAppointmentRequest is the HTTP request body.
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest attaches the caller identity from the request context.
func (r *CancelAppointmentRequest) ToServiceRequest(userID uuid.UUID, isAdmin bool) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		UserID:  userID,
		IsAdmin: isAdmin,
		Reason:  r.Reason,
	}
}
