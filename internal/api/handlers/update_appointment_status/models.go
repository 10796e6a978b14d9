package update_appointment_status

import (
	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

// UpdateStatusRequest is the HTTP request body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest attaches the caller identity from the request context.
func (r *UpdateStatusRequest) ToServiceRequest(userID uuid.UUID, isAdmin bool) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID:  userID,
		IsAdmin: isAdmin,
		Status:  r.Status,
	}
}
