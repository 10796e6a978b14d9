package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	rescheduleAppointment "github.com/coiffurelab/salon-booking-service/internal/usecase/reschedule_appointment"
	"github.com/coiffurelab/salon-booking-service/pkg/types"
)

// RescheduleAppointmentRequest is the HTTP request body. StaffID is optional;
// omitting it keeps the current staff member.
type RescheduleAppointmentRequest struct {
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	Date      string     `json:"date"`      // "2026-03-15"
	StartTime string     `json:"startTime"` // "10:00"
}

// AppointmentResponse is the HTTP response body.
type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	StaffID   uuid.UUID `json:"staffId"`
	ServiceID uuid.UUID `json:"serviceId"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	ServiceName            string `json:"serviceName"`
	ServicePriceCents      int    `json:"servicePriceCents"`
	ServiceDurationMinutes int    `json:"serviceDurationMinutes"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest converts the body into the use case request.
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, userID uuid.UUID, isAdmin bool) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		IsAdmin:       isAdmin,
		StaffID:       r.StaffID,
		Date:          date,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP model.
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		StaffID:   resp.StaffID,
		ServiceID: resp.ServiceID,

		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Status:    resp.Status,

		ServiceName:            resp.ServiceName,
		ServicePriceCents:      resp.ServicePriceCents,
		ServiceDurationMinutes: resp.ServiceDurationMinutes,

		Notes: resp.Notes,

		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}
}
