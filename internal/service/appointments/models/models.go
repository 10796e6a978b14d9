package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status string.
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request models

// CancelAppointmentRequest cancels an appointment on behalf of the requester.
type CancelAppointmentRequest struct {
	UserID  uuid.UUID `json:"userId"`
	IsAdmin bool      `json:"-"`
	Reason  *string   `json:"reason,omitempty"`
}

// ConfirmAppointmentRequest confirms a pending appointment.
type ConfirmAppointmentRequest struct {
	UserID  uuid.UUID `json:"userId"`
	IsAdmin bool      `json:"-"`
}

// UpdateStatusRequest moves an appointment to a terminal status.
type UpdateStatusRequest struct {
	UserID  uuid.UUID `json:"userId"`
	IsAdmin bool      `json:"-"`
	Status  string    `json:"status"`
}

// GetUserAppointmentsRequest lists a user's booking history.
type GetUserAppointmentsRequest struct {
	UserID uuid.UUID `json:"userId"`
	Status *string   `json:"status,omitempty"`
}

// GetStaffAppointmentsRequest lists a staff member's calendar over a period.
type GetStaffAppointmentsRequest struct {
	UserID  uuid.UUID `json:"userId"`
	IsAdmin bool      `json:"-"`

	StaffID   uuid.UUID `json:"staffId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Response models

// AppointmentResponse is the wire representation of an appointment.
type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	StaffID   uuid.UUID `json:"staffId"`
	ServiceID uuid.UUID `json:"serviceId"`

	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:45"
	Status    string `json:"status"`

	ServiceName            string `json:"serviceName"`
	ServicePriceCents      int    `json:"servicePriceCents"`
	ServiceDurationMinutes int    `json:"serviceDurationMinutes"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse wraps a list of appointments.
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ServiceResponse is the wire representation of a catalog service.
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	PriceCents      int       `json:"priceCents"`
}

// ServiceListResponse wraps the catalog listing.
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Conversions

// FromDomainAppointment converts a domain model to its DTO.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		StaffID:   a.StaffID,
		ServiceID: a.ServiceID,

		Date:      a.Date.Format(domain.DateFormat),
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		Status:    string(a.Status),

		ServiceName:            a.ServiceName,
		ServicePriceCents:      a.ServicePriceCents,
		ServiceDurationMinutes: a.ServiceDurationMinutes,

		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelled := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainAppointmentList converts a list of domain models.
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		if dto := FromDomainAppointment(a); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}
	return resp
}

// FromDomainServiceList converts the catalog listing.
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			PriceCents:      s.PriceCents,
		})
	}
	return resp
}

// ToDomainAppointmentStatus validates a wire status string.
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s, err := domain.ParseAppointmentStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}
