package get_staff_appointments

import (
	"context"

	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetStaffAppointments(ctx context.Context, req *models.GetStaffAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
