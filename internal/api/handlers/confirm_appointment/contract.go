package confirm_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id uuid.UUID, req *models.ConfirmAppointmentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
