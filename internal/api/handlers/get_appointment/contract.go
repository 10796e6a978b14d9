package get_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
