package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
	getAvailableSlots "github.com/coiffurelab/salon-booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse is the HTTP response model.
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	StaffID   uuid.UUID       `json:"staffId"`
	ServiceID uuid.UUID       `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot is one bookable window.
type AvailableSlot struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:45"
}

// FromUseCaseResponse converts the use case response to the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.Format(domain.TimeFormat),
			EndTime:   slot.EndTime.Format(domain.TimeFormat),
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		StaffID:   resp.StaffID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

// ToUseCaseRequest builds the use case request from query parameters.
func ToUseCaseRequest(staffID, serviceID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
