package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
