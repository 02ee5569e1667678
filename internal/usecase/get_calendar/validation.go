package get_calendar

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}

	// Год и месяц передаются только парой
	if (req.Year == nil) != (req.Month == nil) {
		return fmt.Errorf("%w: year and month must be set together", ErrInvalidInput)
	}

	if req.Month != nil && (*req.Month < 1 || *req.Month > 12) {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidInput, *req.Month)
	}

	if req.Year != nil && (*req.Year < 1 || *req.Year > 9999) {
		return fmt.Errorf("%w: invalid year %d", ErrInvalidInput, *req.Year)
	}

	switch req.Nav {
	case NavNone, NavPrev, NavNext:
	default:
		return fmt.Errorf("%w: nav must be prev or next, got %q", ErrInvalidInput, req.Nav)
	}

	return nil
}
