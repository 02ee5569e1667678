package select_date

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}
	if req.Candidate.IsZero() {
		return fmt.Errorf("%w: candidate date is required", ErrInvalidInput)
	}
	// Конец без начала не может получиться кликами
	if req.Current.Start == nil && req.Current.End != nil {
		return fmt.Errorf("%w: selection end without start", ErrInvalidInput)
	}
	return nil
}
