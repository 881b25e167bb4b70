package core

import "fmt"

// InvalidOrderError reports an order rejected at the boundary. Rejection
// happens before any book mutation: no trades, no resting remainder.
type InvalidOrderError struct {
	Field  string
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order: %s %s", e.Field, e.Reason)
}

func invalidOrder(field, reason string) error {
	return &InvalidOrderError{Field: field, Reason: reason}
}
