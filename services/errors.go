package services

import (
	"errors"
	"fmt"
)

// Service-level errors. Controllers translate these to HTTP statuses;
// anything not listed here surfaces as an internal error.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrAccessDenied = errors.New("access denied")
	ErrValidation   = errors.New("validation failed")

	ErrInvalidStatus = errors.New("invalid status transition")

	ErrAlreadyPaid      = errors.New("booking is already paid")
	ErrBookingCancelled = errors.New("cannot pay for cancelled booking")

	ErrInvalidSignature          = errors.New("invalid payment signature")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrGatewayTimeout            = errors.New("payment gateway timed out")
)

// CapacityError reports an availability failure together with how many
// rooms remain for the requested dates.
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("only %d rooms available for selected dates", e.Available)
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
