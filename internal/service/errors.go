package service

import "errors"

var (
	// ErrBreachLookup wraps any failure of the outbound breach range check:
	// timeout, transport error, or a non-200 response. It is a first-class
	// outcome — callers decide whether to proceed with the check
	// unavailable, it is never silently read as "zero breaches".
	ErrBreachLookup = errors.New("breach lookup unavailable")

	// ErrSecondFactorDisabled is returned when a code verification is
	// requested for an account that has no second factor enrolled.
	ErrSecondFactorDisabled = errors.New("second factor is not enabled")
)
