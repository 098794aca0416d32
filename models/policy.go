// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package models

// StrengthReport carries the result of the static password-strength check,
// broken down per rule so the UI can tell the user exactly what is missing.
type StrengthReport struct {
	MinLength bool
	Lowercase bool
	Uppercase bool
	Digit     bool
	Special   bool
}

// OK reports whether every strength rule passed.
func (r StrengthReport) OK() bool {
	return r.MinLength && r.Lowercase && r.Uppercase && r.Digit && r.Special
}

// Failed lists the rules the candidate did not satisfy, in check order.
func (r StrengthReport) Failed() []string {
	failed := make([]string, 0, 5)
	if !r.MinLength {
		failed = append(failed, "at least 12 characters")
	}
	if !r.Lowercase {
		failed = append(failed, "a lowercase letter")
	}
	if !r.Uppercase {
		failed = append(failed, "an uppercase letter")
	}
	if !r.Digit {
		failed = append(failed, "a digit")
	}
	if !r.Special {
		failed = append(failed, "a special character")
	}
	return failed
}
