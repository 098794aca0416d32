// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package models

// LoginVerdict is the outcome of a single login attempt.
type LoginVerdict int

const (
	// VerdictDenied means the supplied credentials were wrong.
	VerdictDenied LoginVerdict = iota

	// VerdictOK means the user is fully authenticated.
	VerdictOK

	// VerdictLocked means the account is inside its lockout window and the
	// attempt was rejected without touching the attempt counters.
	VerdictLocked

	// VerdictSecondFactorRequired means the password was correct but a
	// one-time code must be confirmed before the session is authenticated.
	VerdictSecondFactorRequired
)

// LoginResult carries the verdict of a login attempt together with a
// human-readable message and, for the two-phase flow, an opaque single-use
// ticket threading the password step and the second-factor step.
type LoginResult struct {
	Verdict LoginVerdict
	Message string
	Ticket  string
}

// Enrollment is the provisioning artifact returned when second-factor
// confirmation is enabled for an account. URI is an otpauth:// address
// suitable for downstream QR rendering.
type Enrollment struct {
	Secret string
	Email  string
	URI    string
}
