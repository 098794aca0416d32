// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package models

import "time"

// Account represents one user's authentication record. The record is owned
// exclusively by the authentication gate and persisted on every login
// attempt, success or failure, for durability across crashes.
type Account struct {
	// Username is the globally unique account identifier.
	Username string `json:"username"`

	// PasswordHash is the keyed hash of the master password.
	// The plaintext master password is never stored.
	PasswordHash string `json:"password_hash"`

	// FailedAttempts counts consecutive failed password checks.
	// Reset to zero on any successful check.
	FailedAttempts int `json:"failed_attempts"`

	// LockoutUntil is the unix second until which login attempts are
	// rejected. Zero means the account is not locked.
	LockoutUntil int64 `json:"lockout_until"`

	// TOTPEnabled reports whether second-factor confirmation is required
	// after a successful password check.
	TOTPEnabled bool `json:"totp_enabled"`

	// TOTPSecret is the opaque shared secret of the one-time-code scheme.
	// Present only when TOTPEnabled is true.
	TOTPSecret string `json:"totp_secret"`

	// TOTPEmail is the e-mail address supplied at second-factor enrollment.
	TOTPEmail string `json:"totp_email"`
}

// Locked reports whether the account is inside its lockout window at the
// given moment.
func (a *Account) Locked(now time.Time) bool {
	return a.LockoutUntil > 0 && now.Unix() < a.LockoutUntil
}
