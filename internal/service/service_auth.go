// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sgerasimov/passvault/internal/config"
	"github.com/sgerasimov/passvault/internal/logger"
	"github.com/sgerasimov/passvault/internal/store"
	"github.com/sgerasimov/passvault/internal/utils"
	"github.com/sgerasimov/passvault/models"
)

// ticketTTL bounds how long a pending second-factor confirmation stays valid
// after a successful password step.
const ticketTTL = 5 * time.Minute

// User-facing messages for login outcomes. A wrong username and a wrong
// password produce the same message on purpose.
const (
	msgLoginOK             = "Login successful."
	msgInvalidCredentials  = "Invalid username or password."
	msgAccountLocked       = "Account locked due to multiple failed attempts. Try again later."
	msgSecondFactorNeeded  = "Second factor required."
	msgInvalidTicket       = "Login session expired. Start over with your password."
	msgInvalidCode         = "Invalid one-time code."
	msgSecondFactorSuccess = "Second factor confirmed."
)

// pendingTicket is one outstanding second-factor confirmation.
type pendingTicket struct {
	username string
	expires  time.Time
}

// authService is the concrete implementation of [AuthService]. It owns the
// login/lockout state machine: a locked account rejects every attempt until
// the window elapses; otherwise a failed password check increments the
// attempt counter and the configured threshold starts a new lockout window.
//
// Repeated bad one-time codes carry no lockout penalty. That gap is a
// recorded policy decision, not an oversight; tightening it needs an
// explicit policy change.
type authService struct {
	accounts store.AccountRepository
	vault    store.VaultRepository
	codes    CodeProvider

	// hashKey is the HMAC secret used when hashing master passwords before
	// storage or comparison. Must match the value used at registration time.
	hashKey string

	maxAttempts   int
	lockoutWindow time.Duration

	// now is injected so the lockout window is testable.
	now func() time.Time

	// tickets holds pending second-factor confirmations, keyed by the
	// opaque ticket returned from the password step. Single session,
	// single goroutine; no locking discipline needed.
	tickets map[string]pendingTicket

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given repositories
// and one-time-code provider, with lockout policy taken from cfg.
func NewAuthService(accounts store.AccountRepository, vault store.VaultRepository, codes CodeProvider, cfg config.App, log *logger.Logger) AuthService {
	return &authService{
		accounts:      accounts,
		vault:         vault,
		codes:         codes,
		hashKey:       cfg.PasswordHashKey,
		maxAttempts:   cfg.MaxLoginAttempts,
		lockoutWindow: cfg.LockoutWindow,
		now:           time.Now,
		tickets:       make(map[string]pendingTicket),
		logger:        log,
	}
}

// Register implements [AuthService].
func (a *authService) Register(username, password string) error {
	account := models.Account{
		Username:     username,
		PasswordHash: utils.HashString(password, a.hashKey),
	}

	if err := a.accounts.Create(account); err != nil {
		a.logger.Err(err).Str("username", username).Msg("account creation failed")
		return fmt.Errorf("register %s: %w", username, err)
	}

	if _, err := a.vault.CreateFile(username); err != nil {
		return fmt.Errorf("create vault placeholder for %s: %w", username, err)
	}

	a.logger.Info().Str("username", username).Msg("account registered")
	return nil
}

// Validate implements [AuthService].
func (a *authService) Validate(username, password string) (models.LoginResult, error) {
	account, err := a.accounts.FindByUsername(username)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		// an unknown username reads exactly like a wrong password
		a.logger.Debug().Str("username", username).Msg("login attempt for unknown account")
		return models.LoginResult{Verdict: models.VerdictDenied, Message: msgInvalidCredentials}, nil
	case err != nil:
		// a corrupt record is data damage, not a credentials problem
		a.logger.Err(err).Str("username", username).Msg("account record unreadable")
		return models.LoginResult{}, fmt.Errorf("load account %s: %w", username, err)
	}

	now := a.now()
	if account.Locked(now) {
		// counters stay untouched while locked; nothing is persisted
		return models.LoginResult{Verdict: models.VerdictLocked, Message: msgAccountLocked}, nil
	}

	if account.PasswordHash == utils.HashString(password, a.hashKey) {
		account.FailedAttempts = 0
		account.LockoutUntil = 0
		if err := a.accounts.Save(account); err != nil {
			return models.LoginResult{}, fmt.Errorf("persist account %s: %w", username, err)
		}

		if account.TOTPEnabled {
			ticket := a.issueTicket(username, now)
			return models.LoginResult{
				Verdict: models.VerdictSecondFactorRequired,
				Message: msgSecondFactorNeeded,
				Ticket:  ticket,
			}, nil
		}

		return models.LoginResult{Verdict: models.VerdictOK, Message: msgLoginOK}, nil
	}

	account.FailedAttempts++
	if account.FailedAttempts >= a.maxAttempts {
		account.LockoutUntil = now.Add(a.lockoutWindow).Unix()
		a.logger.Warn().Str("username", username).Msg("account locked")
	}

	// persisted on every failed attempt for durability across crashes
	if err := a.accounts.Save(account); err != nil {
		return models.LoginResult{}, fmt.Errorf("persist account %s: %w", username, err)
	}

	return models.LoginResult{Verdict: models.VerdictDenied, Message: msgInvalidCredentials}, nil
}

// ConfirmSecondFactor implements [AuthService].
func (a *authService) ConfirmSecondFactor(ticket, code string) (models.LoginResult, error) {
	pending, ok := a.tickets[ticket]
	delete(a.tickets, ticket) // tickets are single-use either way

	if !ok || a.now().After(pending.expires) {
		return models.LoginResult{Verdict: models.VerdictDenied, Message: msgInvalidTicket}, nil
	}

	valid, err := a.VerifyCode(pending.username, code)
	if err != nil {
		return models.LoginResult{}, err
	}
	if !valid {
		// back to the password step; no lockout penalty for bad codes
		return models.LoginResult{Verdict: models.VerdictDenied, Message: msgInvalidCode}, nil
	}

	return models.LoginResult{Verdict: models.VerdictOK, Message: msgSecondFactorSuccess}, nil
}

// EnableSecondFactor implements [AuthService].
func (a *authService) EnableSecondFactor(username, email string) (models.Enrollment, error) {
	account, err := a.accounts.FindByUsername(username)
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enable second factor: %w", err)
	}

	secret, uri, err := a.codes.GenerateKey(email)
	if err != nil {
		return models.Enrollment{}, fmt.Errorf("enable second factor: %w", err)
	}

	account.TOTPEnabled = true
	account.TOTPSecret = secret
	account.TOTPEmail = email
	if err := a.accounts.Save(account); err != nil {
		return models.Enrollment{}, fmt.Errorf("persist account %s: %w", username, err)
	}

	a.logger.Info().Str("username", username).Msg("second factor enabled")
	return models.Enrollment{Secret: secret, Email: email, URI: uri}, nil
}

// VerifyCode implements [AuthService].
func (a *authService) VerifyCode(username, code string) (bool, error) {
	account, err := a.accounts.FindByUsername(username)
	if err != nil {
		return false, fmt.Errorf("verify code: %w", err)
	}

	if !account.TOTPEnabled || account.TOTPSecret == "" {
		return false, fmt.Errorf("verify code for %s: %w", username, ErrSecondFactorDisabled)
	}

	return a.codes.Verify(account.TOTPSecret, code), nil
}

// issueTicket records a pending second-factor confirmation and returns its
// opaque single-use handle.
func (a *authService) issueTicket(username string, now time.Time) string {
	ticket := uuid.NewString()
	a.tickets[ticket] = pendingTicket{username: username, expires: now.Add(ticketTTL)}
	return ticket
}
