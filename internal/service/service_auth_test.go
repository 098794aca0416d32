// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgerasimov/passvault/internal/config"
	"github.com/sgerasimov/passvault/internal/logger"
	"github.com/sgerasimov/passvault/internal/store"
	"github.com/sgerasimov/passvault/internal/utils"
	"github.com/sgerasimov/passvault/models"
)

// ─────────────────────────────────────────────
// Mock: store.AccountRepository
// ─────────────────────────────────────────────

type mockAccountRepository struct {
	accounts map[string]models.Account
	saveErr  error
	findErr  error
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{accounts: make(map[string]models.Account)}
}

func (m *mockAccountRepository) Create(account models.Account) error {
	if _, ok := m.accounts[account.Username]; ok {
		return store.ErrAccountAlreadyExists
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *mockAccountRepository) FindByUsername(username string) (models.Account, error) {
	if m.findErr != nil {
		return models.Account{}, m.findErr
	}
	account, ok := m.accounts[username]
	if !ok {
		return models.Account{}, store.ErrAccountNotFound
	}
	return account, nil
}

func (m *mockAccountRepository) Save(account models.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *mockAccountRepository) Exists(username string) bool {
	_, ok := m.accounts[username]
	return ok
}

// ─────────────────────────────────────────────
// Mock: store.VaultRepository
// ─────────────────────────────────────────────

type mockVaultRepository struct {
	created []string
}

func (m *mockVaultRepository) Path(username string) string { return username + "_entries.enc" }

func (m *mockVaultRepository) CreateFile(username string) (bool, error) {
	m.created = append(m.created, username)
	return true, nil
}

func (m *mockVaultRepository) Save(username, password string, entries []*models.Entry) (bool, error) {
	return true, nil
}

func (m *mockVaultRepository) Load(username, password string) []*models.Entry {
	return make([]*models.Entry, 0)
}

func (m *mockVaultRepository) ExportPlaintext(username string, entries []*models.Entry) (string, error) {
	return "", nil
}

func (m *mockVaultRepository) ImportPlaintext(path string, entries []*models.Entry) ([]*models.Entry, error) {
	return entries, nil
}

// ─────────────────────────────────────────────
// Mock: CodeProvider
// ─────────────────────────────────────────────

type mockCodeProvider struct {
	secret    string
	validCode string
}

func (m *mockCodeProvider) GenerateKey(email string) (string, string, error) {
	return m.secret, "otpauth://totp/PassVault:" + email, nil
}

func (m *mockCodeProvider) Verify(secret, code string) bool {
	return secret == m.secret && code == m.validCode
}

// ─────────────────────────────────────────────

func testAppConfig() config.App {
	return config.App{
		PasswordHashKey:  "test-hash-key",
		MaxLoginAttempts: 3,
		LockoutWindow:    60 * time.Second,
	}
}

func newTestAuthService(t *testing.T) (*authService, *mockAccountRepository, *mockVaultRepository, *mockCodeProvider) {
	t.Helper()

	accounts := newMockAccountRepository()
	vault := &mockVaultRepository{}
	codes := &mockCodeProvider{secret: "JBSWY3DPEHPK3PXP", validCode: "123456"}

	svc := NewAuthService(accounts, vault, codes, testAppConfig(), logger.Nop()).(*authService)
	return svc, accounts, vault, codes
}

func TestRegister_CreatesAccountAndPlaceholder(t *testing.T) {
	svc, accounts, vault, _ := newTestAuthService(t)

	require.NoError(t, svc.Register("bob", "secret123"))

	account, err := accounts.FindByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, utils.HashString("secret123", "test-hash-key"), account.PasswordHash)
	assert.Zero(t, account.FailedAttempts)
	assert.False(t, account.TOTPEnabled)
	assert.Equal(t, []string{"bob"}, vault.created)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	require.NoError(t, svc.Register("bob", "secret123"))
	assert.ErrorIs(t, svc.Register("bob", "other"), store.ErrAccountAlreadyExists)
}

func TestValidate_Success(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	result, err := svc.Validate("bob", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictOK, result.Verdict)
	assert.Empty(t, result.Ticket)
}

func TestValidate_UnknownUserReadsLikeWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	unknown, err := svc.Validate("nobody", "secret123")
	require.NoError(t, err)
	wrong, err := svc.Validate("bob", "bad")
	require.NoError(t, err)

	assert.Equal(t, models.VerdictDenied, unknown.Verdict)
	assert.Equal(t, wrong.Message, unknown.Message)
}

func TestValidate_CorruptAccountRecordSurfaces(t *testing.T) {
	svc, accounts, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))
	accounts.findErr = fmt.Errorf("decode account bob: %w", store.ErrInvalidFormat)

	// data damage must not masquerade as a credentials failure
	_, err := svc.Validate("bob", "secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidFormat)
}

func TestValidate_LockoutScenario(t *testing.T) {
	svc, accounts, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	now := time.Now()
	svc.now = func() time.Time { return now }

	// three consecutive failures lock the account
	for i := 0; i < 3; i++ {
		result, err := svc.Validate("bob", "wrong")
		require.NoError(t, err)
		assert.Equal(t, models.VerdictDenied, result.Verdict)
	}

	account, err := accounts.FindByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, 3, account.FailedAttempts)
	assert.Equal(t, now.Add(60*time.Second).Unix(), account.LockoutUntil)

	// correct credentials during the window still return Locked
	result, err := svc.Validate("bob", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictLocked, result.Verdict)

	// the locked attempt must not touch counters
	account, err = accounts.FindByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, 3, account.FailedAttempts)

	// after the window elapses a correct attempt succeeds and resets state
	svc.now = func() time.Time { return now.Add(61 * time.Second) }
	result, err = svc.Validate("bob", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictOK, result.Verdict)

	account, err = accounts.FindByUsername("bob")
	require.NoError(t, err)
	assert.Zero(t, account.FailedAttempts)
	assert.Zero(t, account.LockoutUntil)
}

func TestValidate_CounterPersistedOnEveryAttempt(t *testing.T) {
	svc, accounts, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	_, err := svc.Validate("bob", "wrong")
	require.NoError(t, err)

	account, err := accounts.FindByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, account.FailedAttempts, "failed attempt must be durable")
}

func TestValidate_PersistFailureSurfaces(t *testing.T) {
	svc, accounts, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	accounts.saveErr = errors.New("disk full")

	_, err := svc.Validate("bob", "wrong")
	assert.Error(t, err)
}

func TestValidate_SecondFactorFlow(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	_, err := svc.EnableSecondFactor("bob", "bob@example.com")
	require.NoError(t, err)

	result, err := svc.Validate("bob", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictSecondFactorRequired, result.Verdict)
	require.NotEmpty(t, result.Ticket)

	confirmed, err := svc.ConfirmSecondFactor(result.Ticket, "123456")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictOK, confirmed.Verdict)
}

func TestConfirmSecondFactor_BadCodeNoLockoutPenalty(t *testing.T) {
	svc, accounts, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))
	_, err := svc.EnableSecondFactor("bob", "bob@example.com")
	require.NoError(t, err)

	result, err := svc.Validate("bob", "secret123")
	require.NoError(t, err)

	confirmed, err := svc.ConfirmSecondFactor(result.Ticket, "999999")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictDenied, confirmed.Verdict)

	account, err := accounts.FindByUsername("bob")
	require.NoError(t, err)
	assert.Zero(t, account.FailedAttempts, "bad codes carry no lockout penalty")
}

func TestConfirmSecondFactor_TicketSingleUse(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))
	_, err := svc.EnableSecondFactor("bob", "bob@example.com")
	require.NoError(t, err)

	result, err := svc.Validate("bob", "secret123")
	require.NoError(t, err)

	first, err := svc.ConfirmSecondFactor(result.Ticket, "123456")
	require.NoError(t, err)
	require.Equal(t, models.VerdictOK, first.Verdict)

	second, err := svc.ConfirmSecondFactor(result.Ticket, "123456")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictDenied, second.Verdict)
}

func TestConfirmSecondFactor_ExpiredTicket(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))
	_, err := svc.EnableSecondFactor("bob", "bob@example.com")
	require.NoError(t, err)

	now := time.Now()
	svc.now = func() time.Time { return now }

	result, err := svc.Validate("bob", "secret123")
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(ticketTTL + time.Second) }

	confirmed, err := svc.ConfirmSecondFactor(result.Ticket, "123456")
	require.NoError(t, err)
	assert.Equal(t, models.VerdictDenied, confirmed.Verdict)
}

func TestEnableSecondFactor_BindsSecretAndEmail(t *testing.T) {
	svc, accounts, _, codes := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	enrollment, err := svc.EnableSecondFactor("bob", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, codes.secret, enrollment.Secret)
	assert.Equal(t, "bob@example.com", enrollment.Email)
	assert.Contains(t, enrollment.URI, "otpauth://totp/")

	account, err := accounts.FindByUsername("bob")
	require.NoError(t, err)
	assert.True(t, account.TOTPEnabled)
	assert.Equal(t, codes.secret, account.TOTPSecret)
	assert.Equal(t, "bob@example.com", account.TOTPEmail)
}

func TestEnableSecondFactor_UnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.EnableSecondFactor("nobody", "x@example.com")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestVerifyCode_Disabled(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	require.NoError(t, svc.Register("bob", "secret123"))

	_, err := svc.VerifyCode("bob", "123456")
	assert.ErrorIs(t, err, ErrSecondFactorDisabled)
}
