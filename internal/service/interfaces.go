package service

import (
	"context"

	"github.com/sgerasimov/passvault/models"
)

// AuthService is the authentication gate. It exclusively owns account
// records and is consulted before any vault access.
type AuthService interface {
	// Register creates a new account with zeroed counters and an empty
	// placeholder vault file. Returns store.ErrAccountAlreadyExists when
	// the username is taken.
	Register(username, password string) error

	// Validate runs one step of the login state machine: locked check
	// first, then password verification with attempt counting. The account
	// record is persisted on every counted attempt.
	Validate(username, password string) (models.LoginResult, error)

	// ConfirmSecondFactor completes the two-phase login using the
	// single-use ticket issued by Validate. A bad code returns a denied
	// result and invalidates the ticket; it carries no lockout penalty.
	ConfirmSecondFactor(ticket, code string) (models.LoginResult, error)

	// EnableSecondFactor binds a fresh shared secret and enrollment email
	// to the account and returns the provisioning artifact.
	EnableSecondFactor(username, email string) (models.Enrollment, error)

	// VerifyCode checks a one-time code against the account's stored
	// secret. Returns ErrSecondFactorDisabled when no secret is bound.
	VerifyCode(username, code string) (bool, error)
}

// PolicyService evaluates candidate passwords at creation or change time.
// Checks run in order: strength, breach lookup, vault-wide reuse.
type PolicyService interface {
	// CheckStrength scores the candidate against the static strength
	// rules. Advisory: callers may accept a weak password after explicit
	// confirmation.
	CheckStrength(password string) models.StrengthReport

	// CheckBreached returns the number of known breaches containing the
	// candidate, via the k-anonymity range lookup. A failed lookup returns
	// an error wrapping ErrBreachLookup, never a zero count.
	CheckBreached(ctx context.Context, password string) (int, error)

	// CheckReuse reports whether the candidate equals the current or any
	// historical password of any entry in the vault.
	CheckReuse(password string, entries []*models.Entry) bool
}

// BreachRangeClient is the outbound collaborator of the policy evaluator.
type BreachRangeClient interface {
	Range(ctx context.Context, prefix string) (string, error)
}

// CodeProvider is the one-time-code collaborator of the authentication gate.
type CodeProvider interface {
	GenerateKey(email string) (secret, uri string, err error)
	Verify(secret, code string) bool
}
