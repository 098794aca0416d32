package store

import "github.com/sgerasimov/passvault/models"

// VaultRepository persists the sealed vault of each account and handles
// plaintext import/export. Implementations own the serialized vault bytes;
// the in-memory entry list stays with the active session.
type VaultRepository interface {
	// Path returns the deterministic location of the account's sealed vault.
	Path(username string) string

	// CreateFile creates an empty placeholder vault only if absent.
	// Returns false when the file already exists; the existing vault is
	// never touched.
	CreateFile(username string) (bool, error)

	// Save seals the entry list under the master password and writes it,
	// but only when the placeholder file already exists. This guards
	// against silently creating a vault for a typo'd username. Returns
	// false when no vault file exists. A failed write never corrupts the
	// previous on-disk version.
	Save(username, password string, entries []*models.Entry) (bool, error)

	// Load reads and unseals the account's vault. A missing file, a wrong
	// password, or a corrupt blob all yield an empty list.
	Load(username, password string) []*models.Entry

	// ExportPlaintext writes an unsealed JSON snapshot of the entries to a
	// separate path and returns that path. The snapshot is a deliberate
	// portability side channel; the UI layer must warn about it.
	ExportPlaintext(username string, entries []*models.Entry) (string, error)

	// ImportPlaintext reads a plaintext JSON snapshot and appends its
	// entries to the supplied list. The caller de-duplicates and saves.
	// Returns [ErrInvalidFormat] when the file is not a valid snapshot;
	// the import path is an explicit user action, so failures are loud.
	ImportPlaintext(path string, entries []*models.Entry) ([]*models.Entry, error)
}

// AccountRepository persists authentication records, one file per account.
type AccountRepository interface {
	// Create stores a brand-new account record.
	// Returns [ErrAccountAlreadyExists] when the username is taken.
	Create(account models.Account) error

	// FindByUsername loads the account record for username.
	// Returns [ErrAccountNotFound] for a missing record and
	// [ErrInvalidFormat] for a corrupt one.
	FindByUsername(username string) (models.Account, error)

	// Save overwrites the account record. Used on every login attempt so
	// attempt counters survive a crash.
	Save(account models.Account) error

	// Exists reports whether an account record is present for username.
	Exists(username string) bool
}
