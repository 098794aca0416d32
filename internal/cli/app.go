// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

// Package cli is the interactive text collaborator of the vault core. It
// supplies raw strings to the services and renders their plain return values;
// no UI state ever crosses into the core.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sgerasimov/passvault/internal/logger"
	"github.com/sgerasimov/passvault/internal/service"
	"github.com/sgerasimov/passvault/internal/store"
	"github.com/sgerasimov/passvault/models"
)

// App holds the interactive session: the authenticated user, the master
// password needed for explicit saves, and the in-memory vault. The vault is
// mutated in memory only and persisted on an explicit save; logout discards
// unsaved changes.
type App struct {
	auth   service.AuthService
	policy service.PolicyService
	vault  store.VaultRepository

	username       string
	masterPassword string
	entries        []*models.Entry
	authenticated  bool

	reader *bufio.Reader
	out    io.Writer
	logger *logger.Logger
}

// NewApp wires the CLI to the core services.
func NewApp(auth service.AuthService, policy service.PolicyService, vault store.VaultRepository, in io.Reader, out io.Writer, log *logger.Logger) *App {
	return &App{
		auth:   auth,
		policy: policy,
		vault:  vault,
		reader: bufio.NewReader(in),
		out:    out,
		logger: log,
	}
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) isLoggedIn() bool { return a.authenticated }

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// Register creates a new account after running the password policy.
func (a *App) Register(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil || username == "" {
		a.printf("Registration cancelled.")
		return
	}

	password, err := getPassword("Choose a master password", a.out)
	if err != nil {
		a.printf("Registration cancelled.")
		return
	}

	if !a.passwordAcceptable(ctx, password, nil) {
		return
	}

	if err := a.auth.Register(username, password); err != nil {
		if errors.Is(err, store.ErrAccountAlreadyExists) {
			a.printf("That username is already taken.")
			return
		}
		a.logger.Err(err).Msg("registration failed")
		a.printf("Registration failed. See the log for details.")
		return
	}

	a.printf("Account created. You can log in now.")
}

// Login runs the two-phase login state machine and loads the vault on
// success.
func (a *App) Login(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return
	}
	password, err := getPassword("Master password", a.out)
	if err != nil {
		return
	}

	result, err := a.auth.Validate(username, password)
	if err != nil {
		a.logger.Err(err).Msg("login failed")
		a.printf("Login failed. See the log for details.")
		return
	}

	if result.Verdict == models.VerdictSecondFactorRequired {
		a.printf("%s", result.Message)
		code, codeErr := getSimpleText(a.reader, "One-time code", a.out)
		if codeErr != nil {
			return
		}
		result, err = a.auth.ConfirmSecondFactor(result.Ticket, code)
		if err != nil {
			a.logger.Err(err).Msg("second factor confirmation failed")
			a.printf("Login failed. See the log for details.")
			return
		}
	}

	a.printf("%s", result.Message)
	if result.Verdict != models.VerdictOK {
		return
	}

	a.username = username
	a.masterPassword = password
	a.entries = a.vault.Load(username, password)
	a.authenticated = true
	a.printf("Vault loaded: %d entries.", len(a.entries))
}

// Logout discards the in-memory vault without saving.
func (a *App) Logout(ctx context.Context) {
	a.username = ""
	a.masterPassword = ""
	a.entries = nil
	a.authenticated = false
	a.printf("Logged out. Unsaved changes were discarded.")
}

// Save seals and persists the current vault.
func (a *App) Save(ctx context.Context) {
	saved, err := a.vault.Save(a.username, a.masterPassword, a.entries)
	if err != nil {
		a.logger.Err(err).Msg("vault save failed")
		a.printf("Save failed; the previous vault on disk is intact.")
		return
	}
	if !saved {
		a.printf("No vault file exists for this account.")
		return
	}
	a.printf("Vault saved.")
}

// Add creates a new entry after running the password policy.
func (a *App) Add(ctx context.Context) {
	website, err := getSimpleText(a.reader, "Website", a.out)
	if err != nil || website == "" {
		return
	}
	if models.FindByWebsite(a.entries, website) != nil {
		a.printf("An entry for %s already exists.", website)
		return
	}

	username, err := getSimpleText(a.reader, "Username for this site", a.out)
	if err != nil {
		return
	}
	password, err := getPassword("Password for this site", a.out)
	if err != nil {
		return
	}
	if !a.passwordAcceptable(ctx, password, a.entries) {
		return
	}
	notes, err := getSimpleText(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return
	}

	a.entries = append(a.entries, models.NewEntry(website, password, username, notes))
	a.printf("Entry added. Remember to save.")
}

// List prints every entry's website and last edit time.
func (a *App) List(ctx context.Context) {
	if len(a.entries) == 0 {
		a.printf("The vault is empty.")
		return
	}
	for _, e := range a.entries {
		a.printf("%s (%s) — last edited %s", e.Website, e.Username, e.LastEditTime())
	}
}

// Show prints one entry and offers to copy its password to the clipboard.
func (a *App) Show(ctx context.Context) {
	website, err := getSimpleText(a.reader, "Website", a.out)
	if err != nil {
		return
	}

	entry := models.FindByWebsite(a.entries, website)
	if entry == nil {
		a.printf("No entry for %s.", website)
		return
	}

	a.printf("%s", entry.String())
	a.printf("Last edited: %s", entry.LastEditTime())

	if confirm(a.reader, "Copy the password to the clipboard?", a.out) {
		if err := clipboard.WriteAll(entry.Password); err != nil {
			a.logger.Err(err).Msg("clipboard write failed")
			a.printf("Could not access the clipboard.")
			return
		}
		a.printf("Password copied.")
	}
}

// Find lists entries matching a substring pattern.
func (a *App) Find(ctx context.Context) {
	pattern, err := getSimpleText(a.reader, "Search pattern", a.out)
	if err != nil || pattern == "" {
		return
	}

	matches := models.FindByPattern(a.entries, pattern)
	if len(matches) == 0 {
		a.printf("No entries match %q.", pattern)
		return
	}
	for _, e := range matches {
		a.printf("%s (%s)", e.Website, e.Username)
	}
}

// Update mutates one field of an existing entry.
func (a *App) Update(ctx context.Context) {
	website, err := getSimpleText(a.reader, "Website of the entry to update", a.out)
	if err != nil {
		return
	}
	entry := models.FindByWebsite(a.entries, website)
	if entry == nil {
		a.printf("No entry for %s.", website)
		return
	}

	field, err := getSimpleText(a.reader, "Field to update (password/username/notes/website)", a.out)
	if err != nil {
		return
	}

	var changed bool
	switch strings.ToLower(field) {
	case "password":
		password, pwErr := getPassword("New password", a.out)
		if pwErr != nil {
			return
		}
		if !a.passwordAcceptable(ctx, password, a.entries) {
			return
		}
		changed = entry.UpdatePassword(password)
		if !changed {
			a.printf("Rejected: that password was already used for this entry.")
			return
		}
	case "username":
		value, vErr := getSimpleText(a.reader, "New username", a.out)
		if vErr != nil {
			return
		}
		changed = entry.UpdateUsername(value)
	case "notes":
		value, vErr := getSimpleText(a.reader, "New notes", a.out)
		if vErr != nil {
			return
		}
		changed = entry.UpdateNotes(value)
	case "website":
		value, vErr := getSimpleText(a.reader, "New website", a.out)
		if vErr != nil {
			return
		}
		if models.FindByWebsite(a.entries, value) != nil {
			a.printf("An entry for %s already exists.", value)
			return
		}
		changed = entry.UpdateWebsite(value)
	default:
		a.printf("Unknown field %q.", field)
		return
	}

	if !changed {
		a.printf("Value unchanged.")
		return
	}
	a.printf("Entry updated. Remember to save.")
}

// Delete removes an entry from the in-memory vault.
func (a *App) Delete(ctx context.Context) {
	website, err := getSimpleText(a.reader, "Website of the entry to delete", a.out)
	if err != nil {
		return
	}

	for i, e := range a.entries {
		if e.Website == website {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			a.printf("Entry removed. Remember to save.")
			return
		}
	}
	a.printf("No entry for %s.", website)
}

// Export writes a plaintext snapshot after an explicit confidentiality
// warning.
func (a *App) Export(ctx context.Context) {
	if !confirm(a.reader, "The export is UNENCRYPTED plaintext. Continue?", a.out) {
		a.printf("Export cancelled.")
		return
	}

	path, err := a.vault.ExportPlaintext(a.username, a.entries)
	if err != nil {
		a.logger.Err(err).Msg("export failed")
		a.printf("Export failed.")
		return
	}
	a.printf("Plaintext snapshot written to %s — handle with care.", path)
}

// Import merges a plaintext snapshot into the vault, skipping duplicates.
func (a *App) Import(ctx context.Context) {
	path, err := getSimpleText(a.reader, "Path of the snapshot to import", a.out)
	if err != nil || path == "" {
		return
	}

	imported, err := a.vault.ImportPlaintext(path, make([]*models.Entry, 0))
	if err != nil {
		if errors.Is(err, store.ErrInvalidFormat) {
			a.printf("That file is not a valid vault snapshot.")
			return
		}
		a.logger.Err(err).Msg("import failed")
		a.printf("Import failed.")
		return
	}

	var added, skipped int
	for _, e := range imported {
		if models.ContainsEntry(a.entries, e) {
			skipped++
			continue
		}
		a.entries = append(a.entries, e)
		added++
	}
	a.printf("Imported %d entries (%d duplicates skipped). Remember to save.", added, skipped)
}

// EnableSecondFactor enrolls the account into one-time-code confirmation.
func (a *App) EnableSecondFactor(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enrollment e-mail", a.out)
	if err != nil || email == "" {
		return
	}

	enrollment, err := a.auth.EnableSecondFactor(a.username, email)
	if err != nil {
		a.logger.Err(err).Msg("second factor enrollment failed")
		a.printf("Enrollment failed.")
		return
	}

	a.printf("Scan this URI with your authenticator app:")
	a.printf("  %s", enrollment.URI)
	a.printf("Second factor is now required at every login.")
}

// passwordAcceptable runs the policy pipeline: strength, breach lookup,
// vault-wide reuse. Weak or breached passwords may be accepted after explicit
// confirmation; reused ones never.
func (a *App) passwordAcceptable(ctx context.Context, password string, entries []*models.Entry) bool {
	if report := a.policy.CheckStrength(password); !report.OK() {
		a.printf("The password is weak; it is missing: %s.", strings.Join(report.Failed(), ", "))
		if !confirm(a.reader, "Use it anyway?", a.out) {
			return false
		}
	}

	count, err := a.policy.CheckBreached(ctx, password)
	switch {
	case err != nil:
		a.printf("The breach check is unavailable right now.")
		if !confirm(a.reader, "Proceed without it?", a.out) {
			return false
		}
	case count > 0:
		a.printf("This password appears in %d known breaches.", count)
		if !confirm(a.reader, "Use it anyway?", a.out) {
			return false
		}
	}

	if a.policy.CheckReuse(password, entries) {
		a.printf("Rejected: that password is already used somewhere in your vault.")
		return false
	}

	return true
}
