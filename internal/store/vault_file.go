// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sgerasimov/passvault/internal/crypto"
	"github.com/sgerasimov/passvault/internal/logger"
	"github.com/sgerasimov/passvault/models"
)

// fileVaultRepository is the file-backed implementation of [VaultRepository].
// Sealed vaults live at <dir>/<username>_entries.enc; plaintext exports go to
// clearly different names so the two can never be confused.
type fileVaultRepository struct {
	dir    string
	sealer crypto.Sealer
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] rooted at dir, creating
// the directory when missing.
func NewVaultRepository(dir string, sealer crypto.Sealer, log *logger.Logger) (VaultRepository, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create resources dir: %w", err)
	}

	return &fileVaultRepository{dir: dir, sealer: sealer, logger: log}, nil
}

// Path implements [VaultRepository].
func (r *fileVaultRepository) Path(username string) string {
	return filepath.Join(r.dir, username+"_entries.enc")
}

// CreateFile implements [VaultRepository].
func (r *fileVaultRepository) CreateFile(username string) (bool, error) {
	path := r.Path(username)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return false, fmt.Errorf("create vault placeholder: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, err
	}

	r.logger.Debug().Str("path", path).Msg("vault placeholder created")
	return true, nil
}

// Save implements [VaultRepository].
func (r *fileVaultRepository) Save(username, password string, entries []*models.Entry) (bool, error) {
	path := r.Path(username)
	if _, err := os.Stat(path); err != nil {
		r.logger.Warn().Str("username", username).Msg("save refused: no vault placeholder")
		return false, nil
	}

	content, err := json.Marshal(entries)
	if err != nil {
		return false, fmt.Errorf("marshal entries: %w", err)
	}

	blob, err := r.sealer.Seal(content, password)
	if err != nil {
		return false, fmt.Errorf("seal vault: %w", err)
	}

	if err := atomicWrite(path, blob); err != nil {
		return false, fmt.Errorf("write sealed vault: %w", err)
	}

	r.logger.Debug().Str("username", username).Int("entries", len(entries)).Msg("vault saved")
	return true, nil
}

// Load implements [VaultRepository].
func (r *fileVaultRepository) Load(username, password string) []*models.Entry {
	entries := make([]*models.Entry, 0)

	blob, err := os.ReadFile(r.Path(username))
	if err != nil {
		return entries
	}

	content := r.sealer.Unseal(password, blob)
	if len(content) == 0 {
		return entries
	}

	if err := json.Unmarshal(content, &entries); err != nil {
		// decrypt-to-garbage that still unpadded cleanly; treat as empty
		r.logger.Warn().Str("username", username).Msg("vault decoded to garbage")
		return make([]*models.Entry, 0)
	}

	normalizeEntries(entries)
	return entries
}

// ExportPlaintext implements [VaultRepository].
func (r *fileVaultRepository) ExportPlaintext(username string, entries []*models.Entry) (string, error) {
	content, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal entries: %w", err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%s_export_%s.json", username, uuid.NewString()))
	if err := atomicWrite(path, content); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	r.logger.Info().Str("path", path).Msg("plaintext export written")
	return path, nil
}

// ImportPlaintext implements [VaultRepository].
func (r *fileVaultRepository) ImportPlaintext(path string, entries []*models.Entry) ([]*models.Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var imported []*models.Entry
	if err := json.Unmarshal(content, &imported); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	for _, e := range imported {
		if e == nil || e.Website == "" {
			return nil, fmt.Errorf("%w: entry without website", ErrInvalidFormat)
		}
	}

	normalizeEntries(imported)
	return append(entries, imported...), nil
}

// normalizeEntries backfills history containers for records written before
// the optional fields existed, so every loaded entry satisfies the Entry
// invariants.
func normalizeEntries(entries []*models.Entry) {
	for _, e := range entries {
		if e.OldPasswords == nil {
			e.OldPasswords = make([]string, 0)
		}
		if len(e.Timestamps) == 0 {
			fresh := models.NewEntry(e.Website, e.Password, e.Username, e.Notes)
			e.Timestamps = fresh.Timestamps
		}
	}
}

// atomicWrite writes data to a temporary file in the target directory and
// renames it over path, so a failed write leaves the previous version intact.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Chmod(path, 0o600)
}
