// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sgerasimov/passvault/internal/logger"
	"github.com/sgerasimov/passvault/models"
)

// fileAccountRepository is the file-backed implementation of
// [AccountRepository]. One JSON record per account at
// <dir>/<username>_user.json. The schema is versioned implicitly through
// zero-value defaults: fields added over the record's evolution decode to
// their zero values for older files.
type fileAccountRepository struct {
	dir    string
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] rooted at dir,
// creating the directory when missing.
func NewAccountRepository(dir string, log *logger.Logger) (AccountRepository, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create resources dir: %w", err)
	}

	return &fileAccountRepository{dir: dir, logger: log}, nil
}

func (r *fileAccountRepository) path(username string) string {
	return filepath.Join(r.dir, username+"_user.json")
}

// Create implements [AccountRepository].
func (r *fileAccountRepository) Create(account models.Account) error {
	if r.Exists(account.Username) {
		return fmt.Errorf("%w: %s", ErrAccountAlreadyExists, account.Username)
	}

	if err := r.write(account); err != nil {
		return err
	}

	r.logger.Info().Str("username", account.Username).Msg("account created")
	return nil
}

// FindByUsername implements [AccountRepository].
func (r *fileAccountRepository) FindByUsername(username string) (models.Account, error) {
	content, err := os.ReadFile(r.path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, username)
		}
		return models.Account{}, fmt.Errorf("read account file: %w", err)
	}

	var account models.Account
	if err := json.Unmarshal(content, &account); err != nil {
		r.logger.Error().Err(err).Str("username", username).Msg("corrupt account file")
		return models.Account{}, fmt.Errorf("%w: account file for %s", ErrInvalidFormat, username)
	}

	return account, nil
}

// Save implements [AccountRepository].
func (r *fileAccountRepository) Save(account models.Account) error {
	return r.write(account)
}

// Exists implements [AccountRepository].
func (r *fileAccountRepository) Exists(username string) bool {
	_, err := os.Stat(r.path(username))
	return err == nil
}

func (r *fileAccountRepository) write(account models.Account) error {
	content, err := json.MarshalIndent(account, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	if err := atomicWrite(r.path(account.Username), content); err != nil {
		return fmt.Errorf("write account file: %w", err)
	}
	return nil
}
