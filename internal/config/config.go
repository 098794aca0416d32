// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for passvault.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: hashing key, lockout policy,
	// second-factor issuer, log destination.
	App App `envPrefix:"APP_"`

	// Storage holds the file-system persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Breach holds the outbound breach-lookup settings.
	Breach Breach `envPrefix:"BREACH_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// PasswordHashKey is the secret key used when hashing master passwords
	// with HMAC-SHA256. Must stay stable across runs, or existing accounts
	// stop authenticating.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TOTPIssuer is the issuer label shown in authenticator apps for
	// enrolled second factors.
	// Env: APP_TOTP_ISSUER
	TOTPIssuer string `env:"TOTP_ISSUER"`

	// MaxLoginAttempts is the number of consecutive failed password checks
	// that starts a lockout window.
	// Env: APP_MAX_LOGIN_ATTEMPTS
	MaxLoginAttempts int `env:"MAX_LOGIN_ATTEMPTS"`

	// LockoutWindow is how long a locked account rejects all attempts
	// (e.g. "60s", "5m").
	// Env: APP_LOCKOUT_WINDOW
	LockoutWindow time.Duration `env:"LOCKOUT_WINDOW"`

	// LogPath is the file the interactive binary logs to, so log lines do
	// not interleave with the prompt. Empty means stdout.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Storage holds the file-system persistence settings.
type Storage struct {
	// ResourcesDir is the directory holding the per-account sealed vaults
	// and account records. Injected everywhere; never derived from the
	// working directory ad hoc.
	// Env: STORAGE_RESOURCES_DIR
	ResourcesDir string `env:"RESOURCES_DIR"`
}

// Breach holds settings for the k-anonymity breach-lookup collaborator.
type Breach struct {
	// BaseURL is the root of the range endpoint
	// (e.g. "https://api.pwnedpasswords.com").
	// Env: BREACH_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Timeout bounds a single range lookup. There are no implicit retries.
	// Env: BREACH_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// GetConfig loads, merges, validates, and defaults the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
