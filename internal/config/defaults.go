package config

import (
	"errors"
	"fmt"
	"time"
)

// Defaults applied after all sources are merged. Only zero-valued fields are
// touched, so any source can override any of them.
const (
	DefaultResourcesDir     = "resources"
	DefaultBreachBaseURL    = "https://api.pwnedpasswords.com"
	DefaultBreachTimeout    = 3 * time.Second
	DefaultPasswordHashKey  = "passvault-local"
	DefaultTOTPIssuer       = "PassVault"
	DefaultMaxLoginAttempts = 3
	DefaultLockoutWindow    = 60 * time.Second
)

func (c *StructuredConfig) applyDefaults() {
	if c.Storage.ResourcesDir == "" {
		c.Storage.ResourcesDir = DefaultResourcesDir
	}
	if c.Breach.BaseURL == "" {
		c.Breach.BaseURL = DefaultBreachBaseURL
	}
	if c.Breach.Timeout == 0 {
		c.Breach.Timeout = DefaultBreachTimeout
	}
	if c.App.PasswordHashKey == "" {
		c.App.PasswordHashKey = DefaultPasswordHashKey
	}
	if c.App.TOTPIssuer == "" {
		c.App.TOTPIssuer = DefaultTOTPIssuer
	}
	if c.App.MaxLoginAttempts == 0 {
		c.App.MaxLoginAttempts = DefaultMaxLoginAttempts
	}
	if c.App.LockoutWindow == 0 {
		c.App.LockoutWindow = DefaultLockoutWindow
	}
}

func (c *StructuredConfig) validate() error {
	var err error

	if c.App.MaxLoginAttempts < 1 {
		err = errors.Join(err, fmt.Errorf("%w: max login attempts must be positive", ErrInvalidAppConfigs))
	}
	if c.App.LockoutWindow < 0 {
		err = errors.Join(err, fmt.Errorf("%w: lockout window must not be negative", ErrInvalidAppConfigs))
	}
	if c.Breach.Timeout <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: breach timeout must be positive", ErrInvalidBreachConfigs))
	}
	if c.Storage.ResourcesDir == "" {
		err = errors.Join(err, fmt.Errorf("%w: resources dir must be set", ErrInvalidStorageConfigs))
	}

	return err
}
