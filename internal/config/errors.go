package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive lockout threshold).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty resources directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidBreachConfigs indicates invalid breach-lookup settings
	// (for example, a non-positive timeout).
	ErrInvalidBreachConfigs = errors.New("invalid breach configuration")
)
