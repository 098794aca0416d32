// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

// Package secondfactor wraps the time-based one-time-code scheme used for
// login confirmation. Codes are standard authenticator-app defaults: six
// digits, 30-second window, SHA-1. QR rendering of the provisioning URI is a
// downstream concern; this package only produces the URI.
package secondfactor

import (
	"fmt"

	"github.com/pquerna/otp/totp"
)

// Generator creates and verifies one-time codes bound to a shared secret.
type Generator struct {
	// issuer is the account label shown in authenticator apps.
	issuer string
}

// NewGenerator constructs a [Generator] that provisions keys under issuer.
func NewGenerator(issuer string) *Generator {
	return &Generator{issuer: issuer}
}

// GenerateKey creates a fresh random shared secret bound to email and the
// otpauth:// provisioning URI for it.
func (g *Generator) GenerateKey(email string) (secret, uri string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      g.issuer,
		AccountName: email,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate totp key: %w", err)
	}

	return key.Secret(), key.URL(), nil
}

// Verify reports whether code is the valid one-time code for secret in the
// current time window.
func (g *Generator) Verify(secret, code string) bool {
	return totp.Validate(code, secret)
}
