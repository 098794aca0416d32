// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package secondfactor

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	g := NewGenerator("PassVault")

	secret, uri, err := g.GenerateKey("bob@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, secret)
	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, "PassVault")
	assert.Contains(t, uri, "bob%40example.com")
}

func TestGenerateKey_FreshSecretPerCall(t *testing.T) {
	g := NewGenerator("PassVault")

	s1, _, err := g.GenerateKey("bob@example.com")
	require.NoError(t, err)
	s2, _, err := g.GenerateKey("bob@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
}

func TestVerify(t *testing.T) {
	g := NewGenerator("PassVault")

	secret, _, err := g.GenerateKey("bob@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	assert.True(t, g.Verify(secret, code))
	assert.False(t, g.Verify(secret, "000000"))
	assert.False(t, g.Verify(secret, "not-a-code"))
}
