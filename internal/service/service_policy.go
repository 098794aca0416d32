// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sgerasimov/passvault/internal/logger"
	"github.com/sgerasimov/passvault/models"
)

// minPasswordLength is the static strength floor for candidate passwords.
const minPasswordLength = 12

// policyService is the concrete implementation of [PolicyService]. The
// strength and reuse checks are pure; the breach check delegates to the
// outbound range client.
type policyService struct {
	breach BreachRangeClient
	logger *logger.Logger
}

// NewPolicyService constructs a [PolicyService] using breach for the
// k-anonymity lookup.
func NewPolicyService(breach BreachRangeClient, log *logger.Logger) PolicyService {
	return &policyService{breach: breach, logger: log}
}

// CheckStrength implements [PolicyService].
func (p *policyService) CheckStrength(password string) models.StrengthReport {
	report := models.StrengthReport{
		MinLength: len(password) >= minPasswordLength,
	}

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			report.Lowercase = true
		case unicode.IsUpper(r):
			report.Uppercase = true
		case unicode.IsDigit(r):
			report.Digit = true
		default:
			report.Special = true
		}
	}

	return report
}

// CheckBreached implements [PolicyService].
func (p *policyService) CheckBreached(ctx context.Context, password string) (int, error) {
	digest := sha1Hex(password)

	body, err := p.breach.Range(ctx, digest[:5])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBreachLookup, err)
	}

	suffix := digest[5:]
	for _, line := range strings.Split(body, "\n") {
		candidate, count, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		if candidate == suffix {
			n, err := strconv.Atoi(count)
			if err != nil {
				return 0, fmt.Errorf("%w: malformed count %q", ErrBreachLookup, count)
			}
			return n, nil
		}
	}

	return 0, nil
}

// CheckReuse implements [PolicyService].
func (p *policyService) CheckReuse(password string, entries []*models.Entry) bool {
	for _, e := range entries {
		if e.Password == password {
			return true
		}
		for _, old := range e.OldPasswords {
			if old == password {
				return true
			}
		}
	}
	return false
}

// sha1Hex returns the uppercase hexadecimal SHA-1 digest of password, the
// form the range service indexes by.
func sha1Hex(password string) string {
	sum := sha1.Sum([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
