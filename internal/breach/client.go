// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

// Package breach implements the outbound k-anonymity range lookup against a
// Pwned-Passwords-compatible service. Only the first five characters of a
// password's SHA-1 digest ever leave the machine.
package breach

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/sgerasimov/passvault/internal/config"
	"github.com/sgerasimov/passvault/internal/logger"
)

// Client is a thin wrapper around a resty.Client configured for the range
// endpoint. The policy evaluator consumes it through a small interface so
// tests can substitute a stub.
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

// NewClient builds a range-lookup client from cfg. The configured timeout is
// the only retry/deadline policy; there are no implicit retries.
func NewClient(cfg config.Breach, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "passvault")

	return &Client{http: httpClient, logger: log}
}

// Range fetches the newline-delimited SUFFIX:COUNT body for a 5-character
// uppercase hex digest prefix. Transport errors, timeouts, and non-200
// responses all surface as errors; the caller must never read them as
// "zero breaches".
func (c *Client) Range(ctx context.Context, prefix string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/range/" + prefix)
	if err != nil {
		c.logger.Warn().Err(err).Msg("breach range request failed")
		return "", fmt.Errorf("breach range request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode()).Msg("breach range unexpected status")
		return "", fmt.Errorf("breach range request: unexpected status %d", resp.StatusCode())
	}

	return resp.String(), nil
}
