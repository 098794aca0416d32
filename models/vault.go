// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package models

import "strings"

// FindByWebsite returns the entry whose website matches url exactly,
// or nil when the vault holds no such entry.
func FindByWebsite(entries []*Entry, url string) *Entry {
	for _, e := range entries {
		if e.Website == url {
			return e
		}
	}
	return nil
}

// FindByPattern returns every entry whose website, username, notes or
// password contains pattern as a substring. Each entry appears at most once
// in the result, in vault order.
func FindByPattern(entries []*Entry, pattern string) []*Entry {
	found := make([]*Entry, 0)
	for _, e := range entries {
		if strings.Contains(e.Website, pattern) ||
			strings.Contains(e.Username, pattern) ||
			strings.Contains(e.Notes, pattern) ||
			strings.Contains(e.Password, pattern) {
			found = append(found, e)
		}
	}
	return found
}

// ContainsEntry reports whether the vault already holds an entry equal to
// candidate (website-only identity).
func ContainsEntry(entries []*Entry, candidate *Entry) bool {
	for _, e := range entries {
		if e.Equal(candidate) {
			return true
		}
	}
	return false
}
