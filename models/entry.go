// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package models

import (
	"fmt"
	"time"
)

// Entry represents a single credential record inside a user's vault.
// Two entries are considered equal when their Website fields are equal;
// all other fields are ignored for identity purposes.
type Entry struct {
	// Website is the unique key of the entry within a vault.
	// Comparison is exact and case-sensitive.
	Website string `json:"website"`

	// Username is the account name used on the website.
	Username string `json:"username"`

	// Password is the current secret of the entry.
	Password string `json:"password"`

	// Notes holds free-form user notes attached to the entry.
	Notes string `json:"notes"`

	// OldPasswords is the set of previously used passwords for this entry.
	// It never contains the current Password.
	OldPasswords []string `json:"oldPasswords"`

	// Timestamps is the modification history of the entry as unix seconds.
	// Its length is always 1 + the number of accepted mutations and the
	// values are monotonically non-decreasing.
	Timestamps []int64 `json:"timestamps"`
}

// NewEntry constructs an Entry with a single creation timestamp and fresh
// history containers. Containers are allocated per entry and never shared.
func NewEntry(website, password, username, notes string) *Entry {
	return &Entry{
		Website:      website,
		Username:     username,
		Password:     password,
		Notes:        notes,
		OldPasswords: make([]string, 0),
		Timestamps:   []int64{time.Now().Unix()},
	}
}

// UpdatePassword replaces the entry's password.
//
// The update is rejected (returns false, no mutation, no timestamp) when the
// new password equals the current one or any previously used password of this
// entry. On success the current password moves into OldPasswords, the new
// value is applied, and one timestamp is appended.
func (e *Entry) UpdatePassword(password string) bool {
	if e.Password == password {
		return false
	}
	for _, old := range e.OldPasswords {
		if old == password {
			return false
		}
	}

	e.OldPasswords = append(e.OldPasswords, e.Password)
	e.Password = password
	e.Timestamps = append(e.Timestamps, time.Now().Unix())
	return true
}

// UpdateUsername sets a new username. Returns false when the value is
// unchanged. Unlike passwords, a username may be reverted to a prior value.
func (e *Entry) UpdateUsername(username string) bool {
	if e.Username == username {
		return false
	}

	e.Username = username
	e.Timestamps = append(e.Timestamps, time.Now().Unix())
	return true
}

// UpdateNotes sets new notes. Returns false when the value is unchanged.
func (e *Entry) UpdateNotes(notes string) bool {
	if e.Notes == notes {
		return false
	}

	e.Notes = notes
	e.Timestamps = append(e.Timestamps, time.Now().Unix())
	return true
}

// UpdateWebsite sets a new website. Returns false when the value is
// unchanged. The caller is responsible for keeping website values unique
// within the vault.
func (e *Entry) UpdateWebsite(website string) bool {
	if e.Website == website {
		return false
	}

	e.Website = website
	e.Timestamps = append(e.Timestamps, time.Now().Unix())
	return true
}

// LastEditTime renders the most recent modification timestamp in local time.
func (e *Entry) LastEditTime() string {
	last := e.Timestamps[len(e.Timestamps)-1]
	return time.Unix(last, 0).Format("2006-01-02 15:04:05")
}

// Equal reports whether two entries identify the same credential record.
// Identity is website-only.
func (e *Entry) Equal(other *Entry) bool {
	return other != nil && e.Website == other.Website
}

// String renders the entry for display and debugging. Never used for
// persistence.
func (e *Entry) String() string {
	return fmt.Sprintf("%s - %s - %s - %s", e.Website, e.Username, e.Password, e.Notes)
}
