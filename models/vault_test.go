// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testVault() []*Entry {
	return []*Entry{
		NewEntry("github.com", "Gh#Pass12345", "bob", "work"),
		NewEntry("gitlab.com", "Gl#Pass12345", "bob-dev", "personal"),
		NewEntry("bank.example", "Bk#Pass12345", "robert", "savings"),
	}
}

func TestFindByWebsite(t *testing.T) {
	vault := testVault()

	e := FindByWebsite(vault, "gitlab.com")
	assert.NotNil(t, e)
	assert.Equal(t, "bob-dev", e.Username)

	assert.Nil(t, FindByWebsite(vault, "GitLab.com"), "match is case-sensitive")
	assert.Nil(t, FindByWebsite(vault, "missing.example"))
}

func TestFindByPattern(t *testing.T) {
	vault := testVault()

	tests := []struct {
		name    string
		pattern string
		want    int
	}{
		{name: "website substring", pattern: "git", want: 2},
		{name: "username substring", pattern: "robert", want: 1},
		{name: "notes substring", pattern: "work", want: 1},
		{name: "password substring", pattern: "Bk#", want: 1},
		{name: "no match", pattern: "zzz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FindByPattern(vault, tt.pattern), tt.want)
		})
	}
}

func TestFindByPattern_EntryListedOnce(t *testing.T) {
	vault := []*Entry{NewEntry("bob.example", "pw", "bob", "bob's site")}

	// pattern matches website, username and notes of the same entry
	assert.Len(t, FindByPattern(vault, "bob"), 1)
}

func TestContainsEntry(t *testing.T) {
	vault := testVault()

	assert.True(t, ContainsEntry(vault, NewEntry("github.com", "other", "other", "")))
	assert.False(t, ContainsEntry(vault, NewEntry("new.example", "pw", "u", "")))
}
