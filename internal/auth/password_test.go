// Copyright (c) 2026 CityInfo API. All rights reserved.

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid minimal", "Abc123!", true},
		{"valid at max length", "Abcde123!@", true},
		{"valid exactly six chars", "Ab1!cd", true},
		{"missing upper case", "abc123!", false},
		{"missing lower case", "ABC123!", false},
		{"missing digit", "Abcdef!", false},
		{"missing special", "Abc1234", false},
		{"too short", "Ab1!x", false},
		{"too long", "A1!aaaaaaaaa", false},
		{"contains space", "Ab 123!", false},
		{"contains tab", "Ab\t123!", false},
		{"empty", "", false},
		{"only specials", "!@#$%^", false},
		{"special from full set", `Ab1<>."`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStrongPassword(tc.password))
		})
	}
}
