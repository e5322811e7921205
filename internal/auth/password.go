// Copyright (c) 2026 CityInfo API. All rights reserved.

package auth

import "unicode"

// PasswordPolicyMessage is the exact wording returned to clients when a
// submitted password fails the strength policy. It is part of the public
// signup contract and must not be reworded casually.
const PasswordPolicyMessage = "Password must contain at least 1 small-case letter, 1 Capital letter, 1 digit, 1 special character and the length should be between 6-10 characters."

const (
	passwordMinLen = 6
	passwordMaxLen = 10
)

// specialChars is the set of punctuation accepted as a "special character".
const specialChars = `!@#$%^&*()_+}{":;'?/>.<,`

/*
IsStrongPassword checks a candidate password against the signup policy.

The policy requires, simultaneously:
  - at least one lower-case letter,
  - at least one upper-case letter,
  - at least one digit,
  - at least one special character from the accepted set,
  - no whitespace anywhere,
  - a total length of 6 to 10 characters.

Returns:
  - bool: true only when every rule holds
*/
func IsStrongPassword(password string) bool {
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	length := 0

	for _, r := range password {
		length++
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case isSpecialChar(r):
			hasSpecial = true
		}
	}

	if length < passwordMinLen || length > passwordMaxLen {
		return false
	}

	return hasLower && hasUpper && hasDigit && hasSpecial
}

// isSpecialChar reports whether r belongs to the accepted special set.
func isSpecialChar(r rune) bool {
	for _, s := range specialChars {
		if r == s {
			return true
		}
	}
	return false
}
