// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package auth

import (
	"regexp"

	"github.com/samber/oops"
)

// MinUsernameLength is the minimum accepted username length.
const MinUsernameLength = 8

// MaxPasswordStrength is the upper bound of the PasswordStrength scale.
const MaxPasswordStrength = 5

// Character-class patterns used by password validation and strength
// scoring. The special set is fixed: !@#$%^&*()_+-=[]{};':"\|,.<>/?
var (
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
	specialRegex   = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// ValidateUsername checks username syntax rules.
// The error message is user-facing and returned verbatim in field maps.
func ValidateUsername(username string) error {
	if username == "" {
		return oops.Code("AUTH_USERNAME_REQUIRED").Errorf("Username is required")
	}
	if len(username) < MinUsernameLength {
		return oops.Code("AUTH_USERNAME_TOO_SHORT").
			With("min", MinUsernameLength).
			Errorf("Username must be at least %d characters long", MinUsernameLength)
	}
	return nil
}

// ValidatePassword checks the mandatory password character classes, in
// order: lowercase, uppercase, special. The first missing class wins.
// There is no digit requirement and no maximum length.
func ValidatePassword(password string) error {
	if password == "" {
		return oops.Code("AUTH_PASSWORD_REQUIRED").Errorf("Password is required")
	}
	if !lowercaseRegex.MatchString(password) {
		return oops.Code("AUTH_PASSWORD_WEAK").
			Errorf("Password must contain at least one lowercase letter")
	}
	if !uppercaseRegex.MatchString(password) {
		return oops.Code("AUTH_PASSWORD_WEAK").
			Errorf("Password must contain at least one uppercase letter")
	}
	if !specialRegex.MatchString(password) {
		return oops.Code("AUTH_PASSWORD_WEAK").
			Errorf("Password must contain at least one special character")
	}
	return nil
}

// PasswordStrength scores a password from 0 to 5 for advisory UI
// feedback. One point each for: length >= 8, length >= 12, a lowercase
// letter, an uppercase letter, a digit, a special character; capped at
// MaxPasswordStrength. A password can score low and still pass
// ValidatePassword - the score never gates acceptance. Digits count
// toward the score even though ValidatePassword does not require them.
func PasswordStrength(password string) int {
	if password == "" {
		return 0
	}

	strength := 0
	if len(password) >= 8 {
		strength++
	}
	if len(password) >= 12 {
		strength++
	}
	if lowercaseRegex.MatchString(password) {
		strength++
	}
	if uppercaseRegex.MatchString(password) {
		strength++
	}
	if digitRegex.MatchString(password) {
		strength++
	}
	if specialRegex.MatchString(password) {
		strength++
	}

	if strength > MaxPasswordStrength {
		return MaxPasswordStrength
	}
	return strength
}
