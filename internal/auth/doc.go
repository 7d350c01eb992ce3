// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

// Package auth implements the SecureConnect authentication core.
//
// # Components
//
//   - ValidateUsername, ValidatePassword, PasswordStrength - pure
//     credential syntax rules and advisory strength scoring
//   - PasswordHasher / BcryptHasher - salted adaptive password hashing
//   - SessionStore / TokenCodec - signed, time-limited session tokens
//   - UserRepository - abstract persistence for user records
//   - Service - orchestrates registration, login, and session lookup
//
// The Service never reveals whether a login failed because the username
// is unknown or because the password is wrong, and it maps every
// repository, hashing, or signing failure to a single internal error so
// callers cannot observe storage details.
package auth
