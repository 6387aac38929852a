/**
 * @description
 * Sentinel errors shared by the service layer.
 * Handlers map these onto HTTP statuses; anything unrecognized becomes a
 * generic 500 so internal detail never leaks to the caller.
 */

package services

import "errors"

var (
	// ErrMissingFields signals a request with absent or empty required fields.
	ErrMissingFields = errors.New("missing required fields")

	// ErrDuplicateAccount signals registration with an email that already exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken signals a malformed, badly signed, or expired session token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound signals that the referenced account does not exist.
	ErrUserNotFound = errors.New("user not found")
)
