// Package domain defines domain-level errors for the account feature.
package domain

import "errors"

// Domain errors for account lifecycle operations.
// The transport layer maps each of them to an HTTP status; anything else is
// treated as an internal failure.
var (
	// ErrUserNotFound indicates that no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrConflict indicates a unique constraint violation on email, username or phone.
	ErrConflict = errors.New("user with this email, username or phone already exists")

	// ErrBadCredentials indicates a password mismatch.
	ErrBadCredentials = errors.New("invalid email or password")

	// ErrNotVerified is returned on login before the email address is verified.
	ErrNotVerified = errors.New("account not verified")

	// ErrAlreadyVerified is returned when resending a code to a verified account.
	ErrAlreadyVerified = errors.New("account is already verified")

	// ErrVerificationExpired is returned when the verification code has expired.
	ErrVerificationExpired = errors.New("verification code has expired")

	// ErrInvalidCode is returned when the submitted code does not match.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrUserDeleted is returned for operations on a soft-deleted user.
	ErrUserDeleted = errors.New("user has been deleted")

	// ErrAlreadyDeleted is returned when deleting a user twice.
	ErrAlreadyDeleted = errors.New("user already deleted")

	// ErrAttemptsExhausted is returned once the lifetime password change quota is used up.
	ErrAttemptsExhausted = errors.New("password change limit reached")

	// ErrWeakPassword is returned when a new password is shorter than the minimum length.
	ErrWeakPassword = errors.New("new password should be at least 5 characters")

	// ErrPasswordTooLong is returned when a password exceeds the 72 bytes bcrypt can hash.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

	// ErrPasswordUnchanged is returned when the new password equals the current one.
	ErrPasswordUnchanged = errors.New("new password must be different from current password")

	// ErrUnauthenticated indicates a missing, revoked or expired session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates that the caller lacks the required role.
	ErrForbidden = errors.New("access denied")
)
