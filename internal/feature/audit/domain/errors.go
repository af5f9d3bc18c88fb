// Package domain defines domain-level errors for the audit feature.
package domain

import "errors"

// ErrEventNotFound indicates that no event has the requested ID.
var ErrEventNotFound = errors.New("event not found")
