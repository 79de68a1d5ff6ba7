package services

import "errors"

// Failure taxonomy for normalization and store operations. All of these are
// recoverable: the caller surfaces a message and takes no persistence action.
// Normalization failures are never retried; a malformed payload cannot parse
// better the second time.
var (
	// ErrInvalidSource marks an unparseable top-level provider payload.
	ErrInvalidSource = errors.New("invalid source payload")

	// ErrNoServings marks a structured-serving payload with zero usable
	// servings, or a selector called on an empty candidate list.
	ErrNoServings = errors.New("no servings available")

	// ErrIncompleteNutrition marks free-text commit input missing one of the
	// four required nutrients.
	ErrIncompleteNutrition = errors.New("incomplete nutrition data")

	// ErrRemoteUnavailable wraps network or store failures on read and write.
	ErrRemoteUnavailable = errors.New("remote service unavailable")

	// ErrNotAuthenticated marks an operation issued without a user identity.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLogNotFound is returned by a LogStore read for a day that has not
	// materialized yet.
	ErrLogNotFound = errors.New("daily log not found")
)
