package store

import "errors"

// Sentinel errors returned by the profile repositories. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEntryNotFound is returned by Get when the key has no stored value.
	ErrEntryNotFound = errors.New("profile entry not found")

	// ErrNoSession is returned when the access token entry is absent.
	ErrNoSession = errors.New("no stored session")

	// ErrSessionUnreadable is returned when stored entries cannot be opened
	// or decoded, typically after the profile secret changed.
	ErrSessionUnreadable = errors.New("stored session is unreadable")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan profile row")
)
