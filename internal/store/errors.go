package store

import "errors"

// ErrNotFound is returned by lookups for rows that don't exist. Missing
// data is a normal outcome, not a failure.
var ErrNotFound = errors.New("not found")

// ErrInvalidSession is returned when closing or updating a session that
// doesn't exist or was already closed.
var ErrInvalidSession = errors.New("session does not exist or is already closed")
