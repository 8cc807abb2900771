// Package repository holds the store contracts used by the services and
// their MySQL implementations.  The sentinel errors below are shared by
// every store implementation so handlers can map them to status codes.
package repository

import "errors"

// ErrNotFound is returned when the requested record does not exist.
// Handlers translate it into an HTTP 404 (or 401 for logins).
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a signup reuses an email.  Handlers
// translate it into an HTTP 400 "User exists".
var ErrEmailExists = errors.New("email already exists")
