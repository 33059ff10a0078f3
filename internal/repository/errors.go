// Package repository contains data access logic separated from HTTP
// handlers. This file defines error values that are reused across
// repositories and the service layer. These sentinel values allow higher
// layers to distinguish between failure scenarios: ErrForbidden indicates
// that the current user is not the owner of a resource, while
// ErrEmailExists signals a duplicate registration.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an HTTP
// 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registering with an email that is
// already taken. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
