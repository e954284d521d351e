// Package repository contains data access logic separated from HTTP
// handlers. Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Handlers
// translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an insert collides with the unique
// email constraint on the contacts table. Handlers translate it into 400.
var ErrDuplicateEmail = errors.New("email already exists")
