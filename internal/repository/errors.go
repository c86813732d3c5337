// Package repository contains the data access layer. Sentinel errors
// defined here are shared across repositories so handlers can map
// failures onto HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrConflict is returned when a write cannot proceed because of
// existing state, such as requesting a share while an identical request
// is still pending. Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
