// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios and translate them
// into the right HTTP status.
package repository

import "errors"

// ErrNotFound is returned when a row addressed by id or slug does not
// exist. Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a write would violate the unique email
// constraint on users.
var ErrEmailExists = errors.New("email already exists")

// ErrSlugSpace is returned when slug collision probing exhausts its bounded
// retry budget without finding a free candidate.
var ErrSlugSpace = errors.New("no free slug candidate")

// ErrSlugExists is returned when an explicitly patched slug collides with
// another post. Unlike create, update stores the requested slug verbatim and
// reports the conflict instead of suffix-resolving it.
var ErrSlugExists = errors.New("slug already exists")
