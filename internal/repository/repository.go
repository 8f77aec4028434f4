package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., firestore) inside this directory.
// The gateway is read-only: no repository exposes a write operation.

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")
