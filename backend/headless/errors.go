// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import "errors"

var (
	// ErrNotMappable is returned by map operations on resources created
	// without CPU access.
	ErrNotMappable = errors.New("headless: resource is not CPU accessible")

	// ErrNoMemory is returned when a virtual resource is used before
	// memory is bound to it.
	ErrNoMemory = errors.New("headless: virtual resource has no bound memory")

	// ErrHeapRange is returned when a memory bind does not fit inside
	// the heap.
	ErrHeapRange = errors.New("headless: bind range exceeds heap capacity")

	// ErrForeignResource is returned when a resource created by another
	// device is passed in.
	ErrForeignResource = errors.New("headless: resource was not created by this device")

	// ErrListState is returned when a command list operation does not
	// match the list's recording state.
	ErrListState = errors.New("headless: command list is not in the required state")
)
