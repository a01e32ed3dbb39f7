// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import "errors"

var (
	// ErrNoAdapter is returned by New when no Vulkan backend is
	// registered or adapter enumeration finds no usable GPU.
	ErrNoAdapter = errors.New("webgpu: no suitable GPU adapter")

	// ErrNotMappable is returned when mapping a resource created
	// without CPU access.
	ErrNotMappable = errors.New("webgpu: resource is not CPU accessible")

	// ErrForeignResource is returned when a resource passed to a device
	// method was not created by this device.
	ErrForeignResource = errors.New("webgpu: resource was not created by this device")

	// ErrListState is returned when a command list operation is called
	// in the wrong recording state.
	ErrListState = errors.New("webgpu: command list is not in the required state")
)
