// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rhi provides a render-hardware-interface abstraction for the
// GoGPU ecosystem: a single Device interface over structurally different
// native graphics APIs, with typed descriptors for every GPU resource.
//
// # Overview
//
// rhi defines the vocabulary of GPU resource management: formats, texture
// and buffer descriptors, binding layouts and sets, pipelines, heaps,
// queries, and command lists. Backends implement the Device interface;
// callers program against it without knowing which API runs underneath.
//
// # Validation
//
// The centerpiece of the module is the validation decorator in the
// validation sub-package. It wraps any Device, checks every resource
// creation and binding call against the semantic rules of the active
// backend, and rejects malformed requests with aggregated diagnostics
// before they reach the GPU:
//
//	import (
//	    "github.com/gogpu/rhi"
//	    "github.com/gogpu/rhi/backend/headless"
//	    "github.com/gogpu/rhi/validation"
//	)
//
//	inner := headless.New()
//	device := validation.NewDevice(inner)
//
//	// Invalid calls fail with a *validation.Error and never reach
//	// the backend:
//	_, err := device.CreateTexture(rhi.TextureDesc{Width: 0})
//
// # Backends
//
// Two backends ship with the module:
//   - backend/headless: an in-memory device for tests, tooling, and CI
//   - backend/webgpu: a compute-capable device on gogpu/wgpu
//
// # Conventions
//
// Descriptors are plain values owned by the caller; a device may retain a
// patched copy but never mutates the caller's struct. Creation operations
// return (handle, error). Resource lifetime follows the Go garbage
// collector; backends that hold native resources expose explicit release
// where it matters.
//
// By default, rhi produces no log output. Call [SetLogger] to enable
// structured logging through log/slog.
package rhi
