// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package validation wraps an rhi.Device with a layer that checks every
// call against the documented descriptor rules before it reaches the
// backend.
//
// The wrapper is a plain decorator. It holds no state between calls,
// adds no synchronization of its own, and forwards valid calls to the
// wrapped device unchanged. Invalid calls never reach the backend: all
// violations found in one call are aggregated into a single message,
// reported once through the message callback, and returned as a *Error.
//
// Usage:
//
//	device := validation.NewDevice(backend)
//	texture, err := device.CreateTexture(desc)
//	var verr *validation.Error
//	if errors.As(err, &verr) {
//		for _, f := range verr.Findings() {
//			fmt.Println(f.Message)
//		}
//	}
//
// The layer is meant for development builds. Release builds can use the
// backend device directly; a program that never trips validation
// behaves identically either way.
package validation
