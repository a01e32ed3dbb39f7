// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpuhost adopts a gogpu application's GPU device as an
// rhi.Device.
//
// gogpu windows own their device and expose it through
// gpucontext.DeviceProvider. This package hands that provider to the
// webgpu backend and layers validation in front, so an application can
// record rhi work on the same hardware device that drives its window:
//
//	device, err := gpuhost.Device(app.GPUContextProvider())
//	if err != nil {
//		return err
//	}
//	defer device.Close()
//
// Closing the returned device leaves the host's device alive; the host
// keeps ownership.
//
// # Integration Without Circular Imports
//
// The hal handles are extracted through the provider's HalDevice() any
// and HalQueue() any accessors, the convention gogpu hosts use to share
// their GPU. Nothing here imports gogpu itself.
package gpuhost
