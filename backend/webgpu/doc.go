// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webgpu implements rhi.Device on the wgpu hardware abstraction
// layer, using the Vulkan backend registered by gogpu/wgpu/hal/vulkan.
//
// The device drives a single hardware queue and covers the subset of the
// rhi surface that WebGPU expresses: buffers, textures, samplers, WGSL
// and SPIR-V shader modules, buffer-class binding layouts and sets, and
// compute pipelines. Command lists record into a hal command encoder;
// ExecuteCommandLists submits the encoded work with a fence and blocks
// until the fence signals, so submissions are complete when the call
// returns. Graphics pipelines, ray tracing, and virtual resources report
// rhi.ErrNotSupported.
//
// Create a device either by opening an adapter:
//
//	device, err := webgpu.New()
//	if err != nil {
//		// no usable GPU
//	}
//	defer device.Close()
//
// or by adopting a device owned by a host application that exposes the
// gogpu provider convention (HalDevice/HalQueue accessors):
//
//	device, err := webgpu.NewFromProvider(host)
//
// An adopted device is not destroyed by Close.
//
// WriteBuffer stages through the queue at record time, so data written
// to a buffer in an open command list is visible to every dispatch of
// that list, including dispatches recorded before the write. Callers
// that need write-after-dispatch ordering must split the work across
// two lists.
package webgpu
