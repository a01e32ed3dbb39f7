// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless implements rhi.Device without any GPU. Every
// creation call returns an in-memory object carrying its descriptor,
// buffers and staging textures are backed by host memory and can be
// mapped, and command list execution is a counted no-op.
//
// The package exists for tests, tooling, and CI machines without
// graphics drivers. The device identity is configurable, so code that
// branches on rhi.GraphicsAPI or feature queries can be exercised
// against any backend profile:
//
//	device := headless.New(
//		headless.WithGraphicsAPI(rhi.GraphicsAPID3D12),
//		headless.WithFeatures(rhi.FeatureComputeQueue, rhi.FeatureRayTracingAccelStruct),
//	)
//
// Data written through WriteBuffer or CopyBuffer lands in the backing
// host memory immediately, so readback through MapBuffer works without
// a submission round trip.
package headless
