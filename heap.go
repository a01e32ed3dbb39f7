// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// HeapType selects the memory pool a heap allocates from.
type HeapType uint8

const (
	// HeapTypeDeviceLocal is GPU-only memory.
	HeapTypeDeviceLocal HeapType = iota
	// HeapTypeUpload is CPU-writable memory for staging data to the GPU.
	HeapTypeUpload
	// HeapTypeReadback is CPU-readable memory for results from the GPU.
	HeapTypeReadback
)

// String returns the heap type name.
func (t HeapType) String() string {
	switch t {
	case HeapTypeDeviceLocal:
		return "DeviceLocal"
	case HeapTypeUpload:
		return "Upload"
	case HeapTypeReadback:
		return "Readback"
	default:
		return "Invalid"
	}
}

// HeapDesc describes a memory heap that virtual resources bind into.
// Capacity must be non-zero.
type HeapDesc struct {
	Capacity uint64
	Type     HeapType
	// DebugName appears in diagnostics. Devices assign a generated name
	// when it is empty.
	DebugName string
}

// Heap is a block of device memory for virtual resources.
type Heap interface {
	Resource
	Desc() HeapDesc
}
