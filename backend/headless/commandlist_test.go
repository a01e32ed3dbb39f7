// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/rhi"
)

func openList(t *testing.T, device *Device) rhi.CommandList {
	t.Helper()
	list, err := device.CreateCommandList(rhi.DefaultCommandListParameters())
	if err != nil {
		t.Fatalf("CreateCommandList: %v", err)
	}
	if err := list.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return list
}

func TestCommandListStateMachine(t *testing.T) {
	device := New()
	list := openList(t, device)

	if err := list.Open(); !errors.Is(err, ErrListState) {
		t.Errorf("double Open = %v, want ErrListState", err)
	}
	if err := list.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := list.Close(); !errors.Is(err, ErrListState) {
		t.Errorf("double Close = %v, want ErrListState", err)
	}
	if _, err := rhi.ExecuteCommandList(device, list, rhi.CommandQueueGraphics); err != nil {
		t.Fatalf("ExecuteCommandList: %v", err)
	}

	// Submission returns the list to its initial state; it can record
	// again.
	if err := list.Open(); err != nil {
		t.Errorf("reopen after submit = %v, want nil", err)
	}
}

func TestRecordingRequiresOpenList(t *testing.T) {
	device := New()
	list, err := device.CreateCommandList(rhi.DefaultCommandListParameters())
	if err != nil {
		t.Fatalf("CreateCommandList: %v", err)
	}
	if err := list.Draw(rhi.NewDrawArguments(3)); !errors.Is(err, ErrListState) {
		t.Errorf("Draw on a fresh list = %v, want ErrListState", err)
	}
	if err := list.WriteBuffer(nil, nil, 0); !errors.Is(err, ErrListState) {
		t.Errorf("WriteBuffer on a fresh list = %v, want ErrListState", err)
	}
}

func TestWriteBufferLandsInHostMemory(t *testing.T) {
	device := New()
	buf, err := device.CreateBuffer(rhi.BufferDesc{
		ByteSize:  32,
		DebugName: "dst",
		CPUAccess: rhi.CPUAccessRead,
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	list := openList(t, device)
	if err := list.WriteBuffer(buf, []byte{1, 2, 3, 4}, 8); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if err := list.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := rhi.ExecuteCommandList(device, list, rhi.CommandQueueGraphics); err != nil {
		t.Fatalf("ExecuteCommandList: %v", err)
	}

	data, err := device.MapBuffer(buf, rhi.CPUAccessRead)
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	if !bytes.Equal(data[8:12], []byte{1, 2, 3, 4}) {
		t.Errorf("buffer bytes = %v, want [1 2 3 4]", data[8:12])
	}
}

func TestWriteBufferOverflow(t *testing.T) {
	device := New()
	buf, _ := device.CreateBuffer(rhi.BufferDesc{ByteSize: 16, DebugName: "small"})

	list := openList(t, device)
	err := list.WriteBuffer(buf, make([]byte, 12), 8)
	if err == nil {
		t.Fatal("overflowing WriteBuffer should fail")
	}
	if !strings.Contains(err.Error(), `"small"`) {
		t.Errorf("error %q should name the buffer", err)
	}
}

func TestCopyBuffer(t *testing.T) {
	device := New()
	src, _ := device.CreateBuffer(rhi.BufferDesc{ByteSize: 16, CPUAccess: rhi.CPUAccessWrite})
	dst, _ := device.CreateBuffer(rhi.BufferDesc{ByteSize: 16, CPUAccess: rhi.CPUAccessRead})

	data, err := device.MapBuffer(src, rhi.CPUAccessWrite)
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	copy(data, []byte("0123456789abcdef"))

	list := openList(t, device)
	if err := list.CopyBuffer(dst, 0, src, 4, 8); err != nil {
		t.Fatalf("CopyBuffer: %v", err)
	}
	if err := list.CopyBuffer(dst, 12, src, 0, 8); err == nil {
		t.Error("out of range CopyBuffer should fail")
	}
	if err := list.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := rhi.ExecuteCommandList(device, list, rhi.CommandQueueGraphics); err != nil {
		t.Fatalf("ExecuteCommandList: %v", err)
	}

	out, err := device.MapBuffer(dst, rhi.CPUAccessRead)
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	if !bytes.Equal(out[:8], []byte("456789ab")) {
		t.Errorf("copied bytes = %q, want %q", out[:8], "456789ab")
	}
}

func TestDrawAndDispatchCount(t *testing.T) {
	device := New()
	list := openList(t, device)

	if err := list.SetGraphicsState(rhi.GraphicsState{}); err != nil {
		t.Fatalf("SetGraphicsState: %v", err)
	}
	if err := list.Draw(rhi.NewDrawArguments(3)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := list.DrawIndexed(rhi.NewDrawArguments(6)); err != nil {
		t.Fatalf("DrawIndexed: %v", err)
	}
	if err := list.SetComputeState(rhi.ComputeState{}); err != nil {
		t.Fatalf("SetComputeState: %v", err)
	}
	if err := list.Dispatch(4, 1, 1); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	inner := list.(*commandList)
	if inner.draws != 2 {
		t.Errorf("draw count = %d, want 2", inner.draws)
	}
	if inner.dispatches != 1 {
		t.Errorf("dispatch count = %d, want 1", inner.dispatches)
	}

	// Markers are accepted anywhere.
	list.BeginMarker("pass")
	list.EndMarker()
}

func TestBuildAccelStructNeedsBoundMemory(t *testing.T) {
	device := New(WithFeatures(rhi.FeatureRayTracingAccelStruct, rhi.FeatureVirtualResources))
	as, err := device.CreateAccelStruct(rhi.AccelStructDesc{
		IsTopLevel:           true,
		IsVirtual:            true,
		TopLevelMaxInstances: 4,
	})
	if err != nil {
		t.Fatalf("CreateAccelStruct: %v", err)
	}

	list := openList(t, device)
	if err := list.BuildTopLevelAccelStruct(as, nil, 0); !errors.Is(err, ErrNoMemory) {
		t.Errorf("build of an unbound virtual structure = %v, want ErrNoMemory", err)
	}

	hp, err := device.CreateHeap(rhi.HeapDesc{Capacity: 4096})
	if err != nil {
		t.Fatalf("CreateHeap: %v", err)
	}
	if err := device.BindAccelStructMemory(as, hp, 0); err != nil {
		t.Fatalf("BindAccelStructMemory: %v", err)
	}
	if err := list.BuildTopLevelAccelStruct(as, nil, 0); err != nil {
		t.Errorf("build after bind = %v, want nil", err)
	}
}
