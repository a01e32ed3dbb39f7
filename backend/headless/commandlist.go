// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"fmt"

	"github.com/gogpu/rhi"
)

type listState uint8

const (
	listStateInitial listState = iota
	listStateRecording
	listStateExecutable
)

// commandList is an immediate-mode recorder. Buffer writes and copies
// land in host memory as they are recorded; draws and dispatches only
// count. Submission flips the list back to its initial state.
type commandList struct {
	device *Device
	params rhi.CommandListParameters
	state  listState

	draws      int
	dispatches int
}

var _ rhi.CommandList = (*commandList)(nil)

func (cl *commandList) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (cl *commandList) Desc() rhi.CommandListParameters        { return cl.params }

func (cl *commandList) Open() error {
	if cl.state == listStateRecording {
		return fmt.Errorf("Open: %w", ErrListState)
	}
	cl.state = listStateRecording
	cl.draws = 0
	cl.dispatches = 0
	return nil
}

func (cl *commandList) Close() error {
	if cl.state != listStateRecording {
		return fmt.Errorf("Close: %w", ErrListState)
	}
	cl.state = listStateExecutable
	return nil
}

// submit consumes the executable state. Called by the device during
// ExecuteCommandLists.
func (cl *commandList) submit(queue rhi.CommandQueue) error {
	if cl.state != listStateExecutable {
		return fmt.Errorf("ExecuteCommandLists: %w", ErrListState)
	}
	if cl.params.QueueType != queue {
		return fmt.Errorf("headless: ExecuteCommandLists: %s list submitted to the %s queue",
			cl.params.QueueType, queue)
	}
	cl.state = listStateInitial
	return nil
}

func (cl *commandList) recording(op string) error {
	if cl.state != listStateRecording {
		return fmt.Errorf("%s: %w", op, ErrListState)
	}
	return nil
}

func (cl *commandList) WriteBuffer(buf rhi.Buffer, data []byte, destOffset uint64) error {
	if err := cl.recording("WriteBuffer"); err != nil {
		return err
	}
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("WriteBuffer: %w", ErrForeignResource)
	}
	if b.data == nil {
		return fmt.Errorf("WriteBuffer: buffer %q: %w", b.desc.DebugName, ErrNoMemory)
	}
	if destOffset+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("headless: WriteBuffer: %d bytes at offset %d overflow buffer %q (%d bytes)",
			len(data), destOffset, b.desc.DebugName, len(b.data))
	}
	copy(b.data[destOffset:], data)
	return nil
}

func (cl *commandList) CopyBuffer(dest rhi.Buffer, destOffset uint64, src rhi.Buffer, srcOffset uint64, byteSize uint64) error {
	if err := cl.recording("CopyBuffer"); err != nil {
		return err
	}
	db, ok := dest.(*buffer)
	if !ok {
		return fmt.Errorf("CopyBuffer: %w", ErrForeignResource)
	}
	sb, ok := src.(*buffer)
	if !ok {
		return fmt.Errorf("CopyBuffer: %w", ErrForeignResource)
	}
	if db.data == nil || sb.data == nil {
		return fmt.Errorf("CopyBuffer: %w", ErrNoMemory)
	}
	if srcOffset+byteSize > uint64(len(sb.data)) || destOffset+byteSize > uint64(len(db.data)) {
		return fmt.Errorf("headless: CopyBuffer: copy of %d bytes does not fit source or destination", byteSize)
	}
	copy(db.data[destOffset:destOffset+byteSize], sb.data[srcOffset:])
	return nil
}

func (cl *commandList) SetComputeState(state rhi.ComputeState) error {
	return cl.recording("SetComputeState")
}

func (cl *commandList) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	if err := cl.recording("Dispatch"); err != nil {
		return err
	}
	cl.dispatches++
	return nil
}

func (cl *commandList) SetGraphicsState(state rhi.GraphicsState) error {
	return cl.recording("SetGraphicsState")
}

func (cl *commandList) Draw(args rhi.DrawArguments) error {
	if err := cl.recording("Draw"); err != nil {
		return err
	}
	cl.draws++
	return nil
}

func (cl *commandList) DrawIndexed(args rhi.DrawArguments) error {
	if err := cl.recording("DrawIndexed"); err != nil {
		return err
	}
	cl.draws++
	return nil
}

func (cl *commandList) BuildBottomLevelAccelStruct(as rhi.AccelStruct, geometries []rhi.GeometryDesc, flags rhi.AccelStructBuildFlags) error {
	if err := cl.recording("BuildBottomLevelAccelStruct"); err != nil {
		return err
	}
	a, ok := as.(*accelStruct)
	if !ok {
		return fmt.Errorf("BuildBottomLevelAccelStruct: %w", ErrForeignResource)
	}
	if !a.bound {
		return fmt.Errorf("BuildBottomLevelAccelStruct: %w", ErrNoMemory)
	}
	return nil
}

func (cl *commandList) BuildTopLevelAccelStruct(as rhi.AccelStruct, instances []rhi.InstanceDesc, flags rhi.AccelStructBuildFlags) error {
	if err := cl.recording("BuildTopLevelAccelStruct"); err != nil {
		return err
	}
	a, ok := as.(*accelStruct)
	if !ok {
		return fmt.Errorf("BuildTopLevelAccelStruct: %w", ErrForeignResource)
	}
	if !a.bound {
		return fmt.Errorf("BuildTopLevelAccelStruct: %w", ErrNoMemory)
	}
	return nil
}

func (cl *commandList) BeginMarker(name string) {}
func (cl *commandList) EndMarker()              {}
