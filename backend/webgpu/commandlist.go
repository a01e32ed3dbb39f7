// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

// listState tracks the recording lifecycle of a command list.
type listState uint8

const (
	// listInitial lists have never been opened, or have executed.
	listInitial listState = iota
	// listRecording lists are open and accept recording calls.
	listRecording
	// listExecutable lists are closed and wait for execution.
	listExecutable
)

// commandList records into a hal command encoder. Copies and dispatches
// land in the encoder and run at submit; WriteBuffer stages through the
// queue at record time.
type commandList struct {
	device  *Device
	params  rhi.CommandListParameters
	state   listState
	encoder hal.CommandEncoder
	cmdBuf  hal.CommandBuffer

	// compute is the state bound by SetComputeState, consumed by
	// Dispatch.
	compute struct {
		pipeline   *computePipeline
		bindGroups []hal.BindGroup
	}
}

var _ rhi.CommandList = (*commandList)(nil)

func (c *commandList) NativeObject(rhi.ObjectType) rhi.Object { return nil }

func (c *commandList) Desc() rhi.CommandListParameters { return c.params }

func (c *commandList) Open() error {
	if c.state == listRecording {
		return fmt.Errorf("Open: list is already open: %w", ErrListState)
	}
	if c.cmdBuf != nil {
		// Closed but never executed; drop the stale recording.
		c.device.device.FreeCommandBuffer(c.cmdBuf)
		c.cmdBuf = nil
	}
	encoder, err := c.device.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "rhi_command_list"})
	if err != nil {
		return fmt.Errorf("webgpu: Open: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rhi_command_list"); err != nil {
		return fmt.Errorf("webgpu: Open: begin encoding: %w", err)
	}
	c.encoder = encoder
	c.compute.pipeline = nil
	c.compute.bindGroups = nil
	c.state = listRecording
	return nil
}

func (c *commandList) Close() error {
	if c.state != listRecording {
		return fmt.Errorf("Close: list is not open: %w", ErrListState)
	}
	cmdBuf, err := c.encoder.EndEncoding()
	c.encoder = nil
	if err != nil {
		c.state = listInitial
		return fmt.Errorf("webgpu: Close: end encoding: %w", err)
	}
	c.cmdBuf = cmdBuf
	c.state = listExecutable
	return nil
}

// take hands the encoded command buffer to the device for submission
// and returns the list to its initial state.
func (c *commandList) take(queue rhi.CommandQueue) (hal.CommandBuffer, error) {
	if c.state != listExecutable {
		return nil, fmt.Errorf("ExecuteCommandLists: %w", ErrListState)
	}
	if c.params.QueueType != queue {
		return nil, fmt.Errorf("webgpu: ExecuteCommandLists: %v list submitted to the %v queue",
			c.params.QueueType, queue)
	}
	cmdBuf := c.cmdBuf
	c.cmdBuf = nil
	c.state = listInitial
	return cmdBuf, nil
}

// recording returns an error naming op unless the list is open.
func (c *commandList) recording(op string) error {
	if c.state != listRecording {
		return fmt.Errorf("%s: list is not open: %w", op, ErrListState)
	}
	return nil
}

func (c *commandList) WriteBuffer(buf rhi.Buffer, data []byte, destOffset uint64) error {
	if err := c.recording("WriteBuffer"); err != nil {
		return err
	}
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("WriteBuffer: %w", ErrForeignResource)
	}
	if destOffset+uint64(len(data)) > b.desc.ByteSize {
		return fmt.Errorf("webgpu: WriteBuffer: %d bytes at offset %d overflow buffer %q (%d bytes)",
			len(data), destOffset, b.desc.DebugName, b.desc.ByteSize)
	}
	// The queue copies data before returning, so the caller may reuse
	// it. See the package documentation for ordering against dispatches
	// recorded in the same list.
	c.device.queue.WriteBuffer(b.native, destOffset, data)
	return nil
}

func (c *commandList) CopyBuffer(dest rhi.Buffer, destOffset uint64, src rhi.Buffer, srcOffset uint64, byteSize uint64) error {
	if err := c.recording("CopyBuffer"); err != nil {
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
	if srcOffset+byteSize > sb.desc.ByteSize || destOffset+byteSize > db.desc.ByteSize {
		return fmt.Errorf("webgpu: CopyBuffer: copy of %d bytes does not fit source or destination", byteSize)
	}
	c.encoder.CopyBufferToBuffer(sb.native, db.native, []hal.BufferCopy{
		{SrcOffset: srcOffset, DstOffset: destOffset, Size: byteSize},
	})
	return nil
}

func (c *commandList) SetComputeState(state rhi.ComputeState) error {
	if err := c.recording("SetComputeState"); err != nil {
		return err
	}
	pipeline, ok := state.Pipeline.(*computePipeline)
	if !ok {
		return fmt.Errorf("SetComputeState: %w", ErrForeignResource)
	}
	bindGroups := make([]hal.BindGroup, len(state.Bindings))
	for i, set := range state.Bindings {
		s, ok := set.(*bindingSet)
		if !ok {
			return fmt.Errorf("SetComputeState: %w", ErrForeignResource)
		}
		bindGroups[i] = s.native
	}
	c.compute.pipeline = pipeline
	c.compute.bindGroups = bindGroups
	return nil
}

// Dispatch records one compute pass launching the bound pipeline.
func (c *commandList) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	if err := c.recording("Dispatch"); err != nil {
		return err
	}
	if c.compute.pipeline == nil {
		return fmt.Errorf("Dispatch: no compute state bound: %w", ErrListState)
	}
	computePass := c.encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "rhi_dispatch"})
	computePass.SetPipeline(c.compute.pipeline.native)
	for i, bindGroup := range c.compute.bindGroups {
		computePass.SetBindGroup(uint32(i), bindGroup, nil)
	}
	computePass.Dispatch(groupsX, groupsY, groupsZ)
	computePass.End()
	return nil
}

func (c *commandList) SetGraphicsState(rhi.GraphicsState) error { return unsupported("SetGraphicsState") }
func (c *commandList) Draw(rhi.DrawArguments) error             { return unsupported("Draw") }
func (c *commandList) DrawIndexed(rhi.DrawArguments) error      { return unsupported("DrawIndexed") }

func (c *commandList) BuildBottomLevelAccelStruct(rhi.AccelStruct, []rhi.GeometryDesc, rhi.AccelStructBuildFlags) error {
	return unsupported("BuildBottomLevelAccelStruct")
}

func (c *commandList) BuildTopLevelAccelStruct(rhi.AccelStruct, []rhi.InstanceDesc, rhi.AccelStructBuildFlags) error {
	return unsupported("BuildTopLevelAccelStruct")
}

// Markers have no hal surface; they are accepted and dropped.
func (c *commandList) BeginMarker(string) {}
func (c *commandList) EndMarker()         {}
