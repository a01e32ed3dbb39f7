// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"fmt"

	"github.com/gogpu/rhi"
)

// commandListState tracks where a wrapped list is in its lifecycle.
type commandListState uint8

const (
	// stateInitial means the list has never been opened, or its last
	// submission has been handed to the device.
	stateInitial commandListState = iota
	// stateRecording means Open succeeded and commands may be recorded.
	stateRecording
	// stateExecutable means Close succeeded and the list may be
	// submitted.
	stateExecutable
)

// commandListWrapper validates the open, close, and execute ordering of
// a command list, checks recorded commands against the queue class the
// list was created for, and forwards them to the wrapped list.
//
// Command lists are single threaded by contract, so the state field
// needs no synchronization.
type commandListWrapper struct {
	device *Device
	inner  rhi.CommandList
	params rhi.CommandListParameters
	state  commandListState
}

var _ rhi.CommandList = (*commandListWrapper)(nil)

// CreateCommandList checks that the device supports the requested
// queue class and wraps the created list.
func (d *Device) CreateCommandList(params rhi.CommandListParameters) (rhi.CommandList, error) {
	r := d.begin("CreateCommandList")
	switch params.QueueType {
	case rhi.CommandQueueGraphics:
	case rhi.CommandQueueCompute:
		if !d.inner.QueryFeatureSupport(rhi.FeatureComputeQueue) {
			r.errorf("the compute queue is not supported or initialized in this device")
		}
	case rhi.CommandQueueCopy:
		if !d.inner.QueryFeatureSupport(rhi.FeatureCopyQueue) {
			r.errorf("the copy queue is not supported or initialized in this device")
		}
	default:
		r.errorf("unknown queue type %d", params.QueueType)
	}
	if err := r.finish(); err != nil {
		return nil, err
	}

	list, err := d.inner.CreateCommandList(params)
	if err != nil {
		return nil, err
	}
	return &commandListWrapper{device: d, inner: list, params: params}, nil
}

// ExecuteCommandLists checks that every list matches the execution
// queue and is in the executable state, then submits the wrapped lists.
// Submitted lists return to their initial state and must be reopened
// before reuse.
func (d *Device) ExecuteCommandLists(lists []rhi.CommandList, executionQueue rhi.CommandQueue) (uint64, error) {
	if len(lists) == 0 {
		return 0, nil
	}

	r := d.begin("ExecuteCommandLists")
	unwrapped := make([]rhi.CommandList, len(lists))
	var wrappers []*commandListWrapper
	for i, list := range lists {
		if list == nil {
			r.errorf("command list %d is nil", i)
			continue
		}
		if queueType := list.Desc().QueueType; queueType != executionQueue {
			r.errorf("command list %d was created for the %s queue and cannot execute on the %s queue",
				i, queueType, executionQueue)
		}
		unwrapped[i] = list
		if w, ok := list.(*commandListWrapper); ok {
			if w.state != stateExecutable {
				r.errorf("command list %d is not in the executable state; close it before executing", i)
			}
			unwrapped[i] = w.inner
			wrappers = append(wrappers, w)
		}
	}
	if err := r.finish(); err != nil {
		return 0, err
	}

	instance, err := d.inner.ExecuteCommandLists(unwrapped, executionQueue)
	if err != nil {
		return 0, err
	}
	for _, w := range wrappers {
		w.state = stateInitial
	}
	return instance, nil
}

func (w *commandListWrapper) NativeObject(objectType rhi.ObjectType) rhi.Object {
	return w.inner.NativeObject(objectType)
}

func (w *commandListWrapper) Desc() rhi.CommandListParameters { return w.params }

// Open transitions the list to the recording state. A closed but never
// executed list may be reopened; its recorded commands are discarded.
func (w *commandListWrapper) Open() error {
	r := w.device.begin("CommandList.Open")
	if w.state == stateRecording {
		r.errorf("the command list is already open")
	}
	if err := r.finish(); err != nil {
		return err
	}
	if err := w.inner.Open(); err != nil {
		return err
	}
	w.state = stateRecording
	return nil
}

// Close ends recording and makes the list executable.
func (w *commandListWrapper) Close() error {
	r := w.device.begin("CommandList.Close")
	if w.state != stateRecording {
		r.errorf("the command list is not open")
	}
	if err := r.finish(); err != nil {
		return err
	}
	if err := w.inner.Close(); err != nil {
		return err
	}
	w.state = stateExecutable
	return nil
}

// beginOp opens a report for a recorded command, checking that the list
// is open and that its queue class can run the command. Graphics lists
// run everything, compute lists run compute and copy work, copy lists
// run only copy work.
func (w *commandListWrapper) beginOp(op string, required rhi.CommandQueue) *report {
	r := w.device.begin(op)
	if w.state != stateRecording {
		r.errorf("the command list is not open")
	}
	if w.params.QueueType > required {
		r.errorf("not supported on a %s queue command list", w.params.QueueType)
	}
	return r
}

func (w *commandListWrapper) WriteBuffer(buffer rhi.Buffer, data []byte, destOffset uint64) error {
	r := w.beginOp("CommandList.WriteBuffer", rhi.CommandQueueCopy)
	if buffer == nil {
		r.errorf("buffer is nil")
		return r.finish()
	}
	if len(data) == 0 {
		r.errorf("data must not be empty")
	}
	if desc := buffer.Desc(); destOffset+uint64(len(data)) > desc.ByteSize {
		r.errorf("writing %d bytes at offset %d overflows buffer %s (%d bytes)",
			len(data), destOffset, displayName(desc.DebugName), desc.ByteSize)
	}
	if err := r.finish(); err != nil {
		return err
	}
	return w.inner.WriteBuffer(buffer, data, destOffset)
}

func (w *commandListWrapper) CopyBuffer(dest rhi.Buffer, destOffset uint64, src rhi.Buffer, srcOffset uint64, byteSize uint64) error {
	r := w.beginOp("CommandList.CopyBuffer", rhi.CommandQueueCopy)
	if dest == nil {
		r.errorf("dest is nil")
	}
	if src == nil {
		r.errorf("src is nil")
	}
	if r.failed() {
		return r.finish()
	}
	if desc := src.Desc(); srcOffset+byteSize > desc.ByteSize {
		r.errorf("reading %d bytes at offset %d overflows source buffer %s (%d bytes)",
			byteSize, srcOffset, displayName(desc.DebugName), desc.ByteSize)
	}
	if desc := dest.Desc(); destOffset+byteSize > desc.ByteSize {
		r.errorf("writing %d bytes at offset %d overflows destination buffer %s (%d bytes)",
			byteSize, destOffset, displayName(desc.DebugName), desc.ByteSize)
	}
	if err := r.finish(); err != nil {
		return err
	}
	return w.inner.CopyBuffer(dest, destOffset, src, srcOffset, byteSize)
}

func (w *commandListWrapper) SetComputeState(state rhi.ComputeState) error {
	if err := w.beginOp("CommandList.SetComputeState", rhi.CommandQueueCompute).finish(); err != nil {
		return err
	}
	return w.inner.SetComputeState(state)
}

func (w *commandListWrapper) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	if err := w.beginOp("CommandList.Dispatch", rhi.CommandQueueCompute).finish(); err != nil {
		return err
	}
	return w.inner.Dispatch(groupsX, groupsY, groupsZ)
}

func (w *commandListWrapper) SetGraphicsState(state rhi.GraphicsState) error {
	if err := w.beginOp("CommandList.SetGraphicsState", rhi.CommandQueueGraphics).finish(); err != nil {
		return err
	}
	return w.inner.SetGraphicsState(state)
}

func (w *commandListWrapper) Draw(args rhi.DrawArguments) error {
	if err := w.beginOp("CommandList.Draw", rhi.CommandQueueGraphics).finish(); err != nil {
		return err
	}
	return w.inner.Draw(args)
}

func (w *commandListWrapper) DrawIndexed(args rhi.DrawArguments) error {
	if err := w.beginOp("CommandList.DrawIndexed", rhi.CommandQueueGraphics).finish(); err != nil {
		return err
	}
	return w.inner.DrawIndexed(args)
}

// BuildBottomLevelAccelStruct checks the structure's level and update
// permission against its creation flags.
func (w *commandListWrapper) BuildBottomLevelAccelStruct(as rhi.AccelStruct, geometries []rhi.GeometryDesc, flags rhi.AccelStructBuildFlags) error {
	r := w.beginOp("CommandList.BuildBottomLevelAccelStruct", rhi.CommandQueueCompute)
	if as == nil {
		r.errorf("acceleration structure is nil")
		return r.finish()
	}
	if wrapper, ok := as.(*accelStructWrapper); ok {
		name := displayName(wrapper.Desc().DebugName)
		if wrapper.isTopLevel {
			r.errorf("cannot perform a bottom-level build on top-level structure %s", name)
		}
		if flags&rhi.AccelStructBuildFlagPerformUpdate != 0 && !wrapper.allowUpdate {
			r.errorf("cannot update structure %s because it was created without the AllowUpdate flag", name)
		}
	}
	if err := r.finish(); err != nil {
		return err
	}
	return w.inner.BuildBottomLevelAccelStruct(unwrapAccelStruct(as), geometries, flags)
}

// BuildTopLevelAccelStruct checks the structure's level, instance
// capacity, and update permission against its creation flags, and that
// every instance carries a bottom-level structure unless the build
// allows empty instances. Masked-out instances are legal and produce an
// advisory warning without failing the call.
func (w *commandListWrapper) BuildTopLevelAccelStruct(as rhi.AccelStruct, instances []rhi.InstanceDesc, flags rhi.AccelStructBuildFlags) error {
	r := w.beginOp("CommandList.BuildTopLevelAccelStruct", rhi.CommandQueueCompute)
	if as == nil {
		r.errorf("acceleration structure is nil")
		return r.finish()
	}
	allowEmpty := flags&rhi.AccelStructBuildFlagAllowEmptyInstances != 0
	if wrapper, ok := as.(*accelStructWrapper); ok {
		name := displayName(wrapper.Desc().DebugName)
		if !wrapper.isTopLevel {
			r.errorf("cannot perform a top-level build on bottom-level structure %s", name)
		}
		if uint64(len(instances)) > wrapper.maxInstances {
			r.errorf("structure %s holds at most %d instances, the build supplies %d",
				name, wrapper.maxInstances, len(instances))
		}
		if flags&rhi.AccelStructBuildFlagPerformUpdate != 0 && !wrapper.allowUpdate {
			r.errorf("cannot update structure %s because it was created without the AllowUpdate flag", name)
		}
	}
	if !allowEmpty {
		for i := range instances {
			if instances[i].BottomLevelAS == nil {
				r.errorf("instance %d has no bottom-level structure; use the AllowEmptyInstances flag to build with empty instances", i)
			}
		}
	}
	if err := r.finish(); err != nil {
		return err
	}

	if !allowEmpty {
		for i := range instances {
			if instances[i].InstanceMask == 0 {
				w.device.message(rhi.SeverityWarning, fmt.Sprintf(
					"CommandList.BuildTopLevelAccelStruct: instance %d has instanceMask = 0 and will never be intersected by any ray", i))
			}
		}
	}

	patched := make([]rhi.InstanceDesc, len(instances))
	copy(patched, instances)
	for i := range patched {
		if patched[i].BottomLevelAS != nil {
			patched[i].BottomLevelAS = unwrapAccelStruct(patched[i].BottomLevelAS)
		}
	}
	return w.inner.BuildTopLevelAccelStruct(unwrapAccelStruct(as), patched, flags)
}

func (w *commandListWrapper) BeginMarker(name string) {
	w.inner.BeginMarker(name)
}

func (w *commandListWrapper) EndMarker() {
	w.inner.EndMarker()
}
