// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"testing"

	"github.com/gogpu/rhi"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		typ  rhi.ResourceType
		want resourceClass
	}{
		{rhi.ResourceTypeTextureSRV, classSRV},
		{rhi.ResourceTypeTypedBufferSRV, classSRV},
		{rhi.ResourceTypeStructuredBufferSRV, classSRV},
		{rhi.ResourceTypeRawBufferSRV, classSRV},
		{rhi.ResourceTypeRayTracingAccelStruct, classSRV},
		{rhi.ResourceTypeSampler, classSampler},
		{rhi.ResourceTypeTextureUAV, classUAV},
		{rhi.ResourceTypeTypedBufferUAV, classUAV},
		{rhi.ResourceTypeStructuredBufferUAV, classUAV},
		{rhi.ResourceTypeRawBufferUAV, classUAV},
		{rhi.ResourceTypeSamplerFeedbackUAV, classUAV},
		{rhi.ResourceTypeConstantBuffer, classCB},
		{rhi.ResourceTypeVolatileConstantBuffer, classCB},
		{rhi.ResourceTypePushConstants, classCB},
		{rhi.ResourceTypeNone, classNone},
		{rhi.ResourceTypeCount, classNone},
	}

	for _, tt := range tests {
		if got := classOf(tt.typ); got != tt.want {
			t.Errorf("classOf(%v) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestBindingLocationString(t *testing.T) {
	tests := []struct {
		loc  bindingLocation
		want string
	}{
		{bindingLocation{slot: 0, class: classSRV}, "t0"},
		{bindingLocation{slot: 3, class: classSampler}, "s3"},
		{bindingLocation{slot: 7, class: classUAV, arrayElement: 2}, "u7[2]"},
		{bindingLocation{registerSpace: 1, slot: 3, class: classSRV, arrayElement: 2}, "space1.t3[2]"},
		{bindingLocation{registerSpace: 2, slot: 0, class: classCB}, "space2.b0"},
	}

	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLocationSetString(t *testing.T) {
	s := make(locationSet)
	s.add(bindingLocation{slot: 2, class: classUAV})
	s.add(bindingLocation{slot: 1, class: classSRV})
	s.add(bindingLocation{slot: 0, class: classSRV})
	s.add(bindingLocation{registerSpace: 1, slot: 0, class: classSRV})

	// Sorted by space, then class, then slot.
	want := "t0, t1, u2, space1.t0"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLocationSetOperations(t *testing.T) {
	a := make(locationSet)
	a.add(bindingLocation{slot: 0, class: classSRV})
	a.add(bindingLocation{slot: 1, class: classSRV})

	b := make(locationSet)
	b.add(bindingLocation{slot: 1, class: classSRV})
	b.add(bindingLocation{slot: 2, class: classSRV})

	if got := a.intersect(b).String(); got != "t1" {
		t.Errorf("intersect = %q, want %q", got, "t1")
	}
	if got := a.subtract(b).String(); got != "t0" {
		t.Errorf("subtract = %q, want %q", got, "t0")
	}

	merged := make(locationSet)
	merged.union(a)
	merged.union(b)
	if got := merged.String(); got != "t0, t1, t2" {
		t.Errorf("union = %q, want %q", got, "t0, t1, t2")
	}
	if merged.empty() {
		t.Error("union of non-empty sets is empty")
	}
}

func TestSlotRange(t *testing.T) {
	empty := emptySlotRange()
	if !empty.isEmpty() {
		t.Error("emptySlotRange() is not empty")
	}

	a := emptySlotRange()
	a.add(2)
	a.add(5)
	b := emptySlotRange()
	b.add(5)
	c := emptySlotRange()
	c.add(6)
	c.add(9)

	if a.isEmpty() {
		t.Error("range with slots reports empty")
	}
	if !a.overlaps(b) || !b.overlaps(a) {
		t.Error("[2,5] and [5,5] should overlap")
	}
	if a.overlaps(c) || c.overlaps(a) {
		t.Error("[2,5] and [6,9] should not overlap")
	}
	if a.overlaps(empty) || empty.overlaps(a) {
		t.Error("nothing overlaps the empty range")
	}
}

func TestBindingSummaryAdd(t *testing.T) {
	summary := newBindingSummary()
	duplicates := make(locationSet)

	summary.add(rhi.ResourceTypeTextureSRV, bindingLocation{slot: 1}, duplicates)
	summary.add(rhi.ResourceTypeVolatileConstantBuffer, bindingLocation{slot: 0}, duplicates)
	summary.add(rhi.ResourceTypeTextureSRV, bindingLocation{slot: 1}, duplicates)
	summary.add(rhi.ResourceTypeNone, bindingLocation{slot: 9}, duplicates)

	if got := summary.locations.String(); got != "t1, b0" {
		t.Errorf("locations = %q, want %q", got, "t1, b0")
	}
	if got := duplicates.String(); got != "t1" {
		t.Errorf("duplicates = %q, want %q", got, "t1")
	}
	if summary.numVolatileCBs != 1 {
		t.Errorf("numVolatileCBs = %d, want 1", summary.numVolatileCBs)
	}
	if summary.rangeSRV.min != 1 || summary.rangeSRV.max != 1 {
		t.Errorf("rangeSRV = [%d,%d], want [1,1]", summary.rangeSRV.min, summary.rangeSRV.max)
	}
	if !summary.rangeUAV.isEmpty() {
		t.Error("rangeUAV should stay empty")
	}
}

func TestFillLayoutSummaryExpandsArrays(t *testing.T) {
	device, _, _ := newValidationDevice(t)
	r := device.begin("test")

	desc := &rhi.BindingLayoutDesc{
		Visibility: rhi.ShaderTypeAll,
		Bindings: []rhi.BindingLayoutItem{
			{Slot: 2, Type: rhi.ResourceTypeTextureSRV, Size: 3},
		},
	}
	summary := newBindingSummary()
	fillLayoutSummary(r, desc, summary, make(locationSet))

	if r.failed() {
		t.Fatal("a valid layout produced findings")
	}
	want := "t2, t2[1], t2[2]"
	if got := summary.locations.String(); got != want {
		t.Errorf("locations = %q, want %q", got, want)
	}
}

func TestFillLayoutSummaryReportsInvalidTypes(t *testing.T) {
	device, _, _ := newValidationDevice(t)
	r := device.begin("test")

	desc := &rhi.BindingLayoutDesc{
		Visibility: rhi.ShaderTypeAll,
		Bindings: []rhi.BindingLayoutItem{
			{Slot: 0, Type: rhi.ResourceTypeCount, Size: 4},
		},
	}
	fillLayoutSummary(r, desc, newBindingSummary(), make(locationSet))

	// One finding per item, not per array element.
	if got := len(r.findings); got != 1 {
		t.Errorf("findings = %d, want 1", got)
	}
}

func TestFillSetSummarySkipsUnclassified(t *testing.T) {
	desc := rhi.BindingSetDesc{Bindings: []rhi.BindingSetItem{
		{Slot: 0, Type: rhi.ResourceTypeNone},
		{Slot: 1, Type: rhi.ResourceTypeSampler},
	}}
	summary := newBindingSummary()
	fillSetSummary(desc, 0, summary, make(locationSet))

	if got := summary.locations.String(); got != "s1" {
		t.Errorf("locations = %q, want %q", got, "s1")
	}
}

func TestRegisterSpacePolicies(t *testing.T) {
	if !registerSpaceSupported(rhi.GraphicsAPID3D12, false) {
		t.Error("D3D12 supports register spaces natively")
	}
	if registerSpaceSupported(rhi.GraphicsAPIVulkan, false) {
		t.Error("Vulkan needs the descriptor set mapping for register spaces")
	}
	if !registerSpaceSupported(rhi.GraphicsAPIVulkan, true) {
		t.Error("Vulkan supports register spaces as descriptor sets")
	}
	if !registerSpaceSupported(rhi.GraphicsAPIWebGPU, true) {
		t.Error("WebGPU supports register spaces as bind groups")
	}

	if !bindsContiguousSlots(rhi.GraphicsAPID3D11) {
		t.Error("D3D11 binds contiguous slot ranges")
	}
	if bindsContiguousSlots(rhi.GraphicsAPIVulkan) {
		t.Error("Vulkan binds individual descriptors")
	}

	if !allowsNilBufferBindings(rhi.GraphicsAPIVulkan) {
		t.Error("Vulkan allows nil buffer bindings")
	}
	if !allowsNilBufferBindings(rhi.GraphicsAPIWebGPU) {
		t.Error("WebGPU allows nil buffer bindings")
	}
	if allowsNilBufferBindings(rhi.GraphicsAPID3D12) {
		t.Error("D3D12 requires non-nil buffer bindings")
	}
}
