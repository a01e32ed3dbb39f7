// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/rhi"
)

// resourceClass groups binding types by the register file they occupy.
type resourceClass uint8

const (
	classNone resourceClass = iota
	classSRV
	classSampler
	classUAV
	classCB
)

// classOf maps a binding type to its register class.
func classOf(t rhi.ResourceType) resourceClass {
	switch t {
	case rhi.ResourceTypeTextureSRV,
		rhi.ResourceTypeTypedBufferSRV,
		rhi.ResourceTypeStructuredBufferSRV,
		rhi.ResourceTypeRawBufferSRV,
		rhi.ResourceTypeRayTracingAccelStruct:
		return classSRV
	case rhi.ResourceTypeSampler:
		return classSampler
	case rhi.ResourceTypeTextureUAV,
		rhi.ResourceTypeTypedBufferUAV,
		rhi.ResourceTypeStructuredBufferUAV,
		rhi.ResourceTypeRawBufferUAV,
		rhi.ResourceTypeSamplerFeedbackUAV:
		return classUAV
	case rhi.ResourceTypeConstantBuffer,
		rhi.ResourceTypeVolatileConstantBuffer,
		rhi.ResourceTypePushConstants:
		return classCB
	default:
		return classNone
	}
}

// registerPrefix returns the HLSL register letter for the class.
func (c resourceClass) registerPrefix() string {
	switch c {
	case classSRV:
		return "t"
	case classSampler:
		return "s"
	case classUAV:
		return "u"
	case classCB:
		return "b"
	default:
		return "?"
	}
}

// bindingLocation identifies one register a binding occupies.
type bindingLocation struct {
	registerSpace uint32
	slot          uint32
	arrayElement  uint32
	class         resourceClass
}

// String renders the location in register notation, "space1.t3[2]" for
// example. The space prefix and the element suffix appear only when
// nonzero.
func (l bindingLocation) String() string {
	var b strings.Builder
	if l.registerSpace != 0 {
		fmt.Fprintf(&b, "space%d.", l.registerSpace)
	}
	b.WriteString(l.class.registerPrefix())
	fmt.Fprintf(&b, "%d", l.slot)
	if l.arrayElement != 0 {
		fmt.Fprintf(&b, "[%d]", l.arrayElement)
	}
	return b.String()
}

// locationSet is an unordered set of binding locations.
type locationSet map[bindingLocation]struct{}

func (s locationSet) add(loc bindingLocation) { s[loc] = struct{}{} }

func (s locationSet) contains(loc bindingLocation) bool {
	_, ok := s[loc]
	return ok
}

func (s locationSet) empty() bool { return len(s) == 0 }

// union adds every location of other to s.
func (s locationSet) union(other locationSet) {
	for loc := range other {
		s[loc] = struct{}{}
	}
}

// intersect returns the locations present in both sets.
func (s locationSet) intersect(other locationSet) locationSet {
	out := make(locationSet)
	for loc := range s {
		if other.contains(loc) {
			out.add(loc)
		}
	}
	return out
}

// subtract returns the locations of s that are not in other.
func (s locationSet) subtract(other locationSet) locationSet {
	out := make(locationSet)
	for loc := range s {
		if !other.contains(loc) {
			out.add(loc)
		}
	}
	return out
}

// String lists the locations in register order, comma separated.
func (s locationSet) String() string {
	locations := make([]bindingLocation, 0, len(s))
	for loc := range s {
		locations = append(locations, loc)
	}
	sort.Slice(locations, func(i, j int) bool {
		a, b := locations[i], locations[j]
		if a.registerSpace != b.registerSpace {
			return a.registerSpace < b.registerSpace
		}
		if a.class != b.class {
			return a.class < b.class
		}
		if a.slot != b.slot {
			return a.slot < b.slot
		}
		return a.arrayElement < b.arrayElement
	})
	parts := make([]string, len(locations))
	for i, loc := range locations {
		parts[i] = loc.String()
	}
	return strings.Join(parts, ", ")
}

// slotRange is the inclusive slot interval a register class occupies.
type slotRange struct {
	min, max uint32
}

func emptySlotRange() slotRange {
	return slotRange{min: ^uint32(0), max: 0}
}

func (sr *slotRange) add(slot uint32) {
	if slot < sr.min {
		sr.min = slot
	}
	if slot > sr.max {
		sr.max = slot
	}
}

func (sr slotRange) isEmpty() bool { return sr.min > sr.max }

// overlaps reports whether two non-empty ranges share any slot.
func (sr slotRange) overlaps(other slotRange) bool {
	return !sr.isEmpty() && !other.isEmpty() &&
		sr.max >= other.min && sr.min <= other.max
}

// bindingSummary aggregates the locations a layout declares or a set
// binds, plus the per-class slot ranges used to detect clobbering on
// backends that bind contiguous register ranges.
type bindingSummary struct {
	locations locationSet

	rangeSRV     slotRange
	rangeSampler slotRange
	rangeUAV     slotRange
	rangeCB      slotRange

	numVolatileCBs int
}

func newBindingSummary() *bindingSummary {
	return &bindingSummary{
		locations:    make(locationSet),
		rangeSRV:     emptySlotRange(),
		rangeSampler: emptySlotRange(),
		rangeUAV:     emptySlotRange(),
		rangeCB:      emptySlotRange(),
	}
}

// any reports whether the summary holds at least one location.
func (s *bindingSummary) any() bool { return !s.locations.empty() }

// add records one classified binding location. Repeated locations land
// in duplicates instead of locations.
func (s *bindingSummary) add(t rhi.ResourceType, loc bindingLocation, duplicates locationSet) {
	class := classOf(t)
	if class == classNone {
		return
	}
	loc.class = class

	switch class {
	case classSRV:
		s.rangeSRV.add(loc.slot)
	case classSampler:
		s.rangeSampler.add(loc.slot)
	case classUAV:
		s.rangeUAV.add(loc.slot)
	case classCB:
		s.rangeCB.add(loc.slot)
	}
	if t == rhi.ResourceTypeVolatileConstantBuffer {
		s.numVolatileCBs++
	}

	if s.locations.contains(loc) {
		duplicates.add(loc)
	} else {
		s.locations.add(loc)
	}
}

// fillLayoutSummary records every register a binding layout declares,
// expanding arrays into individual elements.
func fillLayoutSummary(r *report, desc *rhi.BindingLayoutDesc, summary *bindingSummary, duplicates locationSet) {
	for _, item := range desc.Bindings {
		if classOf(item.Type) == classNone {
			r.errorf("binding layout item at slot %d has invalid type %d", item.Slot, item.Type)
			continue
		}
		for element := uint32(0); element < item.ArraySize(); element++ {
			summary.add(item.Type, bindingLocation{
				registerSpace: desc.RegisterSpace,
				slot:          item.Slot,
				arrayElement:  element,
			}, duplicates)
		}
	}
}

// fillSetSummary records every register a binding set binds. Items that
// cannot be classified are left for per-item validation to report.
func fillSetSummary(desc rhi.BindingSetDesc, registerSpace uint32, summary *bindingSummary, duplicates locationSet) {
	for _, item := range desc.Bindings {
		if classOf(item.Type) == classNone {
			continue
		}
		summary.add(item.Type, bindingLocation{
			registerSpace: registerSpace,
			slot:          item.Slot,
			arrayElement:  item.ArrayElement,
		}, duplicates)
	}
}
