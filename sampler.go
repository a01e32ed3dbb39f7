// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// SamplerAddressMode selects texture coordinate wrapping.
type SamplerAddressMode uint8

const (
	SamplerAddressClamp SamplerAddressMode = iota
	SamplerAddressWrap
	SamplerAddressBorder
	SamplerAddressMirror
	SamplerAddressMirrorOnce
)

// SamplerReductionType selects how fetched texels combine.
type SamplerReductionType uint8

const (
	// SamplerReductionStandard filters texels by weighted average.
	SamplerReductionStandard SamplerReductionType = iota
	// SamplerReductionComparison compares texels against a reference.
	SamplerReductionComparison
	// SamplerReductionMinimum keeps the per-channel minimum.
	SamplerReductionMinimum
	// SamplerReductionMaximum keeps the per-channel maximum.
	SamplerReductionMaximum
)

// SamplerDesc describes a texture sampler. The zero value is point
// sampling with clamp addressing; use DefaultSamplerDesc for the common
// trilinear configuration.
type SamplerDesc struct {
	BorderColor   Color
	MaxAnisotropy float32
	MipBias       float32

	MinFilter bool
	MagFilter bool
	MipFilter bool

	AddressU SamplerAddressMode
	AddressV SamplerAddressMode
	AddressW SamplerAddressMode

	ReductionType SamplerReductionType
}

// DefaultSamplerDesc returns a trilinear clamp sampler.
func DefaultSamplerDesc() SamplerDesc {
	return SamplerDesc{
		BorderColor:   Color{R: 1, G: 1, B: 1, A: 1},
		MaxAnisotropy: 1,
		MinFilter:     true,
		MagFilter:     true,
		MipFilter:     true,
	}
}

// Sampler is a device sampler object.
type Sampler interface {
	Resource
	Desc() SamplerDesc
}
