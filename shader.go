// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

import (
	"math"
	"strings"
)

// ShaderType is a bitmask of pipeline stages. A single stage identifies a
// shader; combinations express binding visibility.
type ShaderType uint16

const (
	ShaderTypeNone ShaderType = 0

	ShaderTypeVertex   ShaderType = 0x0001
	ShaderTypeHull     ShaderType = 0x0002
	ShaderTypeDomain   ShaderType = 0x0004
	ShaderTypeGeometry ShaderType = 0x0008
	ShaderTypePixel    ShaderType = 0x0010
	ShaderTypeCompute  ShaderType = 0x0020

	ShaderTypeAmplification ShaderType = 0x0040
	ShaderTypeMesh          ShaderType = 0x0080

	// ShaderTypeAllGraphics covers every rasterization stage.
	ShaderTypeAllGraphics ShaderType = 0x00DF

	ShaderTypeRayGeneration ShaderType = 0x0100
	ShaderTypeAnyHit        ShaderType = 0x0200
	ShaderTypeClosestHit    ShaderType = 0x0400
	ShaderTypeMiss          ShaderType = 0x0800
	ShaderTypeIntersection  ShaderType = 0x1000
	ShaderTypeCallable      ShaderType = 0x2000

	// ShaderTypeAllRayTracing covers every ray tracing stage.
	ShaderTypeAllRayTracing ShaderType = 0x3F00

	// ShaderTypeAll covers every stage.
	ShaderTypeAll ShaderType = 0x3FFF
)

var shaderTypeNames = []struct {
	stage ShaderType
	name  string
}{
	{ShaderTypeVertex, "Vertex"},
	{ShaderTypeHull, "Hull"},
	{ShaderTypeDomain, "Domain"},
	{ShaderTypeGeometry, "Geometry"},
	{ShaderTypePixel, "Pixel"},
	{ShaderTypeCompute, "Compute"},
	{ShaderTypeAmplification, "Amplification"},
	{ShaderTypeMesh, "Mesh"},
	{ShaderTypeRayGeneration, "RayGeneration"},
	{ShaderTypeAnyHit, "AnyHit"},
	{ShaderTypeClosestHit, "ClosestHit"},
	{ShaderTypeMiss, "Miss"},
	{ShaderTypeIntersection, "Intersection"},
	{ShaderTypeCallable, "Callable"},
}

// String renders the stage set. Single stages print their name; masks
// print as a "|"-joined list.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeNone:
		return "None"
	case ShaderTypeAllGraphics:
		return "AllGraphics"
	case ShaderTypeAllRayTracing:
		return "AllRayTracing"
	case ShaderTypeAll:
		return "All"
	}
	var parts []string
	for _, e := range shaderTypeNames {
		if t&e.stage != 0 {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// ShaderDesc identifies a shader's stage and entry point.
type ShaderDesc struct {
	ShaderType ShaderType
	// DebugName appears in diagnostics. Devices assign a generated name
	// when it is empty.
	DebugName string
	// EntryName is the entry point symbol. Empty means "main".
	EntryName string
}

// Entry returns the effective entry point name.
func (d ShaderDesc) Entry() string {
	if d.EntryName == "" {
		return "main"
	}
	return d.EntryName
}

// Shader is a compiled shader blob attached to one pipeline stage.
type Shader interface {
	Resource
	Desc() ShaderDesc
	// Bytecode returns the shader binary the shader was created from.
	// Callers must not modify the returned slice.
	Bytecode() []byte
}

// ShaderLibrary is a blob holding several entry points, addressed by name
// and stage.
type ShaderLibrary interface {
	Resource
	// Bytecode returns the library binary. Callers must not modify the
	// returned slice.
	Bytecode() []byte
	// Shader returns a view of one entry point, or nil when the library
	// has no such entry.
	Shader(entryName string, shaderType ShaderType) Shader
}

// ShaderSpecialization overrides one specialization constant when
// creating a specialized shader. The value is stored as raw bits.
type ShaderSpecialization struct {
	ConstantID uint32
	Value      uint32
}

// SpecializationUint32 builds an override holding an unsigned value.
func SpecializationUint32(constantID, value uint32) ShaderSpecialization {
	return ShaderSpecialization{ConstantID: constantID, Value: value}
}

// SpecializationInt32 builds an override holding a signed value.
func SpecializationInt32(constantID uint32, value int32) ShaderSpecialization {
	return ShaderSpecialization{ConstantID: constantID, Value: uint32(value)}
}

// SpecializationFloat32 builds an override holding a float value.
func SpecializationFloat32(constantID uint32, value float32) ShaderSpecialization {
	return ShaderSpecialization{ConstantID: constantID, Value: math.Float32bits(value)}
}
