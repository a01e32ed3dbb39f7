// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// AffineTransform is a 3x4 row-major object-to-world transform.
type AffineTransform [12]float32

// IdentityTransform is the identity object-to-world transform.
var IdentityTransform = AffineTransform{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
}

// OpacityMicromapFormat selects the number of opacity states per
// micro-triangle in the OC1 encoding.
type OpacityMicromapFormat uint8

const (
	// OpacityMicromapFormat2State stores opaque or transparent.
	OpacityMicromapFormat2State OpacityMicromapFormat = 1
	// OpacityMicromapFormat4State adds the two unknown states.
	OpacityMicromapFormat4State OpacityMicromapFormat = 2
)

// OpacityMicromapBuildFlags tune the opacity micromap build.
type OpacityMicromapBuildFlags uint8

const (
	OpacityMicromapBuildFlagNone      OpacityMicromapBuildFlags = 0
	OpacityMicromapBuildFlagFastTrace OpacityMicromapBuildFlags = 1
	OpacityMicromapBuildFlagFastBuild OpacityMicromapBuildFlags = 2
)

// OpacityMicromapUsageCount declares how many input micromaps share one
// subdivision level and format.
type OpacityMicromapUsageCount struct {
	Count            uint32
	SubdivisionLevel uint16
	Format           OpacityMicromapFormat
}

// OpacityMicromapDesc describes an opacity micromap array build.
type OpacityMicromapDesc struct {
	DebugName string

	// Flags apply to every micromap in the array.
	Flags OpacityMicromapBuildFlags

	// Counts lists the subdivision level and format combinations present
	// in the inputs.
	Counts []OpacityMicromapUsageCount

	// InputBuffer holds the raw micromap input data.
	InputBuffer       Buffer
	InputBufferOffset uint64

	// PerOMMDescs holds one packed descriptor per micromap.
	PerOMMDescs       Buffer
	PerOMMDescsOffset uint64
}

// OpacityMicromap is a built opacity micromap array.
type OpacityMicromap interface {
	Resource
	Desc() OpacityMicromapDesc
	IsCompacted() bool
	DeviceAddress() uint64
}

// GeometryFlags qualify one geometry within a bottom-level acceleration
// structure.
type GeometryFlags uint8

const (
	GeometryFlagNone                        GeometryFlags = 0
	GeometryFlagOpaque                      GeometryFlags = 1
	GeometryFlagNoDuplicateAnyHitInvocation GeometryFlags = 2
)

// GeometryType selects the payload of a GeometryDesc.
type GeometryType uint8

const (
	GeometryTypeTriangles GeometryType = iota
	GeometryTypeAABBs
)

// GeometryTriangles is an indexed or non-indexed triangle mesh input to a
// bottom-level acceleration structure build.
type GeometryTriangles struct {
	IndexBuffer  Buffer
	VertexBuffer Buffer
	IndexFormat  Format
	VertexFormat Format
	IndexOffset  uint64
	VertexOffset uint64
	IndexCount   uint32
	VertexCount  uint32
	VertexStride uint32

	// OpacityMicromap attaches per-triangle opacity states.
	OpacityMicromap      OpacityMicromap
	OMMIndexBuffer       Buffer
	OMMIndexBufferOffset uint64
	OMMIndexFormat       Format
	OMMUsageCounts       []OpacityMicromapUsageCount
}

// GeometryAABBs is a procedural-primitive bounding box array input to a
// bottom-level acceleration structure build.
type GeometryAABBs struct {
	Buffer Buffer
	Offset uint64
	Count  uint32
	Stride uint32
}

// GeometryDesc is one geometry of a bottom-level acceleration structure.
// The payload selected by Type is read; the other is ignored.
type GeometryDesc struct {
	Type      GeometryType
	Flags     GeometryFlags
	Triangles GeometryTriangles
	AABBs     GeometryAABBs

	// Transform is applied to the geometry when UseTransform is set.
	Transform    AffineTransform
	UseTransform bool
}

// InstanceFlags qualify one instance within a top-level acceleration
// structure.
type InstanceFlags uint8

const (
	InstanceFlagNone                          InstanceFlags = 0
	InstanceFlagTriangleCullDisable           InstanceFlags = 1
	InstanceFlagTriangleFrontCounterclockwise InstanceFlags = 2
	InstanceFlagForceOpaque                   InstanceFlags = 4
	InstanceFlagForceNonOpaque                InstanceFlags = 8
	InstanceFlagForceOMM2State                InstanceFlags = 16
	InstanceFlagDisableOMMs                   InstanceFlags = 32
)

// InstanceDesc places one bottom-level acceleration structure in a
// top-level build.
type InstanceDesc struct {
	Transform AffineTransform

	// InstanceID is returned to shaders; only the low 24 bits are used.
	InstanceID uint32

	// InstanceMask selects which rays intersect the instance; only the
	// low 8 bits are used. A zero mask hides the instance from all rays.
	InstanceMask uint32

	// ContributionToHitGroupIndex offsets the shader table lookup; only
	// the low 24 bits are used.
	ContributionToHitGroupIndex uint32

	Flags InstanceFlags

	BottomLevelAS AccelStruct
}

// AccelStructBuildFlags tune an acceleration structure build.
type AccelStructBuildFlags uint8

const (
	AccelStructBuildFlagNone            AccelStructBuildFlags = 0
	AccelStructBuildFlagAllowUpdate     AccelStructBuildFlags = 0x01
	AccelStructBuildFlagAllowCompaction AccelStructBuildFlags = 0x02
	AccelStructBuildFlagPreferFastTrace AccelStructBuildFlags = 0x04
	AccelStructBuildFlagPreferFastBuild AccelStructBuildFlags = 0x08
	AccelStructBuildFlagMinimizeMemory  AccelStructBuildFlags = 0x10
	// AccelStructBuildFlagPerformUpdate refits an existing structure
	// instead of rebuilding. The structure must have been created with
	// AllowUpdate.
	AccelStructBuildFlagPerformUpdate AccelStructBuildFlags = 0x20
	// AccelStructBuildFlagAllowEmptyInstances accepts top-level builds
	// with nil or masked-out instances without a diagnostic.
	AccelStructBuildFlagAllowEmptyInstances AccelStructBuildFlags = 0x80
)

// AccelStructDesc describes an acceleration structure. Top-level
// structures size themselves for TopLevelMaxInstances; bottom-level
// structures size themselves for BottomLevelGeometries.
type AccelStructDesc struct {
	TopLevelMaxInstances  uint64
	BottomLevelGeometries []GeometryDesc
	BuildFlags            AccelStructBuildFlags
	DebugName             string
	IsTopLevel            bool
	// IsVirtual defers memory to an explicit BindAccelStructMemory call.
	IsVirtual bool
}

// AccelStruct is a backend-built spatial index for ray queries. Top-level
// structures index instances of bottom-level structures; bottom-level
// structures index geometry.
type AccelStruct interface {
	Resource
	Desc() AccelStructDesc
	IsCompacted() bool
	DeviceAddress() uint64
}

// RayTracingShaderDesc names one shader exported from a ray tracing
// pipeline.
type RayTracingShaderDesc struct {
	// ExportName overrides the shader's own entry name when non-empty.
	ExportName    string
	Shader        Shader
	BindingLayout BindingLayout
}

// RayTracingHitGroupDesc groups the shaders invoked for one kind of hit.
type RayTracingHitGroupDesc struct {
	ExportName         string
	ClosestHitShader   Shader
	AnyHitShader       Shader
	IntersectionShader Shader
	BindingLayout      BindingLayout

	// IsProceduralPrimitive marks hit groups for AABB geometry with an
	// intersection shader.
	IsProceduralPrimitive bool
}

// RayTracingPipelineDesc describes a ray tracing pipeline.
type RayTracingPipelineDesc struct {
	Shaders              []RayTracingShaderDesc
	HitGroups            []RayTracingHitGroupDesc
	GlobalBindingLayouts []BindingLayout
	MaxPayloadSize       uint32
	MaxAttributeSize     uint32
	MaxRecursionDepth    uint32
}

// DefaultRayTracingPipelineDesc returns a descriptor sized for the
// built-in triangle barycentrics attribute and no recursion.
func DefaultRayTracingPipelineDesc() RayTracingPipelineDesc {
	return RayTracingPipelineDesc{
		MaxAttributeSize:  8,
		MaxRecursionDepth: 1,
	}
}

// RayTracingPipeline is a compiled ray tracing pipeline.
type RayTracingPipeline interface {
	Resource
	Desc() RayTracingPipelineDesc
}

// Cluster acceleration structure (CLAS) limits fixed by the underlying
// APIs.
const (
	// ClasMaxTriangles is the triangle capacity of one CLAS.
	ClasMaxTriangles = 256
	// ClasMaxVertices is the vertex capacity of one CLAS.
	ClasMaxVertices = 256
	// ClasMaxGeometryIndex is the largest geometry index a CLAS may
	// reference.
	ClasMaxGeometryIndex = 16777215
)

// ClusterOperationType selects what a multi-indirect cluster operation
// builds or moves.
type ClusterOperationType uint8

const (
	// ClusterOperationMove moves CLAS, CLAS templates, or cluster BLAS.
	ClusterOperationMove ClusterOperationType = iota
	// ClusterOperationClasBuild builds CLAS from triangle clusters.
	ClusterOperationClasBuild
	// ClusterOperationClasBuildTemplates builds CLAS templates from
	// triangles.
	ClusterOperationClasBuildTemplates
	// ClusterOperationClasInstantiateTemplates instantiates CLAS
	// templates.
	ClusterOperationClasInstantiateTemplates
	// ClusterOperationBlasBuild builds cluster BLAS from CLAS.
	ClusterOperationBlasBuild

	clusterOperationTypeCount
)

var clusterOperationTypeNames = [clusterOperationTypeCount]string{
	ClusterOperationMove:                     "Move",
	ClusterOperationClasBuild:                "ClasBuild",
	ClusterOperationClasBuildTemplates:       "ClasBuildTemplates",
	ClusterOperationClasInstantiateTemplates: "ClasInstantiateTemplates",
	ClusterOperationBlasBuild:                "BlasBuild",
}

// String returns the operation type name.
func (t ClusterOperationType) String() string {
	if t < clusterOperationTypeCount {
		return clusterOperationTypeNames[t]
	}
	return "Unknown"
}

// ClusterOperationMoveType selects the object kind a Move operation
// relocates.
type ClusterOperationMoveType uint8

const (
	ClusterOperationMoveBottomLevel ClusterOperationMoveType = iota
	ClusterOperationMoveClusterLevel
	ClusterOperationMoveTemplate
)

// ClusterOperationMode selects how destination addresses are provided.
type ClusterOperationMode uint8

const (
	// ClusterOperationImplicitDestinations lets the driver place results
	// within one caller-provided buffer.
	ClusterOperationImplicitDestinations ClusterOperationMode = iota
	// ClusterOperationExplicitDestinations places each result at a
	// caller-provided address.
	ClusterOperationExplicitDestinations
	// ClusterOperationGetSizes only reports the per-element sizes.
	ClusterOperationGetSizes

	clusterOperationModeCount
)

// ClusterOperationFlags tune a cluster operation.
type ClusterOperationFlags uint8

const (
	ClusterOperationFlagNone      ClusterOperationFlags = 0x0
	ClusterOperationFlagFastTrace ClusterOperationFlags = 0x1
	ClusterOperationFlagFastBuild ClusterOperationFlags = 0x2
	ClusterOperationFlagNoOverlap ClusterOperationFlags = 0x4
	ClusterOperationFlagAllowOMM  ClusterOperationFlags = 0x8
)

// ClusterOperationSizeInfo reports the buffer sizes a cluster operation
// needs.
type ClusterOperationSizeInfo struct {
	ResultMaxSizeBytes uint64
	ScratchSizeBytes   uint64
}

// ClusterOperationMoveParams parameterizes a Move operation.
type ClusterOperationMoveParams struct {
	Type     ClusterOperationMoveType
	MaxBytes uint32
}

// ClusterOperationClasBuildParams parameterizes the CLAS build,
// template-build, and template-instantiate operations.
type ClusterOperationClasBuildParams struct {
	// VertexFormat must be one of the float, snorm, or unorm vertex
	// position formats accepted by acceleration structure builds.
	VertexFormat Format

	// MaxGeometryIndex is the largest geometry index in a single CLAS.
	MaxGeometryIndex uint32

	// MaxUniqueGeometryCount is the geometry capacity of a single CLAS.
	MaxUniqueGeometryCount uint32

	// MaxTriangleCount is the triangle capacity of a single CLAS.
	MaxTriangleCount uint32

	// MaxVertexCount is the vertex capacity of a single CLAS.
	MaxVertexCount uint32

	// MaxTotalTriangleCount is the triangle budget summed over all CLAS
	// in the operation.
	MaxTotalTriangleCount uint32

	// MaxTotalVertexCount is the vertex budget summed over all CLAS in
	// the operation.
	MaxTotalVertexCount uint32

	// MinPositionTruncateBitCount is the number of low vertex position
	// bits truncated across all CLAS; at most 32.
	MinPositionTruncateBitCount uint32
}

// ClusterOperationBlasBuildParams parameterizes the cluster BLAS build
// operation.
type ClusterOperationBlasBuildParams struct {
	// MaxClasPerBlasCount is the CLAS reference capacity of a single
	// BLAS.
	MaxClasPerBlasCount uint32

	// MaxTotalClasCount is the CLAS reference budget summed over all
	// BLAS in the operation.
	MaxTotalClasCount uint32
}

// ClusterOperationParams sizes and parameterizes a multi-indirect cluster
// operation. Only the payload matching Type is read.
type ClusterOperationParams struct {
	// MaxArgCount is the number of structures to build, instantiate, or
	// move.
	MaxArgCount uint32

	Type  ClusterOperationType
	Mode  ClusterOperationMode
	Flags ClusterOperationFlags

	Move ClusterOperationMoveParams
	Clas ClusterOperationClasBuildParams
	Blas ClusterOperationBlasBuildParams
}
