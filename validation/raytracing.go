// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import "github.com/gogpu/rhi"

// accelStructWrapper attaches build-flag metadata to an acceleration
// structure so command list validation can check update permission and
// instance capacity without a backend query.
type accelStructWrapper struct {
	inner rhi.AccelStruct

	isTopLevel      bool
	allowUpdate     bool
	allowCompaction bool
	maxInstances    uint64
}

var _ rhi.AccelStruct = (*accelStructWrapper)(nil)

func (w *accelStructWrapper) NativeObject(objectType rhi.ObjectType) rhi.Object {
	return w.inner.NativeObject(objectType)
}

func (w *accelStructWrapper) Desc() rhi.AccelStructDesc { return w.inner.Desc() }
func (w *accelStructWrapper) IsCompacted() bool         { return w.inner.IsCompacted() }
func (w *accelStructWrapper) DeviceAddress() uint64     { return w.inner.DeviceAddress() }

// CreateOpacityMicromap checks that the input buffers are present.
func (d *Device) CreateOpacityMicromap(desc rhi.OpacityMicromapDesc) (rhi.OpacityMicromap, error) {
	r := d.begin("CreateOpacityMicromap")
	if desc.InputBuffer == nil {
		r.errorf("inputBuffer is nil")
	}
	if desc.PerOMMDescs == nil {
		r.errorf("perOMMDescs is nil")
	}
	if r.failed() {
		return nil, r.finish()
	}
	return d.inner.CreateOpacityMicromap(desc)
}

// CreateAccelStruct forwards first, because the backend is the
// authority on whether the structure can exist at all, then checks the
// build flag combinations and wraps the result.
func (d *Device) CreateAccelStruct(desc rhi.AccelStructDesc) (rhi.AccelStruct, error) {
	as, err := d.inner.CreateAccelStruct(desc)
	if err != nil || as == nil {
		return nil, err
	}

	r := d.begin("CreateAccelStruct")
	name := displayName(desc.DebugName)
	if desc.IsTopLevel && desc.BuildFlags&rhi.AccelStructBuildFlagAllowCompaction != 0 {
		r.errorf("cannot create top-level structure %s with the AllowCompaction flag: compaction applies to bottom-level structures only", name)
	}
	if desc.BuildFlags&rhi.AccelStructBuildFlagAllowUpdate != 0 &&
		desc.BuildFlags&rhi.AccelStructBuildFlagAllowCompaction != 0 {
		r.errorf("cannot create structure %s with the incompatible flags AllowUpdate and AllowCompaction", name)
	}
	if err := r.finish(); err != nil {
		return nil, err
	}

	return &accelStructWrapper{
		inner:           as,
		isTopLevel:      desc.IsTopLevel,
		allowUpdate:     desc.BuildFlags&rhi.AccelStructBuildFlagAllowUpdate != 0,
		allowCompaction: desc.BuildFlags&rhi.AccelStructBuildFlagAllowCompaction != 0,
		maxInstances:    desc.TopLevelMaxInstances,
	}, nil
}

// AccelStructMemoryRequirements reports a zero-size backend answer as a
// defect of the wrapped device.
func (d *Device) AccelStructMemoryRequirements(as rhi.AccelStruct) (rhi.MemoryRequirements, error) {
	r := d.begin("AccelStructMemoryRequirements")
	if as == nil {
		r.errorf("acceleration structure is nil")
		return rhi.MemoryRequirements{}, r.finish()
	}
	memReq, err := d.inner.AccelStructMemoryRequirements(unwrapAccelStruct(as))
	if err != nil {
		return rhi.MemoryRequirements{}, err
	}
	if memReq.Size == 0 {
		r.errorf("the device reported zero memory size for acceleration structure %s", displayName(as.Desc().DebugName))
		return memReq, r.finish()
	}
	return memReq, nil
}

// BindAccelStructMemory checks that the structure is virtual and that
// its memory requirements fit the heap at offset.
func (d *Device) BindAccelStructMemory(as rhi.AccelStruct, heap rhi.Heap, offset uint64) error {
	r := d.begin("BindAccelStructMemory")
	if as == nil {
		r.errorf("acceleration structure is nil")
	}
	if heap == nil {
		r.errorf("heap is nil")
	}
	if r.failed() {
		return r.finish()
	}

	as = unwrapAccelStruct(as)
	desc := as.Desc()
	if !desc.IsVirtual {
		r.errorf("cannot bind memory to acceleration structure %s because it was created with isVirtual = false", displayName(desc.DebugName))
		return r.finish()
	}

	memReq, err := d.inner.AccelStructMemoryRequirements(as)
	if err != nil {
		return err
	}
	validateHeapPlacement(r, "acceleration structure", displayName(desc.DebugName), heap, offset, memReq)
	if r.failed() {
		return r.finish()
	}
	return d.inner.BindAccelStructMemory(as, heap, offset)
}

// clasVertexFormats lists the vertex position formats cluster
// acceleration structure builds accept.
var clasVertexFormats = map[rhi.Format]bool{
	rhi.FormatRGBA32Float:      true,
	rhi.FormatRGB32Float:       true,
	rhi.FormatRG32Float:        true,
	rhi.FormatRGBA16Float:      true,
	rhi.FormatRG16Float:        true,
	rhi.FormatRGBA16SNorm:      true,
	rhi.FormatRG16SNorm:        true,
	rhi.FormatRGBA8SNorm:       true,
	rhi.FormatRG8SNorm:         true,
	rhi.FormatRGBA16UNorm:      true,
	rhi.FormatRG16UNorm:        true,
	rhi.FormatRGBA8UNorm:       true,
	rhi.FormatRG8UNorm:         true,
	rhi.FormatR10G10B10A2UNorm: true,
}

// validateClusterOperationParams checks the mode and, for operations
// that build or instantiate CLAS, the vertex format and the per-CLAS
// and aggregate budgets. All violations accumulate.
func validateClusterOperationParams(r *report, params rhi.ClusterOperationParams) {
	op := params.Type

	switch params.Mode {
	case rhi.ClusterOperationImplicitDestinations,
		rhi.ClusterOperationExplicitDestinations,
		rhi.ClusterOperationGetSizes:
	default:
		r.errorf("cluster operation %s has an unknown mode (%d)", op, params.Mode)
	}

	switch params.Type {
	case rhi.ClusterOperationClasBuild,
		rhi.ClusterOperationClasBuildTemplates,
		rhi.ClusterOperationClasInstantiateTemplates:
	default:
		return
	}

	clas := params.Clas
	if !clasVertexFormats[clas.VertexFormat] {
		r.errorf("cluster operation %s does not have a valid vertex format", op)
	}
	if clas.MaxGeometryIndex > rhi.ClasMaxGeometryIndex {
		r.errorf("cluster operation %s has maxGeometryIndex over %d", op, uint32(rhi.ClasMaxGeometryIndex))
	}
	if clas.MinPositionTruncateBitCount > 32 {
		r.errorf("cluster operation %s has minPositionTruncateBitCount over 32", op)
	}
	if clas.MaxTriangleCount > rhi.ClasMaxTriangles {
		r.errorf("cluster operation %s has maxTriangleCount over %d", op, uint32(rhi.ClasMaxTriangles))
	}
	if clas.MaxVertexCount > rhi.ClasMaxVertices {
		r.errorf("cluster operation %s has maxVertexCount over %d", op, uint32(rhi.ClasMaxVertices))
	}
	if clas.MaxTriangleCount > clas.MaxTotalTriangleCount {
		r.errorf("cluster operation %s has maxTriangleCount over maxTotalTriangleCount; the total must cover the sum of all triangles in the operation", op)
	}
	if clas.MaxVertexCount > clas.MaxTotalVertexCount {
		r.errorf("cluster operation %s has maxVertexCount over maxTotalVertexCount; the total must cover the sum of all vertices in the operation", op)
	}
	if clas.MaxUniqueGeometryCount > clas.MaxTriangleCount {
		r.errorf("cluster operation %s has maxUniqueGeometryCount over maxTriangleCount; a CLAS holds at most one geometry per triangle", op)
	}
}

// ClusterOperationSizeInfo validates the operation parameters before
// asking the device for sizes.
func (d *Device) ClusterOperationSizeInfo(params rhi.ClusterOperationParams) (rhi.ClusterOperationSizeInfo, error) {
	r := d.begin("ClusterOperationSizeInfo")
	validateClusterOperationParams(r, params)
	if err := r.finish(); err != nil {
		return rhi.ClusterOperationSizeInfo{}, err
	}
	return d.inner.ClusterOperationSizeInfo(params)
}
