// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import "github.com/gogpu/rhi"

// CreateShader reflects WGSL bytecode against the descriptor when
// reflection is enabled. Binary bytecode formats pass through
// unchanged.
func (d *Device) CreateShader(desc rhi.ShaderDesc, bytecode []byte) (rhi.Shader, error) {
	if d.reflection && isWGSLText(bytecode) {
		r := d.begin("CreateShader")
		validateWGSLShader(r, desc, string(bytecode))
		if err := r.finish(); err != nil {
			return nil, err
		}
	}
	return d.inner.CreateShader(desc, bytecode)
}

// CreateShaderSpecialization checks device support and the arguments
// before forwarding.
func (d *Device) CreateShaderSpecialization(baseShader rhi.Shader, constants []rhi.ShaderSpecialization) (rhi.Shader, error) {
	r := d.begin("CreateShaderSpecialization")
	if !d.inner.QueryFeatureSupport(rhi.FeatureShaderSpecializations) {
		r.errorf("the current graphics API (%s) does not support shader specializations", d.inner.GraphicsAPI())
	}
	if len(constants) == 0 {
		r.errorf("constants must not be empty")
	}
	if baseShader == nil {
		r.errorf("baseShader is nil")
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return d.inner.CreateShaderSpecialization(baseShader, constants)
}

func (d *Device) CreateShaderLibrary(bytecode []byte) (rhi.ShaderLibrary, error) {
	return d.inner.CreateShaderLibrary(bytecode)
}
