// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/rhi"
)

// spirvMagic begins every SPIR-V module, in the endianness the module
// was written with.
const spirvMagic = 0x07230203

// isWGSLText reports whether a shader blob looks like WGSL source
// rather than a compiled binary module.
func isWGSLText(blob []byte) bool {
	if len(blob) == 0 {
		return false
	}
	if len(blob) >= 4 {
		if binary.LittleEndian.Uint32(blob) == spirvMagic || binary.BigEndian.Uint32(blob) == spirvMagic {
			return false
		}
	}
	return utf8.Valid(blob)
}

// wgslStage maps a WGSL entry point stage to the pipeline stage mask,
// or ShaderTypeNone for stages the mapping does not cover.
func wgslStage(stage ir.ShaderStage) rhi.ShaderType {
	switch stage {
	case ir.StageVertex:
		return rhi.ShaderTypeVertex
	case ir.StageFragment:
		return rhi.ShaderTypePixel
	case ir.StageCompute:
		return rhi.ShaderTypeCompute
	default:
		return rhi.ShaderTypeNone
	}
}

// validateWGSLShader compiles a WGSL blob and checks that the entry
// point named by the descriptor exists and is declared for the
// descriptor's stage.
func validateWGSLShader(r *report, desc rhi.ShaderDesc, source string) {
	name := displayName(desc.DebugName)

	ast, err := naga.Parse(source)
	if err != nil {
		r.errorf("shader %s does not parse as WGSL: %v", name, err)
		return
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		r.errorf("shader %s does not compile: %v", name, err)
		return
	}

	entry := desc.Entry()
	for _, ep := range module.EntryPoints {
		if ep.Name != entry {
			continue
		}
		stage := wgslStage(ep.Stage)
		if stage != rhi.ShaderTypeNone && stage != desc.ShaderType {
			r.errorf("entry point %q in shader %s is declared for the %v stage, but the descriptor says %v",
				entry, name, stage, desc.ShaderType)
		}
		return
	}
	r.errorf("shader %s has no entry point %q; the module declares %s",
		name, entry, entryPointList(module))
}

// entryPointList names a module's entry points for diagnostics.
func entryPointList(module *ir.Module) string {
	if len(module.EntryPoints) == 0 {
		return "no entry points"
	}
	names := make([]string, len(module.EntryPoints))
	for i, ep := range module.EntryPoints {
		names[i] = "\"" + ep.Name + "\""
	}
	return strings.Join(names, ", ")
}
