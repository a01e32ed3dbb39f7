// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import "github.com/gogpu/rhi"

// Option configures a validation Device.
type Option func(*options)

type options struct {
	callback   rhi.MessageCallback
	reflection bool
}

func defaultOptions() options {
	return options{
		reflection: true,
	}
}

// WithMessageCallback routes diagnostics to callback instead of the
// wrapped device's own callback.
//
//	device := validation.NewDevice(backend,
//		validation.WithMessageCallback(sink))
func WithMessageCallback(callback rhi.MessageCallback) Option {
	return func(o *options) {
		o.callback = callback
	}
}

// WithShaderReflection controls whether CreateShader parses WGSL
// bytecode and checks the entry point declared in the descriptor
// against the module. Reflection is enabled by default; disable it
// when shader parsing cost matters.
//
//	device := validation.NewDevice(backend,
//		validation.WithShaderReflection(false))
func WithShaderReflection(enabled bool) Option {
	return func(o *options) {
		o.reflection = enabled
	}
}
