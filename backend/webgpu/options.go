// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import "github.com/gogpu/rhi"

// Option configures a Device.
type Option func(*options)

type options struct {
	callback rhi.MessageCallback
}

func defaultOptions() options {
	return options{}
}

// WithMessageCallback sets the sink the device hands out through
// MessageCallback. The default routes through the rhi package logger.
func WithMessageCallback(callback rhi.MessageCallback) Option {
	return func(o *options) {
		o.callback = callback
	}
}
