// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuhost

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend/webgpu"
	"github.com/gogpu/rhi/validation"
)

// ErrNilProvider is returned when a nil DeviceProvider is passed.
var ErrNilProvider = errors.New("gpuhost: nil DeviceProvider")

// Option configures Device.
type Option func(*options)

type options struct {
	validate bool
	callback rhi.MessageCallback
}

func defaultOptions() options {
	return options{validate: true}
}

// WithoutValidation returns the bare backend device instead of the
// validation-wrapped one.
func WithoutValidation() Option {
	return func(o *options) { o.validate = false }
}

// WithMessageCallback routes diagnostics to callback. The default
// routes through the rhi package logger.
func WithMessageCallback(callback rhi.MessageCallback) Option {
	return func(o *options) { o.callback = callback }
}

// Device adopts the host's GPU device and returns it as an rhi.Device,
// wrapped in the validation layer unless WithoutValidation is given.
// Close on the result leaves the host's device alive.
func Device(provider gpucontext.DeviceProvider, opts ...Option) (rhi.Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	var backendOpts []webgpu.Option
	if o.callback != nil {
		backendOpts = append(backendOpts, webgpu.WithMessageCallback(o.callback))
	}
	device, err := webgpu.NewFromProvider(provider, backendOpts...)
	if err != nil {
		return nil, fmt.Errorf("gpuhost: adopt host device: %w", err)
	}
	if !o.validate {
		return device, nil
	}
	var valOpts []validation.Option
	if o.callback != nil {
		valOpts = append(valOpts, validation.WithMessageCallback(o.callback))
	}
	return validation.NewDevice(device, valOpts...), nil
}

// SurfaceFormat reports the host swapchain format as an rhi.Format, so
// callers can create render targets that match their window. Formats
// the rhi layer does not name map to FormatUnknown.
func SurfaceFormat(provider gpucontext.DeviceProvider) rhi.Format {
	if provider == nil {
		return rhi.FormatUnknown
	}
	switch provider.SurfaceFormat() {
	case gputypes.TextureFormatR8Unorm:
		return rhi.FormatR8UNorm
	case gputypes.TextureFormatRGBA8Unorm:
		return rhi.FormatRGBA8UNorm
	case gputypes.TextureFormatBGRA8Unorm:
		return rhi.FormatBGRA8UNorm
	case gputypes.TextureFormatDepth24PlusStencil8:
		return rhi.FormatD24S8
	default:
		return rhi.FormatUnknown
	}
}
