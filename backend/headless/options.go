// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import "github.com/gogpu/rhi"

// Option configures a Device.
type Option func(*options)

type options struct {
	api      rhi.GraphicsAPI
	features map[rhi.Feature]bool
	callback rhi.MessageCallback
}

func defaultOptions() options {
	return options{
		api: rhi.GraphicsAPIVulkan,
		features: map[rhi.Feature]bool{
			rhi.FeatureComputeQueue:          true,
			rhi.FeatureCopyQueue:             true,
			rhi.FeatureConstantBufferRanges:  true,
			rhi.FeatureDeferredCommandLists:  true,
			rhi.FeatureShaderSpecializations: true,
			rhi.FeatureVirtualResources:      true,
		},
	}
}

// WithGraphicsAPI sets the API identity the device reports. Rules that
// differ between backends, such as register space support, follow this
// identity. The default is Vulkan.
func WithGraphicsAPI(api rhi.GraphicsAPI) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithFeatures replaces the default feature set with exactly the given
// features. Operations whose feature is absent return
// rhi.ErrNotSupported.
//
//	device := headless.New(headless.WithFeatures(
//		rhi.FeatureComputeQueue,
//		rhi.FeatureRayTracingAccelStruct,
//	))
func WithFeatures(features ...rhi.Feature) Option {
	return func(o *options) {
		o.features = make(map[rhi.Feature]bool, len(features))
		for _, f := range features {
			o.features[f] = true
		}
	}
}

// WithMessageCallback sets the sink the device hands out through
// MessageCallback. The default routes through the rhi package logger.
func WithMessageCallback(callback rhi.MessageCallback) Option {
	return func(o *options) {
		o.callback = callback
	}
}
