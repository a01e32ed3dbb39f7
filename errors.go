// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

import "errors"

// ErrNotSupported is returned by devices for operations the backend
// cannot perform, such as ray tracing on a backend without acceleration
// structures. Test with errors.Is.
var ErrNotSupported = errors.New("rhi: operation not supported by this device")
