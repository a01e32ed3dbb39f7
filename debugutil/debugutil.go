// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package debugutil writes GPU readback data to image files for
// inspection. It converts the tightly packed RGBA8 bytes that staging
// buffers and texture readback produce into standard image formats.
package debugutil

import (
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

// WriteBMP encodes tightly packed RGBA8 pixel data as a BMP image.
func WriteBMP(w io.Writer, width, height int, rgba []byte) error {
	img, err := toImage(width, height, rgba)
	if err != nil {
		return err
	}
	return bmp.Encode(w, img)
}

// SaveBMP writes the pixel data to a BMP file at path.
func SaveBMP(path string, width, height int, rgba []byte) error {
	f, err := os.Create(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return WriteBMP(f, width, height, rgba)
}

func toImage(width, height int, rgba []byte) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("debugutil: invalid dimensions %dx%d", width, height)
	}
	if len(rgba) != width*height*4 {
		return nil, fmt.Errorf("debugutil: %d bytes for %dx%d, want %d",
			len(rgba), width, height, width*height*4)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba)
	return img, nil
}
