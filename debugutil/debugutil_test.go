// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debugutil

import (
	"bytes"
	"image"
	"testing"

	"golang.org/x/image/bmp"
)

func TestWriteBMPRoundTrip(t *testing.T) {
	const w, h = 4, 2
	rgba := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		rgba[i*4+0] = byte(i * 16)
		rgba[i*4+1] = byte(255 - i*16)
		rgba[i*4+2] = 0x40
		rgba[i*4+3] = 0xFF
	}

	var buf bytes.Buffer
	if err := WriteBMP(&buf, w, h, rgba); err != nil {
		t.Fatalf("WriteBMP: %v", err)
	}

	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, w, h) {
		t.Fatalf("bounds = %v, want %dx%d", got, w, h)
	}
	r, g, b, _ := img.At(1, 0).RGBA()
	if r>>8 != 16 || g>>8 != 255-16 || b>>8 != 0x40 {
		t.Errorf("pixel (1,0) = %d,%d,%d, want 16,%d,64", r>>8, g>>8, b>>8, 255-16)
	}
}

func TestWriteBMPRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBMP(&buf, 0, 4, nil); err == nil {
		t.Error("WriteBMP(zero width) = nil error, want rejection")
	}
	if err := WriteBMP(&buf, 2, 2, make([]byte, 3)); err == nil {
		t.Error("WriteBMP(short data) = nil error, want rejection")
	}
}

func TestSaveBMP(t *testing.T) {
	path := t.TempDir() + "/out.bmp"
	rgba := make([]byte, 2*2*4)
	if err := SaveBMP(path, 2, 2, rgba); err != nil {
		t.Fatalf("SaveBMP: %v", err)
	}
}
