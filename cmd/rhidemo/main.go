// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rhidemo exercises the validation layer over an rhi backend.
//
// The demo issues deliberately malformed device calls and prints the
// aggregated diagnostic each one produces, then records a small compute
// workload and dumps its pixel output to a BMP file.
//
// By default everything runs on the in-memory headless device, where
// the dispatch is counted but not executed and the dump shows the
// uploaded gradient. With -gpu the workload runs on real hardware
// through the webgpu backend and the shader draws rings over it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend/headless"
	"github.com/gogpu/rhi/backend/webgpu"
	"github.com/gogpu/rhi/debugutil"
	"github.com/gogpu/rhi/validation"
)

const (
	demoWidth  = 256
	demoHeight = 256
)

// gradientWGSL draws cosine rings over the uploaded two-axis gradient.
// The extent is fixed; it must match demoWidth and demoHeight.
const gradientWGSL = `
@group(0) @binding(0)
var<storage, read_write> pixels: array<u32>;

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    if (id.x >= 256u || id.y >= 256u) {
        return;
    }
    let fx = f32(id.x) / 255.0;
    let fy = f32(id.y) / 255.0;
    let dx = fx - 0.5;
    let dy = fy - 0.5;
    let d = sqrt(dx * dx + dy * dy);
    let ring = 0.5 + 0.5 * cos(40.0 * d);
    let r = u32(fx * 255.0);
    let g = u32(fy * 255.0);
    let b = u32(ring * 255.0);
    pixels[id.y * 256u + id.x] = r | (g << 8u) | (b << 16u) | (255u << 24u);
}
`

// diagnosticLog collects every message the validation layer emits, so
// the demo can count them at the end.
type diagnosticLog struct {
	mu       sync.Mutex
	messages []string
}

func (l *diagnosticLog) Message(severity rhi.MessageSeverity, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("[%v] %s", severity, text))
}

func (l *diagnosticLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

func main() {
	var (
		useGPU  = flag.Bool("gpu", false, "run on real hardware through the webgpu backend")
		output  = flag.String("output", "rhidemo.bmp", "output BMP file")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	rhi.SetLogger(logger)

	backend, name, cleanup := openBackend(*useGPU)
	defer cleanup()

	diags := &diagnosticLog{}
	device := validation.NewDevice(backend, validation.WithMessageCallback(diags))

	fmt.Println("RHI Validation Demo")
	fmt.Println("===================")
	fmt.Printf("Backend: %s\n\n", name)

	runMalformedCalls(device)

	rgba, err := runCompute(device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: compute workload: %v\n", err)
		os.Exit(1)
	}
	if err := debugutil.SaveBMP(*output, demoWidth, demoHeight, rgba); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: save image: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("Diagnostics reported: %d\n", diags.count())
	fmt.Printf("Output: %s (%dx%d)\n", *output, demoWidth, demoHeight)
}

// openBackend selects the device the demo runs on. A missing GPU falls
// back to the headless device so the demo always completes.
func openBackend(useGPU bool) (device rhi.Device, name string, cleanup func()) {
	if useGPU {
		gpu, err := webgpu.New()
		if err == nil {
			return gpu, "webgpu, adapter " + gpu.AdapterName(), gpu.Close
		}
		slog.Warn("GPU not available, falling back to headless", "err", err)
	}
	return headless.New(), "headless", func() {}
}

// runMalformedCalls issues calls the validation layer must reject and
// prints the aggregated diagnostic each one produces.
func runMalformedCalls(device rhi.Device) {
	fmt.Println("Malformed calls")
	fmt.Println("---------------")

	// Zero extent, zero mip and array counts, no format, no dimension.
	_, err := device.CreateTexture(rhi.TextureDesc{DebugName: "broken_texture"})
	printDiagnostic("CreateTexture", err)

	// Volatile buffers must be versioned constant buffers without CPU
	// access.
	_, err = device.CreateBuffer(rhi.BufferDesc{
		ByteSize:   256,
		DebugName:  "broken_volatile",
		IsVolatile: true,
		CPUAccess:  rhi.CPUAccessWrite,
	})
	printDiagnostic("CreateBuffer", err)

	// No visibility, a duplicate slot and an unset item.
	_, err = device.CreateBindingLayout(rhi.BindingLayoutDesc{
		Bindings: []rhi.BindingLayoutItem{
			rhi.ConstantBufferItem(0),
			rhi.ConstantBufferItem(0),
			{Slot: 1},
		},
	})
	printDiagnostic("CreateBindingLayout", err)

	// Recording into a list that was never opened.
	list, err := device.CreateCommandList(rhi.DefaultCommandListParameters())
	if err != nil {
		printDiagnostic("CreateCommandList", err)
	} else {
		printDiagnostic("CommandList.Dispatch", list.Dispatch(1, 1, 1))
	}
	fmt.Println()
}

// printDiagnostic shows the aggregated error a malformed call produced.
func printDiagnostic(call string, err error) {
	if err == nil {
		fmt.Printf("%s: unexpectedly passed validation\n", call)
		return
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		fmt.Printf("%s rejected with %d finding(s):\n", call, len(verr.Findings()))
	} else {
		fmt.Printf("%s rejected:\n", call)
	}
	fmt.Printf("%s\n", indent(err.Error()))
}

// indent prefixes every line of s with two spaces.
func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

// runCompute records the demo workload: upload a CPU gradient, dispatch
// the ring shader over it and copy the pixels to a staging buffer for
// readback.
func runCompute(device rhi.Device) ([]byte, error) {
	const byteSize = demoWidth * demoHeight * 4

	pixels, err := device.CreateBuffer(rhi.BufferDesc{
		ByteSize:     byteSize,
		DebugName:    "pixels",
		CanHaveUAVs:  true,
		StructStride: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("create pixel buffer: %w", err)
	}
	staging, err := device.CreateBuffer(rhi.BufferDesc{
		ByteSize:  byteSize,
		DebugName: "readback",
		CPUAccess: rhi.CPUAccessRead,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	shader, err := device.CreateShader(rhi.ShaderDesc{
		ShaderType: rhi.ShaderTypeCompute,
		DebugName:  "gradient",
	}, []byte(gradientWGSL))
	if err != nil {
		return nil, fmt.Errorf("create shader: %w", err)
	}
	layout, err := device.CreateBindingLayout(rhi.BindingLayoutDesc{
		Visibility: rhi.ShaderTypeCompute,
		Bindings:   []rhi.BindingLayoutItem{rhi.StructuredBufferUAVItem(0)},
	})
	if err != nil {
		return nil, fmt.Errorf("create binding layout: %w", err)
	}
	set, err := device.CreateBindingSet(rhi.BindingSetDesc{
		Bindings: []rhi.BindingSetItem{rhi.StructuredBufferUAVBinding(0, pixels)},
	}, layout)
	if err != nil {
		return nil, fmt.Errorf("create binding set: %w", err)
	}
	pipeline, err := device.CreateComputePipeline(rhi.ComputePipelineDesc{
		ComputeShader:  shader,
		BindingLayouts: []rhi.BindingLayout{layout},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	list, err := device.CreateCommandList(rhi.DefaultCommandListParameters())
	if err != nil {
		return nil, fmt.Errorf("create command list: %w", err)
	}
	if err := list.Open(); err != nil {
		return nil, fmt.Errorf("open list: %w", err)
	}
	if err := list.WriteBuffer(pixels, cpuGradient(), 0); err != nil {
		return nil, fmt.Errorf("upload gradient: %w", err)
	}
	if err := list.SetComputeState(rhi.ComputeState{
		Pipeline: pipeline,
		Bindings: []rhi.BindingSet{set},
	}); err != nil {
		return nil, fmt.Errorf("set compute state: %w", err)
	}
	if err := list.Dispatch(demoWidth/8, demoHeight/8, 1); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	if err := list.CopyBuffer(staging, 0, pixels, 0, byteSize); err != nil {
		return nil, fmt.Errorf("copy to staging: %w", err)
	}
	if err := list.Close(); err != nil {
		return nil, fmt.Errorf("close list: %w", err)
	}
	if _, err := rhi.ExecuteCommandList(device, list, rhi.CommandQueueGraphics); err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}

	mapped, err := device.MapBuffer(staging, rhi.CPUAccessRead)
	if err != nil {
		return nil, fmt.Errorf("map staging: %w", err)
	}
	out := make([]byte, byteSize)
	copy(out, mapped)
	if err := device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging: %w", err)
	}
	return out, nil
}

// cpuGradient builds the two-axis gradient the shader refines, so the
// dump is meaningful on devices that do not execute dispatches.
func cpuGradient() []byte {
	rgba := make([]byte, demoWidth*demoHeight*4)
	for y := 0; y < demoHeight; y++ {
		for x := 0; x < demoWidth; x++ {
			i := (y*demoWidth + x) * 4
			rgba[i+0] = byte(x * 255 / (demoWidth - 1))
			rgba[i+1] = byte(y * 255 / (demoHeight - 1))
			rgba[i+2] = 0x60
			rgba[i+3] = 0xFF
		}
	}
	return rgba
}
