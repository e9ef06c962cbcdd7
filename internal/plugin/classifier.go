// Package plugin loads alternate timestamp classifiers from WASM modules.
package plugin

import (
	"context"
	"fmt"
	"os"

	"github.com/plantsense/plantsense-cli/internal/timeline"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// classifyExport is the function a classifier module must export:
// classify(timestamp: f64) -> i32, nonzero meaning absolute.
const classifyExport = "classify"

// WASMClassifier is a timeline.Classifier backed by a WASM module, for
// swapping in alternate heuristics without rebuilding the CLI.
type WASMClassifier struct {
	runtime  wazero.Runtime
	module   api.Module
	classify api.Function
	ctx      context.Context
	fallback timeline.Classifier
}

// NewWASMClassifier loads a classifier module from disk.
func NewWASMClassifier(ctx context.Context, wasmPath string) (*WASMClassifier, error) {
	wasmBytes, err := os.ReadFile(wasmPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read wasm file: %w", err)
	}

	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	compiled, err := r.CompileModule(ctx, wasmBytes)
	if err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("failed to compile wasm module: %w", err)
	}

	mod, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithStdout(os.Stdout).WithStderr(os.Stderr))
	if err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate wasm module: %w", err)
	}

	fn := mod.ExportedFunction(classifyExport)
	if fn == nil {
		r.Close(ctx)
		return nil, fmt.Errorf("%s not exported", classifyExport)
	}

	return &WASMClassifier{
		runtime:  r,
		module:   mod,
		classify: fn,
		ctx:      ctx,
		fallback: timeline.NewThresholdClassifier(),
	}, nil
}

// Classify implements timeline.Classifier. A failing guest call falls back
// to the magnitude threshold rather than corrupting the run.
func (c *WASMClassifier) Classify(timestamp float64) timeline.Class {
	results, err := c.classify.Call(c.ctx, api.EncodeF64(timestamp))
	if err != nil || len(results) == 0 {
		return c.fallback.Classify(timestamp)
	}
	if api.DecodeI32(results[0]) != 0 {
		return timeline.ClassAbsolute
	}
	return timeline.ClassUptime
}

// Close releases the WASM runtime.
func (c *WASMClassifier) Close(ctx context.Context) error {
	return c.runtime.Close(ctx)
}
