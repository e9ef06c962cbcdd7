package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plantsense/plantsense-cli/internal/plugin"
	"github.com/plantsense/plantsense-cli/internal/report"
	"github.com/plantsense/plantsense-cli/internal/timeline"
)

func getStylesDir() string {
	// Try current directory first
	if _, err := os.Stat("styles"); err == nil {
		return "styles"
	}

	// Try relative to executable
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "styles")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}

	return ""
}

// loadStyles returns the embedded style registry, overlaid with any styles
// found in a local styles directory.
func loadStyles() (*report.Registry, error) {
	registry, err := report.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded styles: %w", err)
	}
	if dir := getStylesDir(); dir != "" {
		if err := registry.LoadFromDir(dir); err != nil {
			return nil, fmt.Errorf("failed to load styles from %s: %w", dir, err)
		}
	}
	return registry, nil
}

// buildClassifier returns the configured classifier and a cleanup function.
// An empty wasm path selects the built-in magnitude threshold.
func buildClassifier(ctx context.Context, wasmPath string) (timeline.Classifier, func(), error) {
	if wasmPath == "" {
		return timeline.NewThresholdClassifier(), func() {}, nil
	}

	classifier, err := plugin.NewWASMClassifier(ctx, wasmPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load classifier plugin: %w", err)
	}
	return classifier, func() { classifier.Close(ctx) }, nil
}
