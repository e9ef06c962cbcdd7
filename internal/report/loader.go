package report

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed styles/*.yaml
var embeddedStyles embed.FS

// Registry holds all available report styles.
type Registry struct {
	styles map[string]*Style
}

// NewRegistry creates an empty style registry.
func NewRegistry() *Registry {
	return &Registry{
		styles: make(map[string]*Style),
	}
}

// DefaultRegistry returns a registry preloaded with the embedded styles.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadFromEmbedded(embeddedStyles, "styles"); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFromFile loads a style from a YAML file.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read style file: %w", err)
	}

	var style Style
	if err := yaml.Unmarshal(data, &style); err != nil {
		return fmt.Errorf("failed to parse style YAML: %w", err)
	}

	r.styles[style.Name] = &style
	return nil
}

// LoadFromDir loads all styles from a directory, overriding embedded styles
// of the same name.
func (r *Registry) LoadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read styles directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".yaml") && !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		if err := r.LoadFromFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// LoadFromEmbedded loads styles from an embedded filesystem.
func (r *Registry) LoadFromEmbedded(fs embed.FS, dir string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read embedded styles: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := fs.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read embedded style %s: %w", entry.Name(), err)
		}

		var style Style
		if err := yaml.Unmarshal(data, &style); err != nil {
			return fmt.Errorf("failed to parse embedded style %s: %w", entry.Name(), err)
		}
		r.styles[style.Name] = &style
	}

	return nil
}

// Get retrieves a style by name.
func (r *Registry) Get(name string) (*Style, error) {
	style, ok := r.styles[name]
	if !ok {
		return nil, fmt.Errorf("style '%s' not found", name)
	}
	return style, nil
}

// List returns all style names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	return names
}

// ListWithDescriptions returns all styles with their descriptions.
func (r *Registry) ListWithDescriptions() map[string]string {
	result := make(map[string]string)
	for name, style := range r.styles {
		result[name] = style.Description
	}
	return result
}
