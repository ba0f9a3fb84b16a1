package config

import (
	"fmt"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
)

// LoadTheme reads a go-theme manifest. The format follows the file
// extension (.json, .yaml, .yml) and the manifest must validate.
func LoadTheme(path string) (*theme.Manifest, error) {
	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("config: theme %s: %w", path, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("config: theme %s: %w", path, err)
	}
	return manifest, nil
}

// ThemeSelector loads the manifest at path into a registry and returns a
// selector defaulting to it and to variant.
func ThemeSelector(path, variant string) (theme.Selector, *theme.Manifest, error) {
	manifest, err := LoadTheme(path)
	if err != nil {
		return theme.Selector{}, nil, err
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return theme.Selector{}, nil, fmt.Errorf("config: register theme %s: %w", manifest.Name, err)
	}
	return theme.Selector{
		Registry:       registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: variant,
	}, manifest, nil
}
