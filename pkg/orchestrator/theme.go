package orchestrator

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
)

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := req.ThemeName
	if name == "" {
		name = o.themeName
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.themeVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	cfg := selection.RendererTheme(nil)
	return &cfg, nil
}
