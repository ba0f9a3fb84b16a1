// Package entry collects new fish records interactively.
package entry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-fishlist/pkg/model"
)

// ErrAborted signals the user aborted input (Ctrl+C or a declined
// confirmation).
var ErrAborted = errors.New("entry: aborted")

const otherSpecies = "Other…"

// Collector walks the user through the record fields.
type Collector struct {
	driver PromptDriver
	// Species offered as a pick list; an "Other" choice falls back to free
	// text. Empty means free text only.
	species []string
}

// Option configures a Collector.
type Option func(*Collector)

// WithSpecies offers known species as choices.
func WithSpecies(species ...string) Option {
	return func(c *Collector) {
		for _, s := range species {
			if s = strings.TrimSpace(s); s != "" {
				c.species = append(c.species, s)
			}
		}
	}
}

// NewCollector builds a Collector on top of driver.
func NewCollector(driver PromptDriver, options ...Option) (*Collector, error) {
	if driver == nil {
		return nil, errors.New("entry: prompt driver is required")
	}
	c := &Collector{driver: driver}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Collect prompts for one record. defaults pre-fill the answers and may be
// nil. The returned record has no ID; the store assigns one.
func (c *Collector) Collect(ctx context.Context, defaults *model.Fish) (*model.Fish, error) {
	if defaults == nil {
		defaults = &model.Fish{}
	}

	name, err := c.driver.Input(ctx, InputConfig{
		Message:   "Name",
		Default:   defaults.Name,
		Help:      "Display name; also used for element ids",
		Validator: requireText("name"),
	})
	if err != nil {
		return nil, err
	}

	image, err := c.driver.Input(ctx, InputConfig{Message: "Image URL", Default: defaults.Image})
	if err != nil {
		return nil, err
	}

	species, err := c.askSpecies(ctx, defaults.Species)
	if err != nil {
		return nil, err
	}

	location, err := c.driver.Input(ctx, InputConfig{Message: "Location", Default: defaults.Location})
	if err != nil {
		return nil, err
	}

	size, err := c.driver.Input(ctx, InputConfig{
		Message: "Length",
		Default: defaults.Size.String(),
		Help:    "Free text, for example 2in",
	})
	if err != nil {
		return nil, err
	}

	food, err := c.driver.Input(ctx, InputConfig{
		Message: "Food",
		Default: strings.Join(defaults.Food, ", "),
		Help:    "Comma separated, in feeding order",
	})
	if err != nil {
		return nil, err
	}

	fish := &model.Fish{
		Name:     strings.TrimSpace(name),
		Image:    strings.TrimSpace(image),
		Species:  strings.TrimSpace(species),
		Location: strings.TrimSpace(location),
		Size:     model.Measure(strings.TrimSpace(size)),
		Food:     ParseFood(food),
	}

	ok, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Add %s?", fish.Name),
		Default: true,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAborted
	}
	return fish, nil
}

func (c *Collector) askSpecies(ctx context.Context, current string) (string, error) {
	if len(c.species) == 0 {
		return c.driver.Input(ctx, InputConfig{Message: "Species", Default: current})
	}

	options := append(append([]string{}, c.species...), otherSpecies)
	defaultIndex := 0
	if current != "" {
		defaultIndex = len(options) - 1
		if idx := indexOf(c.species, current); idx >= 0 {
			defaultIndex = idx
		}
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      "Species",
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx >= 0 && idx < len(c.species) {
		return c.species[idx], nil
	}
	return c.driver.Input(ctx, InputConfig{Message: "Species", Default: current})
}

// ParseFood splits a comma separated list, trimming items and dropping
// empty ones while keeping the order.
func ParseFood(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func requireText(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
