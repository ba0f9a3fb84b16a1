package model

import (
	"fmt"
	"strings"
)

// KeyStrategy selects which field feeds identifier derivation.
type KeyStrategy string

const (
	// KeyByName derives ids from the display name. Two records with the same
	// name collide; see Collection.DuplicateKeys.
	KeyByName KeyStrategy = "name"
	// KeyByID derives ids from the stable ID field, falling back to the name
	// when a record carries no ID.
	KeyByID KeyStrategy = "id"
)

const (
	DefaultTriggerPrefix = "btn-"
	DefaultDetailPrefix  = "info-"
)

// ParseKeyStrategy normalises user supplied strategy names.
func ParseKeyStrategy(raw string) (KeyStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(KeyByName):
		return KeyByName, nil
	case string(KeyByID):
		return KeyByID, nil
	default:
		return "", fmt.Errorf("model: unknown key strategy %q", raw)
	}
}

// Key returns the suffix used for element ids.
func (f *Fish) Key(strategy KeyStrategy) string {
	if f == nil {
		return ""
	}
	if strategy == KeyByID && f.ID != "" {
		return f.ID
	}
	return f.Name
}

// TriggerID is the id of the control that toggles the detail panel.
func (f *Fish) TriggerID(prefix string, strategy KeyStrategy) string {
	return prefix + f.Key(strategy)
}

// DetailID is the id of the detail panel.
func (f *Fish) DetailID(prefix string, strategy KeyStrategy) string {
	return prefix + f.Key(strategy)
}
