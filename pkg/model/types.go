package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Measure holds a size as text. Numeric input is preserved as its textual
// form so "2in", "12" and "4.5" all render verbatim.
type Measure string

// UnmarshalJSON accepts both JSON strings and numbers.
func (m *Measure) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*m = Measure(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("model: size must be a string or number: %w", err)
	}
	*m = Measure(n.String())
	return nil
}

func (m Measure) String() string {
	return string(m)
}

// Fish is one record rendered into the list.
type Fish struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `json:"name" yaml:"name"`
	Image    string   `json:"image" yaml:"image"`
	Species  string   `json:"species" yaml:"species"`
	Location string   `json:"location" yaml:"location"`
	Size     Measure  `json:"size" yaml:"size"`
	Food     []string `json:"food" yaml:"food"`
}

// FoodList joins the food items in their original order.
func (f *Fish) FoodList(sep string) string {
	if f == nil || len(f.Food) == 0 {
		return ""
	}
	return strings.Join(f.Food, sep)
}

// Clone returns a deep copy of the record.
func (f *Fish) Clone() *Fish {
	if f == nil {
		return nil
	}
	out := *f
	if f.Food != nil {
		out.Food = append([]string(nil), f.Food...)
	}
	return &out
}

// Collection is the ordered list of records supplied by a data provider. A nil
// element stands for a missing record and fails rendering.
type Collection []*Fish

// Snapshot copies the collection so callers can keep mutating their own
// slice while a render pass is in flight.
func (c Collection) Snapshot() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, fish := range c {
		out[i] = fish.Clone()
	}
	return out
}

// DuplicateKeys lists the keys shared by more than one record, in order of
// first appearance. Records sharing a key produce colliding element ids.
func (c Collection) DuplicateKeys(strategy KeyStrategy) []string {
	counts := make(map[string]int, len(c))
	var order []string
	for _, fish := range c {
		if fish == nil {
			continue
		}
		key := fish.Key(strategy)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	var dups []string
	for _, key := range order {
		if counts[key] > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}
