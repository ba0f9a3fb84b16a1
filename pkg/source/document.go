package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fishlist/pkg/model"
)

// Document wraps the raw fish payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("source: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("source: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// ErrNoFishList reports a mapping document without a "fish" key.
var ErrNoFishList = errors.New(`expected a list or a "fish" key`)

// Decode parses the payload as either a top-level list of records or an
// object with a "fish" list. JSON is tried first, then YAML. Null entries are
// kept as nil records so rendering reports them as missing.
func (d Document) Decode() (model.Collection, error) {
	trimmed := bytes.TrimSpace(d.raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("source: %s: empty document", d.Location())
	}

	if trimmed[0] == '[' || trimmed[0] == '{' {
		fish, err := decodeJSON(trimmed)
		if err == nil {
			return fish, nil
		}
		if errors.Is(err, ErrNoFishList) {
			return nil, fmt.Errorf("source: %s: %w", d.Location(), err)
		}
	}

	fish, err := decodeYAML(trimmed)
	if errors.Is(err, ErrNoFishList) {
		return nil, fmt.Errorf("source: %s: %w", d.Location(), err)
	}
	if err != nil {
		return nil, fmt.Errorf("source: %s: decode: %w", d.Location(), err)
	}
	return fish, nil
}

func decodeJSON(data []byte) (model.Collection, error) {
	var fish model.Collection
	if data[0] == '[' {
		if err := json.Unmarshal(data, &fish); err != nil {
			return nil, err
		}
		return fish, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	raw, ok := fields["fish"]
	if !ok {
		return nil, ErrNoFishList
	}
	if err := json.Unmarshal(raw, &fish); err != nil {
		return nil, fmt.Errorf("fish: %w", err)
	}
	return fish, nil
}

func decodeYAML(data []byte) (model.Collection, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, errors.New("empty yaml document")
	}

	var fish model.Collection
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&fish); err != nil {
			return nil, err
		}
		return fish, nil
	case yaml.MappingNode:
		var fields map[string]yaml.Node
		if err := root.Decode(&fields); err != nil {
			return nil, err
		}
		list, ok := fields["fish"]
		if !ok {
			return nil, ErrNoFishList
		}
		if err := list.Decode(&fish); err != nil {
			return nil, fmt.Errorf("fish: %w", err)
		}
		return fish, nil
	default:
		return nil, fmt.Errorf("%w, got %s", ErrNoFishList, kindName(root.Kind))
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "node"
	}
}
