package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ErrContainerNotFound is returned when the page holds no element with the
// requested id.
var ErrContainerNotFound = errors.New("document: container not found")

// Document is a parsed HTML page. Fragments are appended into containers
// identified by element id.
type Document struct {
	mu   sync.RWMutex
	root *html.Node
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(page []byte) (*Document, error) {
	return Parse(bytes.NewReader(page))
}

// Container resolves the element with the given id.
func (d *Document) Container(id string) (*Container, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrContainerNotFound)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	node := findByID(d.root, id)
	if node == nil {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, id)
	}
	return &Container{doc: d, node: node, id: id}, nil
}

// Target returns a Target that resolves the container on every append, so
// a missing container is reported by Append rather than at wiring time.
func (d *Document) Target(id string) Target {
	return TargetFunc(func(ctx context.Context, fragment []byte) error {
		c, err := d.Container(id)
		if err != nil {
			return err
		}
		return c.Append(ctx, fragment)
	})
}

// Render writes the whole page.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

// String renders the page for logs and tests. A render failure yields an
// empty string; callers that need the error use Render.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Container is an element of a Document that accepts fragments.
type Container struct {
	doc  *Document
	node *html.Node
	id   string
}

var _ Target = (*Container)(nil)

// ID returns the element id.
func (c *Container) ID() string {
	return c.id
}

// Append parses fragment in the container's context and appends the
// resulting nodes after the existing children. The fragment is parsed
// before the tree is touched, so a parse failure leaves the page unchanged.
func (c *Container) Append(ctx context.Context, fragment []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(bytes.TrimSpace(fragment)) == 0 {
		return nil
	}

	c.doc.mu.RLock()
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), c.node)
	c.doc.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("document: parse fragment for %q: %w", c.id, err)
	}

	c.doc.mu.Lock()
	defer c.doc.mu.Unlock()
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		c.node.AppendChild(n)
	}
	return nil
}

// Children returns the number of element children of the container.
func (c *Container) Children() int {
	c.doc.mu.RLock()
	defer c.doc.mu.RUnlock()

	count := 0
	for n := c.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			count++
		}
	}
	return count
}

func findByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
