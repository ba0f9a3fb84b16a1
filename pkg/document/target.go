package document

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Target receives rendered fragments. Each call appends after whatever the
// target already holds; nothing is ever replaced.
type Target interface {
	Append(ctx context.Context, fragment []byte) error
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc func(ctx context.Context, fragment []byte) error

func (f TargetFunc) Append(ctx context.Context, fragment []byte) error {
	return f(ctx, fragment)
}

// WriterTarget appends fragments to an io.Writer. Writes are serialised so
// concurrent appends never interleave.
type WriterTarget struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterTarget wraps w.
func NewWriterTarget(w io.Writer) *WriterTarget {
	return &WriterTarget{w: w}
}

func (t *WriterTarget) Append(ctx context.Context, fragment []byte) error {
	if t == nil || t.w == nil {
		return errors.New("document: writer target is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.w.Write(fragment)
	return err
}
