package testsupport

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/goliatone/go-fishlist/pkg/model"
)

// Bubbles returns the reference record used across renderer tests.
func Bubbles() *model.Fish {
	return &model.Fish{
		ID:       "fish-bubbles",
		Name:     "Bubbles",
		Image:    "bubbles.png",
		Species:  "Goldfish",
		Location: "Tank 1",
		Size:     "2in",
		Food:     []string{"flakes", "algae"},
	}
}

// Tank returns a small ordered collection with distinct names.
func Tank() model.Collection {
	return model.Collection{
		Bubbles(),
		{ID: "fish-nemo", Name: "Nemo", Image: "nemo.png", Species: "Clownfish", Location: "Reef", Size: "3in", Food: []string{"pellets"}},
		{ID: "fish-dory", Name: "Dory", Image: "dory.png", Species: "Blue tang", Location: "Reef", Size: "6in", Food: []string{"plankton", "algae", "flakes"}},
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Logger returns a slog logger that writes to t.Log. Output only shows on
// failure or with -v.
func Logger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
