package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fishlist/internal/config"
	"github.com/goliatone/go-fishlist/internal/logging"
	"github.com/goliatone/go-fishlist/pkg/entry"
	"github.com/goliatone/go-fishlist/pkg/model"
)

const tankYAML = `fish:
  - id: fish-bubbles
    name: Bubbles
    image: bubbles.png
    species: Goldfish
    location: Tank 1
    size: 2in
    food: [flakes, algae]
  - id: fish-nemo
    name: Nemo
    image: nemo.png
    species: Clownfish
    location: Reef
    size: 3in
    food: [pellets]
`

func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fish.yaml"), []byte(tankYAML), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand_Fragment(t *testing.T) {
	workspace(t)

	out, err := run(t, "render", "--fragment")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<ul class="fish-list" id="fish-list">`), out)
	assert.Contains(t, out, "Species: Goldfish")
	assert.Contains(t, out, `id="btn-Nemo"`)
	assert.Less(t, strings.Index(out, "Bubbles"), strings.Index(out, "Nemo"))
}

func TestRenderCommand_PageWithFlags(t *testing.T) {
	workspace(t)

	out, err := run(t, "render", "--title", "My tank", "--key-strategy", "id", "--food-separator", "; ")
	require.NoError(t, err)

	assert.Contains(t, out, "<title>My tank</title>")
	assert.Contains(t, out, `<main id="fish-container"><ul class="fish-list"`)
	assert.Contains(t, out, `id="btn-fish-bubbles"`)
	assert.Contains(t, out, "Food: flakes; algae")
}

func TestRenderCommand_HostPage(t *testing.T) {
	dir := workspace(t)
	host := filepath.Join(dir, "host.html")
	require.NoError(t, os.WriteFile(host, []byte(`<html><body><div id="tank"><p>intro</p></div></body></html>`), 0o644))
	target := filepath.Join(dir, "out.html")

	_, err := run(t, "render", "--host", host, "--container-id", "tank", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div id="tank"><p>intro</p><ul class="fish-list"`)
}

func TestRenderCommand_ThemeFile(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte(`
name: reef
version: 1.0.0
tokens:
  brand: "#123456"
assets:
  prefix: /assets/themes/reef
  files:
    fishlist.stylesheet: reef.css
variants:
  night:
    tokens:
      brand: "#654321"
`), 0o644))

	out, err := run(t, "render", "--theme-file", "theme.yaml", "--theme-variant", "night")
	require.NoError(t, err)
	assert.Contains(t, out, `<link rel="stylesheet" href="/assets/themes/reef/reef.css">`)
	assert.Contains(t, out, "--brand: #654321;")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unversioned.yaml"), []byte("name: reef\n"), 0o644))
	_, err = run(t, "render", "--theme-file", "unversioned.yaml")
	assert.ErrorContains(t, err, "version is required")
}

func TestRenderCommand_MissingRecordWritesNothing(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`[{"name":"a"},null]`), 0o644))
	target := filepath.Join(dir, "out.html")

	_, err := run(t, "render", "--data", "broken.json", "-o", target)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMissingRecord)

	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "output must not be written")
}

func TestRenderCommand_StrictKeys(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "twins.json"), []byte(`[{"id":"1","name":"Bubbles"},{"id":"2","name":"Bubbles"}]`), 0o644))

	_, err := run(t, "render", "--fragment", "--data", "twins.json", "--strict-keys")
	assert.Error(t, err)

	out, err := run(t, "render", "--fragment", "--data", "twins.json", "--key-strategy", "id", "--strict-keys")
	require.NoError(t, err)
	assert.Contains(t, out, `id="btn-2"`)
}

func TestAddAndRemoveCommands(t *testing.T) {
	workspace(t)

	out, err := run(t, "add", "--no-input", "--name", "Wanda", "--species", "Guppy", "--food", "flakes, worms")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, "render", "--fragment", "--source", "store")
	require.NoError(t, err)
	assert.Contains(t, out, "Species: Guppy")
	assert.Contains(t, out, "Food: flakes,worms")

	_, err = run(t, "remove", id)
	require.NoError(t, err)

	out, err = run(t, "render", "--fragment", "--source", "store")
	require.NoError(t, err)
	assert.Equal(t, `<ul class="fish-list" id="fish-list"></ul>`, strings.TrimSpace(out))

	_, err = run(t, "remove", id)
	assert.Error(t, err)
}

func TestAddCommand_Interactive(t *testing.T) {
	workspace(t)

	driver := &scriptedDriver{inputs: []string{"Dory", "dory.png", "Blue tang", "Reef", "6in", "plankton"}}
	prev := newDriver
	newDriver = func(io.Writer) entry.PromptDriver { return driver }
	t.Cleanup(func() { newDriver = prev })

	_, err := run(t, "add", "--id", "fish-dory")
	require.NoError(t, err)

	out, err := run(t, "render", "--fragment", "--source", "store", "--key-strategy", "id")
	require.NoError(t, err)
	assert.Contains(t, out, `id="info-fish-dory"`)
	assert.Contains(t, out, "Length: 6in")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fishlist v"+Version)
}

func testApp(t *testing.T, data string) *app {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fish.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := &config.Config{
		Source:      config.SourceFile,
		Data:        path,
		Renderer:    config.DefaultRenderer,
		KeyStrategy: "name",
		Title:       "Tank",
	}
	a, err := newApp(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter(t *testing.T) {
	h, err := newRouter(testApp(t, tankYAML))
	require.NoError(t, err)

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<main id="fish-container"><ul class="fish-list"`)
	assert.Contains(t, rec.Body.String(), `href="/assets/fishlist-vanilla.css"`)

	rec = get(t, h, "/fragments/fish")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `class="fish"`))

	rec = get(t, h, "/fragments/fish/Nemo")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Species: Clownfish")
	assert.NotContains(t, rec.Body.String(), "Bubbles")

	rec = get(t, h, "/fragments/fish/Dory")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/assets/fishlist-toggle.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aria-expanded")

	rec = get(t, h, "/healthz")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_MissingRecordFails(t *testing.T) {
	h, err := newRouter(testApp(t, "- name: a\n- null\n"))
	require.NoError(t, err)

	rec := get(t, h, "/fragments/fish")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "fish-list")
}

type scriptedDriver struct {
	inputs []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg entry.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(context.Context, entry.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg entry.SelectConfig) (int, error) {
	return len(cfg.Options) - 1, nil
}

func (d *scriptedDriver) Info(context.Context, string) error {
	return nil
}
