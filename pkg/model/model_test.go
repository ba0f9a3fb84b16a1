package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fishlist/pkg/model"
)

func TestFish_DerivedIdentifiers(t *testing.T) {
	fish := &model.Fish{ID: "f-1", Name: "Bubbles"}

	if got := fish.TriggerID(model.DefaultTriggerPrefix, model.KeyByName); got != "btn-Bubbles" {
		t.Fatalf("trigger id by name: got %q", got)
	}
	if got := fish.DetailID(model.DefaultDetailPrefix, model.KeyByName); got != "info-Bubbles" {
		t.Fatalf("detail id by name: got %q", got)
	}
	if got := fish.TriggerID(model.DefaultTriggerPrefix, model.KeyByID); got != "btn-f-1" {
		t.Fatalf("trigger id by id: got %q", got)
	}

	noID := &model.Fish{Name: "Nemo"}
	if got := noID.DetailID("x-", model.KeyByID); got != "x-Nemo" {
		t.Fatalf("id strategy should fall back to name, got %q", got)
	}
}

func TestCollection_DuplicateKeys(t *testing.T) {
	c := model.Collection{
		{ID: "1", Name: "Bubbles"},
		{ID: "2", Name: "Nemo"},
		{ID: "3", Name: "Bubbles"},
		nil,
		{ID: "4", Name: "Nemo"},
	}

	if diff := cmp.Diff([]string{"Bubbles", "Nemo"}, c.DuplicateKeys(model.KeyByName)); diff != "" {
		t.Fatalf("duplicate names mismatch (-want +got):\n%s", diff)
	}
	if got := c.DuplicateKeys(model.KeyByID); len(got) != 0 {
		t.Fatalf("expected no duplicate ids, got %v", got)
	}

	a := c[0].TriggerID(model.DefaultTriggerPrefix, model.KeyByName)
	b := c[2].TriggerID(model.DefaultTriggerPrefix, model.KeyByName)
	if a != b {
		t.Fatalf("same names should derive identical ids: %q vs %q", a, b)
	}
}

func TestCollection_RequireReportsIndex(t *testing.T) {
	c := model.Collection{{Name: "a"}, nil, {Name: "c"}}

	err := c.Require()
	if !errors.Is(err, model.ErrMissingRecord) {
		t.Fatalf("expected ErrMissingRecord, got %v", err)
	}
	var recErr *model.RecordError
	if !errors.As(err, &recErr) || recErr.Index != 1 {
		t.Fatalf("expected record error at index 1, got %v", err)
	}
	if err := model.Require(nil); !errors.Is(err, model.ErrMissingRecord) {
		t.Fatalf("expected ErrMissingRecord for nil fish, got %v", err)
	}
}

func TestCollection_SnapshotIsIndependent(t *testing.T) {
	c := model.Collection{{Name: "Bubbles", Food: []string{"flakes"}}}
	snap := c.Snapshot()

	c[0].Name = "Changed"
	c[0].Food[0] = "pellets"

	if snap[0].Name != "Bubbles" || snap[0].Food[0] != "flakes" {
		t.Fatalf("snapshot shares memory with source: %+v", snap[0])
	}
}

func TestFish_FoodListPreservesOrder(t *testing.T) {
	fish := &model.Fish{Food: []string{"flakes", "algae", "brine shrimp"}}
	if got := fish.FoodList(","); got != "flakes,algae,brine shrimp" {
		t.Fatalf("food list: got %q", got)
	}
	if got := (&model.Fish{}).FoodList(","); got != "" {
		t.Fatalf("empty food list: got %q", got)
	}
}

func TestMeasure_DecodesNumbersAndStrings(t *testing.T) {
	var fromJSON []model.Fish
	payload := `[{"name":"a","size":"2in"},{"name":"b","size":4.5},{"name":"c"}]`
	if err := json.Unmarshal([]byte(payload), &fromJSON); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	got := []string{fromJSON[0].Size.String(), fromJSON[1].Size.String(), fromJSON[2].Size.String()}
	if diff := cmp.Diff([]string{"2in", "4.5", ""}, got); diff != "" {
		t.Fatalf("json sizes mismatch (-want +got):\n%s", diff)
	}

	var fromYAML model.Fish
	if err := yaml.Unmarshal([]byte("name: d\nsize: 12\n"), &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if fromYAML.Size != "12" {
		t.Fatalf("yaml size: got %q", fromYAML.Size)
	}
}

func TestParseKeyStrategy(t *testing.T) {
	cases := map[string]model.KeyStrategy{
		"":     model.KeyByName,
		"name": model.KeyByName,
		" ID ": model.KeyByID,
		"Name": model.KeyByName,
	}
	for in, want := range cases {
		got, err := model.ParseKeyStrategy(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %q got %q", in, want, got)
		}
	}
	if _, err := model.ParseKeyStrategy("uuid"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
