package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/store"
	"github.com/goliatone/go-fishlist/pkg/testsupport"
)

func openStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "data", "fish.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_AddAndListInOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for _, fish := range testsupport.Tank() {
		_, err := s.Add(ctx, fish)
		require.NoError(t, err)
	}

	got, err := s.Fish(ctx)
	require.NoError(t, err)
	assert.Equal(t, testsupport.Tank(), got)
}

func TestSQLiteStore_AddAssignsID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	input := &model.Fish{Name: "Wanda", Size: "4in"}
	stored, err := s.Add(ctx, input)
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.Empty(t, input.ID, "caller record must not be mutated")

	got, err := s.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wanda", got.Name)
	assert.Equal(t, model.Measure("4in"), got.Size)
	assert.Equal(t, []string{}, got.Food)
}

func TestSQLiteStore_RejectsInvalidRecords(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, nil)
	assert.ErrorIs(t, err, model.ErrMissingRecord)

	_, err = s.Add(ctx, &model.Fish{Name: "  "})
	assert.Error(t, err)

	_, err = s.Add(ctx, testsupport.Bubbles())
	require.NoError(t, err)
	_, err = s.Add(ctx, testsupport.Bubbles())
	assert.Error(t, err, "duplicate ids must be rejected")
}

func TestSQLiteStore_Remove(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for _, fish := range testsupport.Tank() {
		_, err := s.Add(ctx, fish)
		require.NoError(t, err)
	}

	require.NoError(t, s.Remove(ctx, "fish-nemo"))
	assert.ErrorIs(t, s.Remove(ctx, "fish-nemo"), store.ErrNotFound)

	_, err := s.Get(ctx, "fish-nemo")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Fish(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bubbles", got[0].Name)
	assert.Equal(t, "Dory", got[1].Name)
}

func TestSQLiteStore_EmptyListIsNotNil(t *testing.T) {
	s := openStore(t)

	got, err := s.Fish(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
