package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/arenatrack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "arenatrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestKeyValueRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, ok, err := st.Get(ctx, "gridSize")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "gridSize", "small"))
	require.NoError(t, st.Set(ctx, "gridSize", "medium"))
	value, ok, err := st.Get(ctx, "gridSize")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "medium", value)

	require.NoError(t, st.Remove(ctx, "gridSize"))
	require.NoError(t, st.Remove(ctx, "gridSize"))
	_, ok, err = st.Get(ctx, "gridSize")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRosterCache(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, ok, err := st.LatestRosterVersion(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	old := []model.Champion{
		{ID: "Ahri", Name: "Ahri", Roles: []string{"Mage", "Assassin"}, Key: "103"},
	}
	current := []model.Champion{
		{ID: "Zed", Name: "Zed", Roles: []string{"Assassin"}, Key: "238"},
		{ID: "Ahri", Name: "Ahri", Roles: []string{"Mage", "Assassin"}, Key: "103"},
		{ID: "Aatrox", Name: "Aatrox", Roles: []string{}, Key: "266"},
	}
	require.NoError(t, st.SaveRoster(ctx, "14.20.1", old))
	require.NoError(t, st.SaveRoster(ctx, "14.21.1", current))

	got, err := st.LoadRoster(ctx, "14.21.1")
	require.NoError(t, err)
	assert.Equal(t, current, got)

	version, ok, err := st.LatestRosterVersion(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "14.21.1", version)

	require.NoError(t, st.SaveRoster(ctx, "14.20.1", old))
	version, _, err = st.LatestRosterVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "14.20.1", version)

	got, err = st.LoadRoster(ctx, "14.20.1")
	require.NoError(t, err)
	assert.Equal(t, old, got)

	missing, err := st.LoadRoster(ctx, "1.0.0")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveRosterRollsBackOnFailure(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	kept := []model.Champion{{ID: "Zed", Name: "Zed", Roles: []string{"Assassin"}, Key: "238"}}
	require.NoError(t, st.SaveRoster(ctx, "14.21.1", kept))

	dup := []model.Champion{
		{ID: "Ahri", Name: "Ahri", Roles: []string{"Mage"}, Key: "103"},
		{ID: "Ahri", Name: "Ahri", Roles: []string{"Mage"}, Key: "103"},
	}
	require.Error(t, st.SaveRoster(ctx, "14.21.1", dup))

	got, err := st.LoadRoster(ctx, "14.21.1")
	require.NoError(t, err)
	assert.Equal(t, kept, got)
}

func TestOpenDirectoryFails(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}
