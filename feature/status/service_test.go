package status_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lcftrans/core/translation"
	"lcftrans/feature/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeUnit(t *testing.T, dir, name string, entries ...translation.Entry) {
	t.Helper()

	st := translation.NewStore()
	for _, e := range entries {
		st.Add(e)
	}

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, translation.NewEncoder(f).Encode(st))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeUnit(t, dir, "RPG_RT.ldb.po",
		translation.Entry{Context: "actor.name", Original: "Alex", Translation: "アレックス"},
		translation.Entry{Context: "item.name", Original: "Potion"},
		translation.Entry{Context: "item.name", Original: "Sword", Translation: "剣", Fuzzy: true},
	)
	writeUnit(t, dir, "Map0001.po",
		translation.Entry{Original: "Hello"},
	)
	writeUnit(t, dir, "Map0001.stale.po",
		translation.Entry{Original: "Goodbye", Translation: "さようなら"},
	)

	// Non-unit files are ignored by the scan.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	return dir
}

func TestService_Overview(t *testing.T) {
	svc := status.NewService(fixtureDir(t), time.Minute, zap.NewNop())

	ov, err := svc.Overview()
	require.NoError(t, err)

	assert.Len(t, ov.Units, 2)
	assert.Equal(t, "Map0001.po", ov.Units[0].Name)
	assert.Equal(t, "RPG_RT.ldb.po", ov.Units[1].Name)

	assert.Equal(t, 4, ov.Total)
	assert.Equal(t, 2, ov.Translated)
	assert.Equal(t, 1, ov.Fuzzy)
	assert.Equal(t, 1, ov.Stale)
	assert.InDelta(t, 50.0, ov.Percent, 0.01)
	assert.NotEmpty(t, ov.GeneratedAt)

	// Stale terms attach to the unit their companion belongs to.
	assert.Equal(t, 1, ov.Units[0].Stale)
	assert.Equal(t, 0, ov.Units[1].Stale)
}

func TestService_Unit(t *testing.T) {
	svc := status.NewService(fixtureDir(t), time.Minute, zap.NewNop())

	t.Run("AllEntries", func(t *testing.T) {
		detail, err := svc.Unit("RPG_RT.ldb.po", false)
		require.NoError(t, err)
		assert.Equal(t, 3, detail.Total)
		assert.Len(t, detail.Entries, 3)
	})

	t.Run("UntranslatedOnly", func(t *testing.T) {
		detail, err := svc.Unit("RPG_RT.ldb.po", true)
		require.NoError(t, err)
		require.Len(t, detail.Entries, 1)
		assert.Equal(t, "Potion", detail.Entries[0].Original)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.Unit("Map9999.po", false)
		assert.ErrorIs(t, err, status.ErrUnitNotFound)
	})

	t.Run("CompanionIsNotAUnit", func(t *testing.T) {
		_, err := svc.Unit("Map0001.stale.po", false)
		assert.ErrorIs(t, err, status.ErrUnitNotFound)
	})
}

func TestService_Search(t *testing.T) {
	svc := status.NewService(fixtureDir(t), time.Minute, zap.NewNop())

	t.Run("MatchesOriginal", func(t *testing.T) {
		results, err := svc.Search("alex", 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "RPG_RT.ldb.po", results[0].Unit)
		assert.Equal(t, "Alex", results[0].Original)
	})

	t.Run("MatchesTranslation", func(t *testing.T) {
		results, err := svc.Search("剣", 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Sword", results[0].Original)
	})

	t.Run("HonorsLimit", func(t *testing.T) {
		results, err := svc.Search("", 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("NoMatch", func(t *testing.T) {
		results, err := svc.Search("does-not-exist", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestService_Caching(t *testing.T) {
	dir := fixtureDir(t)

	t.Run("ServesFromCache", func(t *testing.T) {
		svc := status.NewService(dir, time.Hour, zap.NewNop())

		ov, err := svc.Overview()
		require.NoError(t, err)
		assert.Len(t, ov.Units, 2)

		writeUnit(t, dir, "Map0002.po", translation.Entry{Original: "New"})

		ov, err = svc.Overview()
		require.NoError(t, err)
		assert.Len(t, ov.Units, 2, "cached snapshot should not see the new unit")

		svc.Invalidate()

		ov, err = svc.Overview()
		require.NoError(t, err)
		assert.Len(t, ov.Units, 3)
	})

	t.Run("ZeroTTLDisablesCache", func(t *testing.T) {
		svc := status.NewService(dir, 0, zap.NewNop())

		ov, err := svc.Overview()
		require.NoError(t, err)
		before := len(ov.Units)

		writeUnit(t, dir, "Map0003.po", translation.Entry{Original: "Newer"})

		ov, err = svc.Overview()
		require.NoError(t, err)
		assert.Len(t, ov.Units, before+1)
	})
}

func TestService_MissingDirectory(t *testing.T) {
	svc := status.NewService(filepath.Join(t.TempDir(), "missing"), 0, zap.NewNop())

	_, err := svc.Overview()
	assert.Error(t, err)
}
