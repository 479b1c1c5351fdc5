package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestReadCollection(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads the named collection", func(t *testing.T) {
		path := filepath.Join(dir, "items.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"items": [{"name": "a", "count": 2}]}`), 0o644))

		items, err := ReadCollection[item](path, "items", false)
		require.NoError(t, err)
		assert.Equal(t, []item{{Name: "a", Count: 2}}, items)
	})

	t.Run("missing file is empty when allowed", func(t *testing.T) {
		items, err := ReadCollection[item](filepath.Join(dir, "absent.json"), "items", true)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	t.Run("missing file is an error otherwise", func(t *testing.T) {
		_, err := ReadCollection[item](filepath.Join(dir, "absent.json"), "items", false)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing key is an error when required", func(t *testing.T) {
		path := filepath.Join(dir, "other.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"other": []}`), 0o644))

		_, err := ReadCollection[item](path, "items", false)
		assert.Error(t, err)
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"items": [`), 0o644))

		_, err := ReadCollection[item](path, "items", true)
		assert.Error(t, err)
	})
}

func TestWriteCollection_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	want := []item{{Name: "a", Count: 1}, {Name: "b", Count: 0}}

	require.NoError(t, WriteCollection(path, "items", want))
	got, err := ReadCollection[item](path, "items", false)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteCollection_NilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, WriteCollection[item](path, "items", nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": []}`, string(data))
}

func TestSnapshotAndRestore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	require.NoError(t, WriteCollection(path, "items", []item{{Name: "before"}}))

	data, ok, err := Snapshot(path)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, WriteCollection(path, "items", []item{{Name: "after"}}))
	require.NoError(t, Restore(path, data, ok))

	got, err := ReadCollection[item](path, "items", false)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "before"}}, got)

	t.Run("restoring a missing snapshot removes the file", func(t *testing.T) {
		fresh := filepath.Join(dir, "fresh.json")
		data, ok, err := Snapshot(fresh)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, WriteCollection(fresh, "items", []item{{Name: "x"}}))
		require.NoError(t, Restore(fresh, data, ok))
		_, err = os.Stat(fresh)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
