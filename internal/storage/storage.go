package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ReadCollection decodes the array stored under key in the JSON document at path.
// When allowMissing is set, a file that does not exist yields an empty collection.
func ReadCollection[T any](path, key string, allowMissing bool) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			log.Debug("Collection file not found, starting empty", "path", path, "key", key)
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	raw, ok := doc[key]
	if !ok || string(raw) == "null" {
		if allowMissing {
			return []T{}, nil
		}
		return nil, fmt.Errorf("decode %s: missing %q collection", path, key)
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s[%s]: %w", path, key, err)
	}
	return items, nil
}

// WriteCollection rewrites the whole document at path as {key: items}.
// The file is replaced atomically via a temp file in the same directory.
func WriteCollection[T any](path, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{key: items}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeFileAtomic(path, data)
}

// Snapshot returns the current bytes of path so that a failed multi-file
// write can be undone. A missing file is reported with ok=false.
func Snapshot(path string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return data, true, nil
}

// Restore puts a snapshot back in place. A snapshot of a missing file removes path.
func Restore(path string, data []byte, ok bool) error {
	if !ok {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("restore %s: %w", path, err)
		}
		return nil
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
