package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// File keeps entries in a JSON object on disk. Writes go to a temp file and
// are renamed into place; a sibling ".lock" file serialises processes.
type File struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

func NewFile(path string) *File {
	return &File{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the backing file.
func (f *File) Path() string { return f.path }

func (f *File) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(filepath.Dir(f.path)); os.IsNotExist(err) {
		return out, nil
	}
	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("locking %s: %w", f.path, err)
	}
	defer f.lock.Unlock() //nolint:errcheck

	all, err := f.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (f *File) MultiSet(ctx context.Context, entries map[string]string) error {
	return f.update(ctx, func(all map[string]string) {
		for k, v := range entries {
			all[k] = v
		}
	})
}

func (f *File) MultiRemove(ctx context.Context, keys []string) error {
	return f.update(ctx, func(all map[string]string) {
		for _, k := range keys {
			delete(all, k)
		}
	})
}

func (f *File) update(ctx context.Context, mutate func(map[string]string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", f.path, err)
	}
	defer f.lock.Unlock() //nolint:errcheck

	all, err := f.loadLocked()
	if err != nil {
		return err
	}
	mutate(all)
	return f.saveLocked(all)
}

// loadLocked reads the file; the caller must hold the lock. A missing file
// is an empty store.
func (f *File) loadLocked() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading session store: %w", err)
	}
	all := map[string]string{}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing session store: %w", err)
	}
	return all, nil
}

// saveLocked replaces the file atomically; the caller must hold the lock.
func (f *File) saveLocked(all map[string]string) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing session store: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing session store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing session store: %w", err)
	}
	return nil
}
