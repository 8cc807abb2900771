// Package filestore keeps every store as a JSON document under one data
// directory.  Each document has its own mutex; a read-modify-write holds it
// for the whole cycle and writes go through a temp file and a rename.
package filestore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// errCorrupt marks a document that exists but does not decode.  Writes
// refuse to replace it so one bad byte cannot erase the stored records.
var errCorrupt = errors.New("corrupt document")

type jsonFile[T any] struct {
	mu   sync.Mutex
	path string
	zero func() T
}

func newJSONFile[T any](dir, name string, zero func() T) *jsonFile[T] {
	return &jsonFile[T]{path: filepath.Join(dir, name), zero: zero}
}

// load reads the document.  A missing or empty file yields the zero
// document; one that does not decode fails with errCorrupt.  Callers hold
// f.mu.
func (f *jsonFile[T]) load() (T, error) {
	v := f.zero()
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return v, nil
	}
	if err != nil {
		return v, errors.Wrapf(err, "read %s", filepath.Base(f.path))
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return f.zero(), errors.Wrapf(errCorrupt, "decode %s: %v", filepath.Base(f.path), err)
	}
	return v, nil
}

// save writes v atomically.  Callers hold f.mu.
func (f *jsonFile[T]) save(v T) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", filepath.Base(f.path))
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	return errors.Wrapf(os.Rename(tmp.Name(), f.path), "replace %s", filepath.Base(f.path))
}

// read returns a snapshot of the document.
func (f *jsonFile[T]) read() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

// update loads the document, applies fn and saves the result unless fn
// returns an error.
func (f *jsonFile[T]) update(fn func(T) (T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, err := f.load()
	if err != nil {
		return err
	}
	v, err = fn(v)
	if err != nil {
		return err
	}
	return f.save(v)
}
