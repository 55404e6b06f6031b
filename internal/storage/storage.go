package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoStore keeps documents on an afero filesystem: the OS filesystem in
// production, a MemMapFs in tests.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// NewDirStore roots a store at dir on the OS filesystem.
func NewDirStore(dir string) *AferoStore {
	return NewAferoStore(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// Save writes the reader to path. The content goes to a sibling temp file
// first and is renamed into place, so readers never see a partial document.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	tmp := path + ".tmp"
	f, err := s.fs.Create(tmp)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, reader)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return 0, err
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		return 0, err
	}
	return n, nil
}

// Open returns the document at path, or ErrNotFound.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	err := s.fs.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
