package force

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
)

const (
	saveExt       = ".json"
	compressedExt = ".json.sz"
)

// snappyMagic prefixes compressed save files so a truncated or foreign file
// is rejected before decompression.
var snappyMagic = []byte("C3SZ")

// FileStore persists force save files under a directory, one file per force,
// optionally snappy-compressed.
type FileStore struct {
	dir      string
	compress bool
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string, compress bool) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileStore{dir: dir, compress: compress}, nil
}

// Save writes the force's snapshot and clears its modified flag.
func (s *FileStore) Save(f *Force) error {
	if err := s.SaveSnapshot(f.Snapshot()); err != nil {
		return err
	}
	f.saved()
	return nil
}

// SaveSnapshot writes a save file.
func (s *FileStore) SaveSnapshot(save *SaveFile) error {
	data, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return opErr("SaveForce", "force", save.ID, err)
	}

	path := s.path(save.ID)
	if s.compress {
		compressed := snappy.Encode(nil, data)
		data = append(append([]byte(nil), snappyMagic...), compressed...)
	}

	// Write-then-rename so a crash never leaves a half-written save.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return opErr("SaveForce", "force", save.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return opErr("SaveForce", "force", save.ID, err)
	}
	return nil
}

// Load reads a save file by force id, accepting either the plain or the
// compressed form.
func (s *FileStore) Load(forceID string) (*SaveFile, error) {
	data, err := os.ReadFile(s.path(forceID))
	if errors.Is(err, fs.ErrNotExist) {
		// Fall back to the other container format
		other := compressedExt
		if s.compress {
			other = saveExt
		}
		data, err = os.ReadFile(filepath.Join(s.dir, forceID+other))
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, opErr("LoadForce", "force", forceID, ErrForceNotFound)
	}
	if err != nil {
		return nil, opErr("LoadForce", "force", forceID, err)
	}

	if len(data) >= len(snappyMagic) && string(data[:len(snappyMagic)]) == string(snappyMagic) {
		data, err = snappy.Decode(nil, data[len(snappyMagic):])
		if err != nil {
			return nil, opErr("LoadForce", "force", forceID, ErrCorruptSave)
		}
	}

	var save SaveFile
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, opErr("LoadForce", "force", forceID, ErrCorruptSave)
	}
	return &save, nil
}

// List returns the ids of every stored force.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, compressedExt):
			ids = append(ids, strings.TrimSuffix(name, compressedExt))
		case strings.HasSuffix(name, saveExt):
			ids = append(ids, strings.TrimSuffix(name, saveExt))
		}
	}
	return ids, nil
}

// Delete removes a stored force.
func (s *FileStore) Delete(forceID string) error {
	removed := false
	for _, ext := range []string{saveExt, compressedExt} {
		err := os.Remove(filepath.Join(s.dir, forceID+ext))
		if err == nil {
			removed = true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return opErr("DeleteForce", "force", forceID, err)
		}
	}
	if !removed {
		return opErr("DeleteForce", "force", forceID, ErrForceNotFound)
	}
	return nil
}

func (s *FileStore) path(forceID string) string {
	ext := saveExt
	if s.compress {
		ext = compressedExt
	}
	return filepath.Join(s.dir, forceID+ext)
}
