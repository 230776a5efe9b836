// Package upload stores uploaded files on local disk and maps them to
// public /uploads URLs.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// Kind selects the storage subdirectory and its extension allow-list.
type Kind string

const (
	KindImage    Kind = "images"
	KindMaterial Kind = "materials"
)

var allowedExt = map[Kind]map[string]bool{
	KindImage: {
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
	},
	KindMaterial: {
		".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true, ".zip": true,
	},
}

var maxSize = map[Kind]int64{
	KindImage:    5 << 20,  // 5 MiB
	KindMaterial: 25 << 20, // 25 MiB
}

// SavedFile describes a stored upload.
type SavedFile struct {
	URL  string `json:"file_url"`
	Name string `json:"file_name"`
	Size int64  `json:"file_size"`
}

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	for _, kind := range []Kind{KindImage, KindMaterial} {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &Store{root: root}, nil
}

// Save writes the file under a generated name and returns its public URL.
// The original filename only contributes the extension and the display name.
func (s *Store) Save(kind Kind, filename string, size int64, r io.Reader) (*SavedFile, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[kind][ext] {
		return nil, ErrUnsupportedType
	}
	if size <= 0 || size > maxSize[kind] {
		return nil, ErrTooLarge
	}

	stored := uuid.New().String() + ext
	dst := filepath.Join(s.root, string(kind), stored)

	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, maxSize[kind]+1))
	if err != nil {
		_ = os.Remove(dst)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written > maxSize[kind] {
		_ = os.Remove(dst)
		return nil, ErrTooLarge
	}

	return &SavedFile{
		URL:  "/uploads/" + string(kind) + "/" + stored,
		Name: filepath.Base(filename),
		Size: written,
	}, nil
}

// Path maps a public /uploads URL back to a disk path. The boolean is
// false when the URL does not point inside the store.
func (s *Store) Path(url string) (string, bool) {
	rel, ok := strings.CutPrefix(url, "/uploads/")
	if !ok {
		return "", false
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", false
	}
	return filepath.Join(s.root, rel), true
}

// Remove unlinks a stored file. Best effort: missing files and foreign
// URLs are not errors.
func (s *Store) Remove(url string) {
	if p, ok := s.Path(url); ok {
		_ = os.Remove(p)
	}
}

// Root returns the directory served under /uploads.
func (s *Store) Root() string {
	return s.root
}
