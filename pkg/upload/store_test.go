package upload

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("store error: %v", err)
	}

	saved, err := store.Save(KindMaterial, "notes.pdf", 11, strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("save error: %v", err)
	}
	if saved.Name != "notes.pdf" || saved.Size != 11 {
		t.Fatalf("unexpected saved file: %+v", saved)
	}
	if !strings.HasPrefix(saved.URL, "/uploads/materials/") {
		t.Fatalf("unexpected url: %s", saved.URL)
	}

	path, ok := store.Path(saved.URL)
	if !ok {
		t.Fatalf("expected path for %s", saved.URL)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	store.Remove(saved.URL)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}

	// Removing again is a no-op.
	store.Remove(saved.URL)
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("store error: %v", err)
	}

	if _, err := store.Save(KindImage, "payload.exe", 4, strings.NewReader("boom")); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := store.Save(KindMaterial, "photo.png", 4, strings.NewReader("png!")); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for wrong kind, got %v", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("store error: %v", err)
	}

	if _, err := store.Save(KindImage, "big.png", (5<<20)+1, strings.NewReader("x")); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("store error: %v", err)
	}

	for _, url := range []string{
		"/etc/passwd",
		"/uploads/../secret",
		"/uploads/../../etc/passwd",
	} {
		if _, ok := store.Path(url); ok {
			t.Fatalf("expected %s to be rejected", url)
		}
	}
}
