package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadStoreCopiesBytes(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir)

	content := []byte("case note attachment content")
	absPath, mimeType, err := store.Store("note.txt", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if !filepath.IsAbs(absPath) {
		t.Errorf("Store returned non-absolute path %q", absPath)
	}
	if filepath.Base(absPath) != "note.txt" {
		t.Errorf("Store target = %q, want base note.txt", absPath)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Errorf("mime type = %q, want text/plain prefix", mimeType)
	}

	copied, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if !bytes.Equal(copied, content) {
		t.Errorf("copied content = %q, want %q", copied, content)
	}
}

func TestUploadStoreCreatesDirectoryOnDemand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewUploadStore(dir)

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("upload dir should not exist before first Store")
	}

	if _, _, err := store.Store("a.bin", bytes.NewReader([]byte{0x01, 0x02})); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("upload dir was not created: %v", err)
	}
}

func TestUploadStoreStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir)

	absPath, _, err := store.Store("../../etc/passwd", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if filepath.Dir(absPath) != mustAbs(t, dir) {
		t.Errorf("Store escaped the upload dir: %q", absPath)
	}
	if filepath.Base(absPath) != "passwd" {
		t.Errorf("Store target = %q, want base passwd", absPath)
	}
}

func TestUploadStoreLargerThanSniffWindow(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir)

	content := bytes.Repeat([]byte("abcdefgh"), 1024) // 8 KiB, beyond the 512-byte sniff head
	absPath, _, err := store.Store("big", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	copied, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if !bytes.Equal(copied, content) {
		t.Errorf("copied %d bytes, want %d intact", len(copied), len(content))
	}
}

type brokenReader struct{ err error }

func (r brokenReader) Read(p []byte) (int, error) { return 0, r.err }

func TestUploadStoreSurfacesReadErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir)

	readErr := errors.New("connection reset")
	if _, _, err := store.Store("note.txt", brokenReader{err: readErr}); !errors.Is(err, readErr) {
		t.Errorf("Store with failing reader = %v, want wrapped %v", err, readErr)
	}
}

func TestUploadStoreAcceptsShortContent(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir)

	// Shorter than the 512-byte sniff head; the short read is not an error.
	absPath, _, err := store.Store("tiny.bin", bytes.NewReader([]byte{0x01}))
	if err != nil {
		t.Fatalf("Store failed on short content: %v", err)
	}
	copied, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if len(copied) != 1 {
		t.Errorf("copied %d bytes, want 1", len(copied))
	}
}

func TestUploadStoreRequiresName(t *testing.T) {
	store := NewUploadStore(t.TempDir())
	if _, _, err := store.Store("", bytes.NewReader(nil)); err == nil {
		t.Error("Store with empty name should fail")
	}
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs %q: %v", path, err)
	}
	return abs
}
