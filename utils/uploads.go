package utils

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// UploadStore copies uploaded file content into a managed directory. Only
// the resulting absolute path is handed to callers; record keeping stays
// with the repositories.
type UploadStore struct {
	dir string
}

// NewUploadStore returns a store rooted at dir. The directory is created
// lazily on the first Store call.
func NewUploadStore(dir string) *UploadStore {
	if dir == "" {
		dir = "uploads"
	}
	return &UploadStore{dir: dir}
}

// Store copies src byte-for-byte to <dir>/<name>, replacing any existing
// copy, and returns the absolute target path together with the detected
// MIME type.
func (s *UploadStore) Store(name string, src io.Reader) (absPath, mimeType string, err error) {
	if name == "" {
		return "", "", fmt.Errorf("file name is required")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory %q: %w", s.dir, err)
	}

	// filepath.Base strips any path components a client smuggled into the
	// file name.
	target := filepath.Join(s.dir, filepath.Base(name))

	dst, err := os.Create(target)
	if err != nil {
		return "", "", fmt.Errorf("failed to create %q: %w", target, err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		dst.Close()
		return "", "", fmt.Errorf("failed to read upload %q: %w", name, err)
	}
	head = head[:n]

	if _, err := dst.Write(head); err != nil {
		dst.Close()
		return "", "", fmt.Errorf("failed to write %q: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", "", fmt.Errorf("failed to write %q: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		return "", "", fmt.Errorf("failed to close %q: %w", target, err)
	}

	absPath, err = filepath.Abs(target)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve %q: %w", target, err)
	}

	return absPath, detectMimeType(name, head), nil
}

// detectMimeType prefers the file extension and falls back to sniffing the
// first bytes of the content.
func detectMimeType(name string, head []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(head)
}
