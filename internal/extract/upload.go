package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Upload is an uploaded file spooled into its own temporary directory.
// Cleanup must be called on every exit path.
type Upload struct {
	Name string
	Path string
	dir  string
}

// Spool copies r into a fresh directory under baseDir. At most maxBytes are
// accepted when maxBytes > 0. The returned Upload owns the directory.
func Spool(baseDir, name string, r io.Reader, maxBytes int64) (*Upload, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dir, err := os.MkdirTemp(baseDir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	u := &Upload{Name: name, Path: filepath.Join(dir, safeName(name)), dir: dir}

	f, err := os.Create(u.Path)
	if err != nil {
		_ = u.Cleanup()
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	src := r
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = u.Cleanup()
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if maxBytes > 0 && n > maxBytes {
		_ = u.Cleanup()
		return nil, &DocumentReadError{Name: name, Message: fmt.Sprintf("upload exceeds %d bytes", maxBytes)}
	}

	return u, nil
}

// Document reads the spooled file back as a Document.
func (u *Upload) Document() (*Document, error) {
	format, err := DetectFormat(u.Name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, &DocumentReadError{Name: u.Name, Format: format, Message: "failed to read upload", Cause: err}
	}
	return &Document{Name: u.Name, Format: format, Data: data}, nil
}

// Cleanup removes the upload directory. It is safe to call more than once.
func (u *Upload) Cleanup() error {
	if u == nil || u.dir == "" {
		return nil
	}
	return os.RemoveAll(u.dir)
}

func safeName(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == "" {
		return "resume"
	}
	return base
}
