package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSink implements Sink using local disk below a root directory.
type LocalSink struct {
	root string
}

// NewLocalSink creates a LocalSink rooted at root, creating the
// directory if it doesn't exist. An unwritable root is reported here,
// before any batch work starts.
func NewLocalSink(root string) (*LocalSink, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &LocalSink{root: root}, nil
}

// Root returns the sink's root directory.
func (s *LocalSink) Root() string {
	return s.root
}

// Put writes data to root/relPath, creating parent directories.
func (s *LocalSink) Put(ctx context.Context, relPath string, data io.Reader) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	dst := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	f, err := os.Create(dst) // #nosec G304 - dst is derived from configured root
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

// Verify interface implementation at compile time.
var _ Sink = (*LocalSink)(nil)
