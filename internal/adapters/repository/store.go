// Package repository persists raw vendor report payloads as flat files.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/swingsheet/pkg/logger"
)

const (
	// DefaultPath is where the last fetched report is kept.
	DefaultPath = "trackman_full_report.json"

	defaultIndent = "  "
	filePerm      = 0o644
	dirPerm       = 0o755
)

// Store provides write/read access to the raw report file.
type Store interface {
	// Save writes body, replacing any previous file, and returns its path.
	Save(ctx context.Context, body []byte) (string, error)
	// Load returns the bytes stored at path.
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileStore keeps one raw report on disk.
type FileStore struct {
	path   string
	indent string
	log    logger.Logger
}

// NewFileStore creates a new file store with configuration options.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		path:   DefaultPath,
		indent: defaultIndent,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the configured output path.
func (s *FileStore) Path() string { return s.path }

// Save pretty-prints body when it is valid JSON, otherwise keeps it as is,
// and replaces the file atomically so a failed write never leaves a
// truncated report behind.
func (s *FileStore) Save(ctx context.Context, body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", ErrEmptyBody
	}

	out := body
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", s.indent); err == nil {
		buf.WriteByte('\n')
		out = buf.Bytes()
	} else {
		s.log.Debug(ctx, "raw report is not valid JSON, writing verbatim", logger.Error(err))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp report: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return "", fmt.Errorf("chmod temp report: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return "", fmt.Errorf("replace report: %w", err)
	}

	s.log.Info(ctx, "raw report saved", logger.String("path", s.path), logger.Int("bytes", len(out)))
	return s.path, nil
}

// Load reads a raw report. An empty path reads the store's own file.
func (s *FileStore) Load(_ context.Context, path string) ([]byte, error) {
	if path == "" {
		path = s.path
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read raw report: %w", err)
	}
	return data, nil
}
