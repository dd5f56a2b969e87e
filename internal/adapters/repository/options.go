package repository

import (
	"strings"

	"github.com/okian/swingsheet/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithPath sets the file the raw report is written to.
func WithPath(path string) Option {
	return func(s *FileStore) {
		if path = strings.TrimSpace(path); path != "" {
			s.path = path
		}
	}
}

// WithIndent sets the indentation used when pretty-printing.
func WithIndent(indent string) Option {
	return func(s *FileStore) {
		s.indent = indent
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}
