package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/swingsheet/pkg/logger"
	"github.com/okian/swingsheet/pkg/metrics"
	"github.com/shirou/gopsutil/v4/process"
)

// SQLite sidecar files copied along with the main database when present.
var sidecars = []string{"-wal", "-journal"}

// Snapshot is a private, disposable copy of a store file that its owning
// application may be writing to.
type Snapshot struct {
	path string
	log  logger.Logger
}

// TakeSnapshot copies src into a uniquely named file under dir (os.TempDir
// when empty). The caller must call Release on every path.
func TakeSnapshot(src, dir string, log logger.Logger) (*Snapshot, error) {
	if log == nil {
		log = logger.Nop()
	}
	if dir == "" {
		dir = os.TempDir()
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrStoreUnavailable, src)
	}

	s := &Snapshot{
		path: filepath.Join(dir, "swingsheet-"+uuid.NewString()+".db"),
		log:  log,
	}
	if err := copyFile(src, s.path); err != nil {
		s.Release()
		return nil, fmt.Errorf("%w: copy %s: %w", ErrStoreUnavailable, src, err)
	}
	for _, suffix := range sidecars {
		err := copyFile(src+suffix, s.path+suffix)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.Release()
			return nil, fmt.Errorf("%w: copy %s: %w", ErrStoreUnavailable, src+suffix, err)
		}
	}
	return s, nil
}

// Path returns the location of the copy.
func (s *Snapshot) Path() string { return s.path }

// Release deletes the copy and its sidecars. Failures are logged only.
func (s *Snapshot) Release() {
	for _, p := range append([]string{s.path}, sidecarPaths(s.path)...) {
		err := os.Remove(p)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		metrics.RecordSnapshotCleanupError()
		s.log.Warn(context.Background(), "failed to remove store snapshot",
			logger.String("path", p), logger.Error(err))
	}
}

func sidecarPaths(base string) []string {
	out := make([]string, len(sidecars))
	for i, suffix := range sidecars {
		out[i] = base + suffix
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// RunningProcess returns the name of the first running process whose name
// contains one of names (case-insensitive). Lookup errors count as not found.
func RunningProcess(ctx context.Context, names ...string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "", false
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		lower := strings.ToLower(name)
		for _, target := range names {
			if target != "" && strings.Contains(lower, strings.ToLower(target)) {
				return name, true
			}
		}
	}
	return "", false
}
