// Package history discovers vendor report identifiers in a browser's
// history database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/okian/swingsheet/internal/domain/model"
	"github.com/okian/swingsheet/pkg/logger"
	"github.com/okian/swingsheet/pkg/metrics"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	defaultDomain = "trackmangolf.com"
	defaultLimit  = 50

	historyQuery = `SELECT url, last_visit_time FROM urls
WHERE url LIKE ? ORDER BY last_visit_time DESC LIMIT ?`

	// Seconds between 1601-01-01 (the browser epoch) and 1970-01-01.
	webkitEpochOffset = 11644473600
)

// reportIDPattern matches a report path segment or an r= query parameter
// followed by a 36-character hex/hyphen token that is not part of a longer run.
var reportIDPattern = regexp.MustCompile(`(?:/reports?/|[?&]r=)([0-9a-fA-F-]{36})(?:[^0-9a-fA-F-]|$)`)

// Option applies a configuration option to the Discoverer.
type Option func(*Discoverer)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Discoverer) {
		if l != nil {
			d.log = l
		}
	}
}

// WithDomain sets the report domain URLs must reference.
func WithDomain(domain string) Option {
	return func(d *Discoverer) {
		if domain = strings.TrimSpace(domain); domain != "" {
			d.domain = domain
		}
	}
}

// WithLimit caps the number of history rows scanned.
func WithLimit(limit int) Option {
	return func(d *Discoverer) {
		if limit > 0 {
			d.limit = limit
		}
	}
}

// WithSnapshotDir sets where private store copies are made.
func WithSnapshotDir(dir string) Option {
	return func(d *Discoverer) {
		d.snapshotDir = dir
	}
}

// WithBrowserProcesses sets the process names that trigger a warning when
// running, since an open browser may hold recent visits in memory.
func WithBrowserProcesses(names ...string) Option {
	return func(d *Discoverer) {
		d.browsers = names
	}
}

// Discoverer scans a history store for report candidates.
type Discoverer struct {
	log         logger.Logger
	domain      string
	limit       int
	snapshotDir string
	browsers    []string
}

// NewDiscoverer creates a new Discoverer with configuration options.
func NewDiscoverer(opts ...Option) *Discoverer {
	d := &Discoverer{
		log:    logger.Nop(),
		domain: defaultDomain,
		limit:  defaultLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover snapshots the live history store at path, scans the copy, and
// removes it before returning.
func (d *Discoverer) Discover(ctx context.Context, path string) ([]model.ReportCandidate, error) {
	if name, running := RunningProcess(ctx, d.browsers...); running {
		d.log.Warn(ctx, "browser is running; the latest visits may not be in history yet",
			logger.String("process", name))
	}

	snap, err := TakeSnapshot(path, d.snapshotDir, d.log)
	if err != nil {
		return nil, err
	}
	defer snap.Release()

	return d.Candidates(ctx, snap.Path())
}

// Candidates reads report candidates from a history database that is
// already safe to read, newest visit first.
func (d *Discoverer) Candidates(ctx context.Context, path string) ([]model.ReportCandidate, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, historyQuery, "%"+d.domain+"%", d.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []model.ReportCandidate
	for rows.Next() {
		var (
			url   sql.NullString
			visit sql.NullInt64
		)
		if err := rows.Scan(&url, &visit); err != nil {
			d.log.Debug(ctx, "skipping unreadable history row", logger.Error(err))
			continue
		}
		id, ok := ExtractID(url.String)
		if !ok {
			continue
		}
		out = append(out, model.ReportCandidate{
			ID:        id,
			URL:       url.String,
			LastVisit: FromWebkit(visit.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	metrics.SetCandidatesDiscovered(len(out))
	d.log.Debug(ctx, "history scanned", logger.Int("candidates", len(out)))
	return out, nil
}

var bareIDPattern = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

// NormalizeID validates a bare report identifier and lower-cases it.
func NormalizeID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !bareIDPattern.MatchString(s) {
		return "", false
	}
	return strings.ToLower(s), true
}

// ExtractID returns the lower-cased report identifier in url, if any.
func ExtractID(url string) (string, bool) {
	m := reportIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// FromWebkit converts microseconds since 1601-01-01 UTC to a time.
// Zero or negative input yields the zero time.
func FromWebkit(us int64) time.Time {
	if us <= 0 {
		return time.Time{}
	}
	return time.UnixMicro(us - webkitEpochOffset*1_000_000).UTC()
}
