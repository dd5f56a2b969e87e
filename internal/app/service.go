// Package service drives the report pipeline: discovery, metadata
// enrichment, retrieval and workbook synthesis.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/swingsheet/internal/adapters/credentials"
	"github.com/okian/swingsheet/internal/adapters/history"
	"github.com/okian/swingsheet/internal/adapters/repository"
	"github.com/okian/swingsheet/internal/adapters/trackman"
	"github.com/okian/swingsheet/internal/adapters/workbook"
	"github.com/okian/swingsheet/internal/adapters/worker"
	"github.com/okian/swingsheet/internal/domain/dedupe"
	"github.com/okian/swingsheet/internal/domain/model"
	"github.com/okian/swingsheet/internal/domain/types"
	"github.com/okian/swingsheet/pkg/logger"
	"github.com/okian/swingsheet/pkg/metrics"
)

const (
	outputDirPerm      = 0o755
	timestampFileName  = "Trackman_Report_20060102_150405.xlsx"
	defaultHistoryPath = "History"
)

// createdLayouts are tried in order when reading a metadata timestamp.
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Service orchestrates the pipeline. It is stateless between calls.
type Service struct {
	discoverer  Discoverer
	tokens      TokenSource
	api         ReportAPI
	raw         RawStore
	synthesizer Synthesizer
	pool        *worker.Pool

	historyPath string
	outputDir   string
	now         func() time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDiscoverer sets the history scanner.
func WithDiscoverer(d Discoverer) Option {
	return func(s *Service) {
		if d != nil {
			s.discoverer = d
		}
	}
}

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(t TokenSource) Option {
	return func(s *Service) {
		if t != nil {
			s.tokens = t
		}
	}
}

// WithReportAPI sets the vendor client.
func WithReportAPI(api ReportAPI) Option {
	return func(s *Service) {
		if api != nil {
			s.api = api
		}
	}
}

// WithRawStore sets the raw report store.
func WithRawStore(r RawStore) Option {
	return func(s *Service) {
		if r != nil {
			s.raw = r
		}
	}
}

// WithSynthesizer sets the workbook builder.
func WithSynthesizer(w Synthesizer) Option {
	return func(s *Service) {
		if w != nil {
			s.synthesizer = w
		}
	}
}

// WithPool sets the enrichment worker pool.
func WithPool(p *worker.Pool) Option {
	return func(s *Service) {
		if p != nil {
			s.pool = p
		}
	}
}

// WithHistoryPath sets the browser history database.
func WithHistoryPath(path string) Option {
	return func(s *Service) {
		if path = strings.TrimSpace(path); path != "" {
			s.historyPath = path
		}
	}
}

// WithOutputDir sets where workbooks are saved.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		s.outputDir = strings.TrimSpace(dir)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default adapters.
func New(opts ...Option) *Service {
	s := &Service{
		historyPath: defaultHistoryPath,
		now:         time.Now,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.discoverer == nil {
		s.discoverer = history.NewDiscoverer(history.WithLogger(s.logger.Named("history")))
	}
	if s.tokens == nil {
		s.tokens = credentials.NewStore(credentials.WithLogger(s.logger.Named("credentials")))
	}
	if s.api == nil {
		s.api = trackman.NewClient(trackman.WithLogger(s.logger.Named("trackman")))
	}
	if s.raw == nil {
		s.raw = repository.NewFileStore(repository.WithLogger(s.logger.Named("repository")))
	}
	if s.synthesizer == nil {
		s.synthesizer = workbook.NewSynthesizer(workbook.WithLogger(s.logger.Named("workbook")))
	}
	if s.pool == nil {
		s.pool = worker.NewPool(worker.WithName("enrich"), worker.WithLogger(s.logger.Named("worker")))
	}
	return s
}

// Token returns the bearer token.
func (s *Service) Token(ctx context.Context) (string, error) {
	return s.tokens.Token(ctx)
}

// SaveToken stores an operator-supplied token.
func (s *Service) SaveToken(token string) error {
	return s.tokens.Save(token)
}

// Discover scans history and drops repeated identifiers, keeping the most
// recent visit of each.
func (s *Service) Discover(ctx context.Context) ([]model.ReportCandidate, error) {
	found, err := s.discoverer.Discover(ctx, s.historyPath)
	if err != nil {
		return nil, err
	}
	cands := dedupe.Candidates(found)
	if len(cands) == 0 {
		return nil, ErrNoCandidatesFound
	}
	s.logger.Info(ctx, "reports discovered",
		logger.Int("visits", len(found)), logger.Int("reports", len(cands)))
	return cands, nil
}

// Enrichment is the metadata for one identifier; OK is false when the
// lookup failed.
type Enrichment struct {
	Metadata model.ReportMetadata
	OK       bool
}

// Enrich fetches metadata for every id concurrently. The result has one
// entry per id in the same order. Failures never escape: the slot is
// marked absent.
func (s *Service) Enrich(ctx context.Context, token string, ids []string) []Enrichment {
	results := worker.Map(ctx, s.pool, len(ids), func(tctx context.Context, i int) (model.ReportMetadata, error) {
		return s.api.Metadata(tctx, token, ids[i])
	})

	out := make([]Enrichment, len(ids))
	absent := 0
	for i, r := range results {
		if !r.OK() {
			absent++
			metrics.RecordEnrichmentAbsent()
			s.logger.Debug(ctx, "metadata unavailable",
				logger.String("report_id", ids[i]), logger.Error(r.Err))
			continue
		}
		out[i] = Enrichment{Metadata: r.Value, OK: true}
	}
	if absent > 0 {
		s.logger.Warn(ctx, "some report metadata could not be fetched",
			logger.Int("absent", absent), logger.Int("total", len(ids)))
	}
	return out
}

// ListReports discovers and enriches reports, newest creation first.
// Reports without a creation time are dated at processing time.
func (s *Service) ListReports(ctx context.Context) ([]types.Listing, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	cands, err := s.Discover(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.ID
	}
	enriched := s.Enrich(ctx, token, ids)

	now := s.now().UTC()
	listings := make([]types.Listing, len(cands))
	for i, c := range cands {
		listings[i] = s.listing(c, enriched[i], now)
	}
	sort.SliceStable(listings, func(a, b int) bool {
		return listings[a].Created.After(listings[b].Created)
	})
	return listings, nil
}

func (s *Service) listing(c model.ReportCandidate, e Enrichment, now time.Time) types.Listing {
	l := types.Listing{ID: c.ID, URL: c.URL, LastVisit: c.LastVisit, Created: now}
	if !e.OK {
		return l
	}
	l.Kind = e.Metadata.Kind.String()
	if created, ok := parseCreated(e.Metadata.Time); ok {
		l.Created = created
		l.CreatedKnown = true
	}
	return l
}

func parseCreated(label model.Label) (time.Time, bool) {
	raw, ok := label.Get()
	if !ok {
		return time.Time{}, false
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Resolve turns an operator reference into a listing: empty means the
// newest listed report, a number is a 1-based position in the list, and a
// bare identifier is looked up directly.
func (s *Service) Resolve(ctx context.Context, ref string) (types.Listing, error) {
	ref = strings.TrimSpace(ref)
	if id, ok := history.NormalizeID(ref); ok {
		return s.Describe(ctx, id)
	}

	listings, err := s.ListReports(ctx)
	if err != nil {
		return types.Listing{}, err
	}
	if ref == "" {
		return listings[0], nil
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(listings) {
		return types.Listing{}, fmt.Errorf("%w: %q", ErrUnknownReport, ref)
	}
	return listings[n-1], nil
}

// Describe builds a listing for one identifier from its metadata alone.
func (s *Service) Describe(ctx context.Context, id string) (types.Listing, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return types.Listing{}, err
	}
	e := s.Enrich(ctx, token, []string{id})[0]
	return s.listing(model.ReportCandidate{ID: id}, e, s.now().UTC()), nil
}

// Retrieve fetches the full report and persists the raw payload. Nothing
// is written when the fetch fails.
func (s *Service) Retrieve(ctx context.Context, id string) (string, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return "", err
	}
	return s.retrieve(ctx, token, id)
}

func (s *Service) retrieve(ctx context.Context, token, id string) (string, error) {
	body, err := s.api.FetchReport(ctx, token, id)
	if err != nil {
		return "", err
	}
	return s.raw.Save(ctx, body)
}

// Result describes the files produced by Convert or Export.
type Result struct {
	RawPath      string
	WorkbookPath string
	Sheets       []workbook.SheetInfo
}

// Convert builds a workbook from a raw report file. An empty outPath
// saves a timestamped workbook in the output directory.
func (s *Service) Convert(ctx context.Context, rawPath, outPath string) (Result, error) {
	raw, err := s.raw.Load(ctx, rawPath)
	if err != nil {
		return Result{}, err
	}
	if outPath == "" {
		outPath = filepath.Join(s.outputDir, s.now().Format(timestampFileName))
	}
	res, err := s.write(ctx, raw, outPath)
	res.RawPath = rawPath
	return res, err
}

// Export retrieves a listed report and saves it as <YYYY_MM_DD>.xlsx in the
// output directory.
func (s *Service) Export(ctx context.Context, l types.Listing) (Result, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return Result{}, err
	}
	rawPath, err := s.retrieve(ctx, token, l.ID)
	if err != nil {
		return Result{}, err
	}
	raw, err := s.raw.Load(ctx, rawPath)
	if err != nil {
		return Result{}, err
	}
	res, err := s.write(ctx, raw, filepath.Join(s.outputDir, l.FileName()))
	res.RawPath = rawPath
	return res, err
}

func (s *Service) write(ctx context.Context, raw []byte, outPath string) (Result, error) {
	wb, err := s.synthesizer.SynthesizeJSON(ctx, raw)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			s.logger.Debug(ctx, "close workbook", logger.Error(cerr))
		}
	}()

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, outputDirPerm); err != nil {
			return Result{}, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := wb.SaveAs(outPath); err != nil {
		return Result{}, err
	}
	s.logger.Info(ctx, "workbook saved",
		logger.String("path", outPath), logger.Int("sheets", len(wb.Sheets)))
	return Result{WorkbookPath: outPath, Sheets: wb.Sheets}, nil
}
