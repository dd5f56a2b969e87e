// Package workbook lays out converted report rows as a styled spreadsheet:
// one sheet per club, an aggregate sheet, summary formulas, and a Best
// Swings section with the best-fit swing outlined.
package workbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/swingsheet/internal/domain/convert"
	"github.com/okian/swingsheet/internal/domain/model"
	"github.com/okian/swingsheet/internal/domain/scoring"
	"github.com/okian/swingsheet/pkg/logger"
	"github.com/okian/swingsheet/pkg/metrics"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Option applies a configuration option to the Synthesizer.
type Option func(*Synthesizer)

// WithSchema sets the column schema.
func WithSchema(s convert.Schema) Option {
	return func(w *Synthesizer) {
		if s.Len() > 0 {
			w.schema = s
		}
	}
}

// WithStyle sets the visual layout.
func WithStyle(s Style) Option {
	return func(w *Synthesizer) {
		w.style = s
	}
}

// WithThresholds sets the Best Swings qualification bounds.
func WithThresholds(t scoring.Thresholds) Option {
	return func(w *Synthesizer) {
		w.thresholds = &t
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Synthesizer) {
		if l != nil {
			w.log = l
		}
	}
}

// Synthesizer turns reports into workbooks. It holds no per-report state
// and is safe for concurrent use.
type Synthesizer struct {
	schema     convert.Schema
	style      Style
	thresholds *scoring.Thresholds
	selector   *scoring.Selector
	log        logger.Logger
}

// NewSynthesizer creates a new Synthesizer with configuration options.
func NewSynthesizer(opts ...Option) *Synthesizer {
	w := &Synthesizer{
		schema: convert.DefaultSchema(),
		style:  DefaultStyle(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	var sopts []scoring.Option
	if w.thresholds != nil {
		sopts = append(sopts, scoring.WithThresholds(*w.thresholds))
	}
	w.selector = scoring.NewSelector(w.schema, sopts...)
	return w
}

// SheetInfo describes one emitted sheet.
type SheetInfo struct {
	Name      string
	Rows      int
	BestSwing bool
}

// Workbook is a synthesized spreadsheet ready to be written.
type Workbook struct {
	file   *excelize.File
	Sheets []SheetInfo
}

// File exposes the underlying spreadsheet.
func (w *Workbook) File() *excelize.File { return w.file }

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
	}
	metrics.RecordWorkbookWritten()
	return nil
}

// WriteTo writes the workbook to out.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	n, err := w.file.WriteTo(out)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
	}
	return n, nil
}

// Close releases resources held by the spreadsheet.
func (w *Workbook) Close() error { return w.file.Close() }

type sheetPlan struct {
	name string
	rows []convert.DisplayRow
}

// SynthesizeJSON decodes a raw payload and synthesizes it. A payload that is
// not an object with a StrokeGroups array yields the placeholder sheet.
func (s *Synthesizer) SynthesizeJSON(ctx context.Context, raw []byte) (*Workbook, error) {
	report, err := decodeReport(raw)
	if err != nil {
		s.log.Warn(ctx, "report has no usable structure, writing placeholder", logger.Error(err))
		report = &model.Report{}
	}
	return s.Synthesize(ctx, report)
}

func decodeReport(raw []byte) (*model.Report, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReport, err)
	}
	groupsRaw, ok := top["StrokeGroups"]
	if !ok {
		return nil, fmt.Errorf("%w: missing StrokeGroups", ErrMalformedReport)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(groupsRaw, &items); err != nil {
		return nil, fmt.Errorf("%w: StrokeGroups is not a list: %w", ErrMalformedReport, err)
	}

	report := &model.Report{}
	for _, item := range items {
		var g model.StrokeGroup
		if err := json.Unmarshal(item, &g); err != nil {
			continue
		}
		report.StrokeGroups = append(report.StrokeGroups, g)
	}
	return report, nil
}

// Synthesize lays out report. Groups without a usable measurement get no
// sheet; the aggregate sheet follows the group sheets; an empty report gets
// a single placeholder sheet. Errors come only from the spreadsheet library.
func (s *Synthesizer) Synthesize(ctx context.Context, report *model.Report) (*Workbook, error) {
	plans := s.plan(report)

	f := excelize.NewFile()
	wb := &Workbook{file: f}
	styles := newStyleSet(f, s.style)

	if len(plans) == 0 {
		if err := s.placeholder(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, SheetInfo{Name: s.style.PlaceholderSheet})
		s.log.Info(ctx, "no measurements found, wrote placeholder sheet")
		return wb, nil
	}

	for i, p := range plans {
		if err := s.addSheet(f, i, p.name); err != nil {
			_ = f.Close()
			return nil, err
		}
		best, err := s.writeSheet(f, styles, p)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("sheet %q: %w", p.name, err)
		}
		metrics.RecordSheetWritten(len(p.rows))
		if best {
			metrics.RecordBestSwingFlagged()
		}
		wb.Sheets = append(wb.Sheets, SheetInfo{Name: p.name, Rows: len(p.rows), BestSwing: best})
	}
	f.SetActiveSheet(0)

	s.log.Debug(ctx, "workbook synthesized", logger.Int("sheets", len(wb.Sheets)))
	return wb, nil
}

func (s *Synthesizer) plan(report *model.Report) []sheetPlan {
	if report == nil {
		return nil
	}
	names := newSheetNames()
	var (
		plans []sheetPlan
		all   []convert.DisplayRow
	)
	for _, g := range report.StrokeGroups {
		ms := g.Measurements()
		if len(ms) == 0 {
			continue
		}
		rows := make([]convert.DisplayRow, len(ms))
		for i, m := range ms {
			rows[i] = s.schema.Row(m)
		}
		plans = append(plans, sheetPlan{name: names.claim(g.Club.Or(unknownClub)), rows: rows})
		all = append(all, rows...)
	}
	if len(all) > 0 {
		plans = append(plans, sheetPlan{name: names.claim(s.style.AggregateSheet), rows: all})
	}
	return plans
}

func (s *Synthesizer) addSheet(f *excelize.File, i int, name string) error {
	if i == 0 {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("name sheet %q: %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("add sheet %q: %w", name, err)
	}
	return nil
}

func (s *Synthesizer) placeholder(f *excelize.File) error {
	name := s.style.PlaceholderSheet
	if err := f.SetSheetName(defaultSheet, name); err != nil {
		return fmt.Errorf("name placeholder sheet: %w", err)
	}
	if err := f.SetCellValue(name, "A1", s.style.PlaceholderText); err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}
	return nil
}
