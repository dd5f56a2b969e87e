// Package scoring picks out well-struck swings from converted rows and
// ranks them by combined impact and path deviation.
package scoring

import (
	"math"

	"github.com/okian/swingsheet/internal/domain/convert"
)

// Default qualification thresholds, in display units (mm for impact, degrees
// for path and face).
const (
	defaultMinSmashFactor  = 1.45
	defaultMaxImpactHeight = 10
	defaultMaxImpactOffset = 10
	defaultMaxClubPath     = 4
	defaultMaxFaceAngle    = 2
)

// Thresholds bound what counts as a qualifying swing.
type Thresholds struct {
	MinSmashFactor  float64
	MaxImpactHeight float64
	MaxImpactOffset float64
	MaxClubPath     float64
	MaxFaceAngle    float64
}

// DefaultThresholds returns the standard best-swing bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSmashFactor:  defaultMinSmashFactor,
		MaxImpactHeight: defaultMaxImpactHeight,
		MaxImpactOffset: defaultMaxImpactOffset,
		MaxClubPath:     defaultMaxClubPath,
		MaxFaceAngle:    defaultMaxFaceAngle,
	}
}

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithThresholds overrides the qualification bounds.
func WithThresholds(t Thresholds) Option {
	return func(s *Selector) {
		s.thresholds = t
	}
}

// Result lists the qualifying rows (indices into the input, in order) and
// the index of the best one, or -1 when nothing qualifies.
type Result struct {
	Qualifying []int
	Best       int
}

// Selector evaluates rows laid out by a given schema.
type Selector struct {
	thresholds Thresholds

	smash, height, offset, path, face int
}

// NewSelector creates a Selector bound to the column positions of schema.
func NewSelector(schema convert.Schema, opts ...Option) *Selector {
	s := &Selector{
		thresholds: DefaultThresholds(),
		smash:      schema.Index(convert.ColSmashFactor),
		height:     schema.Index(convert.ColImpactHeight),
		offset:     schema.Index(convert.ColImpactOffset),
		path:       schema.Index(convert.ColClubPath),
		face:       schema.Index(convert.ColFaceAngle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func value(row convert.DisplayRow, i int) (float64, bool) {
	if i < 0 || i >= len(row) {
		return 0, false
	}
	return row[i].Float()
}

// Qualifies reports whether every bound holds. A missing value fails.
func (s *Selector) Qualifies(row convert.DisplayRow) bool {
	smash, ok := value(row, s.smash)
	if !ok || smash < s.thresholds.MinSmashFactor {
		return false
	}
	bounds := []struct {
		col   int
		limit float64
	}{
		{s.height, s.thresholds.MaxImpactHeight},
		{s.offset, s.thresholds.MaxImpactOffset},
		{s.path, s.thresholds.MaxClubPath},
		{s.face, s.thresholds.MaxFaceAngle},
	}
	for _, b := range bounds {
		v, ok := value(row, b.col)
		if !ok || math.Abs(v) > b.limit {
			return false
		}
	}
	return true
}

// Deviation is |impact height| + |impact offset| + |club path| + |face angle|.
// Missing values count as zero; only qualifying rows are ranked, and those
// always carry all four.
func (s *Selector) Deviation(row convert.DisplayRow) float64 {
	var sum float64
	for _, col := range []int{s.height, s.offset, s.path, s.face} {
		if v, ok := value(row, col); ok {
			sum += math.Abs(v)
		}
	}
	return sum
}

// Select filters rows and picks the one with the lowest deviation. Ties go
// to the earliest row.
func (s *Selector) Select(rows []convert.DisplayRow) Result {
	res := Result{Best: -1}
	best := math.Inf(1)
	for i, row := range rows {
		if !s.Qualifies(row) {
			continue
		}
		res.Qualifying = append(res.Qualifying, i)
		if d := s.Deviation(row); d < best {
			best = d
			res.Best = i
		}
	}
	return res
}
