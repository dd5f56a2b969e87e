package convert

import (
	"math"
	"strings"
	"time"

	"github.com/okian/swingsheet/internal/domain/model"
)

const displayTimeLayout = "2006-01-02 15:04:05"

// isoLayouts are tried in order. RFC3339Nano accepts a trailing Z as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Row converts one measurement into a row ordered like the schema.
// It never fails: absent fields become empty cells and an unparsable
// timestamp is passed through verbatim.
func (s Schema) Row(m *model.Measurement) DisplayRow {
	row := make(DisplayRow, len(s.columns))
	if m == nil {
		return row
	}
	for i, c := range s.columns {
		if c.Field == nil {
			raw, _ := m.Time.Get()
			row[i] = TextCell(FormatTime(raw))
			continue
		}
		row[i] = Scale(c.Field(m), c.Factor)
	}
	return row
}

// Scale multiplies a present quantity by factor and rounds to 2 decimals.
func Scale(q model.Quantity, factor float64) Cell {
	v, ok := q.Get()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{}
	}
	return NumberCell(Round2(v * factor))
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}

// FormatTime renders an ISO-8601 timestamp as "YYYY-MM-DD HH:MM:SS" in the
// timestamp's own offset. Empty input stays empty; text that does not parse
// is returned unchanged.
func FormatTime(iso string) string {
	s := strings.TrimSpace(iso)
	if s == "" {
		return iso
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayTimeLayout)
		}
	}
	return iso
}
