package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Built-in spreadsheet number formats.
const (
	numFmtTwoDecimals = 2 // 0.00
	numFmtPercent     = 9 // 0%
)

// Style is the fixed visual layout shared by every sheet.
type Style struct {
	HeaderHeight     float64
	TimeColWidth     float64
	DataColWidth     float64
	BandColor        string
	BestColor        string
	PlaceholderText  string
	PlaceholderSheet string
	AggregateSheet   string
	BestSwingsText   string
}

// DefaultStyle returns the standard report look.
func DefaultStyle() Style {
	return Style{
		HeaderHeight:     70,
		TimeColWidth:     20,
		DataColWidth:     12,
		BandColor:        "F7F7F7",
		BestColor:        "0000FF",
		PlaceholderText:  "No data found in the report.",
		PlaceholderSheet: "Trackman Report",
		AggregateSheet:   "All Data",
		BestSwingsText:   "Best Swings",
	}
}

type cellKey struct {
	numeric  bool
	banded   bool
	outlined bool
}

// styleSet registers styles on one file lazily and caches their ids.
type styleSet struct {
	f     *excelize.File
	style Style
	ids   map[any]int
}

type namedStyle string

const (
	styleHeader     namedStyle = "header"
	styleLabel      namedStyle = "label"
	styleSumNumber  namedStyle = "sum-number"
	styleSumPercent namedStyle = "sum-percent"
)

func newStyleSet(f *excelize.File, style Style) *styleSet {
	return &styleSet{f: f, style: style, ids: make(map[any]int)}
}

func (s *styleSet) get(key any) (int, error) {
	if id, ok := s.ids[key]; ok {
		return id, nil
	}
	def, err := s.define(key)
	if err != nil {
		return 0, err
	}
	id, err := s.f.NewStyle(def)
	if err != nil {
		return 0, fmt.Errorf("register style %v: %w", key, err)
	}
	s.ids[key] = id
	return id, nil
}

func (s *styleSet) define(key any) (*excelize.Style, error) {
	switch k := key.(type) {
	case namedStyle:
		switch k {
		case styleHeader:
			return &excelize.Style{
				Font:      &excelize.Font{Bold: true},
				Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			}, nil
		case styleLabel:
			return &excelize.Style{
				Font:      &excelize.Font{Bold: true},
				Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			}, nil
		case styleSumNumber:
			return &excelize.Style{
				Font:      &excelize.Font{Bold: true},
				Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
				NumFmt:    numFmtTwoDecimals,
			}, nil
		case styleSumPercent:
			return &excelize.Style{
				Font:      &excelize.Font{Bold: true},
				Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
				NumFmt:    numFmtPercent,
			}, nil
		}
	case cellKey:
		st := &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"}}
		if k.numeric {
			st.Alignment.Horizontal = "right"
			st.NumFmt = numFmtTwoDecimals
		}
		if k.banded {
			st.Fill = excelize.Fill{Type: "pattern", Color: []string{s.style.BandColor}, Pattern: 1}
		}
		if k.outlined {
			st.Border = []excelize.Border{
				{Type: "left", Color: s.style.BestColor, Style: 1},
				{Type: "right", Color: s.style.BestColor, Style: 1},
				{Type: "top", Color: s.style.BestColor, Style: 1},
				{Type: "bottom", Color: s.style.BestColor, Style: 1},
			}
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown style %v", key)
}
