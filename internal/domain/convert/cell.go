package convert

import "strconv"

// Kind tells how a Cell is rendered.
type Kind int

// Cell kinds.
const (
	Empty Kind = iota
	Number
	Text
)

// Cell is one converted value: empty, a real number, or text.
type Cell struct {
	Kind   Kind
	Number float64
	Text   string
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: Number, Number: v} }

// TextCell returns a text cell; an empty string yields an empty cell.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: Text, Text: s}
}

// Float returns the numeric value and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	return c.Number, c.Kind == Number
}

// Value returns the cell content for a spreadsheet writer: float64, string,
// or nil for an empty cell.
func (c Cell) Value() any {
	switch c.Kind {
	case Number:
		return c.Number
	case Text:
		return c.Text
	default:
		return nil
	}
}

func (c Cell) String() string {
	switch c.Kind {
	case Number:
		return strconv.FormatFloat(c.Number, 'f', 2, 64)
	case Text:
		return c.Text
	default:
		return ""
	}
}

// DisplayRow is one converted measurement, ordered like the Schema.
type DisplayRow []Cell
