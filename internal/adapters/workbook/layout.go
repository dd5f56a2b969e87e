package workbook

import (
	"fmt"

	"github.com/okian/swingsheet/internal/domain/convert"
	"github.com/xuri/excelize/v2"
)

const (
	headerRow  = 1
	dataStart  = headerRow + 1
	dashMarker = `"—"`
)

var summaryLabels = []string{"Pos Av", "Neg Av", "1 Av", "Spread", "% Pos", "% Neg"}

// summaryFormulas returns the six live formulas for one column. rng is the
// data range, pos and neg the cells holding the positive and negative
// averages of the same column.
func summaryFormulas(rng, pos, neg string) []string {
	return []string{
		fmt.Sprintf(`IF(COUNTIF(%[1]s,">0"),AVERAGEIF(%[1]s,">0"),%[2]s)`, rng, dashMarker),
		fmt.Sprintf(`IF(COUNTIF(%[1]s,"<0"),AVERAGEIF(%[1]s,"<0"),%[2]s)`, rng, dashMarker),
		fmt.Sprintf(`IF(COUNTA(%[1]s),AVERAGE(%[1]s),%[2]s)`, rng, dashMarker),
		fmt.Sprintf(`IF(AND(ISNUMBER(%[1]s),ISNUMBER(%[2]s)),%[1]s-%[2]s,%[3]s)`, pos, neg, dashMarker),
		fmt.Sprintf(`IF(COUNTA(%[1]s),COUNTIF(%[1]s,">0")/COUNTA(%[1]s),%[2]s)`, rng, dashMarker),
		fmt.Sprintf(`IF(COUNTA(%[1]s),COUNTIF(%[1]s,"<0")/COUNTA(%[1]s),%[2]s)`, rng, dashMarker),
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// writeSheet lays out one data sheet and reports whether a best swing was
// outlined.
func (s *Synthesizer) writeSheet(f *excelize.File, st *styleSet, p sheetPlan) (bool, error) {
	sheet := p.name
	cols := s.schema.Len()
	lastCol := colName(cols)
	dataEnd := dataStart + len(p.rows) - 1

	if err := s.writeHeader(f, st, sheet, lastCol); err != nil {
		return false, err
	}

	for i, row := range p.rows {
		if err := writeRow(f, st, sheet, dataStart+i, row, i%2 == 0, false); err != nil {
			return false, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: cellName(1, dataStart),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return false, fmt.Errorf("freeze header: %w", err)
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A%d:%s%d", headerRow, lastCol, dataEnd), nil); err != nil {
		return false, fmt.Errorf("auto filter: %w", err)
	}

	summaryStart := dataEnd + 2
	if err := s.writeSummary(f, st, sheet, cols, dataEnd, summaryStart); err != nil {
		return false, err
	}

	return s.writeBestSwings(f, st, sheet, p.rows, summaryStart+len(summaryLabels)+1)
}

func (s *Synthesizer) writeHeader(f *excelize.File, st *styleSet, sheet, lastCol string) error {
	for i, label := range s.schema.Labels() {
		if err := f.SetCellValue(sheet, cellName(i+1, headerRow), label); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	id, err := st.get(styleHeader)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cellName(1, headerRow), cellName(s.schema.Len(), headerRow), id); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetRowHeight(sheet, headerRow, s.style.HeaderHeight); err != nil {
		return fmt.Errorf("header height: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", s.style.TimeColWidth); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if lastCol != "A" {
		if err := f.SetColWidth(sheet, "B", lastCol, s.style.DataColWidth); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}
	return nil
}

// writeRow writes one display row. Every cell is styled, empty ones too, so
// banding and alignment cover the whole row.
func writeRow(f *excelize.File, st *styleSet, sheet string, r int, row convert.DisplayRow, banded, outlined bool) error {
	for c, cell := range row {
		name := cellName(c+1, r)
		if v := cell.Value(); v != nil {
			if err := f.SetCellValue(sheet, name, v); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
		}
		id, err := st.get(cellKey{numeric: cell.Kind == convert.Number, banded: banded, outlined: outlined})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, name, name, id); err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
	}
	return nil
}

func (s *Synthesizer) writeSummary(f *excelize.File, st *styleSet, sheet string, cols, dataEnd, start int) error {
	labelID, err := st.get(styleLabel)
	if err != nil {
		return err
	}
	numberID, err := st.get(styleSumNumber)
	if err != nil {
		return err
	}
	percentID, err := st.get(styleSumPercent)
	if err != nil {
		return err
	}

	for i, label := range summaryLabels {
		name := cellName(1, start+i)
		if err := f.SetCellValue(sheet, name, label); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.SetCellStyle(sheet, name, name, labelID); err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
	}

	// The timestamp column has no summary.
	for c := 2; c <= cols; c++ {
		col := colName(c)
		rng := fmt.Sprintf("%s%d:%s%d", col, dataStart, col, dataEnd)
		pos := fmt.Sprintf("%s%d", col, start)
		neg := fmt.Sprintf("%s%d", col, start+1)
		for i, formula := range summaryFormulas(rng, pos, neg) {
			name := cellName(c, start+i)
			if err := f.SetCellFormula(sheet, name, formula); err != nil {
				return fmt.Errorf("formula %s: %w", name, err)
			}
			id := numberID
			if i >= 4 {
				id = percentID
			}
			if err := f.SetCellStyle(sheet, name, name, id); err != nil {
				return fmt.Errorf("style %s: %w", name, err)
			}
		}
	}
	return nil
}

// writeBestSwings appends the qualifying rows under a title at titleRow and
// outlines the best one. Nothing is written when no row qualifies.
func (s *Synthesizer) writeBestSwings(f *excelize.File, st *styleSet, sheet string, rows []convert.DisplayRow, titleRow int) (bool, error) {
	res := s.selector.Select(rows)
	if len(res.Qualifying) == 0 {
		return false, nil
	}

	title := cellName(1, titleRow)
	if err := f.SetCellValue(sheet, title, s.style.BestSwingsText); err != nil {
		return false, fmt.Errorf("write %s: %w", title, err)
	}
	labelID, err := st.get(styleLabel)
	if err != nil {
		return false, err
	}
	if err := f.SetCellStyle(sheet, title, title, labelID); err != nil {
		return false, fmt.Errorf("style %s: %w", title, err)
	}

	for j, idx := range res.Qualifying {
		if err := writeRow(f, st, sheet, titleRow+1+j, rows[idx], false, idx == res.Best); err != nil {
			return false, err
		}
	}
	return res.Best >= 0, nil
}
