package workbook_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/swingsheet/internal/adapters/workbook"
	"github.com/okian/swingsheet/internal/domain/convert"
	"github.com/okian/swingsheet/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

// Driver: a qualifying swing, a non-qualifying swing, and an empty stroke.
// 7 Iron: no strokes at all.
const driverReport = `{
  "StrokeGroups": [
    {
      "Club": "Driver",
      "Strokes": [
        {"Measurement": {"Time": "2025-03-14T10:15:30Z", "BallSpeed": 70.0, "ClubSpeed": 47.0,
          "SmashFactor": 1.48, "ImpactHeight": 0.002, "ImpactOffset": -0.003, "ClubPath": 1.0, "FaceAngle": 0.5}},
        {"Measurement": {}},
        {"Measurement": {"Time": "2025-03-14T10:16:10Z", "BallSpeed": 60.0, "SmashFactor": 1.3,
          "ImpactHeight": -0.004, "ImpactOffset": 0.001, "ClubPath": -2.0, "FaceAngle": -1.0}}
      ]
    },
    {"Club": "7 Iron", "Strokes": []}
  ]
}`

func styleOf(f *excelize.File, sheet, cell string) *excelize.Style {
	id, err := f.GetCellStyle(sheet, cell)
	So(err, ShouldBeNil)
	st, err := f.GetStyle(id)
	So(err, ShouldBeNil)
	return st
}

func value(f *excelize.File, sheet, cell string) string {
	v, err := f.GetCellValue(sheet, cell)
	So(err, ShouldBeNil)
	return v
}

func TestSynthesize_DriverScenario(t *testing.T) {
	ctx := context.Background()

	Convey("Given a report with a Driver group and an empty 7 Iron group", t, func() {
		wb, err := workbook.NewSynthesizer().SynthesizeJSON(ctx, []byte(driverReport))
		So(err, ShouldBeNil)
		defer wb.Close()
		f := wb.File()

		Convey("Then only Driver and All Data sheets exist, each with 2 rows", func() {
			So(f.GetSheetList(), ShouldResemble, []string{"Driver", "All Data"})
			So(wb.Sheets, ShouldHaveLength, 2)
			So(wb.Sheets[0].Rows, ShouldEqual, 2)
			So(wb.Sheets[1].Rows, ShouldEqual, 2)
		})

		Convey("Then the header and converted rows are laid out", func() {
			So(value(f, "Driver", "A1"), ShouldEqual, "Time")
			So(value(f, "Driver", "AE1"), ShouldEqual, "Dynamic Lie (Deg)")
			So(value(f, "Driver", "A2"), ShouldEqual, "2025-03-14 10:15:30")
			So(value(f, "Driver", "C2"), ShouldEqual, "156.59")
			So(value(f, "Driver", "C3"), ShouldEqual, "134.22")
			So(value(f, "Driver", "Q2"), ShouldEqual, "")
			So(value(f, "Driver", "A4"), ShouldEqual, "")
		})

		Convey("Then header, numeric and banded cells are styled", func() {
			header := styleOf(f, "Driver", "A1")
			So(header.Font, ShouldNotBeNil)
			So(header.Font.Bold, ShouldBeTrue)
			So(header.Alignment.WrapText, ShouldBeTrue)

			num := styleOf(f, "Driver", "C2")
			So(num.NumFmt, ShouldEqual, 2)
			So(num.Alignment.Horizontal, ShouldEqual, "right")

			text := styleOf(f, "Driver", "A3")
			So(text.Alignment.Horizontal, ShouldEqual, "left")

			So(styleOf(f, "Driver", "C2").Fill.Pattern, ShouldEqual, 1)
			So(styleOf(f, "Driver", "C3").Fill.Pattern, ShouldEqual, 0)

			height, err := f.GetRowHeight("Driver", 1)
			So(err, ShouldBeNil)
			So(height, ShouldEqual, 70)
		})

		Convey("Then the header row is frozen", func() {
			panes, err := f.GetPanes("Driver")
			So(err, ShouldBeNil)
			So(panes.Freeze, ShouldBeTrue)
			So(panes.TopLeftCell, ShouldEqual, "A2")
		})

		Convey("Then six summary rows follow one blank row", func() {
			labels := []string{"Pos Av", "Neg Av", "1 Av", "Spread", "% Pos", "% Neg"}
			for i, l := range labels {
				So(value(f, "Driver", fmt.Sprintf("A%d", 5+i)), ShouldEqual, l)
			}

			pos, err := f.GetCellFormula("Driver", "B5")
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, `IF(COUNTIF(B2:B3,">0"),AVERAGEIF(B2:B3,">0"),"—")`)

			spread, _ := f.GetCellFormula("Driver", "G8")
			So(spread, ShouldEqual, `IF(AND(ISNUMBER(G5),ISNUMBER(G6)),G5-G6,"—")`)

			pctNeg, _ := f.GetCellFormula("Driver", "AE10")
			So(pctNeg, ShouldEqual, `IF(COUNTA(AE2:AE3),COUNTIF(AE2:AE3,"<0")/COUNTA(AE2:AE3),"—")`)

			So(styleOf(f, "Driver", "B5").NumFmt, ShouldEqual, 2)
			So(styleOf(f, "Driver", "B9").NumFmt, ShouldEqual, 9)

			timeFormula, _ := f.GetCellFormula("Driver", "A5")
			So(timeFormula, ShouldEqual, "")
		})

		Convey("Then the qualifying swing is listed under Best Swings and outlined", func() {
			So(value(f, "Driver", "A12"), ShouldEqual, "Best Swings")
			So(value(f, "Driver", "A13"), ShouldEqual, "2025-03-14 10:15:30")
			So(value(f, "Driver", "A14"), ShouldEqual, "")

			for _, cell := range []string{"A13", "J13", "AE13"} {
				So(styleOf(f, "Driver", cell).Border, ShouldHaveLength, 4)
			}
			So(styleOf(f, "Driver", "A2").Border, ShouldBeEmpty)
			So(wb.Sheets[0].BestSwing, ShouldBeTrue)
		})

		Convey("Then the aggregate sheet carries the same rows", func() {
			So(value(f, "All Data", "C2"), ShouldEqual, "156.59")
			So(value(f, "All Data", "C3"), ShouldEqual, "134.22")
			So(value(f, "All Data", "A12"), ShouldEqual, "Best Swings")
		})

		Convey("Then the workbook survives a save and reopen", func() {
			path := filepath.Join(t.TempDir(), "2025_03_14.xlsx")
			So(wb.SaveAs(path), ShouldBeNil)

			reopened, err := excelize.OpenFile(path)
			So(err, ShouldBeNil)
			defer reopened.Close()
			So(reopened.GetSheetList(), ShouldResemble, []string{"Driver", "All Data"})
			So(value(reopened, "Driver", "C2"), ShouldEqual, "156.59")
		})
	})
}

func TestSynthesize_Placeholder(t *testing.T) {
	ctx := context.Background()

	for _, payload := range []string{`{}`, `{"StrokeGroups": null}`, `not json`, `[1,2]`,
		`{"StrokeGroups": [{"Club": "Driver", "Strokes": [{"Measurement": null}, {}]}]}`} {
		Convey("Given the payload "+payload, t, func() {
			wb, err := workbook.NewSynthesizer().SynthesizeJSON(ctx, []byte(payload))
			So(err, ShouldBeNil)
			defer wb.Close()

			Convey("Then a single no-data sheet is produced", func() {
				f := wb.File()
				So(f.GetSheetList(), ShouldResemble, []string{"Trackman Report"})
				So(strings.ToLower(value(f, "Trackman Report", "A1")), ShouldContainSubstring, "no data found")
			})
		})
	}
}

func TestSynthesize_SheetNames(t *testing.T) {
	ctx := context.Background()

	Convey("Given a club name with a quote at the sheet name limit", t, func() {
		club := strings.Repeat("a", 30) + "'s Driver"
		payload := `{"StrokeGroups": [{"Club": "` + club + `", "Strokes": [{"Measurement": {"BallSpeed": 50}}]}]}`

		wb, err := workbook.NewSynthesizer().SynthesizeJSON(ctx, []byte(payload))

		Convey("Then the quote is dropped and the workbook is built", func() {
			So(err, ShouldBeNil)
			defer wb.Close()
			So(wb.File().GetSheetList(), ShouldResemble, []string{strings.Repeat("a", 30), "All Data"})
		})
	})

	Convey("Given clubs whose names collide or exceed the sheet name limit", t, func() {
		long := strings.Repeat("x", 40)
		stroke := `{"Measurement": {"BallSpeed": 50}}`
		payload := `{"StrokeGroups": [
			{"Club": "Driver", "Strokes": [` + stroke + `]},
			{"Club": "driver", "Strokes": [` + stroke + `]},
			{"Club": "` + long + `", "Strokes": [` + stroke + `]},
			{"Club": "` + long + `y", "Strokes": [` + stroke + `]},
			{"Club": "Wood 3/5?", "Strokes": [` + stroke + `]},
			{"Strokes": [` + stroke + `]},
			{"Club": "All Data", "Strokes": [` + stroke + `]}
		]}`

		wb, err := workbook.NewSynthesizer().SynthesizeJSON(ctx, []byte(payload))
		So(err, ShouldBeNil)
		defer wb.Close()

		Convey("Then every sheet gets a distinct legal name", func() {
			So(wb.File().GetSheetList(), ShouldResemble, []string{
				"Driver",
				"driver (2)",
				strings.Repeat("x", 31),
				strings.Repeat("x", 27) + " (2)",
				"Wood 3_5_",
				"Unknown Club",
				"All Data",
				"All Data (2)",
			})
			So(wb.Sheets[len(wb.Sheets)-1].Rows, ShouldEqual, 7)
		})
	})
}

func TestSynthesize_Options(t *testing.T) {
	ctx := context.Background()

	Convey("Given a synthesizer with custom style and strict thresholds", t, func() {
		style := workbook.DefaultStyle()
		style.AggregateSheet = "Everything"
		style.PlaceholderSheet = "Empty"
		strict := scoring.DefaultThresholds()
		strict.MinSmashFactor = 2.0

		s := workbook.NewSynthesizer(
			workbook.WithSchema(convert.DefaultSchema()),
			workbook.WithStyle(style),
			workbook.WithThresholds(strict),
		)

		Convey("When a report with swings is synthesized", func() {
			wb, err := s.SynthesizeJSON(ctx, []byte(driverReport))
			So(err, ShouldBeNil)
			defer wb.Close()

			Convey("Then the aggregate sheet uses the style name and no swing qualifies", func() {
				So(wb.File().GetSheetList(), ShouldResemble, []string{"Driver", "Everything"})
				So(wb.Sheets[0].BestSwing, ShouldBeFalse)
			})
		})

		Convey("When an empty report is synthesized", func() {
			wb, err := s.SynthesizeJSON(ctx, []byte(`{}`))
			So(err, ShouldBeNil)
			defer wb.Close()
			So(wb.File().GetSheetList(), ShouldResemble, []string{"Empty"})
		})
	})
}
