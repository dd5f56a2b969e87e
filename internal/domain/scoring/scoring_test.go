package scoring_test

import (
	"testing"

	"github.com/okian/swingsheet/internal/domain/convert"
	scoring "github.com/okian/swingsheet/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// swing builds a row with only the scored columns populated.
func swing(schema convert.Schema, smash, ih, io, cp, fa float64) convert.DisplayRow {
	row := make(convert.DisplayRow, schema.Len())
	row[schema.Index(convert.ColSmashFactor)] = convert.NumberCell(smash)
	row[schema.Index(convert.ColImpactHeight)] = convert.NumberCell(ih)
	row[schema.Index(convert.ColImpactOffset)] = convert.NumberCell(io)
	row[schema.Index(convert.ColClubPath)] = convert.NumberCell(cp)
	row[schema.Index(convert.ColFaceAngle)] = convert.NumberCell(fa)
	return row
}

func TestSelector_Qualifies(t *testing.T) {
	schema := convert.DefaultSchema()

	Convey("Given a selector with default thresholds", t, func() {
		s := scoring.NewSelector(schema)

		Convey("Then a centered strike qualifies", func() {
			So(s.Qualifies(swing(schema, 1.48, 2, -3, 1, 0.5)), ShouldBeTrue)
		})

		Convey("Then bounds are inclusive", func() {
			So(s.Qualifies(swing(schema, 1.45, 10, -10, -4, 2)), ShouldBeTrue)
		})

		Convey("Then any bound exceeded disqualifies", func() {
			So(s.Qualifies(swing(schema, 1.44, 0, 0, 0, 0)), ShouldBeFalse)
			So(s.Qualifies(swing(schema, 1.5, 10.01, 0, 0, 0)), ShouldBeFalse)
			So(s.Qualifies(swing(schema, 1.5, 0, -11, 0, 0)), ShouldBeFalse)
			So(s.Qualifies(swing(schema, 1.5, 0, 0, 4.5, 0)), ShouldBeFalse)
			So(s.Qualifies(swing(schema, 1.5, 0, 0, 0, -2.1)), ShouldBeFalse)
		})

		Convey("Then a missing value disqualifies", func() {
			row := swing(schema, 1.5, 0, 0, 0, 0)
			row[schema.Index(convert.ColFaceAngle)] = convert.Cell{}
			So(s.Qualifies(row), ShouldBeFalse)
		})
	})

	Convey("Given custom thresholds", t, func() {
		th := scoring.DefaultThresholds()
		th.MinSmashFactor = 1.3
		s := scoring.NewSelector(schema, scoring.WithThresholds(th))
		So(s.Qualifies(swing(schema, 1.35, 0, 0, 0, 0)), ShouldBeTrue)
	})
}

func TestSelector_Select(t *testing.T) {
	schema := convert.DefaultSchema()
	s := scoring.NewSelector(schema)

	Convey("Given three qualifying rows with deviations 5.0, 3.2 and 3.2", t, func() {
		rows := []convert.DisplayRow{
			swing(schema, 1.46, 2, 2, 0.5, 0.5),
			swing(schema, 1.47, 1, 1, 1, 0.2),
			swing(schema, 1.49, -1, 1, -1, 0.2),
		}
		So(s.Deviation(rows[0]), ShouldAlmostEqual, 5.0)

		Convey("Then the first row with 3.2 is best", func() {
			res := s.Select(rows)
			So(res.Qualifying, ShouldResemble, []int{0, 1, 2})
			So(res.Best, ShouldEqual, 1)
		})
	})

	Convey("Given rows where only some qualify", t, func() {
		rows := []convert.DisplayRow{
			swing(schema, 1.2, 0, 0, 0, 0),
			swing(schema, 1.5, 3, 0, 0, 0),
			swing(schema, 1.5, 20, 0, 0, 0),
		}
		res := s.Select(rows)
		So(res.Qualifying, ShouldResemble, []int{1})
		So(res.Best, ShouldEqual, 1)
	})

	Convey("Given no qualifying rows", t, func() {
		res := s.Select([]convert.DisplayRow{swing(schema, 1.0, 0, 0, 0, 0)})
		So(res.Qualifying, ShouldBeEmpty)
		So(res.Best, ShouldEqual, -1)
	})
}
