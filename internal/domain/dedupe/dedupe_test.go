package dedupe_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	dedupe "github.com/okian/swingsheet/internal/domain/dedupe"
	"github.com/okian/swingsheet/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const reportID = "0b8f5a3e-1c2d-4e5f-8a9b-0c1d2e3f4a5b"

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(4))
		So(d.Size(), ShouldEqual, 0)

		Convey("When an identifier is recorded twice", func() {
			first := d.SeenAndRecord(reportID)
			second := d.SeenAndRecord(reportID)

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When identifiers differ only in case", func() {
			d.SeenAndRecord("ABCDEF00-0000-0000-0000-000000000000")
			So(d.SeenAndRecord("abcdef00-0000-0000-0000-000000000000"), ShouldBeTrue)
		})

		Convey("When many goroutines record the same ids", func() {
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					d.SeenAndRecord(fmt.Sprintf("id-%d", n%5))
				}(i)
			}
			wg.Wait()
			So(d.Size(), ShouldEqual, 5)
		})
	})
}

func TestCandidates(t *testing.T) {
	Convey("Given candidates sharing an identifier", t, func() {
		now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
		in := []model.ReportCandidate{
			{ID: reportID, URL: "https://web-dynamic-reports.trackmangolf.com/?r=" + reportID, LastVisit: now},
			{ID: "11111111-2222-3333-4444-555555555555", URL: "https://trackmangolf.com/reports/11111111-2222-3333-4444-555555555555", LastVisit: now.Add(-time.Hour)},
			{ID: reportID, URL: "https://trackmangolf.com/reports/" + reportID, LastVisit: now.Add(-2 * time.Hour)},
		}

		out := dedupe.Candidates(in)

		Convey("Then the first occurrence is kept in order", func() {
			So(len(out), ShouldEqual, 2)
			So(out[0], ShouldResemble, in[0])
			So(out[1].ID, ShouldEqual, "11111111-2222-3333-4444-555555555555")
		})
	})

	Convey("Given no candidates", t, func() {
		So(dedupe.Candidates(nil), ShouldBeEmpty)
	})
}
