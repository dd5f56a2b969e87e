package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/swingsheet/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file store in a fresh directory", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "out", "trackman_full_report.json")
		s := repository.NewFileStore(repository.WithPath(path))
		So(s.Path(), ShouldEqual, path)

		Convey("When a JSON body is saved", func() {
			got, err := s.Save(ctx, []byte(`{"StrokeGroups":[{"Club":"Driver"}]}`))

			Convey("Then it is pretty-printed with two-space indent", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, path)
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "{\n  \"StrokeGroups\": [\n    {\n      \"Club\": \"Driver\"\n    }\n  ]\n}\n")
			})

			Convey("Then a second save overwrites it and leaves no temp files", func() {
				_, err := s.Save(ctx, []byte(`{"a":1}`))
				So(err, ShouldBeNil)
				data, _ := s.Load(ctx, "")
				So(string(data), ShouldEqual, "{\n  \"a\": 1\n}\n")

				entries, _ := os.ReadDir(filepath.Dir(path))
				So(len(entries), ShouldEqual, 1)
			})
		})

		Convey("When the body is not JSON", func() {
			_, err := s.Save(ctx, []byte("<html>oops</html>"))
			So(err, ShouldBeNil)
			data, _ := os.ReadFile(path)
			So(string(data), ShouldEqual, "<html>oops</html>")
		})

		Convey("When the body is empty", func() {
			_, err := s.Save(ctx, []byte("  "))
			So(errors.Is(err, repository.ErrEmptyBody), ShouldBeTrue)
			_, statErr := os.Stat(path)
			So(os.IsNotExist(statErr), ShouldBeTrue)
		})

		Convey("When the store indents with tabs", func() {
			tabbed := repository.NewFileStore(repository.WithPath(path), repository.WithIndent("\t"))
			_, err := tabbed.Save(ctx, []byte(`{"a":[1]}`))
			So(err, ShouldBeNil)
			data, _ := os.ReadFile(path)
			So(string(data), ShouldEqual, "{\n\t\"a\": [\n\t\t1\n\t]\n}\n")
		})

		Convey("When loading a missing file", func() {
			_, err := s.Load(ctx, filepath.Join(dir, "missing.json"))
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
