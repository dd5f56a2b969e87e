package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/swingsheet/internal/adapters/worker"
	. "github.com/smartystreets/goconvey/convey"
)

var errBoom = errors.New("boom")

func TestMap(t *testing.T) {
	ctx := context.Background()

	Convey("Given 10 tasks where slots 3 and 7 fail", t, func() {
		pool := worker.NewPool(worker.WithSize(4), worker.WithName("test"))
		results := worker.Map(ctx, pool, 10, func(_ context.Context, i int) (string, error) {
			// Finish in reverse order so completion order differs from input order.
			time.Sleep(time.Duration(10-i) * time.Millisecond)
			if i == 3 || i == 7 {
				return "", errBoom
			}
			return fmt.Sprintf("md-%d", i), nil
		})

		Convey("Then every slot is filled in input order", func() {
			So(len(results), ShouldEqual, 10)
			for i, r := range results {
				if i == 3 || i == 7 {
					So(r.OK(), ShouldBeFalse)
					So(errors.Is(r.Err, errBoom), ShouldBeTrue)
					continue
				}
				So(r.OK(), ShouldBeTrue)
				So(r.Value, ShouldEqual, fmt.Sprintf("md-%d", i))
			}
		})
	})

	Convey("Given a pool of size 2", t, func() {
		pool := worker.NewPool(worker.WithSize(2))
		So(pool.Size(), ShouldEqual, 2)

		var running, peak atomic.Int32
		worker.Map(ctx, pool, 8, func(_ context.Context, _ int) (struct{}, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return struct{}{}, nil
		})

		Convey("Then no more than 2 tasks run at once", func() {
			So(peak.Load(), ShouldBeLessThanOrEqualTo, 2)
		})
	})

	Convey("Given a per-task timeout", t, func() {
		pool := worker.NewPool(worker.WithTaskTimeout(10 * time.Millisecond))
		results := worker.Map(ctx, pool, 3, func(tctx context.Context, i int) (int, error) {
			if i == 1 {
				<-tctx.Done()
				return 0, tctx.Err()
			}
			return i, nil
		})

		Convey("Then only the slow slot times out", func() {
			So(results[0].Value, ShouldEqual, 0)
			So(results[0].OK(), ShouldBeTrue)
			So(errors.Is(results[1].Err, context.DeadlineExceeded), ShouldBeTrue)
			So(results[2].Value, ShouldEqual, 2)
		})
	})

	Convey("Given a task that panics", t, func() {
		results := worker.Map(ctx, worker.NewPool(), 2, func(_ context.Context, i int) (int, error) {
			if i == 0 {
				panic("bad slot")
			}
			return i, nil
		})
		So(errors.Is(results[0].Err, worker.ErrTaskPanicked), ShouldBeTrue)
		So(results[1].Value, ShouldEqual, 1)
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		var calls atomic.Int32
		results := worker.Map(cctx, worker.NewPool(), 3, func(_ context.Context, i int) (int, error) {
			calls.Add(1)
			return i, nil
		})
		So(calls.Load(), ShouldEqual, 0)
		for _, r := range results {
			So(errors.Is(r.Err, context.Canceled), ShouldBeTrue)
		}
	})

	Convey("Given no tasks", t, func() {
		So(worker.Map(ctx, worker.NewPool(), 0, func(context.Context, int) (int, error) { return 0, nil }), ShouldBeEmpty)
	})
}
