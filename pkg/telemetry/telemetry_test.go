package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/okian/swingsheet/pkg/logger"
	"github.com/okian/swingsheet/pkg/telemetry"
	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup(t *testing.T) {
	Convey("Given no endpoint", t, func() {
		tel, err := telemetry.Setup(context.Background(), "swingsheet", "")
		So(err, ShouldBeNil)
		So(tel.TracerProvider, ShouldBeNil)
		So(tel.Shutdown(context.Background()), ShouldBeNil)
	})
}

func TestInstrumentResty(t *testing.T) {
	Convey("Given an instrumented client and a recording tracer", t, func() {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		prev := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		defer otel.SetTracerProvider(prev)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/fail" {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := resty.New().SetBaseURL(srv.URL)
		telemetry.InstrumentResty(client, "test")

		Convey("When requests complete", func() {
			_, err := client.R().Post("/ok")
			So(err, ShouldBeNil)
			_, err = client.R().Post("/fail")
			So(err, ShouldBeNil)

			Convey("Then one ended span is recorded per request", func() {
				spans := recorder.Ended()
				So(len(spans), ShouldEqual, 2)
				So(spans[0].Name(), ShouldEqual, "http POST")
				So(spans[1].Status().Code.String(), ShouldEqual, "Error")
			})
		})
	})
}

func TestInstrumentResty_Retries(t *testing.T) {
	Convey("Given an instrumented retrying client and a server that drops every connection", t, func() {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		prev := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		defer otel.SetTracerProvider(prev)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				_ = conn.Close()
			}
		}))
		defer srv.Close()

		client := resty.New().
			SetBaseURL(srv.URL).
			SetRetryCount(2).
			SetRetryWaitTime(time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Millisecond).
			SetLogger(logger.Printf(logger.Nop()))
		telemetry.InstrumentResty(client, "test")

		ctx, parent := tp.Tracer("caller").Start(context.Background(), "export")
		_, err := client.R().SetContext(ctx).Get("/")
		parent.End()
		So(err, ShouldNotBeNil)

		Convey("Then every attempt span is ended and parented by the caller", func() {
			started, ended := 0, 0
			for _, s := range recorder.Started() {
				if s.Name() == "http GET" {
					started++
				}
			}
			for _, s := range recorder.Ended() {
				if s.Name() != "http GET" {
					continue
				}
				ended++
				So(s.Parent().SpanID(), ShouldEqual, parent.SpanContext().SpanID())
				So(s.Status().Code.String(), ShouldEqual, "Error")
			}
			So(started, ShouldEqual, 3)
			So(ended, ShouldEqual, 3)
		})
	})
}
