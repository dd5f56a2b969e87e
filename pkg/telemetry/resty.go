package telemetry

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentResty starts a span per request attempt and ends it when the
// response or error arrives, or when a retry starts the next attempt. Every
// attempt span is a child of the caller's context. Request and response
// bodies are not recorded since they carry bearer tokens and full reports.
func InstrumentResty(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)

	client.OnBeforeRequest(onBeforeRequest(tracer))
	client.OnAfterResponse(onAfterResponse)
	client.OnError(onError)
}

type attemptKey struct{}

// attempt is stored in the request context so a retry can close the span of
// the previous attempt and start from the caller's context again.
type attempt struct {
	parent context.Context
	span   trace.Span
}

func onBeforeRequest(tracer trace.Tracer) resty.RequestMiddleware {
	return func(_ *resty.Client, req *resty.Request) error {
		parent := req.Context()
		if prev, ok := parent.Value(attemptKey{}).(*attempt); ok {
			if prev.span.IsRecording() {
				prev.span.SetStatus(codes.Error, "retried")
				prev.span.End()
			}
			parent = prev.parent
		}
		ctx, span := tracer.Start(parent, fmt.Sprintf("http %s", req.Method),
			trace.WithSpanKind(trace.SpanKindClient))
		req.SetContext(context.WithValue(ctx, attemptKey{}, &attempt{parent: parent, span: span}))
		return nil
	}
}

func requestAttributes(req *resty.Request) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(req.Method),
		semconv.URLFull(req.URL),
	}
	if req.RawRequest != nil && req.RawRequest.URL != nil {
		attrs = append(attrs, semconv.ServerAddress(req.RawRequest.URL.Hostname()))
	}
	return attrs
}

func onAfterResponse(_ *resty.Client, res *resty.Response) error {
	span := trace.SpanFromContext(res.Request.Context())
	defer span.End()

	span.SetAttributes(requestAttributes(res.Request)...)
	span.SetAttributes(
		semconv.HTTPResponseStatusCode(res.StatusCode()),
		attribute.Int64("http.response.body.size", res.Size()),
	)
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
	}
	return nil
}

func onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.SetAttributes(requestAttributes(req)...)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
