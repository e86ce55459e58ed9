package telemetry

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// DumpOutput receives a rendered request/response transcript for every
// HTTP exchange made through an instrumented client.
type DumpOutput interface {
	Write(id string, contents string)
}

type restyInstrument struct {
	tracer    trace.Tracer
	dump      DumpOutput
	idcounter atomic.Uint64
}

// InstrumentResty attaches tracing middleware to a resty client. `dump`
// may be nil, in which case no transcripts are written.
func InstrumentResty(client *resty.Client, tracerName string, dump DumpOutput) {
	i := &restyInstrument{
		tracer: otel.Tracer(tracerName),
		dump:   dump,
	}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i *restyInstrument) onBeforeRequest(cli *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(req.Context(), req.Method)
	req.SetContext(ctx)
	return nil
}

func (i *restyInstrument) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	span := trace.SpanFromContext(res.Request.Context())
	defer span.End()

	// res.Request.RawRequest is nil in onBeforeRequest, so the request
	// attributes can only be recorded here
	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)

	if i.dump != nil {
		id := strconv.FormatUint(i.idcounter.Add(1), 10)
		i.dump.Write(id, formatHttpMessage(res))
		slog.Debug(
			"request finished",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"message_id", id,
		)
	}

	return nil
}

func (i *restyInstrument) onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", req.Method))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	slog.Error(
		"request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
	)

	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}
}
