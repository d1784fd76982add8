package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScopedAPIPrefixesIds(t *testing.T) {
	mem := &MemoryAPI{}
	scoped := NewScopedAPI("govinfo", mem)

	scoped.ReportBroken("client.fetch", "boom")
	scoped.ReportWarning("sitemap.extract", "odd loc")
	scoped.ReportCount("client.list-all-bills", 3)

	broken := mem.Reports(KindBroken, "")
	require.Len(t, broken, 1)
	require.Equal(t, "govinfo: client.fetch", broken[0].Id)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	require.Len(t, mem.Reports(KindWarning, "sitemap.extract"), 1)
	require.Empty(t, mem.Reports(KindWarning, "client.fetch"))

	counts := mem.Reports(KindCount, "list-all-bills")
	require.Len(t, counts, 1)
	require.EqualValues(t, 3, counts[0].Count)
}

func TestSlogArgs(t *testing.T) {
	cause := errors.New("connection reset")
	require.Equal(t,
		[]any{"id", "govinfo: client.fetch", slog.Any("err", cause), "arg1", "/smap/bulkdata/BILLSTATUS/sitemapindex.xml"},
		slogArgs("govinfo: client.fetch", []any{cause, "/smap/bulkdata/BILLSTATUS/sitemapindex.xml"}),
	)
	require.Equal(t, []any{"arg0", 3}, slogArgs("", []any{3}))
}

func TestOtlpConnConfigPrefersGrpc(t *testing.T) {
	require.False(t, OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.useGrpc())
	require.True(t, OtlpConnConfig{
		GrpcEndpoint: "http://localhost:4317",
		HttpEndpoint: "http://localhost:4318",
	}.useGrpc())
}

func TestFormatRequestBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	require.NoError(t, err)
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(req))

	// resty installs a GetBody that yields no body for requests without one
	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(req))

	req, err = http.NewRequest(http.MethodPost, "https://example.com", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)
	require.Equal(t, "payload", formatRequestBody(req))
}

func TestFormatHeaders(t *testing.T) {
	require.Equal(t, "", formatHeaders(http.Header{}))
	require.Equal(t, "Accept: text/xml", formatHeaders(http.Header{"Accept": {"text/xml"}}))
}

func TestFilesystemOutputRecreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	require.NoError(t, os.MkdirAll(dir, 0777))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale"), nil, 0600))

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	output.Write("1", "GET /smap/bulkdata/BILLSTATUS/sitemapindex.xml")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f, err := os.Open(filepath.Join(dir, "1"))
	require.NoError(t, err)
	defer f.Close()
	contents, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Contains(t, string(contents), "sitemapindex.xml")
}

func newRecordingInstrument(t *testing.T) (instrumentResty, *tracetest.SpanRecorder, *MemoryAPI) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	mem := &MemoryAPI{}
	return instrumentResty{
		tel:       mem,
		tracer:    provider.Tracer("govinfo-billstatus/telemetry/test"),
		idcounter: new(uint64),
	}, recorder, mem
}

func TestOnErrorLeavesCallerSpanAlone(t *testing.T) {
	i, recorder, mem := newRecordingInstrument(t)

	ctx, caller := i.tracer.Start(context.Background(), "client:ListBills")
	req := resty.New().R().SetContext(ctx)
	req.Method = http.MethodGet

	// fails before onBeforeRequest ever ran
	i.onError(req, context.Canceled)

	require.Empty(t, recorder.Ended())
	require.Len(t, mem.Reports(KindBroken, report_resty_response), 1)

	caller.End()
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "client:ListBills", ended[0].Name())
}

func TestOnErrorEndsRequestSpan(t *testing.T) {
	i, recorder, mem := newRecordingInstrument(t)

	ctx, caller := i.tracer.Start(context.Background(), "client:FetchStatus")
	client := resty.New()
	req := client.R().SetContext(ctx)
	req.Method = http.MethodGet

	require.NoError(t, i.onBeforeRequest(client, req))
	i.onError(req, context.Canceled)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "http GET", ended[0].Name())
	require.Len(t, mem.Reports(KindBroken, report_resty_response), 1)

	caller.End()
	require.Len(t, recorder.Ended(), 2)
}
