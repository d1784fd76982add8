// client.go wires the transport that every bulk-data operation in this package goes through.

package govinfo

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"govinfo-billstatus/internal/components/assert"
	"govinfo-billstatus/internal/components/fanout"
	"govinfo-billstatus/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch           = "client.fetch"
	report_client_current_session = "client.current-session"
	report_client_list_bills      = "client.list-bills"
	report_client_list_all_bills  = "client.list-all-bills"
	report_client_fetch_status    = "client.fetch-status"
	report_client_latest_action   = "client.latest-action"
	report_client_filter_action   = "client.filter-by-action"
	report_client_summary         = "client.summary"
	report_sitemap_extract        = "sitemap.extract"
)

const DefaultBaseUrl = "https://www.govinfo.gov"

var tracer = otel.Tracer("govinfo-billstatus/scrapers/govinfo")

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// Timeout is applied to every request, 0 means 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing requests, 0 disables throttling.
	RequestsPerSecond float64
	// MaxConcurrency bounds each fan-out, 0 means one request per item at once.
	MaxConcurrency int
	// Policy decides what a fan-out does when some of its requests fail.
	Policy fanout.Policy
	// CloudflareBypass wraps the transport with browser-like TLS and headers.
	CloudflareBypass bool
	UserAgent        string
	// DumpOutput receives every request/response pair when set.
	DumpOutput telemetry.Output

	// Fetcher replaces the HTTP transport entirely, the options above that
	// configure HTTP are then ignored.
	Fetcher Fetcher
}

// Client is a read-only crawler over the BILLSTATUS bulk-data sitemaps.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	fetcher Fetcher
	tel     telemetry.API
	limit   int
	policy  fanout.Policy
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("govinfo", tel)

	fetcher := opts.Fetcher
	if fetcher == nil {
		httpClient, err := newHttpClient(opts, tel)
		if err != nil {
			return Client{}, err
		}
		fetcher = restyFetcher{http: httpClient}
	}

	return Client{
		fetcher: fetcher,
		tel:     tel,
		limit:   opts.MaxConcurrency,
		policy:  opts.Policy,
	}, nil
}

func newHttpClient(opts ClientOptions, tel telemetry.API) (*resty.Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsedBaseUrl.Scheme == "" || parsedBaseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseUrl)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		httpClient.SetHeader("user-agent", opts.UserAgent)
	}
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(timeout)

	// instrumentation goes first so a request failing in the rate limiter
	// still has its own span
	telemetry.InstrumentResty(httpClient, tel, opts.DumpOutput)

	if opts.RequestsPerSecond > 0 {
		burst := int(math.Ceil(opts.RequestsPerSecond))
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	return httpClient, nil
}

func (c Client) fanoutOptions() fanout.Options {
	return fanout.Options{Limit: c.limit, Policy: c.policy}
}
