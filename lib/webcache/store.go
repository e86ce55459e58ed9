package webcache

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
	"webcache/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("lib/webcache")
var meter = otel.Meter("lib/webcache")
var fetchCounter, _ = meter.Int64Counter("webcache.fetches")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
const defaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"

type Options struct {
	// Timeout bounds a single GET attempt. Defaults to 5 seconds.
	Timeout time.Duration
	// RequestInterval is the minimum delay between consecutive network
	// requests. Defaults to 8 seconds.
	RequestInterval time.Duration
	// TTL is how long a cached entry stays valid. Zero means entries
	// never expire.
	TTL time.Duration
	// Headers are merged over the default browser-mimicking header set.
	Headers map[string]string
	// RandomUserAgent picks a fresh browser user-agent instead of the
	// built-in one.
	RandomUserAgent bool
	// DumpDir, when set, writes a transcript of every HTTP exchange
	// into the directory. Supports <dev_state> paths.
	DumpDir string
}

// Store resolves URLs into HTML, consulting the cache before touching
// the network. One instance owns its cache and pacer exclusively and
// must be used sequentially.
type Store struct {
	client *resty.Client
	cache  Cache
	pacer  *RequestPacer
	ttl    time.Duration
}

// Result is the outcome of a single Fetch call.
type Result struct {
	Html       string
	StatusCode int
	FromCache  bool
}

func NewStore(cache Cache, opts Options) (*Store, error) {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 5
	}
	if opts.RequestInterval == 0 {
		opts.RequestInterval = time.Second * 8
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	useragent := defaultUserAgent
	if opts.RandomUserAgent {
		useragent = browser.Random()
	}
	client.SetHeader("user-agent", useragent)
	client.SetHeader("accept", defaultAccept)
	for k, v := range opts.Headers {
		client.SetHeader(k, v)
	}
	client.SetTimeout(opts.Timeout)

	var dump telemetry.DumpOutput
	if opts.DumpDir != "" {
		fsdump, err := telemetry.NewFilesystemDump(opts.DumpDir)
		if err != nil {
			return nil, err
		}
		dump = fsdump
	}
	telemetry.InstrumentResty(client, "lib/webcache/http", dump)

	return &Store{
		client: client,
		cache:  cache,
		pacer:  NewRequestPacer(opts.RequestInterval),
		ttl:    opts.TTL,
	}, nil
}

// requestKey merges the extra query parameters into the URL. The result
// is both the request target and the cache key.
func requestKey(rawurl string, params map[string]string) (string, error) {
	if rawurl == "" {
		return "", fmt.Errorf("url is empty")
	}
	parsed, err := url.Parse(rawurl)
	if err != nil {
		return "", err
	}
	if !parsed.IsAbs() {
		return "", fmt.Errorf("url is not absolute: %s", rawurl)
	}
	if len(params) > 0 {
		query := parsed.Query()
		for k, v := range params {
			query.Set(k, v)
		}
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

func (s *Store) expired(entry Entry) bool {
	if s.ttl <= 0 {
		return false
	}
	return time.Since(entry.FetchedAt) >= s.ttl
}

// Fetch returns the HTML for a URL, serving from the cache when a fresh
// entry exists. On a miss it waits out the pacing interval, performs a
// single GET and stores the body if the server answered 200.
//
// A 404 yields ErrNotFound and a network-layer failure yields a
// *TransportError. Any other status is returned as data with nothing
// cached.
func (s *Store) Fetch(ctx context.Context, rawurl string, params map[string]string) (Result, error) {
	ctx, span := tracer.Start(ctx, "store:Fetch")
	defer span.End()

	key, err := requestKey(rawurl, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid url")
		return Result{}, err
	}
	span.SetAttributes(attribute.String("url", key))

	entry, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache lookup failed")
		return Result{}, err
	}
	if hit && !s.expired(entry) {
		slog.Debug("cache hit", "url", key)
		span.AddEvent("cache hit")
		fetchCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("from_cache", true)))
		return Result{
			Html:       entry.Html,
			StatusCode: entry.StatusCode,
			FromCache:  true,
		}, nil
	}
	if hit {
		slog.Debug("cache entry expired", "url", key, "fetched_at", entry.FetchedAt)
	}

	err = s.pacer.Wait(ctx)
	if err != nil {
		return Result{}, err
	}

	slog.Debug("sending request", "url", key)
	res, err := s.client.R().SetContext(ctx).Get(key)
	if err != nil {
		span.SetStatus(codes.Error, "transport failure")
		fetchCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("from_cache", false)))
		return Result{}, &TransportError{Url: key, Err: err}
	}

	status := res.StatusCode()
	span.SetAttributes(attribute.Int("status_code", status))
	fetchCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("from_cache", false)))

	switch status {
	case http.StatusNotFound:
		span.SetStatus(codes.Error, "webpage not found")
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	case http.StatusOK:
		err = s.cache.Put(ctx, key, Entry{
			Html:       res.String(),
			StatusCode: status,
			FetchedAt:  time.Now(),
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cache write failed")
			return Result{}, err
		}
		return Result{Html: res.String(), StatusCode: status}, nil
	default:
		// other statuses are data, not errors: the caller owns HTTP
		// semantics beyond 200/404
		slog.Debug("response was not cached", "url", key, "status", status)
		return Result{Html: res.String(), StatusCode: status}, nil
	}
}

// Purge wipes the whole cache. Administrative, never called on the
// fetch path.
func (s *Store) Purge(ctx context.Context) error {
	return s.cache.Purge(ctx)
}
