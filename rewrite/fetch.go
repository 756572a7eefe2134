package rewrite

import (
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/hashicorp/go-retryablehttp"
)

// ContentKind selects the rewrite path for a fetched body.
type ContentKind int

const (
	KindRaw ContentKind = iota
	KindHTML
	KindCSS
)

// RetryPolicy bounds retries of transient upstream failures (connection
// errors, 429 and retriable 5xx statuses).
type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// FetcherConfig is fixed at construction; the fetcher never mutates it.
type FetcherConfig struct {
	PageTimeout     time.Duration
	ResourceTimeout time.Duration
	Retry           RetryPolicy
	UserAgent       string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultFetcherConfig returns the stock budgets: a full page gets twice the
// time of a sub-resource.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		PageTimeout:     30 * time.Second,
		ResourceTimeout: 15 * time.Second,
		Retry:           RetryPolicy{MaxRetries: 3, MinWait: time.Second, MaxWait: 10 * time.Second},
		UserAgent:       defaultUserAgent,
	}
}

// Result is one fetched upstream response, already content-decoded.
// FinalURL is the post-redirect URL and must be used as the base for any
// reference resolution in the body.
type Result struct {
	FinalURL    string
	ContentType string
	Body        []byte
	Status      int
	Kind        ContentKind
}

// Fetcher performs upstream requests. Safe for concurrent use; the underlying
// client pools connections across requests.
type Fetcher struct {
	cfg    FetcherConfig
	client *retryablehttp.Client
}

// NewFetcher builds a fetcher, filling unset fields from the defaults.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	def := DefaultFetcherConfig()
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = def.PageTimeout
	}
	if cfg.ResourceTimeout <= 0 {
		cfg.ResourceTimeout = def.ResourceTimeout
	}
	if cfg.Retry.MaxRetries < 0 {
		cfg.Retry.MaxRetries = 0
	}
	if cfg.Retry.MinWait <= 0 {
		cfg.Retry.MinWait = def.Retry.MinWait
	}
	if cfg.Retry.MaxWait <= 0 {
		cfg.Retry.MaxWait = def.Retry.MaxWait
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retry.MaxRetries
	rc.RetryWaitMin = cfg.Retry.MinWait
	rc.RetryWaitMax = cfg.Retry.MaxWait
	rc.Logger = nil

	return &Fetcher{cfg: cfg, client: rc}
}

// FetchPage fetches a full document within the page budget. A POST with form
// fields forwards them as a form-encoded body.
func (f *Fetcher) FetchPage(ctx context.Context, target, method string, form url.Values) (*Result, error) {
	return f.fetch(ctx, target, method, form, f.cfg.PageTimeout)
}

// FetchResource fetches a sub-resource within the shorter resource budget.
func (f *Fetcher) FetchResource(ctx context.Context, target string) (*Result, error) {
	return f.fetch(ctx, target, http.MethodGet, nil, f.cfg.ResourceTimeout)
}

func (f *Fetcher) fetch(ctx context.Context, target, method string, form url.Values, budget time.Duration) (*Result, error) {
	target = NormalizeTarget(target)
	if !IsValid(target) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, target)
	}

	var req *retryablehttp.Request
	var err error
	if method == http.MethodPost && len(form) > 0 {
		req, err = retryablehttp.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = retryablehttp.NewRequest(http.MethodGet, target, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()
	req = req.WithContext(ctx)

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	// Setting Accept-Encoding explicitly disables net/http's transparent
	// gzip handling, so the body is decoded below.
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	defer resp.Body.Close()

	body, err := readDecodedBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading upstream body: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	return &Result{
		FinalURL:    resp.Request.URL.String(),
		ContentType: ct,
		Body:        body,
		Status:      resp.StatusCode,
		Kind:        classifyContentType(ct),
	}, nil
}

func readDecodedBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		if gr, err := gzip.NewReader(resp.Body); err == nil {
			defer gr.Close()
			reader = gr
		}
	case "deflate":
		if zr, err := zlib.NewReader(resp.Body); err == nil {
			defer zr.Close()
			reader = zr
		} else {
			reader = flate.NewReader(resp.Body)
		}
	case "br":
		reader = brotli.NewReader(resp.Body)
	}
	return io.ReadAll(reader)
}

func classifyContentType(ct string) ContentKind {
	s := strings.ToLower(ct)
	switch {
	case strings.Contains(s, "text/html"):
		return KindHTML
	case strings.Contains(s, "text/css"):
		return KindCSS
	default:
		return KindRaw
	}
}

func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", ErrUpstreamConnect, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrUpstreamConnect, err)
	}
	return fmt.Errorf("fetching upstream: %w", err)
}
