package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/cwbudde/algo-diffspec/fault"
)

const (
	// DefaultRetries is the number of extra attempts after a failed fetch.
	DefaultRetries = 3
	// DefaultTimeout bounds one request/response exchange. Connecting is
	// not bounded separately.
	DefaultTimeout = 2 * time.Second

	maxRedirects = 10
)

var (
	// ErrStatus reports a response status other than 200 or 206.
	ErrStatus = errors.New("unexpected response status")
	// ErrBodyLength reports a body that does not match the requested range.
	ErrBodyLength = errors.New("response body does not match requested range")
	// ErrNoRanges reports a server that does not advertise byte ranges.
	ErrNoRanges = errors.New("server does not accept range requests")
	// ErrBadURL reports a locator that is not an absolute http(s) URL.
	ErrBadURL = errors.New("malformed URL")
)

// Client issues HEAD probes and ranged GETs.
type Client struct {
	http    *http.Client
	retries int
	timeout time.Duration
	limiter *rate.Limiter
	log     zerolog.Logger
}

// Option mutates a Client under construction.
type Option func(*Client)

// WithRetries sets the number of extra attempts after a failed fetch.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests at rps per second. Zero or less
// leaves requests unlimited.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New returns a Client with the given options applied over the defaults.
func New(opts ...Option) *Client {
	c := &Client{
		http:    defaultHTTPClient(),
		retries: DefaultRetries,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func defaultHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{KeepAlive: 30 * time.Second}).DialContext
	return &http.Client{Transport: transport}
}

// Retries returns the configured number of extra attempts.
func (c *Client) Retries() int { return c.retries }

// Ping checks that rawURL is well formed, resolves with status 200 and
// advertises byte-range support on some hop of its redirect chain, the last
// advertisement winning. It transfers no resource data.
func (c *Client) Ping(ctx context.Context, rawURL string) error {
	op := "ping " + rawURL

	if err := checkURL(rawURL); err != nil {
		return fault.Capability(op, err)
	}

	status, header, err := c.head(ctx, rawURL)
	if err != nil {
		return fault.Capability(op, err)
	}

	if status != http.StatusOK {
		return fault.Capability(op, fmt.Errorf("%w: %d", ErrStatus, status))
	}
	if !strings.EqualFold(lastHeader(header, "Accept-Ranges"), "bytes") {
		return fault.Capability(op, ErrNoRanges)
	}

	c.log.Debug().Str("url", rawURL).Int("status", status).Msg("ping")
	return nil
}

// Size returns the Content-Length of the resource at rawURL after
// following redirects. The last value sent by any hop wins. A missing or
// unparsable length yields 0.
func (c *Client) Size(ctx context.Context, rawURL string) (int64, error) {
	_, header, err := c.head(ctx, rawURL)
	if err != nil {
		return 0, fault.Capability("probe "+rawURL, err)
	}

	size, err := strconv.ParseInt(lastHeader(header, "Content-Length"), 10, 64)
	if err != nil || size < 0 {
		return 0, nil
	}
	return size, nil
}

// Fetch returns the bytes of rawURL in [from, to). Failed attempts are
// retried immediately; after 1+Retries failed attempts the last error is
// returned as a remote fetch error.
func (c *Client) Fetch(ctx context.Context, rawURL string, from, to int64) ([]byte, error) {
	op := fmt.Sprintf("fetch %s [%d,%d)", rawURL, from, to)
	if from < 0 || to <= from {
		return nil, fault.Fetch(op, errors.New("empty or negative range"))
	}

	attempts := 1 + c.retries
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		data, err := c.fetchOnce(ctx, rawURL, from, to)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fault.Fetch(op, fmt.Errorf("cancelled after %d attempts: %w", attempt, ctx.Err()))
		}

		c.log.Debug().
			Err(err).
			Str("url", rawURL).
			Int64("from", from).
			Int64("to", to).
			Int("attempt", attempt).
			Int("attempts", attempts).
			Msg("range fetch failed")
	}

	return nil, fault.Fetch(op, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr))
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string, from, to int64) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", from, to-1))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	want := to - from
	body, err := io.ReadAll(io.LimitReader(resp.Body, want+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBodyLength, len(body), want)
	}

	return body, nil
}

// head issues a HEAD request and returns the final status together with
// the headers of every hop, in order, so lastHeader resolves across the
// whole redirect chain.
func (c *Client) head(ctx context.Context, rawURL string) (int, http.Header, error) {
	if err := c.wait(ctx); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}

	merged := make(http.Header)
	hc := *c.http
	hc.CheckRedirect = func(next *http.Request, via []*http.Request) error {
		if next.Response != nil {
			appendHeader(merged, next.Response.Header)
		}
		if c.http.CheckRedirect != nil {
			return c.http.CheckRedirect(next, via)
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	_ = resp.Body.Close()

	appendHeader(merged, resp.Header)
	return resp.StatusCode, merged, nil
}

func appendHeader(dst, src http.Header) {
	for k, vs := range src {
		dst[k] = append(dst[k], vs...)
	}
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func checkURL(rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrBadURL, rawURL)
	}
	return nil
}

// lastHeader returns the last value of key, so repeated headers resolve to
// the value sent last.
func lastHeader(h http.Header, key string) string {
	values := h.Values(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[len(values)-1])
}
