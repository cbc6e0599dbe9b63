// Package fetch retrieves remote documents over HTTP and normalizes them
// to markdown for conversion.
//
// The client resolves hostnames itself and refuses loopback, private,
// link-local, and unspecified addresses unless explicitly allowed, then
// dials the vetted IP directly. HTML responses are converted to markdown;
// markdown and plain text pass through unchanged.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html/charset"
)

// Sentinel errors for fetch operations.
var (
	ErrInvalidURL         = errors.New("invalid URL")
	ErrBlockedHost        = errors.New("blocked host")
	ErrTooManyRedirects   = errors.New("too many redirects")
	ErrBodyTooLarge       = errors.New("response body too large")
	ErrUnsupportedContent = errors.New("unsupported content type")
	ErrHTTPStatus         = errors.New("unexpected HTTP status")
)

// Defaults applied by NewFetcher.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxBodySize = 10 << 20 // 10 MiB
	DefaultUserAgent   = "md2text"
)

// maxRedirects caps redirect chains.
const maxRedirects = 5

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the total request timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxBodySize caps the response body in bytes. Non-positive values keep
// the default.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithAllowPrivateHosts disables the private-address guard. Intended for
// operators fetching from internal documentation hosts.
func WithAllowPrivateHosts(allow bool) Option {
	return func(f *Fetcher) {
		f.allowPrivate = allow
	}
}

// Result is a fetched document normalized to markdown.
type Result struct {
	Markdown    string // document content, converted from HTML if needed
	ContentType string // Content-Type of the response
	FinalURL    string // URL after redirects
}

// Fetcher retrieves documents with SSRF protection and size limits.
// A Fetcher is safe for concurrent use.
type Fetcher struct {
	client       *http.Client
	converter    *converter.Converter
	timeout      time.Duration
	maxBodySize  int64
	userAgent    string
	allowPrivate bool
}

// NewFetcher creates a Fetcher with the given options applied over the
// defaults.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = newGuardedClient(f.timeout, f.allowPrivate)
	f.converter = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return f
}

// Fetch retrieves rawURL and returns its content as markdown. Only http and
// https URLs are accepted.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q (only http and https are fetchable)", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html, text/markdown;q=0.9, text/plain;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d fetching %s", ErrHTTPStatus, resp.StatusCode, rawURL)
	}

	body, err := f.readCapped(resp.Body)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	markdown, err := f.normalizeBody(body, contentType)
	if err != nil {
		return nil, err
	}

	return &Result{
		Markdown:    markdown,
		ContentType: contentType,
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// readCapped reads at most maxBodySize bytes. An over-limit body is an
// error, not a truncation: partial documents convert to misleading text.
func (f *Fetcher) readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, f.maxBodySize)
	}
	return data, nil
}

// normalizeBody decodes the body to UTF-8 and converts HTML to markdown.
// Markdown and plain text pass through; other media types are rejected.
func (f *Fetcher) normalizeBody(body []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContent, contentType)
	}

	switch mediaType {
	case "text/html", "application/xhtml+xml":
		decoded, err := decodeCharset(body, contentType)
		if err != nil {
			return "", err
		}
		markdown, err := f.converter.ConvertString(string(decoded))
		if err != nil {
			return "", fmt.Errorf("converting HTML: %w", err)
		}
		return markdown, nil
	case "text/markdown", "text/x-markdown", "text/plain":
		decoded, err := decodeCharset(body, contentType)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContent, mediaType)
	}
}

// decodeCharset converts body to UTF-8 based on the Content-Type charset
// parameter, falling back to content sniffing.
func decodeCharset(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding charset: %w", err)
	}
	return decoded, nil
}

// newGuardedClient builds an HTTP client whose dialer resolves hostnames,
// vets every resolved address, and then dials the vetted IP directly so a
// second resolution cannot swap in a different address.
func newGuardedClient(timeout time.Duration, allowPrivate bool) *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, err
			}
			if len(ips) == 0 {
				return nil, fmt.Errorf("%w: no addresses for %s", ErrBlockedHost, host)
			}
			if !allowPrivate {
				for _, ipAddr := range ips {
					if isBlockedIP(ipAddr.IP) {
						return nil, fmt.Errorf("%w: %s resolves to %s", ErrBlockedHost, host, ipAddr.IP)
					}
				}
			}
			return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
		},
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		// The dialer re-vets every hop, so redirects only need the hop cap
		// and a scheme check here.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, maxRedirects)
			}
			if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
				return fmt.Errorf("%w: redirect to scheme %q", ErrInvalidURL, req.URL.Scheme)
			}
			return nil
		},
	}
}

// isBlockedIP reports whether ip is loopback, private, link-local, or
// unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
