package mdrender

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alnah/go-mdrender/internal/fileutil"
)

// Fetcher transfers the bytes of an image. Implementations must honor ctx
// cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, source string) ([]byte, error)

// Fetch calls f(ctx, source).
func (f FetcherFunc) Fetch(ctx context.Context, source string) ([]byte, error) {
	return f(ctx, source)
}

// Default fetcher settings.
const (
	DefaultMaxImageBytes = 20 << 20
	DefaultUserAgent     = "go-mdrender"
	DefaultFetchTimeout  = 30 * time.Second
)

// HTTPFetcher loads images over http and https, and from file:// URLs.
// Payloads larger than MaxBytes fail with ErrImageTooLarge.
type HTTPFetcher struct {
	Client    *http.Client
	MaxBytes  int64
	UserAgent string
}

// NewHTTPFetcher returns an HTTPFetcher with default settings.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{},
		MaxBytes:  DefaultMaxImageBytes,
		UserAgent: DefaultUserAgent,
	}
}

// Fetch loads the bytes behind source.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	u, err := ValidateImageSource(source)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch strings.ToLower(u.Scheme) {
	case "file":
		data, err = f.fetchFile(ctx, u)
	default:
		data, err = f.fetchHTTP(ctx, u)
	}
	if errors.Is(err, fileutil.ErrLimitExceeded) {
		return nil, fmt.Errorf("%w: %v", ErrImageTooLarge, err)
	}
	return data, err
}

func (f *HTTPFetcher) fetchFile(ctx context.Context, u *url.URL) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := fileutil.PathFromFileURL(u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSource, err)
	}
	data, err := fileutil.ReadFileLimited(path, f.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (f *HTTPFetcher) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSource, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetchStatus, u.Redacted(), resp.Status)
	}
	if f.MaxBytes > 0 && resp.ContentLength > f.MaxBytes {
		return nil, fmt.Errorf("%w: content length %d exceeds %d", ErrImageTooLarge, resp.ContentLength, f.MaxBytes)
	}

	data, err := fileutil.ReadLimited(resp.Body, f.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u.Redacted(), err)
	}
	return data, nil
}
