// Package source fetches raw ocean heat content csv text from files or HTTP endpoints.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyLocation = errors.New("no data location configured")
	ErrBadStatus     = errors.New("unexpected http status")
	ErrBodyTooLarge  = errors.New("response body exceeds size limit")
)

const (
	// CacheBustParam is the query parameter appended to HTTP requests to defeat intermediate caches.
	CacheBustParam = "cachebust"

	DefaultMaxBodySize int64 = 32 << 20
)

// Fetcher returns the raw csv text of a data set.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// File reads csv text from a local path.
type File struct {
	Path string
}

func (f File) Fetch(ctx context.Context) (string, error) {
	if f.Path == "" {
		return "", ErrEmptyLocation
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("unable to read %s, %w", f.Path, err)
	}
	return string(b), nil
}

func (f File) String() string {
	return f.Path
}

// HTTP fetches csv text with a GET request. Bodies larger than MaxBodySize are rejected, a zero
// MaxBodySize uses DefaultMaxBodySize.
type HTTP struct {
	URL         string
	Client      *http.Client
	Now         func() time.Time
	MaxBodySize int64
}

func (h HTTP) Fetch(ctx context.Context) (string, error) {
	if h.URL == "" {
		return "", ErrEmptyLocation
	}

	u, err := h.cacheBustedURL()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("unable to build request for %s, %w", h.URL, err)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to fetch %s, %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s returned %d, %w", h.URL, resp.StatusCode, ErrBadStatus)
	}

	limit := h.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("unable to read body from %s, %w", h.URL, err)
	}
	if int64(len(b)) > limit {
		return "", fmt.Errorf("%s sent more than %d bytes, %w", h.URL, limit, ErrBodyTooLarge)
	}
	return string(b), nil
}

func (h HTTP) String() string {
	return h.URL
}

func (h HTTP) cacheBustedURL() (string, error) {
	u, err := url.Parse(h.URL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q, %w", h.URL, err)
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	q := u.Query()
	q.Set(CacheBustParam, strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Static serves fixed text. An empty Err returns Text.
type Static struct {
	Text string
	Err  error
}

func (s Static) Fetch(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}

func (s Static) String() string {
	return "static"
}

// FromLocation picks an HTTP source for http(s) URLs and a file source otherwise.
func FromLocation(loc string, client *http.Client) (Fetcher, error) {
	loc = strings.TrimSpace(loc)
	switch {
	case loc == "":
		return nil, ErrEmptyLocation
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return HTTP{URL: loc, Client: client}, nil
	default:
		return File{Path: loc}, nil
	}
}
