package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagesmith/pkg/buildinfo"
	"github.com/matzehuels/pagesmith/pkg/cache"
	"github.com/matzehuels/pagesmith/pkg/errors"
)

// Defaults applied by NewFetcher.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3
	DefaultDelay    = 500 * time.Millisecond
	DefaultTTL      = 7 * 24 * time.Hour
	DefaultMaxBytes = 5 << 20
)

// Options configures a Fetcher. Zero values select defaults.
type Options struct {
	Client   *http.Client
	Cache    cache.Cache
	Logger   *log.Logger
	Attempts int
	Delay    time.Duration
	TTL      time.Duration
	MaxBytes int64
}

// Response is a fetched body.
type Response struct {
	Body        []byte `json:"body"`
	ContentType string `json:"contentType"`
	CacheHit    bool   `json:"-"`
}

// Fetcher downloads small remote assets. It is safe for concurrent use.
type Fetcher struct {
	opts Options
}

// NewFetcher creates a fetcher.
func NewFetcher(opts Options) *Fetcher {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Attempts < 1 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	return &Fetcher{opts: opts}
}

// Fetch returns the body at rawURL, from cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Response, error) {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return Response{}, errors.Validation("url", "only http and https URLs can be fetched")
	}

	key := "fetch:" + cache.Hash([]byte(rawURL))
	if data, ok, err := f.opts.Cache.Get(ctx, key); err == nil && ok {
		var res Response
		if err := json.Unmarshal(data, &res); err == nil {
			f.opts.Logger.Debug("fetch cache hit", "url", rawURL)
			res.CacheHit = true
			return res, nil
		}
	}

	var res Response
	err := cache.Retry(ctx, f.opts.Attempts, f.opts.Delay, func() error {
		var err error
		res, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return Response{}, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := f.opts.Cache.Set(ctx, key, data, f.opts.TTL); err != nil {
			f.opts.Logger.Warn("fetch cache write failed", "url", rawURL, "err", err)
		}
	}
	return res, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		return Response{}, cache.Retryable(fmt.Errorf("fetch %s: %w", rawURL, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Response{}, errors.New(errors.ErrCodeNotFound, "remote asset not found: %s", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Response{}, cache.Retryable(fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return Response{}, errors.New(errors.ErrCodeInvalidInput, "fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes+1))
	if err != nil {
		return Response{}, cache.Retryable(fmt.Errorf("read %s: %w", rawURL, err))
	}
	if int64(len(body)) > f.opts.MaxBytes {
		return Response{}, errors.Validation("url", "remote asset exceeds %d bytes", f.opts.MaxBytes)
	}
	return Response{Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}
