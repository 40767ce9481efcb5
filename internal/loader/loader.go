// Package loader fetches source bytes and decodes them into playable assets.
//
// Every request carries a token from a monotonic counter. Only the result of
// the most recently issued request is accepted; results of earlier requests
// that complete late are discarded.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavelet/internal/audio"
)

// ErrStatus is returned when an HTTP source answers with a non-2xx status.
var ErrStatus = errors.New("unexpected http status")

const (
	// DefaultTimeout bounds a single HTTP fetch.
	DefaultTimeout = 30 * time.Second

	userAgent = "wavelet/1.0 (https://github.com/llehouerou/wavelet)"
)

// Request identifies one load.
type Request struct {
	Token uint64
	Ref   string
}

// Result is the outcome of a Fetch. Exactly one of Asset and Err is set.
type Result struct {
	Request
	Asset *audio.Asset
	Err   error
}

// Loader issues and resolves load requests. Begin and Accept may be called
// from any goroutine.
type Loader struct {
	httpClient *http.Client
	latest     atomic.Uint64
	logger     *log.Logger
}

// New creates a loader. A zero timeout selects DefaultTimeout.
func New(timeout time.Duration, logger *log.Logger) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithPrefix("loader"),
	}
}

// Begin issues a new request for ref. Any request issued earlier becomes
// stale.
func (l *Loader) Begin(ref string) Request {
	return Request{Token: l.latest.Add(1), Ref: ref}
}

// Latest returns the token of the most recent request, 0 if none.
func (l *Loader) Latest() uint64 {
	return l.latest.Load()
}

// Accept reports whether r belongs to the most recent request.
func (l *Loader) Accept(r Result) bool {
	if r.Token != l.Latest() {
		l.logger.Debug("discarding stale result", "ref", r.Ref, "token", r.Token, "latest", l.Latest())
		return false
	}
	return true
}

// Fetch reads and decodes the source for req. It is safe to call again for
// the same reference. Failures are logged and returned in Result.Err.
func (l *Loader) Fetch(ctx context.Context, req Request) Result {
	res := Result{Request: req}

	data, err := l.read(ctx, req.Ref)
	if err != nil {
		res.Err = fmt.Errorf("fetch %s: %w", req.Ref, err)
		l.logger.Error("load failed", "ref", req.Ref, "token", req.Token, "err", res.Err)
		return res
	}

	asset, err := audio.Decode(data, req.Ref)
	if err != nil {
		res.Err = fmt.Errorf("decode %s: %w", req.Ref, err)
		l.logger.Error("load failed", "ref", req.Ref, "token", req.Token, "err", res.Err)
		return res
	}

	l.logger.Info("loaded",
		"ref", req.Ref,
		"token", req.Token,
		"size", humanize.Bytes(uint64(len(data))),
		"format", asset.Info().Kind,
		"duration", asset.Duration(),
	)
	res.Asset = asset
	return res
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, errors.New("empty source reference")
	}
	u, err := url.Parse(ref)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l.get(ctx, ref)
		case "file":
			return readFile(u.Path)
		}
	}
	return readFile(ref)
}

func (l *Loader) get(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
