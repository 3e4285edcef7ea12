// Package tldr provides a cmdmend.Source backed by the tldr-pages
// project's raw markdown pages.
package tldr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/cmdmend"
	"golang.org/x/time/rate"
)

// DefaultBaseURL serves the raw markdown pages of the tldr-pages
// project.
const DefaultBaseURL = "https://raw.githubusercontent.com/tldr-pages/tldr/main/pages"

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// platforms are tried in order; common first, then the OS-specific
// directories.
var platforms = []string{"common", "linux", "osx"}

// Ensure Source implements cmdmend.Source at compile time.
var _ cmdmend.Source = (*Source)(nil)

// Source fetches tldr quick-reference pages over HTTP. A tool lookup
// probes several platform directories, so requests are paced with a
// rate limiter to stay polite to the upstream host.
type Source struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL overrides the pages base URL. Used in tests.
func WithBaseURL(url string) Option {
	return func(s *Source) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithRateLimit sets the request pacing in requests per second.
func WithRateLimit(rps float64) Option {
	return func(s *Source) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewSource creates a new tldr source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		baseURL: DefaultBaseURL,
		timeout: DefaultFetchTimeout,
		limiter: rate.NewLimiter(rate.Limit(4), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Tag returns the provenance tag for tldr pages.
func (s *Source) Tag() cmdmend.SourceTag {
	return cmdmend.SourceTldr
}

// Fetch returns the first tldr page found for the tool across
// platform directories. Returns ENOTFOUND when no platform has a page
// and EUNAVAILABLE when the host cannot be reached.
func (s *Source) Fetch(ctx context.Context, tool string) (string, error) {
	var unavailable error

	for _, platform := range platforms {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		url := fmt.Sprintf("%s/%s/%s.md", s.baseURL, platform, tool)
		text, err := s.fetchURL(ctx, url)
		if err != nil {
			if cmdmend.ErrorCode(err) == cmdmend.EUNAVAILABLE {
				unavailable = err
			}
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	if unavailable != nil {
		return "", unavailable
	}
	return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no tldr page for %q", tool)
}

func (s *Source) fetchURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "tldr unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "HTTP 404 for %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "failed to read tldr page: %v", err)
	}
	return string(body), nil
}
