// Package cheat provides a cmdmend.Source backed by the cheat.sh
// community cheat sheet service.
package cheat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/cmdmend"
)

// DefaultBaseURL is the public cheat.sh endpoint.
const DefaultBaseURL = "https://cheat.sh"

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Source implements cmdmend.Source at compile time.
var _ cmdmend.Source = (*Source)(nil)

// Source fetches community cheat sheets over HTTP.
type Source struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL overrides the service base URL. Used in tests.
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

// NewSource creates a new cheat sheet source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		baseURL: DefaultBaseURL,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Tag returns the provenance tag for cheat sheets.
func (s *Source) Tag() cmdmend.SourceTag {
	return cmdmend.SourceCheat
}

// Fetch returns the cheat sheet for the tool. The ?T query parameter
// requests plain text without ANSI color codes. cheat.sh answers
// unknown tools with a 200 status and an "Unknown topic" body, so the
// body is inspected as well as the status.
func (s *Source) Fetch(ctx context.Context, tool string) (string, error) {
	url := fmt.Sprintf("%s/%s?T", s.baseURL, tool)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	// cheat.sh serves plain text to curl-like agents.
	req.Header.Set("User-Agent", "curl/8.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "cheat.sh unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no cheat sheet for %q", tool)
	}
	if resp.StatusCode != http.StatusOK {
		return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "failed to read cheat sheet: %v", err)
	}

	text := string(body)
	if strings.TrimSpace(text) == "" || strings.Contains(text, "Unknown topic.") {
		return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no cheat sheet for %q", tool)
	}
	return text, nil
}
