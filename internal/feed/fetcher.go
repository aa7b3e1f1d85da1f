package feed

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

const acceptHeader = "application/atom+xml, application/xml;q=0.9, text/xml;q=0.8"

// FetchError signals a transport-level failure retrieving the feed:
// network error, timeout or a non-2xx response. Fatal to the sync run;
// the next scheduled trigger is the retry mechanism.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("feed fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Fetcher retrieves and parses the procurement feed.
type Fetcher struct {
	url        string
	maxEntries int
	client     *http.Client
	logger     *log.Logger
}

func NewFetcher(url string, timeout time.Duration, maxEntries int, logger *log.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{
		url:        url,
		maxEntries: maxEntries,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch retrieves the feed document and parses it into entries.
func (f *Fetcher) Fetch(ctx context.Context) ([]RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	entries, err := ParseFeed(resp.Body, f.maxEntries)
	if err != nil {
		return nil, err
	}

	f.logger.Printf("feed fetch | url=%s entries=%d cap=%d", f.url, len(entries), f.maxEntries)
	return entries, nil
}
