package boundaries

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher is the transport collaborator: given a source URL, return the raw
// boundary document or fail. The store never retries a fetch; a failure marks
// the collection failed for the life of the process.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches boundary files over plain HTTP GET, the reference
// deployment's transport (static GeoJSON files behind a CDN).
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			// Boundary files run to several MB; generous but bounded.
			Timeout: 60 * time.Second,
		},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating boundary request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching boundary data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("boundary fetch returned HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading boundary response: %w", err)
	}
	return data, nil
}
