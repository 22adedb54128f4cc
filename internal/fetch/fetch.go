// Package fetch retrieves raw page markup. It knows nothing about page
// structure beyond the site's two error sentinels; parsing is the espn
// package's job.
package fetch

import (
	"context"
	"fmt"
)

// Fetcher retrieves one page of raw markup. Implementations retry transient
// failures internally and surface FetchError after exhaustion.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError means every retry attempt for a page failed.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PageNotFoundError means the site itself says the entity does not exist.
// It is permanent: no retry will change the answer.
type PageNotFoundError struct {
	URL string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page not found: %s", e.URL)
}

// Body sentinels the site renders instead of HTTP error codes.
const (
	sentinelNotFound  = "Page not found."
	sentinelPageError = "Page error"
)
