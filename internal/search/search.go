package search

import "context"

// Result is a single item returned by a Provider.
type Result struct {
	Title   string
	URL     string
	Content string
}

// Provider executes a query and returns results.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
