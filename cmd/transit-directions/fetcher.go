package main

import (
	"context"
	"fmt"
	"os"

	"github.com/theoremus-urban-solutions/transit-directions/directions"
)

// fileFetcher serves a saved directions response instead of calling the API.
// This is CLI-specific logic for offline rendering.
type fileFetcher struct {
	path string
}

func newFileFetcher(path string) *fileFetcher {
	return &fileFetcher{path: path}
}

func (f *fileFetcher) fetch(q directions.Query) (*directions.Response, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return directions.DecodeResponse(data)
}

// FetchAsync delivers one result, honouring cancellation like the HTTP client.
func (f *fileFetcher) FetchAsync(ctx context.Context, q directions.Query) <-chan directions.Result {
	out := make(chan directions.Result, 1)
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- directions.Result{Err: &directions.TransportError{URL: f.path, Err: err}}
			return
		}
		resp, err := f.fetch(q)
		out <- directions.Result{Response: resp, Err: err}
	}()
	return out
}
