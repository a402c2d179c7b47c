package svgtint

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPTintRequest configures HTTPTint.
type HTTPTintRequest struct {
	URL       string
	Client    *http.Client
	Writer    io.Writer
	Style     Style
	Options   Options
	ChunkSize int
}

// HTTPTint fetches an SVG over HTTP(S) and streams the tinted body to Writer.
func HTTPTint(ctx context.Context, req HTTPTintRequest) (TintResult, error) {
	if req.URL == "" {
		return TintResult{}, fmt.Errorf("tint http: URL is required")
	}
	if req.Writer == nil {
		return TintResult{}, fmt.Errorf("tint http: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return TintResult{}, fmt.Errorf("tint http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return TintResult{}, fmt.Errorf("tint http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "image/svg+xml, */*;q=0.8")
	resp, err := client.Do(httpReq)
	if err != nil {
		return TintResult{}, fmt.Errorf("tint http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return TintResult{}, fmt.Errorf("tint http: status %s", resp.Status)
	}
	return Tint(TintRequest{
		Reader:    resp.Body,
		Writer:    req.Writer,
		Style:     req.Style,
		Options:   req.Options,
		ChunkSize: req.ChunkSize,
	})
}
