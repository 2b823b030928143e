// Package fetch retrieves source document bytes for a compositing pass.
// References starting with http:// or https:// are fetched over the
// network; anything else is resolved as a path under a fixed root
// directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrSourceUnavailable wraps every retrieval failure: network errors,
// non-2xx responses, missing files and oversized documents.
var ErrSourceUnavailable = errors.New("source unavailable")

// Client resolves document references. The HTTP client carries an explicit
// timeout so a stalled remote can never hang a pass; requests are
// additionally cancellable through the caller's context.
type Client struct {
	http     *http.Client
	root     string
	maxBytes int64
}

// NewClient returns a Client resolving relative references under root. A
// maxBytes of zero disables the size ceiling.
func NewClient(root string, timeout time.Duration, maxBytes int64) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		root:     root,
		maxBytes: maxBytes,
	}
}

// Get fetches the bytes behind ref.
func (c *Client) Get(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return c.getHTTP(ctx, ref)
	}
	return c.getFile(ref)
}

func (c *Client) getHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetching %s returned status %d", ErrSourceUnavailable, url, resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		body = io.LimitReader(resp.Body, c.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrSourceUnavailable, c.maxBytes)
	}
	return data, nil
}

func (c *Client) getFile(ref string) ([]byte, error) {
	// confine the path to the configured root
	rel := filepath.Clean("/" + filepath.FromSlash(ref))
	path := filepath.Join(c.root, rel)

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if c.maxBytes > 0 && fi.Size() > c.maxBytes {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrSourceUnavailable, c.maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return data, nil
}
