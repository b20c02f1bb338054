package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperview/internal/logging"
)

// maxSourceBytes caps how much of a remote response is read.
const maxSourceBytes = 64 << 20

// Loader retrieves and parses the source resource.
type Loader struct {
	// Client fetches http(s) locations. nil uses a client with Timeout.
	Client *http.Client
	// BaseDir resolves relative file locations. Empty means the working directory.
	BaseDir string
	// Timeout bounds a remote fetch when Client is nil.
	Timeout time.Duration
	// Delimiter separates fields; 0 means ','.
	Delimiter rune
}

// StatusError is returned by Fetch for non-success HTTP responses.
type StatusError struct {
	Location string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP error! status: %d", e.Location, e.Code)
}

// IsRemote reports whether location is fetched over HTTP.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch returns the raw bytes at location.
func (l *Loader) Fetch(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return l.fetchRemote(ctx, location)
	}

	path := location
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) fetchRemote(ctx context.Context, location string) ([]byte, error) {
	client := l.Client
	if client == nil {
		timeout := l.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", location, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Location: location, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", location, err)
	}
	return data, nil
}

// LoadE fetches and parses location, returning any failure.
func (l *Loader) LoadE(ctx context.Context, location string) (*Dataset, error) {
	data, err := l.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	ds, err := ParseWith(bytes.NewReader(data), ParseOptions{Delimiter: l.Delimiter})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return ds, nil
}

// Load fetches and parses location. Any failure is logged and yields an
// empty dataset; nothing partial is kept and nothing is retried.
func (l *Loader) Load(ctx context.Context, location string) *Dataset {
	log := logging.Get(logging.CategoryLoader)
	started := time.Now()

	ds, err := l.LoadE(ctx, location)
	if err != nil {
		log.Error("Error loading papers: %v", err)
		return Empty()
	}

	log.Info("loaded %d records (%d columns) from %s in %s", ds.Len(), len(ds.Columns), location, time.Since(started))
	return ds
}
