package dataset

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"student-analytics/internal/domain"
	"student-analytics/internal/httpx"
)

// Load reads a dataset from a local path or an http(s) URL.
func Load(ctx context.Context, src string) ([]domain.StudentRecord, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return FetchCSV(ctx, src)
	}
	return ReadCSV(src)
}

// FetchCSV downloads and parses a dataset CSV from a URL, retrying transient
// failures.
func FetchCSV(ctx context.Context, url string) ([]domain.StudentRecord, error) {
	client := &http.Client{Timeout: 2 * time.Minute}

	_, body, err := httpx.DoWithRetry(ctx, client, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}, httpx.DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("dataset: fetch %s: %w", url, err)
	}

	records, err := parseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", url, err)
	}
	return records, nil
}
