// Package network provides the HTTP capability used to fetch remote playlists and stream manifests.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/key"
)

// FetchText retrieves the body of a remote text resource (playlist or manifest).
// A non-2xx status is reported as an error; the body is never partially returned.
// Optional headers are passed through verbatim, letting callers forward
// provider-specific authentication.
func FetchText(ctx context.Context, url string, headers map[string]string) (string, error) {
	return fetch(ctx, url, headers, 0)
}

// FetchPrefix retrieves at most maxBytes of the body. The connection is
// closed as soon as the prefix is read, so it is safe against endless
// bodies (live media streams).
func FetchPrefix(ctx context.Context, url string, headers map[string]string, maxBytes int64) (string, error) {
	return fetch(ctx, url, headers, maxBytes)
}

func fetch(ctx context.Context, url string, headers map[string]string, maxBytes int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", viper.GetString(key.PlaylistUserAgent))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := Client
	if viper.GetBool(key.NetworkTLSSpoof) {
		client = SpoofedClient()
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	var reader io.Reader = resp.Body
	if maxBytes > 0 {
		reader = io.LimitReader(resp.Body, maxBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
