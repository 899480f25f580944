// Package bunny uploads product images to Bunny storage; files are served
// back through the pull zone CDN URL.
package bunny

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	storageZone string
	accessKey   string
	pullZone    string
	storageHost string
	httpc       *http.Client
}

func New(storageZone, accessKey, pullZone, storageHost string) *Client {
	return &Client{
		storageZone: storageZone,
		accessKey:   accessKey,
		pullZone:    strings.TrimSuffix(pullZone, "/"),
		storageHost: storageHost,
		httpc:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload PUTs the file into the storage zone and returns its public CDN URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, contentType string) (string, error) {
	escaped := url.PathEscape(filename)
	endpoint := fmt.Sprintf("https://%s/%s/%s", c.storageHost, c.storageZone, escaped)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, r)
	if err != nil {
		return "", err
	}
	req.Header.Set("AccessKey", c.accessKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("bunny: upload returned %d: %s", resp.StatusCode, snippet)
	}
	return c.pullZone + "/" + escaped, nil
}
