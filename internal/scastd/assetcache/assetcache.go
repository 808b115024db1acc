// Package assetcache downloads remote media assets into a local
// download-once file cache.
package assetcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/slidecast/slidecast/internal/errors"
)

// Cache stores one file per distinct remote URL. Files are written once
// and reused on every subsequent poll; there is no eviction.
type Cache struct {
	dir        string
	httpClient *http.Client
}

// New creates a cache rooted at dir, creating it if needed.
func New(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: cache directory is required", errors.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir: dir,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Fetch returns the local path of the asset at url, downloading it first
// unless a file for that URL already exists. Download failures return
// errors.ErrAssetDownload so callers can skip the single item.
func (c *Cache) Fetch(ctx context.Context, url string) (string, error) {
	local := filepath.Join(c.dir, filenameFor(url))

	if _, err := os.Stat(local); err == nil {
		return local, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("checking cached asset: %w", err)
	}

	if err := c.download(ctx, url, local); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errors.ErrAssetDownload, url, err)
	}
	return local, nil
}

func (c *Cache) download(ctx context.Context, url, local string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// Write to a temp file and rename so a partial download never
	// satisfies the exists check on the next poll.
	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), local)
}

// filenameFor derives a stable cache filename from a remote URL: a hash
// of the URL plus the original extension, so the same asset is fetched
// exactly once across polls.
func filenameFor(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := "media_" + hex.EncodeToString(sum[:8])

	ext := strings.ToLower(path.Ext(strippedPath(url)))
	switch ext {
	case ".mp4", ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return name + ext
	default:
		if strings.Contains(strings.ToLower(url), ".mp4") {
			return name + ".mp4"
		}
		return name + ".png"
	}
}

func strippedPath(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}
