package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/matzehuels/wheelhouse/pkg/cache"
	"github.com/matzehuels/wheelhouse/pkg/errors"
	"github.com/matzehuels/wheelhouse/pkg/httputil"
	"github.com/matzehuels/wheelhouse/pkg/reqs"
)

const (
	defaultBaseURL = "https://pypi.org/pypi"
	httpTimeout    = 10 * time.Second
	cachePrefix    = "pypi:"
)

// PackageInfo holds metadata for a Python package from PyPI.
//
// Zero values: all string fields are empty. The struct is safe for
// concurrent reads after construction.
type PackageInfo struct {
	Name           string `json:"name"`            // Normalized package name (never empty in valid info)
	Version        string `json:"version"`         // Latest version string (never empty in valid info)
	Summary        string `json:"summary"`         // Short package description (may be empty)
	RequiresPython string `json:"requires_python"` // Interpreter constraint, e.g. ">=3.8" (may be empty)
}

// Client provides access to the PyPI package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// NewClient creates a PyPI client with the given cache backend.
//
// Parameters:
//   - backend: cache backend for responses (use cache.NewNullCache() for no caching)
//   - cacheTTL: how long responses stay fresh (typical: 1-24 hours)
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		ttl:     cacheTTL,
		baseURL: defaultBaseURL,
	}
}

// FetchPackage retrieves metadata for a Python package from PyPI.
//
// The pkg parameter is normalized automatically per PEP 503. If refresh
// is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - PackageInfo populated with metadata on success
//   - a PACKAGE_NOT_FOUND error if the package doesn't exist
//   - a NETWORK_ERROR for HTTP failures (timeout, 5xx, etc.)
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = reqs.Normalize(pkg)
	key := cachePrefix + pkg

	var info PackageInfo
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(data, &info); err == nil {
				return &info, nil
			}
		}
	}

	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(info); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, pkg)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetching %s", pkg))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodePackageNotFound, "pypi package %s not found", pkg)
	case resp.StatusCode >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "pypi returned status %d for %s", resp.StatusCode, pkg))
	default:
		return errors.New(errors.ErrCodeNetwork, "pypi returned status %d for %s", resp.StatusCode, pkg)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decoding pypi response for %s", pkg)
	}

	*info = PackageInfo{
		Name:           reqs.Normalize(data.Info.Name),
		Version:        data.Info.Version,
		Summary:        data.Info.Summary,
		RequiresPython: data.Info.RequiresPython,
	}
	return nil
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	Summary        string `json:"summary"`
	RequiresPython string `json:"requires_python"`
}
