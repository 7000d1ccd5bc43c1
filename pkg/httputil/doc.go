// Package httputil provides HTTP utilities for the PyPI registry client.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped with [RetryableError] are retried; anything else
// (404s, decode errors) fails fast. The delay doubles after each failed
// attempt and the context cancels the wait between attempts.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.fetch(ctx, pkg, &info)
//	})
package httputil
