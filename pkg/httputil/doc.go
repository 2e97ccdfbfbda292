// Package httputil provides retry helpers for the listing client.
//
// # Retry
//
// [Retry] re-runs an operation when it fails with a transient error:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped with [Retryable] are retried; anything else is returned
// at once. The delay doubles after each failed attempt and the wait is
// abandoned when the context is cancelled:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := http.Get(url)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// A [Policy] carries attempt count and initial delay from configuration;
// its zero value uses the defaults (3 attempts, 1 second).
package httputil
