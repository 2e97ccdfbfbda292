// Package integrations provides HTTP clients for remote release listings.
//
// # Overview
//
// Each remote source has its own subpackage:
//
//   - [rubylang]: the S3-style bucket listing behind ftp.ruby-lang.org
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all source
// clients:
//
//   - a request timeout ([DefaultTimeout] unless configured)
//   - retries with exponential backoff for network errors and 5xx responses
//   - default request headers (User-Agent)
//   - status mapping to [ErrNotFound] and [ErrNetwork]
//
// Decoding failures are reported as [ErrDecode]. Source clients translate
// these sentinels into coded errors from pkg/errors at their boundary.
//
// [rubylang]: github.com/matzehuels/rbver/pkg/integrations/rubylang
package integrations
