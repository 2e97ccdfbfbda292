package rubylang

import (
	"context"
	"encoding/xml"
	"errors"
	"net/url"
	"strings"
	"time"

	rberrors "github.com/matzehuels/rbver/pkg/errors"
	"github.com/matzehuels/rbver/pkg/httputil"
	"github.com/matzehuels/rbver/pkg/integrations"
)

// DefaultBaseURL is the public Ruby release mirror.
const DefaultBaseURL = "http://ftp.ruby-lang.org"

// maxPages stops a listing whose continuation tokens never run out.
const maxPages = 100

// Query selects part of the bucket.
type Query struct {
	Prefix    string // e.g. "pub/ruby/" or "pub/ruby/2.0/"
	Delimiter string // "/" groups deeper keys into common prefixes; "" lists everything
}

// Listing is the text of the nodes rbver reads from a bucket listing,
// in the order the server returned them.
//
// Zero values: both slices are nil when the prefix is empty.
type Listing struct {
	Prefixes []string // CommonPrefixes/Prefix, e.g. "pub/ruby/2.0/"
	Keys     []string // Contents/Key, e.g. "pub/ruby/2.0/ruby-2.0.0-p648.zip"
}

// Client lists the S3-compatible bucket behind ftp.ruby-lang.org.
// It handles HTTP requests with retries and follows continuation tokens.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a listing client for baseURL ([DefaultBaseURL] if empty).
//
// Parameters:
//   - timeout: per-request timeout (0 for [integrations.DefaultTimeout])
//   - retry: retry policy for transient failures (zero value for defaults)
//   - userAgent: User-Agent header sent with every request ("" to omit)
func NewClient(baseURL string, timeout time.Duration, retry httputil.Policy, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	var headers map[string]string
	if userAgent != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return &Client{
		Client:  integrations.NewClient(timeout, retry, headers),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// List returns every common prefix and key under q.Prefix, following
// continuation tokens until the listing is complete.
//
// Returns:
//   - Listing with prefixes and keys on success (never nil if err is nil)
//   - NOT_FOUND coded error if the bucket answers 404
//   - NETWORK_ERROR coded error for timeouts, connection errors and bad statuses
//   - PARSE_ERROR coded error if a page is not a ListBucketResult document
func (c *Client) List(ctx context.Context, q Query) (*Listing, error) {
	listing := &Listing{}
	token := ""
	seen := map[string]bool{}

	for range maxPages {
		var page listBucketResult
		if err := c.GetXML(ctx, c.pageURL(q, token), &page); err != nil {
			return nil, classify(err, q.Prefix)
		}

		for _, p := range page.CommonPrefixes {
			listing.Prefixes = append(listing.Prefixes, p.Prefix)
		}
		for _, obj := range page.Contents {
			listing.Keys = append(listing.Keys, obj.Key)
		}

		if !page.IsTruncated {
			return listing, nil
		}
		token = page.NextContinuationToken
		if token == "" || seen[token] {
			return nil, rberrors.New(rberrors.ErrCodeParse, "list %s: truncated page without a new continuation token", q.Prefix)
		}
		seen[token] = true
	}
	return nil, rberrors.New(rberrors.ErrCodeParse, "list %s: more than %d pages", q.Prefix, maxPages)
}

func (c *Client) pageURL(q Query, token string) string {
	params := url.Values{}
	params.Set("list-type", "2")
	params.Set("delimiter", q.Delimiter)
	params.Set("prefix", q.Prefix)
	if token != "" {
		params.Set("continuation-token", token)
	}
	return c.baseURL + "/?" + params.Encode()
}

func classify(err error, prefix string) error {
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return rberrors.Wrap(rberrors.ErrCodeNotFound, err, "list %s", prefix)
	case errors.Is(err, integrations.ErrDecode):
		return rberrors.Wrap(rberrors.ErrCodeParse, err, "list %s", prefix)
	default:
		return rberrors.Wrap(rberrors.ErrCodeNetwork, err, "list %s", prefix)
	}
}

// listBucketResult is the ListObjectsV2 response body. The S3 namespace
// attribute is ignored; only local element names are matched.
type listBucketResult struct {
	XMLName               xml.Name       `xml:"ListBucketResult"`
	Name                  string         `xml:"Name"`
	Prefix                string         `xml:"Prefix"`
	IsTruncated           bool           `xml:"IsTruncated"`
	NextContinuationToken string         `xml:"NextContinuationToken"`
	Contents              []object       `xml:"Contents"`
	CommonPrefixes        []commonPrefix `xml:"CommonPrefixes"`
}

type object struct {
	Key  string `xml:"Key"`
	Size int64  `xml:"Size"`
}

type commonPrefix struct {
	Prefix string `xml:"Prefix"`
}
