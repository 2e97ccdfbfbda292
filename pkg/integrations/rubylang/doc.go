// Package rubylang lists the release bucket behind ftp.ruby-lang.org.
//
// The mirror is an S3-compatible bucket. A ListObjectsV2 request with a "/"
// delimiter returns the "directories" directly below a prefix as common
// prefixes and the files as keys:
//
//	client := rubylang.NewClient("", 10*time.Second, httputil.Policy{}, "rbver")
//	root, err := client.List(ctx, rubylang.Query{Prefix: "pub/ruby/", Delimiter: "/"})
//	// root.Prefixes: ["pub/ruby/1.8/", "pub/ruby/2.0/", ...]
//
// Truncated listings are followed through their continuation tokens, so a
// [Listing] is always complete. Failures are returned as coded errors from
// [github.com/matzehuels/rbver/pkg/errors].
package rubylang
