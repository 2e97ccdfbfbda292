// Package server serves the Ruby release catalog over HTTP.
//
// Routes:
//
//	GET /               HTML page, one section per release family
//	GET /versions.json  the catalog as an ordered JSON object
//	GET /healthz        liveness and cache counters; never touches the network
//
// Every request gets an X-Request-Id (kept from the client when it is a
// UUID) and one log line. When the catalog cannot be built the response is
// 502 if the release listing failed and 500 otherwise, always with the body
// "failed to load ruby versions". Earlier catalogs are not served in place
// of a failed build.
package server
