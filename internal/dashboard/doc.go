// Package dashboard assembles the JSON views served by the HTTP API.
//
// Every view degrades to an empty result when the upstream API is
// unavailable; failures are logged, never returned.
package dashboard
