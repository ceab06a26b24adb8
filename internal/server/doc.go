// Package server exposes the audit engine's network collaborators over HTTP.
//
// The endpoints proxy page fetches, DNS lookups, and TLS inspections for
// clients that cannot perform them directly, such as browsers blocked by
// CORS. All handlers are thin adapters over fetch.Client; no audit logic
// lives here.
package server
