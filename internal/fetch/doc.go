// Package fetch retrieves the raw material the checks inspect: page bodies
// with response headers, DNS records, and TLS certificate details.
//
// The package draws a hard line between transport failure and server failure.
// A page that answers 404 or 500 is still a successfully fetched page; the
// status code is part of the observation and several checks depend on seeing
// it. Only a transport-level failure (DNS resolution of the target itself,
// connection refused, timeout) is an error.
//
// Similarly, a DNS query that resolves but has no records of the requested
// type returns an empty record list, not an error. "No SPF record" is a
// finding, not a fault.
package fetch
