package fetch

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupportedRecordType is returned by DNS for record types other than
// A, CNAME, and TXT.
var ErrUnsupportedRecordType = errors.New("unsupported DNS record type")

// Client retrieves the observations checks run against.
//
// Design decision: Checks depend on this interface rather than on the
// concrete HTTP client so tests can substitute canned responses without a
// network, and so the proxy server can expose the same operations over HTTP
// with a single implementation behind both surfaces.
type Client interface {
	// Page fetches a URL and returns its body, headers, and final status.
	// An HTTP error status is not an error; only transport failure is.
	Page(ctx context.Context, rawURL string) (*Page, error)

	// DNS resolves records of the given type ("A", "TXT", "CNAME") for a
	// domain. A domain with no records of that type yields an empty slice.
	DNS(ctx context.Context, domain, recordType string) ([]string, error)

	// TLS connects to host:443 and reports certificate details along with
	// whether the chain verifies against the system roots.
	TLS(ctx context.Context, host string) (*TLSInfo, error)
}

// Page is one fetched HTTP response.
type Page struct {
	// Contents is the response body as text.
	Contents string

	// Headers holds the response headers with lower-cased names. Multi-value
	// headers are joined with ", " as they would appear on the wire.
	Headers map[string]string

	// StatusCode is the final HTTP status after redirects.
	StatusCode int

	// FinalURL is the URL that produced the response, after redirects.
	FinalURL string

	// ContentType is the Content-Type header value, for convenience.
	ContentType string
}

// Header returns a response header by name. Lookup is case-insensitive
// because Headers stores lower-cased names.
func (p *Page) Header(name string) string {
	if p == nil {
		return ""
	}
	return p.Headers[lowerASCII(name)]
}

// TLSInfo describes the certificate presented by a host.
type TLSInfo struct {
	// Authorized reports whether the chain verified against system roots
	// for the requested host name.
	Authorized bool

	// VerifyError holds the verification failure message when Authorized
	// is false.
	VerifyError string

	// Subject is the leaf certificate's subject common name.
	Subject string

	// Issuer is the leaf certificate's issuer common name.
	Issuer string

	// NotBefore and NotAfter bound the leaf certificate's validity window.
	NotBefore time.Time
	NotAfter  time.Time

	// DNSNames lists the subject alternative names.
	DNSNames []string

	// Fingerprint256 is the hex SHA-256 fingerprint of the leaf, with
	// colon-separated byte pairs.
	Fingerprint256 string

	// Protocol is the negotiated TLS version ("TLSv1.3").
	Protocol string
}

// Expired reports whether the certificate is outside its validity window
// at the given instant.
func (t *TLSInfo) Expired(now time.Time) bool {
	return now.Before(t.NotBefore) || now.After(t.NotAfter)
}

// lowerASCII lower-cases ASCII letters without allocating for the common
// already-lower case.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
