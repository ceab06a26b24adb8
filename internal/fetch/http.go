package fetch

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Default client limits.
const (
	// DefaultTimeout bounds one page fetch including redirects.
	DefaultTimeout = 10 * time.Second

	// DefaultTLSTimeout bounds the certificate probe handshake.
	DefaultTLSTimeout = 5 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	// Pages larger than this are truncated, not rejected; the size checks
	// flag such pages as oversized long before the cap matters.
	DefaultMaxBodySize = 10 << 20 // 10 MiB

	// defaultUserAgent identifies the auditor to the target server.
	// Some servers vary their response for non-browser agents, so the
	// string mimics a browser while still naming the tool.
	defaultUserAgent = "Mozilla/5.0 (compatible; seoscan/1.0; +https://github.com/seoscan/seoscan)"
)

// HTTPClient is the production Client over net/http and net.Resolver.
//
// Design decision: One HTTPClient serves every concurrent check in a run, so
// it holds no per-request state; all mutable state lives in the requests
// themselves. The underlying http.Client reuses connections across the
// page, robots.txt, sitemap, and 404 probes against the same host.
type HTTPClient struct {
	client      *http.Client
	resolver    *net.Resolver
	userAgent   string
	maxBodySize int64
	tlsTimeout  time.Duration
	dialer      func(ctx context.Context, network, addr string, cfg *tls.Config) (*tls.Conn, error)
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithTimeout bounds a single page fetch.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent with page fetches.
func WithUserAgent(ua string) HTTPOption {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithMaxBodySize caps how many bytes of a response body are read.
func WithMaxBodySize(n int64) HTTPOption {
	return func(c *HTTPClient) {
		c.maxBodySize = n
	}
}

// WithTLSTimeout bounds the certificate probe handshake.
func WithTLSTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		c.tlsTimeout = d
	}
}

// NewHTTPClient creates a production Client with the given options.
func NewHTTPClient(opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		resolver:    net.DefaultResolver,
		userAgent:   defaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		tlsTimeout:  DefaultTLSTimeout,
	}
	c.dialer = func(ctx context.Context, network, addr string, cfg *tls.Config) (*tls.Conn, error) {
		d := &tls.Dialer{Config: cfg}
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		return conn.(*tls.Conn), nil
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Page implements Client. Redirects are followed; the response is returned
// for any HTTP status, and only transport failure produces an error.
func (c *HTTPClient) Page(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	headers := make(map[string]string, len(resp.Header))
	for name, values := range resp.Header {
		headers[lowerASCII(name)] = strings.Join(values, ", ")
	}
	// The transport strips Content-Encoding when it transparently
	// decompresses. Restore it so compression remains observable.
	if resp.Uncompressed && headers["content-encoding"] == "" {
		headers["content-encoding"] = "gzip"
	}

	return &Page{
		Contents:    string(body),
		Headers:     headers,
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// DNS implements Client. Lookup failure for lack of records is an empty
// result; only resolver-level failure is an error.
func (c *HTTPClient) DNS(ctx context.Context, domain, recordType string) ([]string, error) {
	var records []string
	var err error

	switch strings.ToUpper(recordType) {
	case "TXT":
		records, err = c.resolver.LookupTXT(ctx, domain)
	case "CNAME":
		var cname string
		cname, err = c.resolver.LookupCNAME(ctx, domain)
		if err == nil && cname != "" {
			records = []string{strings.TrimSuffix(cname, ".")}
		}
	case "A":
		var addrs []net.IP
		addrs, err = c.resolver.LookupIP(ctx, "ip4", domain)
		for _, a := range addrs {
			records = append(records, a.String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRecordType, recordType)
	}

	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return []string{}, nil
		}
		return nil, fmt.Errorf("lookup %s %s: %w", recordType, domain, err)
	}
	if records == nil {
		records = []string{}
	}
	return records, nil
}

// TLS implements Client. The handshake accepts any certificate so that
// invalid certificates can still be described; Authorized is computed by
// verifying the presented chain against the system roots afterwards.
func (c *HTTPClient) TLS(ctx context.Context, host string) (*TLSInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.tlsTimeout)
	defer cancel()

	conn, err := c.dialer(ctx, "tcp", net.JoinHostPort(host, "443"), &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: true, //nolint:gosec // verification happens below so invalid certs are observable
	})
	if err != nil {
		return nil, fmt.Errorf("tls connect %s: %w", host, err)
	}
	defer conn.Close()

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, fmt.Errorf("tls connect %s: no peer certificates", host)
	}
	leaf := state.PeerCertificates[0]

	info := &TLSInfo{
		Subject:        leaf.Subject.CommonName,
		Issuer:         leaf.Issuer.CommonName,
		NotBefore:      leaf.NotBefore,
		NotAfter:       leaf.NotAfter,
		DNSNames:       leaf.DNSNames,
		Fingerprint256: fingerprint(leaf.Raw),
		Protocol:       tls.VersionName(state.Version),
	}

	intermediates := x509.NewCertPool()
	for _, cert := range state.PeerCertificates[1:] {
		intermediates.AddCert(cert)
	}
	if _, err := leaf.Verify(x509.VerifyOptions{
		DNSName:       host,
		Intermediates: intermediates,
	}); err != nil {
		info.VerifyError = err.Error()
	} else {
		info.Authorized = true
	}

	return info, nil
}

// fingerprint formats a SHA-256 digest as upper-case colon-separated byte
// pairs, the form certificate tooling conventionally displays.
func fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	parts := make([]string, len(sum))
	for i, b := range sum {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	return strings.Join(parts, ":")
}
