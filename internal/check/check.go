package check

import (
	"context"
	"net/url"
	"strings"

	"github.com/seoscan/seoscan/internal/htmldoc"
	"github.com/seoscan/seoscan/internal/model"
)

// Check is one audit rule.
//
// Design decision: Name and Category live on the interface rather than only
// inside the produced result so the orchestrator can build a meaningful
// fallback result when Run fails or panics; the failing check stays
// identifiable in the report even though it never produced output.
type Check interface {
	// Name returns the stable, human-readable check name. Unique within
	// the registry; the result's anchor slug derives from it.
	Name() string

	// Category returns the scoring category the check's result belongs to.
	Category() model.Category

	// Run inspects the target and returns its result. A nil result with a
	// nil error means the check does not apply to this page. An error (or
	// a panic) is converted by the orchestrator into a neutral result.
	Run(ctx context.Context, t *Target) (*model.CheckResult, error)
}

// Target is the shared, read-only view of the audited page. One Target is
// built per audit and handed to every check; nothing may mutate it.
type Target struct {
	// URL is the audited URL as given.
	URL string

	// ParsedURL is URL parsed, for host and scheme access.
	ParsedURL *url.URL

	// Document is the parsed HTML.
	Document *htmldoc.Document

	// Headers holds the response headers with lower-cased names.
	Headers map[string]string

	// RawHTML is the unparsed response body, for size and ratio checks.
	RawHTML string
}

// NewTarget builds a Target from a fetched page. The URL is parsed once here
// so checks can read host and scheme without re-parsing.
func NewTarget(rawURL, rawHTML string, headers map[string]string) *Target {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// The audited URL was already fetched successfully, so this
		// only happens for exotic inputs; checks treat a nil ParsedURL
		// as "host unknown".
		parsed = nil
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return &Target{
		URL:       rawURL,
		ParsedURL: parsed,
		Document:  htmldoc.Parse(rawHTML),
		Headers:   headers,
		RawHTML:   rawHTML,
	}
}

// Header returns a response header by lower-cased name.
func (t *Target) Header(name string) string {
	return t.Headers[strings.ToLower(name)]
}

// Hostname returns the target's host without port, or "" when unknown.
func (t *Target) Hostname() string {
	if t.ParsedURL == nil {
		return ""
	}
	return t.ParsedURL.Hostname()
}

// Origin returns scheme://host for building sibling URLs such as
// /robots.txt, or "" when the URL could not be parsed.
func (t *Target) Origin() string {
	if t.ParsedURL == nil {
		return ""
	}
	return t.ParsedURL.Scheme + "://" + t.ParsedURL.Host
}

// IsHTTPS reports whether the page was requested over HTTPS.
func (t *Target) IsHTTPS() bool {
	return strings.HasPrefix(strings.ToLower(t.URL), "https://")
}
