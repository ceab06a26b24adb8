package check

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/seoscan/seoscan/internal/fetch"
	"github.com/seoscan/seoscan/internal/model"
)

// neutralResult is the degraded outcome for a network check that could not
// complete its observation. The audit carries on; the result explains why
// the check has nothing definitive to say.
func neutralResult(c Check, description string) *model.CheckResult {
	return &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Status:      model.StatusNeutral,
		Priority:    model.PriorityLow,
		Description: description,
	}
}

// SSLCertificate probes the target's certificate chain and reports whether
// browsers would trust it.
type SSLCertificate struct {
	Client fetch.Client
}

func (SSLCertificate) Name() string             { return "SSL Checker and HTTPS Test" }
func (SSLCertificate) Category() model.Category { return model.CategorySecurity }

func (c SSLCertificate) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	host := t.Hostname()
	if host == "" {
		return neutralResult(c, "Unable to perform deep SSL analysis: target host unknown. Basic HTTPS check will be used as fallback."), nil
	}

	info, err := c.Client.TLS(ctx, host)
	if err != nil {
		return neutralResult(c, fmt.Sprintf("Unable to perform deep SSL analysis: %v. Basic HTTPS check will be used as fallback.", err)), nil
	}

	now := time.Now()
	hostnameListed := false
	for _, name := range info.DNSNames {
		if matchesWildcard(name, host) {
			hostnameListed = true
			break
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details: fmt.Sprintf(
			"Subject: %s, issuer: %s, valid from %s to %s, SANs: %s, protocol: %s, hostname listed: %v, expired: %v",
			info.Subject, info.Issuer,
			info.NotBefore.UTC().Format(time.RFC1123),
			info.NotAfter.UTC().Format(time.RFC1123),
			strings.Join(info.DNSNames, ", "),
			info.Protocol, hostnameListed, info.Expired(now)),
	}

	if info.Authorized {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "This website is successfully using HTTPS, a secure communication protocol over the Internet."
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "There are issues with your SSL certificate configuration."
		if info.VerifyError != "" {
			result.Details += ", verify error: " + info.VerifyError
		}
	}

	return result, nil
}

// matchesWildcard reports whether a certificate SAN covers the host,
// including single-label wildcards.
func matchesWildcard(san, host string) bool {
	san = strings.ToLower(san)
	host = strings.ToLower(host)
	if san == host {
		return true
	}
	if rest, ok := strings.CutPrefix(san, "*."); ok {
		if _, hostRest, found := strings.Cut(host, "."); found && hostRest == rest {
			return true
		}
	}
	return false
}

// IPCanonicalization verifies that visiting the site by raw IP leads back
// to the domain.
type IPCanonicalization struct {
	Client fetch.Client
}

func (IPCanonicalization) Name() string             { return "IP Canonicalization Test" }
func (IPCanonicalization) Category() model.Category { return model.CategorySecurity }

func (c IPCanonicalization) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	domain := t.Hostname()
	if domain == "" {
		return neutralResult(c, "Unable to perform IP canonicalization test."), nil
	}

	records, err := c.Client.DNS(ctx, domain, "A")
	if err != nil {
		return neutralResult(c, "Unable to perform IP canonicalization test."), nil
	}
	if len(records) == 0 {
		return neutralResult(c, "Could not resolve IP address to test canonicalization."), nil
	}
	ip := records[0]

	page, err := c.Client.Page(ctx, "http://"+ip)
	if err != nil {
		return neutralResult(c, "Unable to perform IP canonicalization test."), nil
	}

	canonical := strings.Contains(page.FinalURL, domain) ||
		page.StatusCode == http.StatusMovedPermanently ||
		page.StatusCode == http.StatusFound

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
		Details:  "Server IP: " + ip,
	}

	if canonical {
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf("IP address (%s) redirects to %s.", ip, domain)
	} else {
		result.Status = model.StatusWarning
		result.Description = fmt.Sprintf("The site's IP address (%s) does not appear to redirect to the domain. This can cause duplicate content issues.", ip)
		result.Recommendation = "Set up a 301 redirect in your server configuration so the raw IP address points to your primary domain."
	}

	return result, nil
}

// SPFRecord checks the domain's TXT records for an SPF policy.
type SPFRecord struct {
	Client fetch.Client
}

func (SPFRecord) Name() string             { return "SPF Record Test" }
func (SPFRecord) Category() model.Category { return model.CategorySecurity }

func (c SPFRecord) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	domain := t.Hostname()
	if domain == "" {
		return neutralResult(c, "Could not query DNS for SPF record."), nil
	}

	records, err := c.Client.DNS(ctx, domain, "TXT")
	if err != nil {
		return neutralResult(c, "Could not query DNS for SPF record."), nil
	}

	var spf string
	for _, r := range records {
		if strings.Contains(r, "v=spf1") {
			spf = r
			break
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if spf != "" {
		result.Status = model.StatusPass
		result.Description = "SPF record found. This helps prevent email spoofing."
		result.Details = "SPF record: " + spf
	} else {
		result.Status = model.StatusWarning
		result.Description = "No SPF record found. This allows others to send emails on your behalf."
		result.Recommendation = "Create a TXT record with your email provider's SPF policy, for example: v=spf1 include:_spf.google.com ~all."
	}

	return result, nil
}

// AdsTxt looks for an ads.txt file at the site root.
type AdsTxt struct {
	Client fetch.Client
}

func (AdsTxt) Name() string             { return "Ads.txt Validation Test" }
func (AdsTxt) Category() model.Category { return model.CategorySecurity }

func (c AdsTxt) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	origin := t.Origin()
	if origin == "" {
		return neutralResult(c, "Could not verify ads.txt."), nil
	}

	adsURL := origin + "/ads.txt"
	page, err := c.Client.Page(ctx, adsURL)
	if err != nil {
		return neutralResult(c, "Could not verify ads.txt."), nil
	}

	found := page.StatusCode == http.StatusOK &&
		strings.Contains(strings.ToLower(page.Contents), "google.com")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if found {
		result.Status = model.StatusPass
		result.Description = "Ads.txt file found and valid."
		result.Details = "Ads.txt URL: " + adsURL
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No ads.txt file found. This is only required if you sell advertising space."
	}

	return result, nil
}

// Custom404 requests a URL that cannot exist and verifies the server answers
// with a real 404 status rather than a soft 404.
type Custom404 struct {
	Client fetch.Client
}

func (Custom404) Name() string             { return "Custom 404 Page Test" }
func (Custom404) Category() model.Category { return model.CategorySecurity }

func (c Custom404) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	origin := t.Origin()
	if origin == "" {
		return neutralResult(c, "Could not verify 404 behavior."), nil
	}

	probe := fmt.Sprintf("%s/this-page-definitely-does-not-exist-%d", origin, time.Now().UnixMilli())
	page, err := c.Client.Page(ctx, probe)
	if err != nil {
		return neutralResult(c, "Could not verify 404 behavior."), nil
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if page.StatusCode == http.StatusNotFound {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "Your server correctly returns a 404 status for missing pages."
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "Your server does not return a 404 status for missing pages (Soft 404). This hurts SEO."
		result.Recommendation = "Configure your server to answer missing URLs with a 404 Not Found status and serve a custom 404 page."
	}

	return result, nil
}

// URLCanonicalization verifies the www and non-www variants of the site
// resolve to the same place.
type URLCanonicalization struct {
	Client fetch.Client
}

func (URLCanonicalization) Name() string             { return "URL Canonicalization Test" }
func (URLCanonicalization) Category() model.Category { return model.CategoryTechnical }

func (c URLCanonicalization) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	if t.ParsedURL == nil {
		return neutralResult(c, "Unable to verify URL canonicalization (www vs non-www)."), nil
	}

	host := t.ParsedURL.Hostname()
	var sibling string
	if after, ok := strings.CutPrefix(host, "www."); ok {
		sibling = after
	} else {
		sibling = "www." + host
	}
	targetURL := t.ParsedURL.Scheme + "://" + sibling

	page, err := c.Client.Page(ctx, targetURL)
	if err != nil {
		return neutralResult(c, "Unable to verify URL canonicalization (www vs non-www)."), nil
	}

	canonical := strings.TrimSuffix(page.FinalURL, "/") == strings.TrimSuffix(t.URL, "/")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  fmt.Sprintf("Checked URL: %s, redirects correctly: %v", targetURL, canonical),
	}

	if canonical {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "Both www and non-www versions of your URL redirect to the same place."
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "Your website does not seem to redirect between www and non-www versions. This can cause duplicate content issues."
		result.Recommendation = "Pick a preferred host (www or bare domain) and 301-redirect the other variant to it in your server configuration."
	}

	return result, nil
}

// Sitemap checks for an XML sitemap at the conventional location.
type Sitemap struct {
	Client fetch.Client
}

func (Sitemap) Name() string             { return "Sitemap.xml Test" }
func (Sitemap) Category() model.Category { return model.CategoryTechnical }

func (c Sitemap) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	origin := t.Origin()
	if origin == "" {
		return c.unverified(), nil
	}

	sitemapURL := origin + "/sitemap.xml"
	page, err := c.Client.Page(ctx, sitemapURL)
	if err != nil {
		return c.unverified(), nil
	}

	found := page.StatusCode == http.StatusOK && strings.Contains(page.Contents, "<urlset")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if found {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "XML sitemap found at /sitemap.xml. This helps search engines discover your pages."
		result.Details = "Sitemap URL: " + sitemapURL
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "No sitemap.xml found. A sitemap helps search engines index your website more effectively."
		result.Recommendation = "Generate a sitemap.xml, upload it to your site root, and submit it to Google Search Console and Bing Webmaster Tools."
	}

	return result, nil
}

// unverified is the sitemap probe's degraded result. It keeps medium
// priority so a possible false negative stays visible in the issue list.
func (c Sitemap) unverified() *model.CheckResult {
	r := neutralResult(c, "Could not verify sitemap.xml presence. This may be a false negative.")
	r.Priority = model.PriorityMedium
	return r
}

// maxRobotsPreview bounds the robots.txt excerpt stored in Details.
const maxRobotsPreview = 200

// RobotsTxt checks for a robots.txt file at the site root.
type RobotsTxt struct {
	Client fetch.Client
}

func (RobotsTxt) Name() string             { return "Robots.txt Test" }
func (RobotsTxt) Category() model.Category { return model.CategoryTechnical }

func (c RobotsTxt) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	origin := t.Origin()
	if origin == "" {
		return neutralResult(c, "Could not verify robots.txt presence."), nil
	}

	robotsURL := origin + "/robots.txt"
	page, err := c.Client.Page(ctx, robotsURL)
	if err != nil {
		return neutralResult(c, "Could not verify robots.txt presence."), nil
	}

	found := page.StatusCode == http.StatusOK &&
		strings.Contains(strings.ToLower(page.Contents), "user-agent")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if found {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "robots.txt file found. This file controls search engine crawler access."
		preview := page.Contents
		if len(preview) > maxRobotsPreview {
			preview = preview[:maxRobotsPreview]
		}
		result.Details = fmt.Sprintf("Robots.txt URL: %s, preview: %s", robotsURL, preview)
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityMedium
		result.Description = "No robots.txt file found. Consider adding one to control search engine crawling."
		result.Recommendation = "Create a robots.txt with at least \"User-agent: *\" rules and upload it to your site root."
	}

	return result, nil
}
