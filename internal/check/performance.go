package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/seoscan/seoscan/internal/htmldoc"
	"github.com/seoscan/seoscan/internal/model"
)

// stylesheets returns every <link rel="stylesheet"> element.
func stylesheets(t *Target) []htmldoc.Element {
	var out []htmldoc.Element
	for _, link := range t.Document.Elements("link") {
		if strings.EqualFold(strings.TrimSpace(link.Attr("rel")), "stylesheet") {
			out = append(out, link)
		}
	}
	return out
}

// Request count thresholds.
const (
	maxHTTPRequests          = 100
	highPriorityHTTPRequests = 150
)

// HTTPRequests estimates the request count from referenced resources.
type HTTPRequests struct{}

func (HTTPRequests) Name() string             { return "HTTP Requests Test" }
func (HTTPRequests) Category() model.Category { return model.CategoryPerformance }

func (c HTTPRequests) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	total := len(t.Document.ElementsWithAttr("script", "src")) +
		len(stylesheets(t)) +
		len(t.Document.ElementsWithAttr("img", "src"))

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if total <= maxHTTPRequests {
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf("This webpage uses %d HTTP requests.", total)
	} else {
		result.Status = model.StatusWarning
		result.Description = fmt.Sprintf("This webpage is using more than %d HTTP requests (%d).", maxHTTPRequests, total)
		result.Recommendation = "Combine CSS and JavaScript files, use CSS sprites or SVG icons for small images, and serve resources over a CDN or HTTP/2."
	}

	if total > highPriorityHTTPRequests {
		result.Priority = model.PriorityHigh
	} else {
		result.Priority = model.PriorityLow
	}

	return result, nil
}

// minMinifiedRatio is the share of resources that should look minified.
const minMinifiedRatio = 0.5

// ResourceMinification checks whether referenced scripts and stylesheets
// look minified (".min." in the file name).
type ResourceMinification struct{}

func (ResourceMinification) Name() string             { return "Resource Minification Test" }
func (ResourceMinification) Category() model.Category { return model.CategoryPerformance }

func (c ResourceMinification) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	scripts := t.Document.ElementsWithAttr("script", "src")
	styles := stylesheets(t)

	minified := 0
	for _, s := range scripts {
		if strings.Contains(s.Attr("src"), ".min.") {
			minified++
		}
	}
	for _, s := range styles {
		if strings.Contains(s.Attr("href"), ".min.") {
			minified++
		}
	}

	total := len(scripts) + len(styles)
	mostlyMinified := total > 0 && float64(minified)/float64(total) >= minMinifiedRatio

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityMedium,
	}

	if mostlyMinified {
		result.Status = model.StatusPass
		result.Description = "Most JavaScript and CSS files appear to be minified."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "Consider minifying your JavaScript and CSS files."
	}

	return result, nil
}

// Page size tiers in kilobytes.
const (
	goodPageSizeKB         = 200
	acceptablePageSizeKB   = 500
	highPriorityPageSizeKB = 1000
)

// PageSize checks the raw HTML size.
type PageSize struct{}

func (PageSize) Name() string             { return "Page Size Test" }
func (PageSize) Category() model.Category { return model.CategoryPerformance }

func (c PageSize) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	sizeKB := float64(len(t.RawHTML)) / 1024

	result := &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Description: fmt.Sprintf("The HTML size is %.2f KB.", sizeKB),
	}

	switch {
	case sizeKB < goodPageSizeKB:
		result.Status = model.StatusPass
	case sizeKB < acceptablePageSizeKB:
		result.Status = model.StatusNeutral
	default:
		result.Status = model.StatusWarning
	}

	if sizeKB > highPriorityPageSizeKB {
		result.Priority = model.PriorityMedium
	} else {
		result.Priority = model.PriorityLow
	}

	return result, nil
}

// maxInlineStyles is how many style attributes are tolerated.
const maxInlineStyles = 100

// InlineCSS counts elements with inline style attributes.
type InlineCSS struct{}

func (InlineCSS) Name() string             { return "Inline CSS Test" }
func (InlineCSS) Category() model.Category { return model.CategoryPerformance }

func (c InlineCSS) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := len(t.Document.ElementsWithAttr("", "style"))

	result := &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Priority:    model.PriorityLow,
		Description: fmt.Sprintf("Found %d elements with inline styles.", count),
	}
	if count < maxInlineStyles {
		result.Status = model.StatusPass
	} else {
		result.Status = model.StatusNeutral
	}

	return result, nil
}

// maxDOMElements is the recommended element count ceiling.
const maxDOMElements = 1500

// DOMSize counts every element in the document.
type DOMSize struct{}

func (DOMSize) Name() string             { return "DOM Size Test" }
func (DOMSize) Category() model.Category { return model.CategoryPerformance }

func (c DOMSize) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := t.Document.Count("")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if count < maxDOMElements {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf("This webpage has %d DOM elements, which is within the recommended range.", count)
	} else {
		result.Status = model.StatusNeutral
		result.Priority = model.PriorityMedium
		result.Description = fmt.Sprintf("This webpage has %d DOM elements. High DOM size can slow down your page.", count)
	}

	return result, nil
}

// cdnKeywords are host fragments that indicate CDN-hosted assets.
var cdnKeywords = []string{"cdn", "cloudinary", "fastly", "akamai", "cloudfront", "static", "cdnjs", "unpkg", "wp.com"}

// CDNUsage looks for CDN hosts among referenced resources.
type CDNUsage struct{}

func (CDNUsage) Name() string             { return "CDN Usage Test" }
func (CDNUsage) Category() model.Category { return model.CategoryPerformance }

func (c CDNUsage) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	var sources []string
	for _, e := range t.Document.Elements("script") {
		sources = append(sources, e.Attr("src"))
	}
	for _, e := range stylesheets(t) {
		sources = append(sources, e.Attr("href"))
	}
	for _, e := range t.Document.Elements("img") {
		sources = append(sources, e.Attr("src"))
	}

	usesCDN := false
	for _, src := range sources {
		src = strings.ToLower(src)
		for _, keyword := range cdnKeywords {
			if strings.Contains(src, keyword) {
				usesCDN = true
				break
			}
		}
		if usesCDN {
			break
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if usesCDN {
		result.Status = model.StatusPass
		result.Description = "Website is using a Content Delivery Network (CDN) to serve resources."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No clear CDN usage detected for static assets. CDNs improve global load times."
	}

	return result, nil
}

// BrowserCaching checks the Cache-Control header for a max-age directive.
type BrowserCaching struct{}

func (BrowserCaching) Name() string             { return "Browser Caching Test" }
func (BrowserCaching) Category() model.Category { return model.CategoryPerformance }

func (c BrowserCaching) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if strings.Contains(t.Header("cache-control"), "max-age") {
		result.Status = model.StatusPass
		result.Description = "Browser caching is enabled for your resources."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "Consider enabling browser caching to improve repeat visit load times."
	}

	return result, nil
}

// maxRenderBlocking is the tolerated count of blocking head resources.
const maxRenderBlocking = 5

// RenderBlocking counts head scripts without async/defer plus head
// stylesheets.
type RenderBlocking struct{}

func (RenderBlocking) Name() string             { return "Render Blocking Resources Test" }
func (RenderBlocking) Category() model.Category { return model.CategoryPerformance }

func (c RenderBlocking) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := 0
	for _, s := range t.Document.HeadElements("script") {
		if !s.HasAttr("async") && !s.HasAttr("defer") {
			count++
		}
	}
	for _, l := range t.Document.HeadElements("link") {
		if strings.EqualFold(strings.TrimSpace(l.Attr("rel")), "stylesheet") {
			count++
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if count < maxRenderBlocking {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf("Found %d render-blocking resources. Minimal impact on page load.", count)
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityMedium
		result.Description = fmt.Sprintf("Found %d render-blocking resources. These prevent the page from displaying quickly.", count)
	}

	return result, nil
}

// GZIPCompression checks the Content-Encoding header for compression.
type GZIPCompression struct{}

func (GZIPCompression) Name() string             { return "GZIP Compression Test" }
func (GZIPCompression) Category() model.Category { return model.CategoryPerformance }

func (c GZIPCompression) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	encoding := t.Header("content-encoding")
	compressed := strings.Contains(encoding, "gzip") ||
		strings.Contains(encoding, "br") ||
		strings.Contains(encoding, "deflate")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if compressed {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "Website is using compression (GZIP/Brotli) to reduce file transfer size."
		result.Details = "Content-Encoding: " + encoding
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "GZIP compression not detected in headers. Enable compression to improve speed."
		result.Recommendation = "Enable compression in your server settings: mod_deflate for Apache, \"gzip on;\" for Nginx, or Brotli/GZIP in your CDN dashboard."
	}

	return result, nil
}
