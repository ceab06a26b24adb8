package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// Viewport verifies the responsive design viewport meta tag exists.
type Viewport struct{}

func (Viewport) Name() string             { return "Viewport Meta Tag Test" }
func (Viewport) Category() model.Category { return model.CategoryTechnical }

func (c Viewport) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if _, ok := t.Document.MetaByName("viewport"); ok {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "Viewport meta tag found."
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "No viewport meta tag found. The viewport meta tag is essential for responsive design on mobile devices."
		result.Recommendation = `Add <meta name="viewport" content="width=device-width, initial-scale=1.0"> to your <head> section.`
	}

	return result, nil
}

// Language verifies the html element declares a lang attribute.
type Language struct{}

func (Language) Name() string             { return "Language Declaration Test" }
func (Language) Category() model.Category { return model.CategoryTechnical }

func (c Language) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if lang := t.Document.Lang(); lang != "" {
		result.Status = model.StatusPass
		result.Description = "Language: " + lang
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No language declared."
	}

	return result, nil
}

// Favicon looks for an icon link in the document.
type Favicon struct{}

func (Favicon) Name() string             { return "Favicon Test" }
func (Favicon) Category() model.Category { return model.CategoryTechnical }

func (c Favicon) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	found := false
	for _, link := range t.Document.Elements("link") {
		rel := strings.ToLower(strings.TrimSpace(link.Attr("rel")))
		if rel == "icon" || rel == "shortcut icon" {
			found = true
			break
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}
	if found {
		result.Status = model.StatusPass
		result.Description = "Favicon detected."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No favicon detected."
	}

	return result, nil
}

// Canonical looks for a rel=canonical link.
type Canonical struct{}

func (Canonical) Name() string             { return "Canonical URL Test" }
func (Canonical) Category() model.Category { return model.CategoryTechnical }

func (c Canonical) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	found := false
	for _, link := range t.Document.Elements("link") {
		if strings.EqualFold(strings.TrimSpace(link.Attr("rel")), "canonical") {
			found = true
			break
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}
	if found {
		result.Status = model.StatusPass
		result.Description = "Canonical link found."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No canonical specified."
	}

	return result, nil
}

// RobotsMeta reports on the robots meta tag. Informational only: both
// presence and absence are legitimate.
type RobotsMeta struct{}

func (RobotsMeta) Name() string             { return "Robots Meta Tag Test" }
func (RobotsMeta) Category() model.Category { return model.CategoryTechnical }

func (c RobotsMeta) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   model.StatusNeutral,
		Priority: model.PriorityLow,
	}

	if meta, ok := t.Document.MetaByName("robots"); ok {
		result.Description = "Robots: " + meta.Attr("content")
	} else {
		result.Description = "No robots tag found."
	}

	return result, nil
}

// CharsetDeclaration verifies a character set declaration exists.
type CharsetDeclaration struct{}

func (CharsetDeclaration) Name() string             { return "Charset Declaration Test" }
func (CharsetDeclaration) Category() model.Category { return model.CategoryTechnical }

func (c CharsetDeclaration) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	found := false
	for _, meta := range t.Document.Elements("meta") {
		if meta.HasAttr("charset") || strings.EqualFold(meta.Attr("http-equiv"), "Content-Type") {
			found = true
			break
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityHigh,
	}

	if found {
		result.Status = model.StatusPass
		result.Description = "Character set declaration found."
	} else {
		result.Status = model.StatusWarning
		result.Description = "No character set declaration found. This can lead to text rendering issues."
		result.Recommendation = `Add <meta charset="UTF-8"> as the first tag in your <head> section.`
	}

	return result, nil
}

// Doctype verifies the document starts with the HTML5 doctype.
type Doctype struct{}

func (Doctype) Name() string             { return "Doctype Test" }
func (Doctype) Category() model.Category { return model.CategoryTechnical }

func (c Doctype) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	_, html5 := t.Document.HasDoctype()

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityMedium,
	}

	if html5 {
		result.Status = model.StatusPass
		result.Description = "HTML5 Doctype found."
	} else {
		result.Status = model.StatusWarning
		result.Description = "HTML5 Doctype missing or incorrect."
		result.Recommendation = "Add <!DOCTYPE html> to the very first line of your HTML document."
	}

	return result, nil
}

// NestedTables flags tables nested inside tables.
type NestedTables struct{}

func (NestedTables) Name() string             { return "Nested Tables Test" }
func (NestedTables) Category() model.Category { return model.CategoryTechnical }

func (c NestedTables) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityMedium,
	}

	if t.Document.HasNested("table") {
		result.Status = model.StatusWarning
		result.Description = "Nested tables detected. Avoid using tables for layout."
		result.Recommendation = "Replace table-based layouts with CSS Flexbox or Grid; use tables only for tabular data."
	} else {
		result.Status = model.StatusPass
		result.Description = "No nested tables found. Good for structure."
	}

	return result, nil
}

// Frameset flags deprecated frameset and frame elements.
type Frameset struct{}

func (Frameset) Name() string             { return "Frameset Test" }
func (Frameset) Category() model.Category { return model.CategoryTechnical }

func (c Frameset) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	bad := t.Document.Count("frameset") + t.Document.Count("frame")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityHigh,
	}

	if bad == 0 {
		result.Status = model.StatusPass
		result.Description = "No deprecated framesets detected."
	} else {
		result.Status = model.StatusWarning
		result.Description = "Deprecated frameset detected. Modern browsers may not support them well."
		result.Recommendation = "Remove <frameset> and <frame> tags; if you must embed content, use <iframe> sparingly."
	}

	return result, nil
}

// minTextRatioPercent is the text-to-code share considered substantial.
const minTextRatioPercent = 10

// TextRatio compares visible text length to total HTML length.
type TextRatio struct{}

func (TextRatio) Name() string             { return "Text/HTML Ratio Test" }
func (TextRatio) Category() model.Category { return model.CategoryTechnical }

func (c TextRatio) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	var ratio float64
	if len(t.RawHTML) > 0 {
		ratio = float64(len(t.Document.Text())) / float64(len(t.RawHTML)) * 100
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
		Details:  fmt.Sprintf("Ratio: %.2f%%", ratio),
	}

	if ratio > minTextRatioPercent {
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf("Good text-to-code ratio (%.1f%%). Content is substantial.", ratio)
	} else {
		result.Status = model.StatusNeutral
		result.Description = fmt.Sprintf("Low text-to-code ratio (%.1f%%). Consider adding more text content.", ratio)
	}

	return result, nil
}

// maxURLLength is the recommended URL length ceiling.
const maxURLLength = 100

// URLLength checks the audited URL's length.
type URLLength struct{}

func (URLLength) Name() string             { return "URL Length Test" }
func (URLLength) Category() model.Category { return model.CategoryTechnical }

func (c URLLength) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	length := len(t.URL)

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if length < maxURLLength {
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf("URL length is optimal (under %d characters).", maxURLLength)
	} else {
		result.Status = model.StatusWarning
		result.Description = fmt.Sprintf("URL is too long (%d chars). Short URLs are more clickable.", length)
	}

	return result, nil
}

// URLUnderscores flags underscores in the URL, which search engines do not
// treat as word separators.
type URLUnderscores struct{}

func (URLUnderscores) Name() string             { return "URL Underscores Test" }
func (URLUnderscores) Category() model.Category { return model.CategoryTechnical }

func (c URLUnderscores) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityMedium,
	}

	if strings.Contains(t.URL, "_") {
		result.Status = model.StatusWarning
		result.Description = "URL contains underscores. Hyphens are preferred by search engines."
		result.Recommendation = "Rename URL slugs to use hyphens and set up 301 redirects from the old underscore URLs."
	} else {
		result.Status = model.StatusPass
		result.Description = "No underscores found in URL."
	}

	return result, nil
}

// Breadcrumbs looks for breadcrumb navigation via schema markup or
// conventional nav elements.
type Breadcrumbs struct{}

func (Breadcrumbs) Name() string             { return "Breadcrumb Test" }
func (Breadcrumbs) Category() model.Category { return model.CategoryTechnical }

func (c Breadcrumbs) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	found := false
	for _, script := range t.Document.Elements("script") {
		if strings.EqualFold(script.Attr("type"), "application/ld+json") &&
			strings.Contains(script.Text(), "BreadcrumbList") {
			found = true
			break
		}
	}
	if !found {
		for _, nav := range t.Document.Elements("nav") {
			if strings.EqualFold(nav.Attr("aria-label"), "breadcrumb") {
				found = true
				break
			}
		}
	}
	if !found {
		for _, e := range t.Document.ElementsWithAttr("", "class") {
			if strings.Contains(e.Attr("class"), "breadcrumb") {
				found = true
				break
			}
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}
	if found {
		result.Status = model.StatusPass
		result.Description = "Breadcrumb navigation detected."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No breadcrumbs detected. Breadcrumbs help users navigate."
	}

	return result, nil
}

// knownJSLibraries maps script source markers to library names.
var knownJSLibraries = []struct {
	marker string
	name   string
}{
	{"jquery", "jQuery"},
	{"react", "React"},
	{"vue", "Vue"},
	{"angular", "Angular"},
	{"bootstrap", "Bootstrap"},
}

// JSLibraries detects common JavaScript libraries. Informational; always
// passes.
type JSLibraries struct{}

func (JSLibraries) Name() string             { return "JS Libraries Test" }
func (JSLibraries) Category() model.Category { return model.CategoryTechnical }

func (c JSLibraries) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	var sources []string
	for _, s := range t.Document.Elements("script") {
		sources = append(sources, strings.ToLower(s.Attr("src")))
	}
	joined := strings.Join(sources, " ")

	var libs []string
	for _, lib := range knownJSLibraries {
		if strings.Contains(joined, lib.marker) {
			libs = append(libs, lib.name)
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   model.StatusPass,
		Priority: model.PriorityLow,
	}
	if len(libs) > 0 {
		result.Description = "Detected libraries: " + strings.Join(libs, ", ") + "."
	} else {
		result.Description = "No common JS libraries detected in script tags."
	}

	return result, nil
}

// knownCSSFrameworks maps stylesheet href markers to framework names.
var knownCSSFrameworks = []struct {
	marker string
	name   string
}{
	{"bootstrap", "Bootstrap"},
	{"tailwind", "Tailwind"},
	{"bulma", "Bulma"},
	{"foundation", "Foundation"},
}

// CSSFrameworks detects common CSS frameworks. Informational; always passes.
type CSSFrameworks struct{}

func (CSSFrameworks) Name() string             { return "CSS Frameworks Test" }
func (CSSFrameworks) Category() model.Category { return model.CategoryTechnical }

func (c CSSFrameworks) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	var hrefs []string
	for _, l := range stylesheets(t) {
		hrefs = append(hrefs, strings.ToLower(l.Attr("href")))
	}
	joined := strings.Join(hrefs, " ")

	var frameworks []string
	for _, fw := range knownCSSFrameworks {
		if strings.Contains(joined, fw.marker) {
			frameworks = append(frameworks, fw.name)
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   model.StatusPass,
		Priority: model.PriorityLow,
	}
	if len(frameworks) > 0 {
		result.Description = "Detected frameworks: " + strings.Join(frameworks, ", ") + "."
	} else {
		result.Description = "No common CSS frameworks detected."
	}

	return result, nil
}

// MobileFriendly verifies the viewport tag configures proper mobile scaling.
type MobileFriendly struct{}

func (MobileFriendly) Name() string             { return "Mobile-Friendly Test" }
func (MobileFriendly) Category() model.Category { return model.CategoryTechnical }

func (c MobileFriendly) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	var content string
	if meta, ok := t.Document.MetaByName("viewport"); ok {
		content = meta.Attr("content")
	}

	friendly := strings.Contains(content, "width=device-width") &&
		strings.Contains(content, "initial-scale=1")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}
	if content != "" {
		result.Details = "Viewport: " + content
	}

	if friendly {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "This webpage is optimized for mobile devices with proper viewport settings."
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "This webpage may not be mobile-friendly. Add a proper viewport meta tag."
	}

	return result, nil
}

// minReadableTextLength is the visible text length that counts as content.
const minReadableTextLength = 100

// FontReadability verifies the page carries enough text to assess.
type FontReadability struct{}

func (FontReadability) Name() string             { return "Font Readability Test" }
func (FontReadability) Category() model.Category { return model.CategoryTechnical }

func (c FontReadability) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if len(t.Document.Text()) > minReadableTextLength {
		result.Status = model.StatusPass
		result.Description = "Text content is present. Ensure font sizes are at least 16px for readability."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "Unable to analyze font sizes."
	}

	return result, nil
}
