package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// Title length bounds in characters.
const (
	minTitleLength = 10
	maxTitleLength = 100
)

// MetaTitle verifies the page has a title tag of reasonable length.
type MetaTitle struct{}

func (MetaTitle) Name() string             { return "Meta Title Test" }
func (MetaTitle) Category() model.Category { return model.CategoryMeta }

func (c MetaTitle) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	title := t.Document.Title()
	length := len([]rune(title))

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	switch {
	case length == 0:
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "No title tag found. Title tags are essential for SEO."
	case length >= minTitleLength && length <= maxTitleLength:
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf(
			"This webpage is using a title tag with a length of %d characters. We recommend using a title with a length between %d - %d characters.",
			length, minTitleLength, maxTitleLength)
		result.Details = fmt.Sprintf("Text: %s (length: %d characters)", title, length)
	default:
		result.Status = model.StatusNeutral
		result.Priority = model.PriorityMedium
		result.Description = fmt.Sprintf(
			"This webpage is using a title tag with a length of %d characters. We recommend using a title with a length between %d - %d characters.",
			length, minTitleLength, maxTitleLength)
		result.Details = fmt.Sprintf("Text: %s (length: %d characters)", title, length)
	}

	if length < minTitleLength || length > maxTitleLength {
		result.Recommendation = fmt.Sprintf(
			"Rewrite the <title> tag in the <head> section to be between %d and %d characters, describing the page content and including your main keyword.",
			minTitleLength, maxTitleLength)
	}

	return result, nil
}

// Description length bounds in characters.
const (
	minDescriptionLength = 50
	maxDescriptionLength = 500
)

// MetaDescription verifies the meta description tag and its length.
type MetaDescription struct{}

func (MetaDescription) Name() string             { return "Meta Description Test" }
func (MetaDescription) Category() model.Category { return model.CategoryMeta }

func (c MetaDescription) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	var content string
	if meta, ok := t.Document.MetaByName("description"); ok {
		content = strings.TrimSpace(meta.Attr("content"))
	}
	length := len([]rune(content))

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	switch {
	case length == 0:
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "No meta description found. Meta descriptions help search engines understand your page."
	case length >= minDescriptionLength && length <= maxDescriptionLength:
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf(
			"This webpage is using a meta description tag with a length of %d characters. We recommend keeping it between %d and %d characters.",
			length, minDescriptionLength, maxDescriptionLength)
		result.Details = fmt.Sprintf("Text: %s (length: %d characters)", content, length)
		if length > 100 {
			result.Priority = model.PriorityMedium
		} else {
			result.Priority = model.PriorityLow
		}
	default:
		result.Status = model.StatusNeutral
		result.Priority = model.PriorityMedium
		result.Description = fmt.Sprintf(
			"This webpage is using a meta description tag with a length of %d characters. We recommend keeping it between %d and %d characters.",
			length, minDescriptionLength, maxDescriptionLength)
		result.Details = fmt.Sprintf("Text: %s (length: %d characters)", content, length)
	}

	if length < minDescriptionLength || length > maxDescriptionLength {
		result.Recommendation = fmt.Sprintf(
			"Add or update the meta description tag in the <head> with a compelling summary between %d and %d characters.",
			minDescriptionLength, maxDescriptionLength)
	}

	return result, nil
}

// OpenGraph verifies the essential Open Graph tags are present.
type OpenGraph struct{}

func (OpenGraph) Name() string             { return "Social Media Meta Tags Test" }
func (OpenGraph) Category() model.Category { return model.CategoryMeta }

func (c OpenGraph) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	ogTags := t.Document.MetasByPropertyPrefix("og:")
	_, hasTitle := t.Document.MetaByProperty("og:title")
	_, hasImage := t.Document.MetaByProperty("og:image")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
		Details:  fmt.Sprintf("og:title: %v, og:image: %v", hasTitle, hasImage),
	}

	if hasTitle && hasImage {
		result.Status = model.StatusPass
		result.Description = "This webpage is using social media meta tags (Open Graph)."
	} else {
		result.Status = model.StatusNeutral
		result.Description = fmt.Sprintf("Found %d Open Graph tags. Recommended tags: og:title, og:image, etc.", len(ogTags))
	}

	return result, nil
}

// MetaKeywords reports on the meta keywords tag. Always informational:
// modern search engines ignore the tag either way.
type MetaKeywords struct{}

func (MetaKeywords) Name() string             { return "Meta Keywords Test" }
func (MetaKeywords) Category() model.Category { return model.CategoryMeta }

func (c MetaKeywords) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   model.StatusNeutral,
		Priority: model.PriorityLow,
	}

	if _, ok := t.Document.MetaByName("keywords"); ok {
		result.Description = "Meta keywords tag found. Note: Most search engines ignore this tag."
	} else {
		result.Description = "No meta keywords tag found. Most modern search engines ignore this tag anyway."
	}

	return result, nil
}

// relatedKeywordTerms are context markers the keyword relevance probe looks
// for in the visible text.
var relatedKeywordTerms = []string{"marketing", "traffic", "rankings", "analytics", "content", "local seo"}

// RelatedKeywords probes the visible text for contextually related terms.
type RelatedKeywords struct{}

func (RelatedKeywords) Name() string             { return "Related Keywords Test" }
func (RelatedKeywords) Category() model.Category { return model.CategoryMeta }

func (c RelatedKeywords) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	text := strings.ToLower(t.Document.Text())

	var found []string
	for _, term := range relatedKeywordTerms {
		if strings.Contains(text, term) {
			found = append(found, term)
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if len(found) > 0 {
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf("Found %d contextually related keywords.", len(found))
		result.Details = "Matched terms: " + strings.Join(found, ", ")
	} else {
		result.Status = model.StatusNeutral
		result.Description = "Consider adding more contextually relevant keywords to your content."
	}

	return result, nil
}
