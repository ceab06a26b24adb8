package check

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// maxMissingAltRatio is the tolerated share of images without alt text.
const maxMissingAltRatio = 0.1

// ImageAltText verifies images carry alt attributes.
type ImageAltText struct{}

func (ImageAltText) Name() string             { return "Image Alt Text Test" }
func (ImageAltText) Category() model.Category { return model.CategoryImages }

func (c ImageAltText) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	images := t.Document.Elements("img")
	total := len(images)

	missing := 0
	for _, img := range images {
		if strings.TrimSpace(img.Attr("alt")) == "" {
			missing++
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if missing == 0 || float64(missing) <= float64(total)*maxMissingAltRatio {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf("Most images have alt attributes (%d/%d).", total-missing, total)
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = `This webpage is using "img" tags with empty or missing "alt" attribute!`
		result.Recommendation = "Add an alt=\"description\" attribute to every <img> tag, describing the image content for screen readers and search engines."
	}

	return result, nil
}

// minSrcsetPercent is the share of images that should use srcset.
const minSrcsetPercent = 20

// ResponsiveImages verifies images use the responsive srcset attribute.
// Inapplicable on pages without images.
type ResponsiveImages struct{}

func (ResponsiveImages) Name() string             { return "Responsive Images Test" }
func (ResponsiveImages) Category() model.Category { return model.CategoryImages }

func (c ResponsiveImages) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	images := t.Document.Elements("img")
	if len(images) == 0 {
		return nil, nil
	}

	withSrcset := 0
	for _, img := range images {
		if img.Attr("srcset") != "" {
			withSrcset++
		}
	}
	percent := int(math.Round(float64(withSrcset) / float64(len(images)) * 100))

	result := &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Description: fmt.Sprintf("%d of %d images use responsive srcset attribute.", withSrcset, len(images)),
	}

	if percent > minSrcsetPercent {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
	} else {
		result.Status = model.StatusNeutral
		result.Priority = model.PriorityHigh
	}

	return result, nil
}

// ModernImageFormats counts images served as WebP or AVIF.
type ModernImageFormats struct{}

func (ModernImageFormats) Name() string             { return "Modern Image Formats Test" }
func (ModernImageFormats) Category() model.Category { return model.CategoryImages }

func (c ModernImageFormats) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	modern := 0
	for _, img := range t.Document.ElementsWithAttr("img", "src") {
		src := strings.ToLower(img.Attr("src"))
		if strings.Contains(src, ".webp") || strings.Contains(src, ".avif") {
			modern++
		}
	}

	result := &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Priority:    model.PriorityLow,
		Description: fmt.Sprintf("Using %d modern format images (WebP/AVIF).", modern),
	}
	if modern > 0 {
		result.Status = model.StatusPass
	} else {
		result.Status = model.StatusNeutral
	}

	return result, nil
}

// minImageTitlePercent is the share of images that should carry a title.
const minImageTitlePercent = 50

// ImageTitles verifies images carry title attributes for tooltip context.
// Inapplicable on pages without images.
type ImageTitles struct{}

func (ImageTitles) Name() string             { return "Image Title Attribute Test" }
func (ImageTitles) Category() model.Category { return model.CategoryImages }

func (c ImageTitles) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	images := t.Document.Elements("img")
	if len(images) == 0 {
		return nil, nil
	}

	withTitle := 0
	for _, img := range images {
		if img.HasAttr("title") {
			withTitle++
		}
	}
	percent := float64(withTitle) / float64(len(images)) * 100

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if percent > minImageTitlePercent {
		result.Status = model.StatusPass
		result.Description = "Most images have title attributes."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "Many images are missing title attributes. Titles provide tooltip context."
	}

	return result, nil
}
