package check

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/seoscan/seoscan/internal/fetch"
	"github.com/seoscan/seoscan/internal/model"
)

// maxProbedImages bounds how many images one audit downloads for metadata
// inspection. EXIF presence is usually uniform across a site's images, so a
// small sample is representative.
const maxProbedImages = 3

// exifCapablePattern matches formats that can carry EXIF segments.
var exifCapablePattern = regexp.MustCompile(`(?i)\.(jpe?g|tiff?|heic)(?:\?[^"'\s]*)?$`)

// ImageMetadata downloads a sample of the page's photos and inspects them
// for embedded EXIF metadata. Stripping EXIF both shrinks files and avoids
// leaking camera, location, and author details.
// Inapplicable when the page references no EXIF-capable images.
type ImageMetadata struct {
	Client fetch.Client
}

func (ImageMetadata) Name() string             { return "Image Metadata Test" }
func (ImageMetadata) Category() model.Category { return model.CategoryImages }

func (c ImageMetadata) Run(ctx context.Context, t *Target) (*model.CheckResult, error) {
	candidates := c.candidateURLs(t)
	if len(candidates) == 0 {
		return nil, nil
	}

	inspected := 0
	withMetadata := 0
	var tagged []string
	for _, imgURL := range candidates {
		if inspected >= maxProbedImages {
			break
		}

		page, err := c.Client.Page(ctx, imgURL)
		if err != nil || page.StatusCode != http.StatusOK {
			continue
		}
		inspected++

		rawExif, err := exif.SearchAndExtractExif([]byte(page.Contents))
		if err != nil || rawExif == nil {
			continue
		}
		if entries, _, err := exif.GetFlatExifData(rawExif, nil); err == nil && len(entries) > 0 {
			withMetadata++
			tagged = append(tagged, imgURL)
		}
	}

	if inspected == 0 {
		return neutralResult(c, "Could not fetch any images to inspect for metadata."), nil
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if withMetadata == 0 {
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf("Images appear to be optimized with minimal metadata (%d inspected).", inspected)
	} else {
		result.Status = model.StatusNeutral
		result.Description = fmt.Sprintf("%d of %d inspected images contain embedded EXIF metadata. Consider stripping it with an image optimization tool.", withMetadata, inspected)
		result.Details = "Images with metadata: " + strings.Join(tagged, ", ")
	}

	return result, nil
}

// candidateURLs resolves the page's EXIF-capable image references against
// the page URL, deduplicated in document order.
func (c ImageMetadata) candidateURLs(t *Target) []string {
	seen := make(map[string]bool)
	var out []string

	for _, img := range t.Document.ElementsWithAttr("img", "src") {
		src := img.Attr("src")
		if !exifCapablePattern.MatchString(src) {
			continue
		}

		resolved := src
		if t.ParsedURL != nil {
			if ref, err := t.ParsedURL.Parse(src); err == nil {
				resolved = ref.String()
			}
		}
		if !strings.HasPrefix(resolved, "http://") && !strings.HasPrefix(resolved, "https://") {
			continue
		}

		if !seen[resolved] {
			seen[resolved] = true
			out = append(out, resolved)
		}
	}

	return out
}
