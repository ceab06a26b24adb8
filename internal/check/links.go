package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// InternalLinks counts links pointing within the audited site.
type InternalLinks struct{}

func (InternalLinks) Name() string             { return "Internal Linking Test" }
func (InternalLinks) Category() model.Category { return model.CategoryTechnical }

func (c InternalLinks) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	host := t.Hostname()

	internal := 0
	for _, a := range t.Document.ElementsWithAttr("a", "href") {
		href := a.Attr("href")
		if href == "" {
			continue
		}
		if !strings.HasPrefix(href, "http") || (host != "" && strings.Contains(href, host)) {
			internal++
		}
	}

	result := &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Priority:    model.PriorityLow,
		Description: fmt.Sprintf("Found %d internal links. Good internal linking improves SEO.", internal),
	}
	if internal > 0 {
		result.Status = model.StatusPass
	} else {
		result.Status = model.StatusNeutral
	}

	return result, nil
}

// ExternalLinks tallies outbound links and how many carry rel=nofollow.
// Informational only.
type ExternalLinks struct{}

func (ExternalLinks) Name() string             { return "External Links Test" }
func (ExternalLinks) Category() model.Category { return model.CategoryTechnical }

func (c ExternalLinks) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	host := t.Hostname()

	external, nofollow := 0, 0
	for _, a := range t.Document.ElementsWithAttr("a", "href") {
		href := a.Attr("href")
		if !strings.HasPrefix(href, "http") {
			continue
		}
		if host != "" && strings.Contains(href, host) {
			continue
		}
		external++
		if strings.Contains(a.Attr("rel"), "nofollow") {
			nofollow++
		}
	}

	return &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Status:      model.StatusNeutral,
		Priority:    model.PriorityLow,
		Description: fmt.Sprintf(`Found %d external links (%d with rel="nofollow").`, external, nofollow),
		Details:     fmt.Sprintf("Total external links: %d, nofollow links: %d", external, nofollow),
	}, nil
}

// BrokenLinks flags links with empty or placeholder targets.
type BrokenLinks struct{}

func (BrokenLinks) Name() string             { return "Broken Links Test" }
func (BrokenLinks) Category() model.Category { return model.CategoryTechnical }

func (c BrokenLinks) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	empty := 0
	for _, a := range t.Document.ElementsWithAttr("a", "href") {
		href := strings.TrimSpace(a.Attr("href"))
		if href == "" || href == "#" || href == "javascript:void(0)" {
			empty++
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if empty == 0 {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = `No obviously broken links detected (empty href or "#").`
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityMedium
		result.Description = fmt.Sprintf("Found %d links with empty or placeholder href attributes.", empty)
	}

	return result, nil
}
