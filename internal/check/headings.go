package check

import (
	"context"
	"fmt"

	"github.com/seoscan/seoscan/internal/model"
)

// H1Heading verifies the page has exactly one H1 tag.
type H1Heading struct{}

func (H1Heading) Name() string             { return "H1 Heading Tag Test" }
func (H1Heading) Category() model.Category { return model.CategoryHeadings }

func (c H1Heading) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := t.Document.Count("h1")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	switch {
	case count == 0:
		result.Status = model.StatusError
		result.Priority = model.PriorityHigh
		result.Description = "No H1 heading tag found. H1 tags are important for SEO and page structure."
	case count == 1:
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "This webpage has exactly one H1 heading tag."
		result.Details = fmt.Sprintf("Count: %d H1 tags", count)
	default:
		result.Status = model.StatusWarning
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf("This webpage has %d H1 heading tags.", count)
		result.Details = fmt.Sprintf("Count: %d H1 tags", count)
	}

	if count != 1 {
		result.Recommendation = "Ensure the page has exactly one <h1> tag: demote extra H1s to <h2> or <h3>, or add a descriptive <h1> containing your main keyword if none exists."
	}

	return result, nil
}

// H2Headings verifies H2 tags are used to structure the content.
type H2Headings struct{}

func (H2Headings) Name() string             { return "H2 Heading Tags Test" }
func (H2Headings) Category() model.Category { return model.CategoryHeadings }

func (c H2Headings) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := t.Document.Count("h2")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if count > 0 {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf("This webpage has %d H2 tags, which is good for content structure.", count)
	} else {
		result.Status = model.StatusNeutral
		result.Priority = model.PriorityMedium
		result.Description = "No H2 tags found. H2 tags help structure your content."
	}

	return result, nil
}

// HeadingHierarchy reports the H1/H2/H3 distribution. Informational only.
type HeadingHierarchy struct{}

func (HeadingHierarchy) Name() string             { return "Heading Hierarchy Test" }
func (HeadingHierarchy) Category() model.Category { return model.CategoryHeadings }

func (c HeadingHierarchy) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	return &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   model.StatusNeutral,
		Priority: model.PriorityLow,
		Description: fmt.Sprintf("Heading distribution: H1(%d), H2(%d), H3(%d)",
			t.Document.Count("h1"), t.Document.Count("h2"), t.Document.Count("h3")),
	}, nil
}
