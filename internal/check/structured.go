package check

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// JSONLDSchema validates JSON-LD structured data blocks.
type JSONLDSchema struct{}

func (JSONLDSchema) Name() string             { return "Structured Data (Schema.org) Test" }
func (JSONLDSchema) Category() model.Category { return model.CategoryTechnical }

func (c JSONLDSchema) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := 0
	valid := true
	var schemas []string

	for _, script := range t.Document.Elements("script") {
		if !strings.EqualFold(script.Attr("type"), "application/ld+json") {
			continue
		}
		count++

		var data map[string]any
		if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
			valid = false
			continue
		}
		switch {
		case data["@type"] != nil:
			schemas = append(schemas, fmt.Sprint(data["@type"]))
		case data["@graph"] != nil:
			schemas = append(schemas, "Multiple types (Graph)")
		default:
			schemas = append(schemas, "Unknown")
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}
	if len(schemas) > 0 {
		result.Details = "Schema types: " + strings.Join(schemas, ", ")
	}

	switch {
	case count == 0:
		result.Status = model.StatusNeutral
		result.Priority = model.PriorityMedium
		result.Description = "No structured data (JSON-LD) found. Structured data helps search engines understand your content."
	case valid:
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf("Found %d structured data block(s). This helps search engines understand your content better.", count)
	default:
		result.Status = model.StatusWarning
		result.Priority = model.PriorityLow
		result.Description = fmt.Sprintf("Found %d structured data block(s), but some may have syntax errors.", count)
	}

	return result, nil
}

// MicrodataSchema counts elements with microdata itemscope markup.
type MicrodataSchema struct{}

func (MicrodataSchema) Name() string             { return "Microdata Schema Test" }
func (MicrodataSchema) Category() model.Category { return model.CategoryTechnical }

func (c MicrodataSchema) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := len(t.Document.ElementsWithAttr("", "itemscope"))

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if count > 0 {
		result.Status = model.StatusPass
		result.Description = fmt.Sprintf("Found %d elements with microdata markup.", count)
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No microdata markup found. JSON-LD is the recommended format."
	}

	return result, nil
}
