package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// GoogleAnalytics detects GA4 or legacy Universal Analytics tags.
type GoogleAnalytics struct{}

func (GoogleAnalytics) Name() string             { return "Google Analytics Test" }
func (GoogleAnalytics) Category() model.Category { return model.CategorySocial }

func (c GoogleAnalytics) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	hasGA4, hasUA := false, false
	for _, s := range t.Document.Elements("script") {
		src := s.Attr("src")
		body := s.Text()
		if strings.Contains(src, "googletagmanager.com/gtag/js") ||
			strings.Contains(body, "gtag(") ||
			strings.Contains(body, "G-") {
			hasGA4 = true
		}
		if strings.Contains(src, "google-analytics.com/analytics.js") ||
			strings.Contains(body, "UA-") {
			hasUA = true
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	switch {
	case hasGA4:
		result.Status = model.StatusPass
		result.Description = "Google Analytics 4 (GA4) detected on this website."
		result.Details = "Type: Google Analytics 4"
	case hasUA:
		result.Status = model.StatusPass
		result.Description = "Universal Analytics detected. Consider upgrading to GA4."
		result.Details = "Type: Universal Analytics (Legacy)"
	default:
		result.Status = model.StatusNeutral
		result.Description = "No Google Analytics detected. Analytics help track website performance."
	}

	return result, nil
}

// FacebookPixel detects the Facebook conversion tracking pixel.
type FacebookPixel struct{}

func (FacebookPixel) Name() string             { return "Facebook Pixel Test" }
func (FacebookPixel) Category() model.Category { return model.CategorySocial }

func (c FacebookPixel) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	found := false
	for _, s := range t.Document.Elements("script") {
		if strings.Contains(s.Text(), "fbq(") ||
			strings.Contains(s.Attr("src"), "connect.facebook.net") {
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
		result.Description = "Facebook Pixel detected for conversion tracking."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No Facebook Pixel detected."
	}

	return result, nil
}

// GoogleTagManager detects GTM via its script or noscript fallback.
type GoogleTagManager struct{}

func (GoogleTagManager) Name() string             { return "Google Tag Manager Test" }
func (GoogleTagManager) Category() model.Category { return model.CategorySocial }

func (c GoogleTagManager) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	found := false
	for _, s := range t.Document.Elements("script") {
		if strings.Contains(s.Attr("src"), "googletagmanager.com/gtm.js") {
			found = true
			break
		}
	}
	if !found {
		for _, n := range t.Document.Elements("noscript") {
			if strings.Contains(n.HTML(), "googletagmanager.com") {
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
		result.Description = "Google Tag Manager detected. GTM simplifies tag management."
	} else {
		result.Status = model.StatusNeutral
		result.Description = "No Google Tag Manager detected."
	}

	return result, nil
}

// TwitterCards verifies the Twitter Card meta tag set.
type TwitterCards struct{}

func (TwitterCards) Name() string             { return "Twitter Card Tags Test" }
func (TwitterCards) Category() model.Category { return model.CategorySocial }

func (c TwitterCards) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	_, hasCard := t.Document.MetaByName("twitter:card")
	_, hasTitle := t.Document.MetaByName("twitter:title")
	_, hasDesc := t.Document.MetaByName("twitter:description")
	_, hasImage := t.Document.MetaByName("twitter:image")

	any := hasCard || hasTitle || hasDesc || hasImage
	complete := hasCard && hasTitle && hasImage

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}
	if any {
		result.Details = fmt.Sprintf("twitter:card: %v, twitter:title: %v, twitter:description: %v, twitter:image: %v",
			hasCard, hasTitle, hasDesc, hasImage)
	}

	switch {
	case complete:
		result.Status = model.StatusPass
		result.Description = "Twitter Card meta tags are properly configured."
	case any:
		result.Status = model.StatusNeutral
		result.Description = "Some Twitter Card tags present but incomplete."
	default:
		result.Status = model.StatusNeutral
		result.Description = "No Twitter Card meta tags found."
	}

	return result, nil
}

// SocialLink probes for an outbound link to one social platform. One
// instance per platform is registered.
type SocialLink struct {
	// Platform is the display name ("LinkedIn").
	Platform string

	// Domain is the host fragment that identifies the platform
	// ("linkedin.com").
	Domain string
}

func (c SocialLink) Name() string           { return c.Platform + " Connectivity" }
func (SocialLink) Category() model.Category { return model.CategorySocial }

func (c SocialLink) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	found := false
	for _, a := range t.Document.ElementsWithAttr("a", "href") {
		if strings.Contains(strings.ToLower(a.Attr("href")), c.Domain) {
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
		result.Description = fmt.Sprintf("Website links to %s.", c.Platform)
	} else {
		result.Status = model.StatusNeutral
		result.Description = fmt.Sprintf("No link to %s found.", c.Platform)
	}

	return result, nil
}
