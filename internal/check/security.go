package check

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// HTTPS verifies the page was requested over a secure scheme.
type HTTPS struct{}

func (HTTPS) Name() string             { return "HTTPS/SSL Test" }
func (HTTPS) Category() model.Category { return model.CategorySecurity }

func (c HTTPS) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if t.IsHTTPS() {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "This website is successfully using HTTPS."
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityHigh
		result.Description = "This website is not using HTTPS!"
	}

	return result, nil
}

// maxListedInsecureResources caps how many offending URLs land in Details.
const maxListedInsecureResources = 10

// MixedContent finds http:// resources on an https:// page.
// Inapplicable on pages served over plain HTTP.
type MixedContent struct{}

func (MixedContent) Name() string             { return "Mixed Content Test" }
func (MixedContent) Category() model.Category { return model.CategorySecurity }

func (c MixedContent) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	if !t.IsHTTPS() {
		return nil, nil
	}

	var insecure []string
	for _, e := range t.Document.Elements("") {
		ref := e.Attr("src")
		if ref == "" {
			ref = e.Attr("href")
		}
		if strings.HasPrefix(strings.ToLower(ref), "http://") {
			insecure = append(insecure, ref)
		}
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if len(insecure) == 0 {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "This webpage does not use mixed content."
		return result, nil
	}

	result.Status = model.StatusWarning
	result.Priority = model.PriorityHigh
	result.Description = fmt.Sprintf("Found %d insecure resources.", len(insecure))
	result.Recommendation = "Update resource URLs from http:// to https://, or switch to relative URLs; check stylesheets and stored content for hardcoded HTTP links."

	listed := insecure
	if len(listed) > maxListedInsecureResources {
		listed = listed[:maxListedInsecureResources]
	}
	result.Details = "Insecure resources: " + strings.Join(listed, ", ")
	if len(insecure) > maxListedInsecureResources {
		result.Details += fmt.Sprintf(" (+ %d more)", len(insecure)-maxListedInsecureResources)
	}

	return result, nil
}

// deprecatedTags are presentation elements dropped from modern HTML.
var deprecatedTags = []string{"center", "font", "marquee", "blink", "strike"}

// DeprecatedHTML counts deprecated presentation tags.
type DeprecatedHTML struct{}

func (DeprecatedHTML) Name() string             { return "Deprecated HTML Test" }
func (DeprecatedHTML) Category() model.Category { return model.CategorySecurity }

func (c DeprecatedHTML) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := 0
	for _, tag := range deprecatedTags {
		count += t.Document.Count(tag)
	}

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if count == 0 {
		result.Status = model.StatusPass
		result.Priority = model.PriorityLow
		result.Description = "This webpage does not use deprecated HTML tags."
	} else {
		result.Status = model.StatusWarning
		result.Priority = model.PriorityMedium
		result.Description = fmt.Sprintf("Found %d deprecated tags.", count)
		result.Recommendation = "Remove deprecated tags such as <center> and <font> and use CSS for styling instead."
	}

	return result, nil
}

// emailPattern matches plaintext email addresses in visible text.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// PlaintextEmail counts email addresses exposed in the page text, which
// harvesters scrape for spam lists.
type PlaintextEmail struct{}

func (PlaintextEmail) Name() string             { return "Plaintext Email Test" }
func (PlaintextEmail) Category() model.Category { return model.CategorySecurity }

func (c PlaintextEmail) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	count := len(emailPattern.FindAllString(t.Document.Text(), -1))

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if count == 0 {
		result.Status = model.StatusPass
		result.Description = "No plaintext emails found."
	} else {
		result.Status = model.StatusNeutral
		result.Description = fmt.Sprintf("Found %d plaintext emails.", count)
	}

	return result, nil
}

// versionDigit spots version numbers in the Server header.
var versionDigit = regexp.MustCompile(`\d`)

// ServerSignature flags Server headers that reveal version numbers.
type ServerSignature struct{}

func (ServerSignature) Name() string             { return "Server Signature Test" }
func (ServerSignature) Category() model.Category { return model.CategorySecurity }

func (c ServerSignature) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	server := t.Header("server")
	exposed := server != "" && versionDigit.MatchString(server)

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityMedium,
	}
	if server != "" {
		result.Details = "Server header: " + server
	}

	if exposed {
		result.Status = model.StatusWarning
		result.Description = "Server is identifying itself with version numbers. This can be a security risk."
		result.Recommendation = "Hide version information: ServerTokens Prod and ServerSignature Off for Apache, server_tokens off for Nginx."
	} else {
		result.Status = model.StatusPass
		result.Description = "Server signature is hidden or generic. This is good for security."
	}

	return result, nil
}

// HSTS checks for the Strict-Transport-Security header.
type HSTS struct{}

func (HSTS) Name() string             { return "HSTS Test" }
func (HSTS) Category() model.Category { return model.CategorySecurity }

func (c HSTS) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityMedium,
	}

	if t.Header("strict-transport-security") != "" {
		result.Status = model.StatusPass
		result.Description = "Strict-Transport-Security header is present. This enforces secure HTTPS connections."
	} else {
		result.Status = model.StatusWarning
		result.Description = "This webpage is not using the Strict-Transport-Security header! This is a security header that was created as a way to force the browser to use secure connections when a site is running over HTTPS."
		result.Recommendation = "Add the Strict-Transport-Security header to your responses, for example: max-age=31536000; includeSubDomains; preload."
	}

	return result, nil
}

// XContentTypeOptions checks for the nosniff MIME-sniffing protection.
type XContentTypeOptions struct{}

func (XContentTypeOptions) Name() string             { return "X-Content-Type-Options Test" }
func (XContentTypeOptions) Category() model.Category { return model.CategorySecurity }

func (c XContentTypeOptions) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}

	if strings.Contains(strings.ToLower(t.Header("x-content-type-options")), "nosniff") {
		result.Status = model.StatusPass
		result.Description = "X-Content-Type-Options: nosniff header is present. This prevents MIME-sniffing attacks."
	} else {
		result.Status = model.StatusWarning
		result.Description = "X-Content-Type-Options header missing or incorrect."
		result.Recommendation = "Add the X-Content-Type-Options \"nosniff\" header to your server's responses."
	}

	return result, nil
}

// XFrameOptions checks for clickjacking protection.
type XFrameOptions struct{}

func (XFrameOptions) Name() string             { return "X-Frame-Options Test" }
func (XFrameOptions) Category() model.Category { return model.CategorySecurity }

func (c XFrameOptions) Run(_ context.Context, t *Target) (*model.CheckResult, error) {
	value := strings.ToUpper(t.Header("x-frame-options"))
	secure := strings.Contains(value, "DENY") || strings.Contains(value, "SAMEORIGIN")

	result := &model.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Priority: model.PriorityLow,
	}
	if value != "" {
		result.Details = "Value: " + t.Header("x-frame-options")
	}

	if secure {
		result.Status = model.StatusPass
		result.Description = "X-Frame-Options header is set to prevent clickjacking."
	} else {
		result.Status = model.StatusWarning
		result.Description = "X-Frame-Options header missing. Site might be vulnerable to clickjacking."
		result.Recommendation = "Add the X-Frame-Options \"SAMEORIGIN\" header to your server's responses."
	}

	return result, nil
}
