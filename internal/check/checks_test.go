package check

import (
	"context"
	"strings"
	"testing"

	"github.com/seoscan/seoscan/internal/model"
)

// target is a test helper building a Target from inline HTML.
func target(t *testing.T, url, html string, headers map[string]string) *Target {
	t.Helper()
	return NewTarget(url, html, headers)
}

func TestMetaTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantStatus   model.Status
		wantPriority model.Priority
	}{
		{
			name:         "title in range passes",
			html:         "<html><head><title>A perfectly sized page title</title></head></html>",
			wantStatus:   model.StatusPass,
			wantPriority: model.PriorityLow,
		},
		{
			name:         "missing title warns at high priority",
			html:         "<html><head></head><body></body></html>",
			wantStatus:   model.StatusWarning,
			wantPriority: model.PriorityHigh,
		},
		{
			name:         "too short title is neutral at medium priority",
			html:         "<html><head><title>short</title></head></html>",
			wantStatus:   model.StatusNeutral,
			wantPriority: model.PriorityMedium,
		},
		{
			name:         "too long title is neutral",
			html:         "<html><head><title>" + strings.Repeat("x", 101) + "</title></head></html>",
			wantStatus:   model.StatusNeutral,
			wantPriority: model.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MetaTitle{}.Run(context.Background(), target(t, "https://example.com", tt.html, nil))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("Priority = %v, want %v", got.Priority, tt.wantPriority)
			}
		})
	}
}

func TestH1Heading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		html       string
		wantStatus model.Status
	}{
		{name: "exactly one passes", html: "<body><h1>one</h1></body>", wantStatus: model.StatusPass},
		{name: "none is an error", html: "<body><h2>two</h2></body>", wantStatus: model.StatusError},
		{name: "multiple warns", html: "<body><h1>a</h1><h1>b</h1></body>", wantStatus: model.StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := H1Heading{}.Run(context.Background(), target(t, "https://example.com", tt.html, nil))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestImageAltText_ratioThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		html       string
		wantStatus model.Status
	}{
		{
			name:       "all alts present passes",
			html:       `<body><img src="a" alt="a"><img src="b" alt="b"></body>`,
			wantStatus: model.StatusPass,
		},
		{
			name:       "one of two missing warns",
			html:       `<body><img src="a" alt="a"><img src="b"></body>`,
			wantStatus: model.StatusWarning,
		},
		{
			name:       "one of twenty missing is within tolerance",
			html:       `<body>` + strings.Repeat(`<img src="a" alt="a">`, 19) + `<img src="b"></body>`,
			wantStatus: model.StatusPass,
		},
		{
			name:       "no images still passes",
			html:       `<body><p>text</p></body>`,
			wantStatus: model.StatusPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ImageAltText{}.Run(context.Background(), target(t, "https://example.com", tt.html, nil))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestResponsiveImages_inapplicableWithoutImages(t *testing.T) {
	t.Parallel()

	got, err := ResponsiveImages{}.Run(context.Background(), target(t, "https://example.com", "<body><p>no images</p></body>", nil))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != nil {
		t.Errorf("Run() = %+v, want nil for page without images", got)
	}
}

func TestMixedContent(t *testing.T) {
	t.Parallel()

	t.Run("inapplicable on http pages", func(t *testing.T) {
		t.Parallel()

		got, err := MixedContent{}.Run(context.Background(),
			target(t, "http://example.com", `<img src="http://cdn.example.com/a.png">`, nil))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got != nil {
			t.Errorf("Run() = %+v, want nil on http page", got)
		}
	})

	t.Run("insecure resources on https page warn", func(t *testing.T) {
		t.Parallel()

		got, err := MixedContent{}.Run(context.Background(),
			target(t, "https://example.com", `<img src="http://cdn.example.com/a.png"><script src="https://ok.com/x.js"></script>`, nil))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got.Status != model.StatusWarning {
			t.Errorf("Status = %v, want warning", got.Status)
		}
		if got.Priority != model.PriorityHigh {
			t.Errorf("Priority = %v, want high", got.Priority)
		}
	})

	t.Run("clean https page passes", func(t *testing.T) {
		t.Parallel()

		got, err := MixedContent{}.Run(context.Background(),
			target(t, "https://example.com", `<img src="https://cdn.example.com/a.png">`, nil))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got.Status != model.StatusPass {
			t.Errorf("Status = %v, want pass", got.Status)
		}
	})
}

func TestPageSize_tiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sizeKB     int
		wantStatus model.Status
	}{
		{name: "small page passes", sizeKB: 50, wantStatus: model.StatusPass},
		{name: "medium page is neutral", sizeKB: 300, wantStatus: model.StatusNeutral},
		{name: "large page warns", sizeKB: 600, wantStatus: model.StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html := strings.Repeat("x", tt.sizeKB*1024)
			got, err := PageSize{}.Run(context.Background(), target(t, "https://example.com", html, nil))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestHeaderChecks(t *testing.T) {
	t.Parallel()

	headers := map[string]string{
		"content-encoding":          "gzip",
		"strict-transport-security": "max-age=31536000",
		"x-content-type-options":    "nosniff",
		"x-frame-options":           "SAMEORIGIN",
		"server":                    "nginx",
		"cache-control":             "public, max-age=3600",
	}
	tgt := target(t, "https://example.com", "<html></html>", headers)

	checks := []Check{
		GZIPCompression{},
		HSTS{},
		XContentTypeOptions{},
		XFrameOptions{},
		ServerSignature{},
		BrowserCaching{},
	}
	for _, c := range checks {
		t.Run(c.Name(), func(t *testing.T) {
			t.Parallel()

			got, err := c.Run(context.Background(), tgt)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != model.StatusPass {
				t.Errorf("Status = %v, want pass with well-configured headers", got.Status)
			}
		})
	}

	t.Run("versioned server header warns", func(t *testing.T) {
		t.Parallel()

		got, err := ServerSignature{}.Run(context.Background(),
			target(t, "https://example.com", "<html></html>", map[string]string{"server": "Apache/2.4.41"}))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got.Status != model.StatusWarning {
			t.Errorf("Status = %v, want warning for versioned server header", got.Status)
		}
	})

	t.Run("missing headers warn", func(t *testing.T) {
		t.Parallel()

		bare := target(t, "https://example.com", "<html></html>", nil)
		for _, c := range []Check{GZIPCompression{}, HSTS{}, XContentTypeOptions{}, XFrameOptions{}} {
			got, err := c.Run(context.Background(), bare)
			if err != nil {
				t.Fatalf("%s: Run() error = %v", c.Name(), err)
			}
			if got.Status != model.StatusWarning {
				t.Errorf("%s: Status = %v, want warning without headers", c.Name(), got.Status)
			}
		}
	})
}

func TestURLChecks(t *testing.T) {
	t.Parallel()

	t.Run("underscores warn", func(t *testing.T) {
		t.Parallel()

		got, err := URLUnderscores{}.Run(context.Background(), target(t, "https://example.com/my_page", "", nil))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got.Status != model.StatusWarning {
			t.Errorf("Status = %v, want warning", got.Status)
		}
	})

	t.Run("long URL warns", func(t *testing.T) {
		t.Parallel()

		long := "https://example.com/" + strings.Repeat("a", 100)
		got, err := URLLength{}.Run(context.Background(), target(t, long, "", nil))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got.Status != model.StatusWarning {
			t.Errorf("Status = %v, want warning", got.Status)
		}
	})
}

func TestJSONLDSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		html       string
		wantStatus model.Status
	}{
		{
			name:       "valid block passes",
			html:       `<script type="application/ld+json">{"@type": "Organization"}</script>`,
			wantStatus: model.StatusPass,
		},
		{
			name:       "invalid json warns",
			html:       `<script type="application/ld+json">{not json</script>`,
			wantStatus: model.StatusWarning,
		},
		{
			name:       "absent is neutral",
			html:       `<p>no schema</p>`,
			wantStatus: model.StatusNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := JSONLDSchema{}.Run(context.Background(), target(t, "https://example.com", tt.html, nil))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestSocialLink(t *testing.T) {
	t.Parallel()

	html := `<a href="https://www.linkedin.com/company/example">follow us</a>`
	tgt := target(t, "https://example.com", html, nil)

	linkedIn := SocialLink{Platform: "LinkedIn", Domain: "linkedin.com"}
	got, err := linkedIn.Run(context.Background(), tgt)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.Status != model.StatusPass {
		t.Errorf("LinkedIn Status = %v, want pass", got.Status)
	}
	if got.Name != "LinkedIn Connectivity" {
		t.Errorf("Name = %q, want %q", got.Name, "LinkedIn Connectivity")
	}

	youTube := SocialLink{Platform: "YouTube", Domain: "youtube.com"}
	got, err = youTube.Run(context.Background(), tgt)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.Status != model.StatusNeutral {
		t.Errorf("YouTube Status = %v, want neutral", got.Status)
	}
}

func TestHTTPS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		url          string
		wantStatus   model.Status
		wantPriority model.Priority
	}{
		{
			name:         "https page passes",
			url:          "https://example.com",
			wantStatus:   model.StatusPass,
			wantPriority: model.PriorityLow,
		},
		{
			name:         "http page warns at high priority",
			url:          "http://example.com",
			wantStatus:   model.StatusWarning,
			wantPriority: model.PriorityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := HTTPS{}.Run(context.Background(), target(t, tt.url, "<html></html>", nil))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("Priority = %v, want %v", got.Priority, tt.wantPriority)
			}
		})
	}
}

func TestDefaults_registersSchemeCheck(t *testing.T) {
	t.Parallel()

	// The scheme check works without any network access, so it must be in
	// the registry alongside the TLS-probing one; only the latter degrades
	// to neutral when the probe fails.
	for _, c := range Defaults(nil) {
		if c.Name() == "HTTPS/SSL Test" {
			return
		}
	}
	t.Error(`Defaults() does not register the "HTTPS/SSL Test" check`)
}

func TestDefaults_uniqueNames(t *testing.T) {
	t.Parallel()

	checks := Defaults(nil)
	if len(checks) < 60 {
		t.Fatalf("Defaults() = %d checks, want the full registry", len(checks))
	}

	seen := make(map[string]bool, len(checks))
	for _, c := range checks {
		if seen[c.Name()] {
			t.Errorf("duplicate check name %q", c.Name())
		}
		seen[c.Name()] = true
		if c.Category() == "" {
			t.Errorf("check %q has no category", c.Name())
		}
	}
}
