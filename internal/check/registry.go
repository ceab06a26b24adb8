package check

import "github.com/seoscan/seoscan/internal/fetch"

// Defaults returns the full check registry in its canonical order. Results
// are reported in exactly this order, so appending here is the only step
// needed to ship a new check.
//
// Design decision: The registry is a plain ordered slice rather than a
// map-based plugin system because result order is part of the report
// contract and a slice makes that order reviewable in one place.
func Defaults(client fetch.Client) []Check {
	return []Check{
		// Meta tags.
		MetaTitle{},
		MetaDescription{},
		OpenGraph{},
		MetaKeywords{},

		// Heading structure.
		H1Heading{},
		H2Headings{},
		HeadingHierarchy{},

		// Image optimization.
		ImageAltText{},
		ResponsiveImages{},
		ModernImageFormats{},

		// Performance.
		HTTPRequests{},
		ResourceMinification{},
		PageSize{},
		InlineCSS{},

		// Security.
		HTTPS{},
		SSLCertificate{Client: client},
		MixedContent{},
		DeprecatedHTML{},
		PlaintextEmail{},

		// Server behavior.
		IPCanonicalization{Client: client},
		SPFRecord{Client: client},
		AdsTxt{Client: client},
		Custom404{Client: client},
		URLCanonicalization{Client: client},

		// Technical SEO.
		Viewport{},
		Language{},
		Favicon{},
		Canonical{},
		RobotsMeta{},

		// Crawlability.
		Sitemap{Client: client},
		RobotsTxt{Client: client},

		// Analytics and tracking.
		GoogleAnalytics{},
		FacebookPixel{},
		GoogleTagManager{},

		// Structured data.
		JSONLDSchema{},
		MicrodataSchema{},

		// Mobile.
		MobileFriendly{},
		FontReadability{},

		// Social presence.
		TwitterCards{},

		// Link quality.
		InternalLinks{},
		ExternalLinks{},
		BrokenLinks{},

		// Response headers.
		GZIPCompression{},
		ServerSignature{},
		HSTS{},
		XContentTypeOptions{},
		XFrameOptions{},

		// Content structure.
		CharsetDeclaration{},
		Doctype{},
		NestedTables{},
		Frameset{},
		TextRatio{},
		URLLength{},
		URLUnderscores{},
		Breadcrumbs{},
		ImageTitles{},
		JSLibraries{},
		CSSFrameworks{},

		// Social profiles.
		SocialLink{Platform: "LinkedIn", Domain: "linkedin.com"},
		SocialLink{Platform: "Instagram", Domain: "instagram.com"},
		SocialLink{Platform: "YouTube", Domain: "youtube.com"},
		SocialLink{Platform: "Pinterest", Domain: "pinterest.com"},

		// Extra performance.
		DOMSize{},
		CDNUsage{},
		ImageMetadata{Client: client},
		BrowserCaching{},
		RenderBlocking{},

		// Keyword relevance.
		RelatedKeywords{},
	}
}
