package htmldoc

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
<title> Sample Page </title>
<meta name="description" content="A sample.">
<meta name="VIEWPORT" content="width=device-width">
<meta property="og:title" content="Sample">
<meta property="og:image" content="/cover.png">
<link rel="canonical" href="https://example.com/">
<style>body { color: red; }</style>
</head>
<body>
<h1>Heading</h1>
<img src="/a.png" alt="a">
<img src="/b.png">
<script>console.log("hidden");</script>
<script src="/app.js"></script>
<p>Visible   text here.</p>
</body>
</html>`

func TestParse_malformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "unclosed tags", raw: "<html><body><p>text"},
		{name: "not html at all", raw: "{\"json\": true}"},
		{name: "binary garbage", raw: "\x00\x01\x02\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := Parse(tt.raw)
			if doc == nil {
				t.Fatal("Parse() returned nil")
			}
			// Queries must not panic and must return empty results for
			// missing structure.
			_ = doc.Title()
			_ = doc.Elements("img")
			_, _ = doc.MetaByName("description")
		})
	}
}

func TestDocument_queries(t *testing.T) {
	t.Parallel()

	doc := Parse(samplePage)

	if got, want := doc.Title(), "Sample Page"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
	if got, want := doc.Lang(), "en"; got != want {
		t.Errorf("Lang() = %q, want %q", got, want)
	}
	if got, want := doc.Count("img"), 2; got != want {
		t.Errorf("Count(img) = %d, want %d", got, want)
	}
	if got, want := len(doc.ElementsWithAttr("img", "alt")), 1; got != want {
		t.Errorf("ElementsWithAttr(img, alt) = %d elements, want %d", got, want)
	}

	present, html5 := doc.HasDoctype()
	if !present || !html5 {
		t.Errorf("HasDoctype() = (%v, %v), want (true, true)", present, html5)
	}
}

func TestDocument_metaLookups(t *testing.T) {
	t.Parallel()

	doc := Parse(samplePage)

	desc, ok := doc.MetaByName("description")
	if !ok {
		t.Fatal("MetaByName(description) not found")
	}
	if got, want := desc.Attr("content"), "A sample."; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}

	// Name matching is case-insensitive.
	if _, ok := doc.MetaByName("viewport"); !ok {
		t.Error("MetaByName(viewport) should match uppercase VIEWPORT attribute")
	}

	if _, ok := doc.MetaByProperty("og:title"); !ok {
		t.Error("MetaByProperty(og:title) not found")
	}
	if got, want := len(doc.MetasByPropertyPrefix("og:")), 2; got != want {
		t.Errorf("MetasByPropertyPrefix(og:) = %d elements, want %d", got, want)
	}
}

func TestDocument_headElements(t *testing.T) {
	t.Parallel()

	doc := Parse(samplePage)

	links := doc.HeadElements("link")
	if len(links) != 1 {
		t.Fatalf("HeadElements(link) = %d elements, want 1", len(links))
	}
	if got, want := links[0].Attr("rel"), "canonical"; got != want {
		t.Errorf("rel = %q, want %q", got, want)
	}
}

func TestDocument_hasNested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "table inside table",
			raw:  "<table><tr><td><table><tr><td>x</td></tr></table></td></tr></table>",
			want: true,
		},
		{
			name: "sibling tables",
			raw:  "<table></table><table></table>",
			want: false,
		},
		{
			name: "no tables",
			raw:  "<div><p>text</p></div>",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Parse(tt.raw).HasNested("table"); got != tt.want {
				t.Errorf("HasNested(table) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_textStripsScriptAndStyle(t *testing.T) {
	t.Parallel()

	text := Parse(samplePage).Text()
	if strings.Contains(text, "console.log") {
		t.Errorf("Text() should not contain script bodies, got %q", text)
	}
	if strings.Contains(text, "color: red") {
		t.Errorf("Text() should not contain style bodies, got %q", text)
	}
	if !strings.Contains(text, "Visible text here.") {
		t.Errorf("Text() should contain normalized visible text, got %q", text)
	}
}

func TestDocument_inlineScripts(t *testing.T) {
	t.Parallel()

	scripts := Parse(samplePage).InlineScripts()
	if len(scripts) != 1 {
		t.Fatalf("InlineScripts() = %d entries, want 1", len(scripts))
	}
	if !strings.Contains(scripts[0], "console.log") {
		t.Errorf("InlineScripts()[0] = %q, want the inline body", scripts[0])
	}
}
