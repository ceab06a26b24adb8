package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
// All query methods are read-only and nil-safe: a query against a document
// parsed from garbage input returns empty results, never panics.
//
// Design decision: We expose capability-style queries (elements by tag,
// meta lookups, head subtree, nested-tag detection) rather than a generic
// CSS selector engine because the checks only need a small, fixed set of
// query shapes. golang.org/x/net/html gives us tolerant parsing and a proper
// tree; the targeted accessors keep call sites readable.
type Document struct {
	root *html.Node
}

// Element wraps a single element node.
type Element struct {
	node *html.Node
}

// Parse parses raw HTML into a Document. It never fails: malformed input is
// repaired best-effort, and unreadable input yields an empty document whose
// queries all return empty results.
func Parse(raw string) *Document {
	node, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse only fails on reader errors, which strings.Reader
		// cannot produce. Guard anyway so queries stay nil-safe.
		return &Document{}
	}
	return &Document{root: node}
}

// walk visits every node under n in document order.
// The visitor returns false to stop the walk early.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// Elements returns every element with the given tag name, in document order.
// An empty tag matches all elements.
func (d *Document) Elements(tag string) []Element {
	var out []Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (tag == "" || n.Data == tag) {
			out = append(out, Element{node: n})
		}
		return true
	})
	return out
}

// Count returns the number of elements with the given tag name.
// An empty tag counts all elements (used for DOM size checks).
func (d *Document) Count(tag string) int {
	return len(d.Elements(tag))
}

// First returns the first element with the given tag name.
func (d *Document) First(tag string) (Element, bool) {
	var found Element
	ok := false
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			found = Element{node: n}
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// ElementsWithAttr returns every element with the given tag carrying the
// given attribute, regardless of its value. An empty tag matches any element.
func (d *Document) ElementsWithAttr(tag, attr string) []Element {
	var out []Element
	for _, e := range d.Elements(tag) {
		if e.HasAttr(attr) {
			out = append(out, e)
		}
	}
	return out
}

// MetaByName returns the first <meta name="..."> element matching name.
// Matching is case-insensitive on the name attribute, as browsers are.
func (d *Document) MetaByName(name string) (Element, bool) {
	for _, e := range d.Elements("meta") {
		if strings.EqualFold(e.Attr("name"), name) {
			return e, true
		}
	}
	return Element{}, false
}

// MetaByProperty returns the first <meta property="..."> element matching
// property. Used for Open Graph tags.
func (d *Document) MetaByProperty(property string) (Element, bool) {
	for _, e := range d.Elements("meta") {
		if strings.EqualFold(e.Attr("property"), property) {
			return e, true
		}
	}
	return Element{}, false
}

// MetasByPropertyPrefix returns every <meta> whose property attribute starts
// with the given prefix (e.g. "og:").
func (d *Document) MetasByPropertyPrefix(prefix string) []Element {
	var out []Element
	for _, e := range d.Elements("meta") {
		if strings.HasPrefix(strings.ToLower(e.Attr("property")), prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Title returns the text of the first <title> element, trimmed.
func (d *Document) Title() string {
	t, ok := d.First("title")
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.Text())
}

// Lang returns the lang attribute of the root <html> element.
func (d *Document) Lang() string {
	e, ok := d.First("html")
	if !ok {
		return ""
	}
	return e.Attr("lang")
}

// HasDoctype reports whether the document carries a doctype declaration,
// and whether that doctype is the HTML5 "html" form.
func (d *Document) HasDoctype() (present, html5 bool) {
	if d.root == nil {
		return false, false
	}
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return true, strings.EqualFold(c.Data, "html")
		}
	}
	return false, false
}

// HeadElements returns elements with the given tag inside <head>.
func (d *Document) HeadElements(tag string) []Element {
	head, ok := d.First("head")
	if !ok {
		return nil
	}
	var out []Element
	walk(head.node, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, Element{node: n})
		}
		return true
	})
	return out
}

// HasNested reports whether an element with the given tag appears inside
// another element with the same tag (e.g. a table within a table).
func (d *Document) HasNested(tag string) bool {
	nested := false
	var depth int
	var descend func(n *html.Node)
	descend = func(n *html.Node) {
		if nested || n == nil {
			return
		}
		isTag := n.Type == html.ElementNode && n.Data == tag
		if isTag {
			if depth > 0 {
				nested = true
				return
			}
			depth++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			descend(c)
		}
		if isTag {
			depth--
		}
	}
	descend(d.root)
	return nested
}

// Text extracts the document's visible text: every text node with the
// contents of <script> and <style> elements stripped. Word-count and
// text-ratio checks run against this.
func (d *Document) Text() string {
	var b strings.Builder
	var descend func(n *html.Node)
	descend = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			descend(c)
		}
	}
	descend(d.root)
	return strings.Join(strings.Fields(b.String()), " ")
}

// InlineScripts returns the text content of every <script> element without
// a src attribute. Tracker-detection checks scan these bodies.
func (d *Document) InlineScripts() []string {
	var out []string
	for _, e := range d.Elements("script") {
		if e.HasAttr("src") {
			continue
		}
		if body := e.Text(); body != "" {
			out = append(out, body)
		}
	}
	return out
}

// HTML renders the element's subtree back to markup. Checks that look for
// markers inside <noscript> bodies use this, since such content may be
// parsed as text or as elements depending on context.
func (e Element) HTML() string {
	if e.node == nil {
		return ""
	}
	var b strings.Builder
	if err := html.Render(&b, e.node); err != nil {
		return ""
	}
	return b.String()
}

// Tag returns the element's tag name.
func (e Element) Tag() string {
	if e.node == nil {
		return ""
	}
	return e.node.Data
}

// Attr returns the value of the named attribute, or the empty string when
// absent. Attribute name matching is case-insensitive.
func (e Element) Attr(name string) string {
	if e.node == nil {
		return ""
	}
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, even if empty.
func (e Element) HasAttr(name string) bool {
	if e.node == nil {
		return false
	}
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of the element's subtree.
func (e Element) Text() string {
	if e.node == nil {
		return ""
	}
	var b strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}
