package selector_test

import (
	"testing"

	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/htmlstream/selector"
	"golang.org/x/net/html"
)

func el(h htmlstream.Handle, name string, attrs ...string) htmlstream.PathElement {
	elem := htmlstream.PathElement{Handle: h, Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		elem.Attrs = append(elem.Attrs, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return elem
}

func TestCssClassMatch(t *testing.T) {
	sel := selector.MustCss(".hello")
	hello := el(1, "p", "class", "hello")
	plain := el(2, "p")
	if !sel.IsMatch(&hello) {
		t.Error("expected .hello to match the classed element, didn't")
	}
	if sel.IsMatch(&plain) {
		t.Error("expected .hello not to match a plain element, did")
	}
}

func TestCssDescendantCombinator(t *testing.T) {
	sel := selector.MustCss("article p")
	ctxt := htmlstream.Context{el(1, "body"), el(2, "article"), el(3, "div")}
	p := el(4, "p")
	if !sel.ContextMatch(ctxt, &p) {
		t.Error("expected 'article p' to match with article on the path, didn't")
	}
	boring := htmlstream.Context{el(1, "body"), el(3, "div")}
	if sel.ContextMatch(boring, &p) {
		t.Error("expected 'article p' not to match without an article ancestor, did")
	}
	// without its ancestors the combinator cannot match
	if sel.IsMatch(&p) {
		t.Error("expected a combinator selector not to match a lone element, did")
	}
}

func TestCssChildCombinator(t *testing.T) {
	sel := selector.MustCss("ul > li")
	li := el(3, "li")
	if !sel.ContextMatch(htmlstream.Context{el(1, "div"), el(2, "ul")}, &li) {
		t.Error("expected 'ul > li' to match a direct child, didn't")
	}
	if sel.ContextMatch(htmlstream.Context{el(1, "ul"), el(2, "div")}, &li) {
		t.Error("expected 'ul > li' not to match through an intervening div, did")
	}
}

func TestCssAttributeMatch(t *testing.T) {
	sel := selector.MustCss(`a[href^="https:"]`)
	secure := el(1, "a", "href", "https://example.org")
	insecure := el(2, "a", "href", "http://example.org")
	if !sel.IsMatch(&secure) {
		t.Error("expected the attribute selector to match, didn't")
	}
	if sel.IsMatch(&insecure) {
		t.Error("expected the attribute selector not to match, did")
	}
}

func TestCssRejectsGarbage(t *testing.T) {
	if _, err := selector.Css("p["); err == nil {
		t.Error("expected a compile error for a malformed selector, have none")
	}
}

func TestTagSelector(t *testing.T) {
	sel := selector.Tag("html")
	root := el(1, "html")
	p := el(2, "p")
	if !sel.IsMatch(&root) || sel.IsMatch(&p) {
		t.Error("expected the tag selector to match by name only, didn't")
	}
	if !sel.ContextMatch(htmlstream.Context{p}, &root) {
		t.Error("expected context not to influence a tag selector, did")
	}
}
