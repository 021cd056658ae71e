/*
Package selector provides the match capability the filter stages depend on.

The concrete CSS selector grammar and its compilation are delegated to
github.com/andybalholm/cascadia; this package only adapts streamed ancestor
paths to cascadia's node model. Because matching happens against a
single-pass stream, only the ancestor axis is available: descendant and
child combinators work, sibling combinators never match (the stream has
already moved past any preceding sibling).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/htmlstream"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContextualSelector is the minimal ancestor-aware match capability: it
// tests an element together with its full ancestor path.
type ContextualSelector interface {
	ContextMatch(ctxt htmlstream.Context, elem *htmlstream.PathElement) bool
}

// Selector additionally supports matching a single element in isolation,
// by name and attributes only, without ancestor awareness.
type Selector interface {
	ContextualSelector
	IsMatch(elem *htmlstream.PathElement) bool
}

// --- CSS selectors ---------------------------------------------------------

// Css compiles a CSS selector group, e.g. "article p.hello", into a
// Selector. IsMatch evaluates the selector against the lone element (an
// element-only selector like ".hello" behaves as expected; a selector with
// combinators cannot match without its ancestors). ContextMatch evaluates
// it against the element at the bottom of its ancestor path.
func Css(expr string) (Selector, error) {
	group, err := cascadia.ParseGroup(expr)
	if err != nil {
		return nil, err
	}
	return cssSelector{group: group}, nil
}

// MustCss is like Css but panics on a malformed selector expression.
// It simplifies pipeline construction with selector literals.
func MustCss(expr string) Selector {
	sel, err := Css(expr)
	if err != nil {
		panic("selector: " + err.Error())
	}
	return sel
}

type cssSelector struct {
	group cascadia.SelectorGroup
}

func (sel cssSelector) IsMatch(elem *htmlstream.PathElement) bool {
	return sel.group.Match(asNode(elem, nil))
}

func (sel cssSelector) ContextMatch(ctxt htmlstream.Context, elem *htmlstream.PathElement) bool {
	var parent *html.Node
	for i := range ctxt {
		parent = asNode(&ctxt[i], parent)
	}
	return sel.group.Match(asNode(elem, parent))
}

// asNode synthesizes a transient html.Node for cascadia to match against.
// The node chain is parent-linked only; streamed elements have no sibling
// information.
func asNode(elem *htmlstream.PathElement, parent *html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     elem.Name,
		DataAtom: atom.Lookup([]byte(elem.Name)),
		Attr:     elem.Attrs,
	}
	if parent != nil {
		n.Parent = parent
		parent.FirstChild = n
		parent.LastChild = n
	}
	return n
}

// --- Tag name selectors ----------------------------------------------------

// Tag returns a Selector matching elements by tag name alone. Ancestor
// context never influences the outcome.
func Tag(name string) Selector {
	return tagSelector(name)
}

type tagSelector string

func (sel tagSelector) IsMatch(elem *htmlstream.PathElement) bool {
	return elem.Name == string(sel)
}

func (sel tagSelector) ContextMatch(ctxt htmlstream.Context, elem *htmlstream.PathElement) bool {
	return sel.IsMatch(elem)
}
