package htmlstream

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Handle is an opaque node identifier, assigned by the tree builder at node
// creation. Handles increase monotonically and are never reused within one
// parse. Handle 0 is reserved for the document root sentinel; no element
// ever carries it.
type Handle uint32

// DocumentHandle is the sentinel handle of the document root. The document
// root is never reported as an element; it only ever occurs as an append
// target.
const DocumentHandle Handle = 0

// PathElement is one element on an ancestor path: a handle together with
// the element's tag name and its ordered attribute list.
type PathElement struct {
	Handle Handle
	Name   string
	Attrs  []html.Attribute
}

// Attr returns the value of the attribute with the given key, if present.
func (pe *PathElement) Attr(key string) (string, bool) {
	for _, a := range pe.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Classes returns the whitespace-separated entries of the element's class
// attribute. It returns nil if the element has no class attribute.
func (pe *PathElement) Classes() []string {
	if class, ok := pe.Attr("class"); ok {
		return strings.Fields(class)
	}
	return nil
}

func (pe PathElement) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d <%s", pe.Handle, pe.Name)
	for _, a := range pe.Attrs {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Val)
	}
	b.WriteByte('>')
	return b.String()
}

// Context is the ordered ancestor path accompanying every streamed event,
// from the document root (exclusive) down to, but excluding, the node
// currently being reported. Handles on a Context are pairwise distinct.
//
// A Context is only valid for the duration of the Sink call it is passed
// to; implementations that need to retain path information must copy it.
type Context []PathElement

// Contains reports whether the handle occurs on the context.
func (ctxt Context) Contains(h Handle) bool {
	return ctxt.IndexOf(h) >= 0
}

// IndexOf returns the position of the handle on the context, or -1.
func (ctxt Context) IndexOf(h Handle) int {
	for i := range ctxt {
		if ctxt[i].Handle == h {
			return i
		}
	}
	return -1
}
