package traverse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/htmlstream"
	"golang.org/x/net/html"
)

// ParseError is a structural parse error reported by the tree-construction
// engine. It is latched by the Traverser and surfaced at Finish.
type ParseError string

func (e ParseError) Error() string {
	return "parse error: " + string(e)
}

// pending is a created-but-not-yet-attached node: either an element or a
// comment. Comments are reported once and discarded, never attached.
type pending struct {
	elem    htmlstream.PathElement // valid if comment is false
	comment bool
	text    string // comment text
}

// Traverser implements Builder over an inner sink, converting the engine's
// mutation calls into context-carrying stream events. One Traverser
// services exactly one parse; it exclusively owns the pending pool and the
// open path for that parse. Pending nodes the engine abandons simply die
// with the Traverser.
type Traverser[O any] struct {
	inner htmlstream.Sink[O]
	err   error                         // latched structural parse error
	next  htmlstream.Handle             // last allocated handle
	path  []htmlstream.PathElement      // open-path stack of attached frames
	pool  map[htmlstream.Handle]pending // pending pool, keyed by handle
}

// NewDocument creates a Traverser feeding the given sink.
func NewDocument[O any](inner htmlstream.Sink[O]) *Traverser[O] {
	return &Traverser[O]{
		inner: inner,
		pool:  make(map[htmlstream.Handle]pending),
	}
}

// Finish terminates the parse. A latched parse error takes precedence over
// any accumulated output; otherwise the inner sink's Finish result is
// returned.
func (t *Traverser[O]) Finish() (O, error) {
	if t.err != nil {
		var zero O
		return zero, t.err
	}
	return t.inner.Finish(), nil
}

// --- Builder ---------------------------------------------------------------

func (t *Traverser[O]) GetDocument() htmlstream.Handle {
	return htmlstream.DocumentHandle
}

func (t *Traverser[O]) CreateElement(name string, attrs []html.Attribute) htmlstream.Handle {
	t.next++
	t.pool[t.next] = pending{
		elem: htmlstream.PathElement{Handle: t.next, Name: name, Attrs: attrs},
	}
	return t.next
}

func (t *Traverser[O]) CreateComment(text string) htmlstream.Handle {
	t.next++
	t.pool[t.next] = pending{comment: true, text: text}
	return t.next
}

// AppendNode attaches a pending node under parent. The open path is
// unwound until its top is the parent—this is the only place ancestors
// ever close, and observers learn of it from the shrunken context of the
// next event.
func (t *Traverser[O]) AppendNode(parent, child htmlstream.Handle) {
	if !t.unwindTo(parent) {
		return
	}
	node, ok := t.pool[child]
	if !ok {
		if t.err != nil {
			return
		}
		panic(fmt.Sprintf("htmlstream/traverse: append of unknown handle #%d", child))
	}
	delete(t.pool, child)
	if t.err != nil {
		return
	}
	if node.comment {
		t.inner.AppendComment(t.context(), node.text)
		return
	}
	tracer().Debugf("append %v at depth %d", node.elem, len(t.path))
	t.inner.AppendElement(t.context(), node.elem)
	t.path = append(t.path, node.elem)
}

func (t *Traverser[O]) AppendText(parent htmlstream.Handle, text string) {
	if !t.unwindTo(parent) {
		return
	}
	if t.err != nil {
		return
	}
	t.inner.AppendText(t.context(), text)
}

func (t *Traverser[O]) AppendDoctypeToDocument(name, publicID, systemID string) {
	if t.err != nil {
		return
	}
	t.inner.AppendDoctypeToDocument(name, publicID, systemID)
}

// ElemName resolves a handle to its tag name, searching the open path from
// the deepest frame outward first, then the pending pool. An unknown
// handle means the engine violated its contract.
func (t *Traverser[O]) ElemName(target htmlstream.Handle) string {
	for i := len(t.path) - 1; i >= 0; i-- {
		if t.path[i].Handle == target {
			return t.path[i].Name
		}
	}
	if node, ok := t.pool[target]; ok && !node.comment {
		return node.elem.Name
	}
	panic(fmt.Sprintf("htmlstream/traverse: no element with handle #%d", target))
}

func (t *Traverser[O]) ParseError(msg string) {
	if t.err != nil {
		return
	}
	tracer().Infof("parse error latched: %s", msg)
	t.err = ParseError(msg)
}

func (t *Traverser[O]) SetQuirksMode(quirks bool) {
	// accepted, no effect on the stream
}

// --- Unsupported tree mutations --------------------------------------------

func (t *Traverser[O]) CreatePI(target, data string) htmlstream.Handle {
	panic("htmlstream/traverse: processing instructions not supported (append-only builder)")
}

func (t *Traverser[O]) AppendBeforeSibling(sibling, node htmlstream.Handle) {
	panic("htmlstream/traverse: sibling-relative insertion not supported (append-only builder)")
}

func (t *Traverser[O]) AddAttrsIfMissing(target htmlstream.Handle, attrs []html.Attribute) {
	panic("htmlstream/traverse: attribute backfill not supported (append-only builder)")
}

func (t *Traverser[O]) RemoveFromParent(target htmlstream.Handle) {
	panic("htmlstream/traverse: node removal not supported (append-only builder)")
}

func (t *Traverser[O]) ReparentChildren(node, newParent htmlstream.Handle) {
	panic("htmlstream/traverse: reparenting not supported (append-only builder)")
}

func (t *Traverser[O]) GetTemplateContents(target htmlstream.Handle) htmlstream.Handle {
	panic("htmlstream/traverse: template contents not supported (append-only builder)")
}

// --- Internals -------------------------------------------------------------

// unwindTo pops the open path until its top is the parent, or until it is
// empty for the document root. Appending to a handle that is neither the
// document nor currently open would require out-of-tree insertion, an
// explicit non-goal; it is a contract violation unless a parse error is
// already latched, in which case calls are swallowed silently.
func (t *Traverser[O]) unwindTo(parent htmlstream.Handle) bool {
	if parent != htmlstream.DocumentHandle && !htmlstream.Context(t.path).Contains(parent) {
		if t.err != nil {
			return false
		}
		panic(fmt.Sprintf("htmlstream/traverse: append under #%d, which is neither the document nor open", parent))
	}
	for len(t.path) > 0 && t.path[len(t.path)-1].Handle != parent {
		closed := t.path[len(t.path)-1]
		t.path = t.path[:len(t.path)-1]
		tracer().Debugf("inferred close of %v", closed)
	}
	return true
}

// context snapshots the open path as the context of the event about to be
// reported. The slice aliases the traverser's stack and is only valid for
// the duration of one sink call.
func (t *Traverser[O]) context() htmlstream.Context {
	return htmlstream.Context(t.path)
}
