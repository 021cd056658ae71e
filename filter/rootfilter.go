package filter

import (
	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/htmlstream/selector"
)

// RootFilter is a stage extracting subtrees: every element matched by the
// contextual selector becomes the root of a new, independent output. The
// matched element is fed to the inner sink with an empty context, its
// descendants with contexts rebased past it, so the inner sink sees a
// self-contained fragment. When a selection ends, the inner sink is
// drained with Reset and its output appended to the result collection.
// Events outside any selection are dropped, as is the doctype.
type RootFilter[O any] struct {
	inner    htmlstream.Sink[O]
	matcher  selector.ContextualSelector
	selected htmlstream.Handle // root of the selection in flight; 0 = idle
	out      []O
}

// Extract wraps an inner sink in a RootFilter stage.
func Extract[O any](inner htmlstream.Sink[O], matcher selector.ContextualSelector) *RootFilter[O] {
	return &RootFilter[O]{inner: inner, matcher: matcher}
}

// AppendDoctypeToDocument swallows the doctype; extracted fragments never
// carry one.
func (f *RootFilter[O]) AppendDoctypeToDocument(name, publicID, systemID string) {
}

func (f *RootFilter[O]) AppendElement(ctxt htmlstream.Context, elem htmlstream.PathElement) {
	if f.selected != htmlstream.DocumentHandle {
		if at := ctxt.IndexOf(f.selected); at >= 0 {
			f.inner.AppendElement(ctxt[at:], elem) // selection continues, rebased
			return
		}
		f.endSelection()
		// fall through: the same event may start an adjacent selection
	}
	if f.matcher.ContextMatch(ctxt, &elem) {
		tracer().Debugf("root filter: selection starts at %v", elem)
		f.inner.AppendElement(nil, elem) // extracted subtree becomes a new root
		f.selected = elem.Handle
	}
}

func (f *RootFilter[O]) AppendText(ctxt htmlstream.Context, text string) {
	if f.selected == htmlstream.DocumentHandle {
		return
	}
	if at := ctxt.IndexOf(f.selected); at >= 0 {
		f.inner.AppendText(ctxt[at:], text)
		return
	}
	f.endSelection()
}

func (f *RootFilter[O]) AppendComment(ctxt htmlstream.Context, text string) {
	if f.selected == htmlstream.DocumentHandle {
		return
	}
	if at := ctxt.IndexOf(f.selected); at >= 0 {
		f.inner.AppendComment(ctxt[at:], text)
		return
	}
	f.endSelection()
}

func (f *RootFilter[O]) endSelection() {
	tracer().Debugf("root filter: selection #%d ended", f.selected)
	f.selected = htmlstream.DocumentHandle
	f.out = append(f.out, f.inner.Reset())
}

// Reset force-closes a selection in flight and hands back the accumulated
// collection of extracted outputs.
func (f *RootFilter[O]) Reset() []O {
	if f.selected != htmlstream.DocumentHandle {
		f.endSelection()
	}
	out := f.out
	f.out = nil
	return out
}

func (f *RootFilter[O]) Finish() []O {
	return f.Reset()
}
