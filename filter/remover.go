package filter

import (
	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/htmlstream/selector"
)

// Remover is a stage deleting whole subtrees: any element matched by the
// selector is suppressed together with all of its descendants. Siblings
// and ancestors pass through untouched.
type Remover[O any] struct {
	inner   htmlstream.Sink[O]
	matcher selector.ContextualSelector
	skip    htmlstream.Handle // root of the subtree currently elided; 0 = none
}

// Remove wraps an inner sink in a Remover stage.
func Remove[O any](inner htmlstream.Sink[O], matcher selector.ContextualSelector) *Remover[O] {
	return &Remover[O]{inner: inner, matcher: matcher}
}

// skipping tests whether the event belongs to the subtree currently being
// elided. The skip range ends as soon as its root handle no longer occurs
// on the incoming context.
func (r *Remover[O]) skipping(ctxt htmlstream.Context) bool {
	if r.skip == htmlstream.DocumentHandle {
		return false
	}
	if ctxt.Contains(r.skip) {
		return true
	}
	tracer().Debugf("remover: skip range #%d ended", r.skip)
	r.skip = htmlstream.DocumentHandle
	return false
}

func (r *Remover[O]) AppendDoctypeToDocument(name, publicID, systemID string) {
	r.inner.AppendDoctypeToDocument(name, publicID, systemID)
}

func (r *Remover[O]) AppendElement(ctxt htmlstream.Context, elem htmlstream.PathElement) {
	if r.skipping(ctxt) {
		return
	}
	if r.matcher.ContextMatch(ctxt, &elem) {
		tracer().Debugf("remover: skip range starts at %v", elem)
		r.skip = elem.Handle
		return
	}
	r.inner.AppendElement(ctxt, elem)
}

func (r *Remover[O]) AppendText(ctxt htmlstream.Context, text string) {
	if r.skipping(ctxt) {
		return
	}
	r.inner.AppendText(ctxt, text)
}

func (r *Remover[O]) AppendComment(ctxt htmlstream.Context, text string) {
	if r.skipping(ctxt) {
		return
	}
	r.inner.AppendComment(ctxt, text)
}

// Reset clears any in-flight skip range and flushes the inner sink.
func (r *Remover[O]) Reset() O {
	r.skip = htmlstream.DocumentHandle
	return r.inner.Reset()
}

func (r *Remover[O]) Finish() O {
	r.skip = htmlstream.DocumentHandle
	return r.inner.Finish()
}
