package filter

import (
	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/htmlstream/selector"
)

// Skipper is a stage eliding single nodes: a matched element is dropped
// from the stream without dropping its descendants, which are re-parented
// to the nearest non-matching ancestor. The matcher tests elements in
// isolation, without ancestor awareness.
type Skipper[O any] struct {
	inner   htmlstream.Sink[O]
	matcher selector.Selector
}

// Skip wraps an inner sink in a Skipper stage.
func Skip[O any](inner htmlstream.Sink[O], matcher selector.Selector) *Skipper[O] {
	return &Skipper[O]{inner: inner, matcher: matcher}
}

// refilter drops every matching ancestor from the path, supporting several
// nested matching ancestors at once. The path is re-filtered on every
// event; a cache for unchanged upstream contexts would be a pure
// optimization and is deliberately not attempted.
func (s *Skipper[O]) refilter(ctxt htmlstream.Context) htmlstream.Context {
	filtered := make(htmlstream.Context, 0, len(ctxt))
	for i := range ctxt {
		if !s.matcher.IsMatch(&ctxt[i]) {
			filtered = append(filtered, ctxt[i])
		}
	}
	return filtered
}

// AppendDoctypeToDocument swallows the doctype: a stream with elided
// structural nodes no longer represents the original document.
func (s *Skipper[O]) AppendDoctypeToDocument(name, publicID, systemID string) {
}

func (s *Skipper[O]) AppendElement(ctxt htmlstream.Context, elem htmlstream.PathElement) {
	if s.matcher.ContextMatch(ctxt, &elem) {
		tracer().Debugf("skipper: eliding %v", elem)
		return
	}
	s.inner.AppendElement(s.refilter(ctxt), elem)
}

func (s *Skipper[O]) AppendText(ctxt htmlstream.Context, text string) {
	s.inner.AppendText(s.refilter(ctxt), text)
}

func (s *Skipper[O]) AppendComment(ctxt htmlstream.Context, text string) {
	s.inner.AppendComment(s.refilter(ctxt), text)
}

func (s *Skipper[O]) Reset() O {
	return s.inner.Reset()
}

func (s *Skipper[O]) Finish() O {
	return s.inner.Finish()
}
