package htmlstream

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Sink is the capability every stream stage and every terminal consumer
// implements. Stages wrap an inner Sink and forward a transformed stream;
// terminal consumers accumulate an output of type O.
//
// Implementations must honour the stream contract: the Context of each
// call is either a prefix-extension or a prefix of the previous call's
// open path, siblings arrive in source order, and an implementation that
// buffers preserves relative order. Context slices are only valid for the
// duration of the call.
//
// Reset flushes the accumulated output and leaves the instance reusable;
// calling Reset twice in a row yields the output on the first call and the
// zero output on the second. Finish signals the end of the stream;
// implementations usually just delegate to Reset.
type Sink[O any] interface {
	AppendDoctypeToDocument(name, publicID, systemID string)
	AppendElement(ctxt Context, elem PathElement)
	AppendText(ctxt Context, text string)
	AppendComment(ctxt Context, text string)
	Reset() O
	Finish() O
}

// --- Fan-out ---------------------------------------------------------------

// Both carries the outputs of the two branches of a Tee.
type Both[A, B any] struct {
	First  A
	Second B
}

// Tee replicates every call—including Reset and Finish—to a pair of
// independent sinks, first branch then second, in that fixed order. It
// enables, e.g., simultaneous extraction and full passthrough within a
// single traversal.
type Tee[A, B any] struct {
	first  Sink[A]
	second Sink[B]
}

// NewTee wraps two sinks into a fan-out stage.
func NewTee[A, B any](first Sink[A], second Sink[B]) *Tee[A, B] {
	return &Tee[A, B]{first: first, second: second}
}

func (t *Tee[A, B]) AppendDoctypeToDocument(name, publicID, systemID string) {
	t.first.AppendDoctypeToDocument(name, publicID, systemID)
	t.second.AppendDoctypeToDocument(name, publicID, systemID)
}

func (t *Tee[A, B]) AppendElement(ctxt Context, elem PathElement) {
	t.first.AppendElement(ctxt, elem)
	t.second.AppendElement(ctxt, elem)
}

func (t *Tee[A, B]) AppendText(ctxt Context, text string) {
	t.first.AppendText(ctxt, text)
	t.second.AppendText(ctxt, text)
}

func (t *Tee[A, B]) AppendComment(ctxt Context, text string) {
	t.first.AppendComment(ctxt, text)
	t.second.AppendComment(ctxt, text)
}

func (t *Tee[A, B]) Reset() Both[A, B] {
	return Both[A, B]{First: t.first.Reset(), Second: t.second.Reset()}
}

func (t *Tee[A, B]) Finish() Both[A, B] {
	return Both[A, B]{First: t.first.Finish(), Second: t.second.Finish()}
}
