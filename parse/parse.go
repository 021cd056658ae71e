package parse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"io"

	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/htmlstream/filter"
	"github.com/npillmayer/htmlstream/selector"
	"github.com/npillmayer/htmlstream/traverse"
	"golang.org/x/net/html"
)

// Document parses a complete HTML document from r, streaming every node
// through the given sink chain. It returns the sink's output, or the first
// structural parse error. The pass is all-or-nothing: on error the output
// is the zero value.
func Document[O any](r io.Reader, sink htmlstream.Sink[O]) (O, error) {
	t := traverse.NewDocument(sink)
	e := &engine{b: t}
	e.run(html.NewTokenizer(r))
	return t.Finish()
}

// Fragment parses markup in body context, e.g. "<p>hello</p><p>world</p>",
// and streams it with children-only scope: the synthetic wrapper element
// the engine re-roots the fragment under is elided, so the sink observes
// the fragment's own nodes at the top level, with no injected wrapper.
func Fragment[O any](r io.Reader, sink htmlstream.Sink[O]) (O, error) {
	t := traverse.NewDocument[O](filter.Skip[O](sink, selector.Tag("html")))
	e := &engine{b: t, fragment: true}
	e.runFragment(html.NewTokenizer(r))
	return t.Finish()
}
