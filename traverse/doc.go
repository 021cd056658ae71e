/*
Package traverse adapts the recursive, handle-referencing tree-construction
protocol of an HTML parsing engine into the linear, context-carrying event
stream consumed by the module's sinks.

The engine drives interface Builder: it creates nodes, receiving opaque
handles, and later appends them—or raw text—under a parent handle. The
Traverser reconstructs a valid ancestor path purely from this append-only
mutation log. No close signal ever arrives; an ancestor is known to have
closed when a later append names a shallower parent, forcing an unwind of
the open path. Nodes live in a pending pool between creation and first
append, and move onto the open path (elements) or are discarded after
reporting (comments).

The adapter is fail-fast: a structural parse error reported by the engine
is latched—first one wins—and suppresses all further structural emission,
while calls keep being accepted silently until the stream is finished.
Requests outside the append-only protocol (sibling insertion, attribute
backfill, node removal, reparenting, template content, processing
instructions) are programmer errors and panic immediately.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package traverse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlstream.traverse'.
func tracer() tracing.Trace {
	return tracing.Select("htmlstream.traverse")
}
