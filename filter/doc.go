/*
Package filter provides the stream-processing stages of the pipeline:
subtree removal (Remove), single-node elision with path rewrite (Skip) and
subtree extraction into independent outputs (Extract).

Each stage wraps an inner sink and forwards a transformed event stream.
Stages keep bounded state only—at most the handle of one in-flight subtree—
and infer subtree ends lazily from the shrinking ancestor path of the next
event, since the stream carries no explicit close signal.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package filter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlstream.filter'.
func tracer() tracing.Trace {
	return tracing.Select("htmlstream.filter")
}
