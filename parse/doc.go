/*
Package parse drives the stream pipeline from real markup: it tokenizes
input with golang.org/x/net/html and performs a simplified HTML5 tree
construction, issuing the create/append calls of the traverse.Builder
contract.

The construction handles the common shape of well-formed documents:
implied html/head/body elements, void elements, raw-text elements and
matching end tags. It is not a full implementation of the WHATWG
insertion-mode machine—no adoption agency, no foster parenting, no
templates. Any traverse.Builder implementation can be driven by a
spec-complete engine instead; this package merely supplies a working
collaborator.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlstream.parse'.
func tracer() tracing.Trace {
	return tracing.Select("htmlstream.parse")
}
