/*
Package htmlstream streams an HTML tree through a pipeline of context-aware
transformation stages, without ever holding a full document tree in memory.

Overview

HTML parsers following the WHATWG tree-construction algorithm do not hand
their client a stream of tags the way SAX-style XML parsers do. Instead they
drive a mutation protocol: "create a node, here is a handle for it; now
append that handle under this other handle". Clients wanting to filter or
re-serialize markup on the fly are left to materialize a DOM first—which is
exactly what we want to avoid for large documents.

This module bridges the two worlds. Package traverse adapts the mutation
protocol into a linear event stream, where every reported node carries its
full ancestor path (its Context) at the moment it is produced. Downstream
stages—package filter for removal, elision and subtree extraction, package
serialize for re-linearizing into markup text—implement a single small
capability, interface Sink, and compose by wrapping one another:

    var buf bytes.Buffer
    ser := serialize.New(&buf)
    sink := filter.Remove[error](ser, selector.MustCss(".ad"))
    _, err := parse.Document(strings.NewReader(input), sink)

There is no explicit close event anywhere in the stream: observers infer
that ancestors have closed from the shrinking Context of the next event.
Between two consecutive events the new Context is either a prefix-extension
of the previous open path (a push) or a prefix of it (a pop), never an
unrelated sequence. Every stage relies on this invariant, and the
serializer asserts it.

Processing is single-threaded and purely call-driven: each event from the
tree builder runs synchronously through all wrapped stages before the
parser resumes. One adapter instance services exactly one parse.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlstream
