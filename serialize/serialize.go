/*
Package serialize re-linearizes a context-carrying event stream into HTML
markup text.

The Serializer is a terminal sink. It maintains its own open-tag stack and
reconciles it against the context of every incoming event: frames the
context no longer contains are closed, innermost first. A context carrying
elements the serializer never opened indicates a defective upstream stage;
this is latched as a structured error rather than crashing, and surfaced
when the stream is flushed.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package serialize

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlstream.serialize'.
func tracer() tracing.Trace {
	return tracing.Select("htmlstream.serialize")
}

// voidElements never get an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements carry unescaped character data.
var rawTextElements = map[string]bool{
	"style": true, "script": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "plaintext": true, "noscript": true,
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
var attrEscaper = strings.NewReplacer("&", "&amp;", "\"", "&quot;")

type openTag struct {
	handle htmlstream.Handle
	name   string
}

// Serializer is a terminal sink writing markup text to a caller-supplied
// writer. The writer is handed in open and is not closed by the
// serializer. Write errors and internal-consistency errors are latched—
// first one wins—and returned from Reset or Finish; the serializer's
// output type is that error.
type Serializer struct {
	w    io.Writer
	open []openTag
	err  error
}

// New creates a Serializer writing to w.
func New(w io.Writer) *Serializer {
	return &Serializer{w: w}
}

// popToPath closes open tags until the local stack is no longer than the
// incoming context, then asserts that the remaining stack is exactly a
// prefix of the context. A context with elements never locally opened is a
// pipeline-stage defect, latched as an error.
func (s *Serializer) popToPath(ctxt htmlstream.Context) {
	if s.err != nil {
		return
	}
	for len(s.open) > len(ctxt) {
		closed := s.open[len(s.open)-1]
		s.open = s.open[:len(s.open)-1]
		s.endTag(closed.name)
	}
	for i, tag := range s.open {
		if ctxt[i].Handle != tag.handle {
			s.err = fmt.Errorf("serialize: context diverges from open path at depth %d: %v", i, ctxt[i])
			tracer().Errorf(s.err.Error())
			return
		}
	}
	if len(ctxt) > len(s.open) {
		s.err = fmt.Errorf("serialize: context contains non-appended element %v", ctxt[len(s.open)])
		tracer().Errorf(s.err.Error())
	}
}

func (s *Serializer) write(text string) {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		s.err = err
	}
}

func (s *Serializer) endTag(name string) {
	if voidElements[name] {
		return
	}
	s.write("</" + name + ">")
}

// AppendDoctypeToDocument writes a doctype carrying the name only; legacy
// public and system identifiers are dropped from the output.
func (s *Serializer) AppendDoctypeToDocument(name, publicID, systemID string) {
	s.write("<!DOCTYPE " + name + ">")
}

func (s *Serializer) AppendElement(ctxt htmlstream.Context, elem htmlstream.PathElement) {
	s.popToPath(ctxt)
	if s.err != nil {
		return
	}
	var b bytes.Buffer
	b.WriteByte('<')
	b.WriteString(elem.Name)
	for _, a := range elem.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString("=\"")
		attrEscaper.WriteString(&b, a.Val)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	s.write(b.String())
	s.open = append(s.open, openTag{handle: elem.Handle, name: elem.Name})
}

func (s *Serializer) AppendText(ctxt htmlstream.Context, text string) {
	s.popToPath(ctxt)
	if s.err != nil {
		return
	}
	if n := len(s.open); n > 0 && rawTextElements[s.open[n-1].name] {
		s.write(text)
		return
	}
	s.write(textEscaper.Replace(text))
}

func (s *Serializer) AppendComment(ctxt htmlstream.Context, text string) {
	s.popToPath(ctxt)
	s.write("<!--" + text + "-->")
}

// Reset reconciles against an empty context, forcing closure of all
// remaining open tags, and returns the first latched error, if any. The
// serializer is reusable afterwards: both the error and the open-tag
// stack are cleared unconditionally, so a failed pass leaves no stale
// frames behind.
func (s *Serializer) Reset() error {
	s.popToPath(nil)
	err := s.err
	s.open = s.open[:0]
	s.err = nil
	return err
}

func (s *Serializer) Finish() error {
	return s.Reset()
}
