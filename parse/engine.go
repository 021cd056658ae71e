package parse

import (
	"io"
	"strings"

	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/htmlstream/traverse"
	"golang.org/x/net/html"
)

// Document construction phases, a trimmed-down version of the WHATWG
// insertion modes.
const (
	initialPhase = iota
	beforeHTMLPhase
	beforeHeadPhase
	inHeadPhase
	afterHeadPhase
	inBodyPhase
	afterBodyPhase
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// headElements may appear inside head.
var headElements = map[string]bool{
	"title": true, "base": true, "link": true, "meta": true,
	"style": true, "script": true, "noscript": true,
}

type openElem struct {
	handle htmlstream.Handle
	name   string
}

// engine tokenizes markup and drives a traverse.Builder with create/append
// instructions. Its open-element stack tracks insertion points only; all
// close inference happens downstream in the builder.
type engine struct {
	b        traverse.Builder
	stack    []openElem
	phase    int
	fragment bool
}

func (e *engine) run(z *html.Tokenizer) {
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				e.b.ParseError(err.Error())
			}
			return
		case html.DoctypeToken:
			if e.phase == initialPhase && !e.fragment {
				name, publicID, systemID := parseDoctype(string(z.Text()))
				e.b.AppendDoctypeToDocument(name, publicID, systemID)
				e.phase = beforeHTMLPhase
			}
		case html.CommentToken:
			c := e.b.CreateComment(string(z.Text()))
			e.b.AppendNode(e.parent(), c)
		case html.TextToken:
			e.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			// the self-closing flag is meaningless on HTML elements; void
			// elements are recognized by name
			name, attrs := tagAndAttrs(z)
			e.startTag(name, attrs)
		case html.EndTagToken:
			name, _ := z.TagName()
			e.endTag(string(name))
		}
	}
}

// runFragment parses in body context. The fragment is re-rooted under a
// synthetic html wrapper element; callers elide the wrapper downstream.
func (e *engine) runFragment(z *html.Tokenizer) {
	wrapper := e.b.CreateElement("html", nil)
	e.b.AppendNode(htmlstream.DocumentHandle, wrapper)
	e.stack = append(e.stack, openElem{handle: wrapper, name: "html"})
	e.phase = inBodyPhase
	e.run(z)
}

func (e *engine) parent() htmlstream.Handle {
	if len(e.stack) == 0 {
		return htmlstream.DocumentHandle
	}
	return e.stack[len(e.stack)-1].handle
}

func (e *engine) text(text string) {
	if !e.fragment && e.phase < inBodyPhase && e.phase != inHeadPhase {
		// inter-element whitespace outside head and body carries no content
		if strings.TrimSpace(text) == "" {
			return
		}
		e.ensureBody()
	}
	e.b.AppendText(e.parent(), text)
}

func (e *engine) startTag(name string, attrs []html.Attribute) {
	if e.fragment {
		if name == "html" || name == "head" || name == "body" {
			return // out of scope within a fragment
		}
		e.insert(name, attrs)
		return
	}
	switch {
	case name == "html":
		if e.phase <= beforeHTMLPhase {
			e.push(e.appendElem(name, attrs))
			e.phase = beforeHeadPhase
		}
	case name == "head":
		e.ensureHTML()
		if e.phase == beforeHeadPhase {
			e.push(e.appendElem(name, attrs))
			e.phase = inHeadPhase
		}
	case name == "body":
		e.ensureHTML()
		e.closeHead()
		if e.phase == afterHeadPhase {
			e.push(e.appendElem(name, attrs))
			e.phase = inBodyPhase
		}
	case headElements[name] && e.phase < afterHeadPhase:
		e.ensureHTML()
		if e.phase == beforeHeadPhase {
			// element implies an open head
			e.push(e.appendElem("head", nil))
			e.phase = inHeadPhase
		}
		e.insert(name, attrs)
	default:
		e.ensureBody()
		e.insert(name, attrs)
	}
}

func (e *engine) endTag(name string) {
	if voidElements[name] {
		return // stray end tags of void elements are dropped
	}
	if e.fragment {
		if name != "html" && name != "head" && name != "body" {
			e.popTo(name)
		}
		return
	}
	switch name {
	case "head":
		if e.phase == inHeadPhase {
			e.popTo("head")
			e.phase = afterHeadPhase
		}
	case "body":
		if e.phase == inBodyPhase {
			e.popTo("body")
			e.phase = afterBodyPhase
		}
	case "html":
		if e.phase >= beforeHeadPhase {
			e.popTo("html")
			e.phase = afterBodyPhase
		}
	default:
		e.popTo(name)
	}
}

// insert appends an element at the current insertion point, making it the
// new insertion point unless it is void.
func (e *engine) insert(name string, attrs []html.Attribute) {
	// p and li do not nest; an incoming one implicitly closes an open one
	if (name == "p" || name == "li") && len(e.stack) > 0 && e.stack[len(e.stack)-1].name == name {
		e.stack = e.stack[:len(e.stack)-1]
	}
	h := e.appendElem(name, attrs)
	if !voidElements[name] {
		e.push(h)
	}
}

func (e *engine) appendElem(name string, attrs []html.Attribute) openElem {
	h := e.b.CreateElement(name, attrs)
	e.b.AppendNode(e.parent(), h)
	return openElem{handle: h, name: name}
}

func (e *engine) push(el openElem) {
	e.stack = append(e.stack, el)
}

// popTo removes the innermost element with the given name from the
// insertion stack, together with everything opened below it. A name that
// is not open is ignored (stray end tag).
func (e *engine) popTo(name string) {
	for i := len(e.stack) - 1; i >= 0; i-- {
		if e.stack[i].name == name {
			e.stack = e.stack[:i]
			return
		}
	}
	tracer().Debugf("stray end tag </%s> ignored", name)
}

func (e *engine) ensureHTML() {
	if e.phase <= beforeHTMLPhase {
		e.push(e.appendElem("html", nil))
		e.phase = beforeHeadPhase
	}
}

// closeHead leaves the head, creating an implied empty one if none was
// ever opened.
func (e *engine) closeHead() {
	switch e.phase {
	case beforeHeadPhase:
		e.appendElem("head", nil) // reported, closed by the next append
		e.phase = afterHeadPhase
	case inHeadPhase:
		e.popTo("head")
		e.phase = afterHeadPhase
	}
}

func (e *engine) ensureBody() {
	if e.phase >= inBodyPhase {
		return
	}
	e.ensureHTML()
	e.closeHead()
	e.push(e.appendElem("body", nil))
	e.phase = inBodyPhase
}

// parseDoctype splits the raw doctype text into the document name and the
// optional public and system identifiers. The tokenizer hands the text
// over verbatim, minus the '<!DOCTYPE ' prefix.
func parseDoctype(text string) (name, publicID, systemID string) {
	text = strings.TrimSpace(text)
	i := strings.IndexAny(text, " \t\r\n\f")
	if i < 0 {
		return strings.ToLower(text), "", ""
	}
	name, text = strings.ToLower(text[:i]), strings.TrimLeft(text[i:], " \t\r\n\f")
	if len(text) >= 6 {
		switch strings.ToUpper(text[:6]) {
		case "PUBLIC":
			publicID, text = quotedIdentifier(text[6:])
			systemID, _ = quotedIdentifier(text)
		case "SYSTEM":
			systemID, _ = quotedIdentifier(text[6:])
		}
	}
	return name, publicID, systemID
}

// quotedIdentifier reads one quoted identifier off the front of text.
// An unterminated quote extends to the end of the text.
func quotedIdentifier(text string) (id, rest string) {
	text = strings.TrimLeft(text, " \t\r\n\f")
	if text == "" || (text[0] != '"' && text[0] != '\'') {
		return "", text
	}
	quote := text[0]
	if i := strings.IndexByte(text[1:], quote); i >= 0 {
		return text[1 : 1+i], text[2+i:]
	}
	return text[1:], ""
}

func tagAndAttrs(z *html.Tokenizer) (string, []html.Attribute) {
	name, hasAttr := z.TagName()
	var attrs []html.Attribute
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(k), Val: string(v)})
	}
	return string(name), attrs
}
