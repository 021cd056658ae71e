package traverse

import (
	"github.com/npillmayer/htmlstream"
	"golang.org/x/net/html"
)

// Builder is the callback surface a tree-construction engine drives. It
// mirrors the WHATWG tree-builder contract: nodes are created first,
// yielding opaque handles, and attached later by append instructions.
//
// Only forward, append-only construction is supported. The remaining
// operations of the full contract are present so a spec-compliant engine
// can be plugged in unchanged, but implementations must fail immediately
// when one is invoked—silently ignoring a mutation would corrupt every
// downstream observer.
type Builder interface {
	// GetDocument returns the handle of the document root sentinel.
	GetDocument() htmlstream.Handle

	// CreateElement allocates a pending element node.
	CreateElement(name string, attrs []html.Attribute) htmlstream.Handle

	// CreateComment allocates a pending comment node.
	CreateComment(text string) htmlstream.Handle

	// AppendNode attaches a previously created node under parent. The
	// parent must be the document root or a currently open element.
	AppendNode(parent, child htmlstream.Handle)

	// AppendText reports raw character data under parent. Text carries no
	// handle and never becomes an ancestor.
	AppendText(parent htmlstream.Handle, text string)

	// AppendDoctypeToDocument reports the doctype; it always precedes any
	// element.
	AppendDoctypeToDocument(name, publicID, systemID string)

	// ElemName returns the tag name of a created or attached element.
	ElemName(target htmlstream.Handle) string

	// ParseError latches a structural parse error; the first one wins.
	ParseError(msg string)

	// SetQuirksMode is accepted and has no effect on the stream.
	SetQuirksMode(quirks bool)

	// Unsupported operations; see interface comment.
	CreatePI(target, data string) htmlstream.Handle
	AppendBeforeSibling(sibling, node htmlstream.Handle)
	AddAttrsIfMissing(target htmlstream.Handle, attrs []html.Attribute)
	RemoveFromParent(target htmlstream.Handle)
	ReparentChildren(node, newParent htmlstream.Handle)
	GetTemplateContents(target htmlstream.Handle) htmlstream.Handle
}
