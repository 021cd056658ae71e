package serialize

import (
	"bytes"

	"github.com/npillmayer/htmlstream"
)

// Collector is a terminal sink serializing into an internal buffer and
// handing the markup back as a string on Reset. It is the natural inner
// sink for a RootFilter stage, which drains one output per extracted
// subtree, and a convenient terminal for tests.
type Collector struct {
	buf bytes.Buffer
	ser *Serializer
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	c := &Collector{}
	c.ser = New(&c.buf)
	return c
}

func (c *Collector) AppendDoctypeToDocument(name, publicID, systemID string) {
	c.ser.AppendDoctypeToDocument(name, publicID, systemID)
}

func (c *Collector) AppendElement(ctxt htmlstream.Context, elem htmlstream.PathElement) {
	c.ser.AppendElement(ctxt, elem)
}

func (c *Collector) AppendText(ctxt htmlstream.Context, text string) {
	c.ser.AppendText(ctxt, text)
}

func (c *Collector) AppendComment(ctxt htmlstream.Context, text string) {
	c.ser.AppendComment(ctxt, text)
}

// Reset closes all open tags and drains the accumulated markup. An
// internal-consistency error latched by the underlying serializer cannot
// be represented in the string output; the partial markup is discarded
// and an empty string returned, so a defective upstream stage yields a
// detectably empty fragment rather than a silently truncated one. The
// error is traced at error level.
func (c *Collector) Reset() string {
	err := c.ser.Reset()
	out := c.buf.String()
	c.buf.Reset()
	if err != nil {
		tracer().Errorf(err.Error())
		return ""
	}
	return out
}

func (c *Collector) Finish() string {
	return c.Reset()
}
