package parse_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/htmlstream"
	"github.com/npillmayer/htmlstream/filter"
	"github.com/npillmayer/htmlstream/parse"
	"github.com/npillmayer/htmlstream/selector"
	"github.com/npillmayer/htmlstream/serialize"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	tp "github.com/xlab/treeprint"
)

func TestDocumentIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlstream.parse")
	defer teardown()
	//
	input := "<!DOCTYPE html><html><head></head><body><!-- c --><p><b>hello</b></p><p>world!</p></body></html>"
	var buf bytes.Buffer
	serr, err := parse.Document[error](strings.NewReader(input), serialize.New(&buf))
	require.NoError(t, err)
	require.NoError(t, serr)
	require.Equal(t, input, buf.String())
}

func TestFragmentIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlstream.parse")
	defer teardown()
	//
	input := "<p><b>hello</b></p><p>world!</p>"
	var buf bytes.Buffer
	serr, err := parse.Fragment[error](strings.NewReader(input), serialize.New(&buf))
	require.NoError(t, err)
	require.NoError(t, serr)
	require.Equal(t, input, buf.String(), "fragment must round-trip without an injected wrapper")
}

func TestDocumentHeadWhitespace(t *testing.T) {
	input := "<!DOCTYPE html><html><head> <title>t</title> </head><body></body></html>"
	var buf bytes.Buffer
	serr, err := parse.Document[error](strings.NewReader(input), serialize.New(&buf))
	require.NoError(t, err)
	require.NoError(t, serr)
	require.Equal(t, input, buf.String(), "whitespace inside head must survive the round-trip")
}

func TestDocumentImpliedStructure(t *testing.T) {
	var buf bytes.Buffer
	_, err := parse.Document[error](strings.NewReader("<p>hi</p>"), serialize.New(&buf))
	require.NoError(t, err)
	require.Equal(t, "<html><head></head><body><p>hi</p></body></html>", buf.String())
}

func TestDocumentRawTextAndVoidElements(t *testing.T) {
	input := "<!DOCTYPE html><html><head><script>if (a<b) f();</script></head><body><br>after</body></html>"
	var buf bytes.Buffer
	_, err := parse.Document[error](strings.NewReader(input), serialize.New(&buf))
	require.NoError(t, err)
	require.Equal(t, input, buf.String())
}

func TestRemoveElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlstream.filter")
	defer teardown()
	//
	input := `<!DOCTYPE html><html><head></head><body><p class="hello"><!-- comment --><b>hello</b></p><p>world!</p></body></html>`
	var buf bytes.Buffer
	sink := filter.Remove[error](serialize.New(&buf), selector.MustCss(".hello"))
	_, err := parse.Document[error](strings.NewReader(input), sink)
	require.NoError(t, err)
	require.Equal(t,
		`<!DOCTYPE html><html><head></head><body><p>world!</p></body></html>`,
		buf.String())
}

func TestSelectElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlstream.filter")
	defer teardown()
	//
	input := "<!DOCTYPE html><html><head></head><body><p><!-- comment --><b>hello</b></p><p>world!</p></body></html>"
	sink := filter.Extract[string](serialize.NewCollector(), selector.MustCss("p"))
	outs, err := parse.Document[[]string](strings.NewReader(input), sink)
	require.NoError(t, err)
	require.Equal(t, []string{"<p><!-- comment --><b>hello</b></p>", "<p>world!</p>"}, outs)
}

func TestFanoutEquivalence(t *testing.T) {
	input := "<!DOCTYPE html><html><head></head><body><p>one</p><p>two</p></body></html>"

	// branch A alone: extraction; branch B alone: full passthrough
	extract := func() []string {
		sink := filter.Extract[string](serialize.NewCollector(), selector.MustCss("p"))
		outs, err := parse.Document[[]string](strings.NewReader(input), sink)
		require.NoError(t, err)
		return outs
	}()
	passthrough := func() string {
		out, err := parse.Document[string](strings.NewReader(input), serialize.NewCollector())
		require.NoError(t, err)
		return out
	}()

	tee := htmlstream.NewTee[[]string, string](
		filter.Extract[string](serialize.NewCollector(), selector.MustCss("p")),
		serialize.NewCollector())
	both, err := parse.Document[htmlstream.Both[[]string, string]](strings.NewReader(input), tee)
	require.NoError(t, err)
	require.Equal(t, extract, both.First)
	require.Equal(t, passthrough, both.Second)
}

// monotonic is a terminal sink verifying the stream contract: each incoming
// context must be a prefix of the previously observed open path, extended
// only by reported elements.
type monotonic struct {
	open       []htmlstream.Handle
	violations int
}

func (m *monotonic) check(ctxt htmlstream.Context) {
	if len(ctxt) > len(m.open) {
		m.violations++
		return
	}
	for i := range ctxt {
		if ctxt[i].Handle != m.open[i] {
			m.violations++
			return
		}
	}
	m.open = m.open[:len(ctxt)]
}

func (m *monotonic) AppendDoctypeToDocument(name, publicID, systemID string) {}

func (m *monotonic) AppendElement(ctxt htmlstream.Context, elem htmlstream.PathElement) {
	m.check(ctxt)
	m.open = append(m.open, elem.Handle)
}

func (m *monotonic) AppendText(ctxt htmlstream.Context, text string) {
	m.check(ctxt)
}

func (m *monotonic) AppendComment(ctxt htmlstream.Context, text string) {
	m.check(ctxt)
}

func (m *monotonic) Reset() int {
	v := m.violations
	m.violations = 0
	m.open = nil
	return v
}

func (m *monotonic) Finish() int { return m.Reset() }

func TestContextMonotonicity(t *testing.T) {
	input := "<!DOCTYPE html><html><head><title>t</title></head><body><div><p>a</p><p>b</p></div><ul><li>x<li>y</ul></body></html>"
	violations, err := parse.Document[int](strings.NewReader(input), &monotonic{})
	require.NoError(t, err)
	require.Zero(t, violations, "every context must be a prefix of the previous open path")

	// the contract holds downstream of filter stages, too
	sink := filter.Skip[int](&monotonic{}, selector.Tag("div"))
	violations, err = parse.Document[int](strings.NewReader(input), sink)
	require.NoError(t, err)
	require.Zero(t, violations)
}

type failingReader struct {
	data string
	fed  bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.fed {
		r.fed = true
		return copy(p, r.data), nil
	}
	return 0, errors.New("connection dropped")
}

func TestParseErrorIsAllOrNothing(t *testing.T) {
	out, err := parse.Document[string](&failingReader{data: "<html><body><p>partial"}, serialize.NewCollector())
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection dropped")
	require.Empty(t, out, "a failed pass must not hand back partial output")
}

// --- Document shape dump ---------------------------------------------------

// shapeRecorder rebuilds the document outline from streamed contexts, for
// a visual check that the adapter reports a coherent tree.
type shapeRecorder struct {
	printer  tp.Tree
	branches []tp.Tree
}

func newShapeRecorder() *shapeRecorder {
	printer := tp.New()
	return &shapeRecorder{printer: printer, branches: []tp.Tree{printer}}
}

func (r *shapeRecorder) at(depth int) tp.Tree {
	if depth >= len(r.branches) {
		depth = len(r.branches) - 1
	}
	r.branches = r.branches[:depth+1]
	return r.branches[depth]
}

func (r *shapeRecorder) AppendDoctypeToDocument(name, publicID, systemID string) {
	r.at(0).AddNode("<!DOCTYPE " + name + ">")
}

func (r *shapeRecorder) AppendElement(ctxt htmlstream.Context, elem htmlstream.PathElement) {
	branch := r.at(len(ctxt)).AddBranch("<" + elem.Name + ">")
	r.branches = append(r.branches, branch)
}

func (r *shapeRecorder) AppendText(ctxt htmlstream.Context, text string) {
	r.at(len(ctxt)).AddNode("text " + text)
}

func (r *shapeRecorder) AppendComment(ctxt htmlstream.Context, text string) {
	r.at(len(ctxt)).AddNode("comment " + text)
}

func (r *shapeRecorder) Reset() string {
	out := r.printer.String()
	r.printer = tp.New()
	r.branches = []tp.Tree{r.printer}
	return out
}

func (r *shapeRecorder) Finish() string { return r.Reset() }

func TestDocumentShape(t *testing.T) {
	input := "<!DOCTYPE html><html><head></head><body><div><p>hello</p></div></body></html>"
	shape, err := parse.Document[string](strings.NewReader(input), newShapeRecorder())
	require.NoError(t, err)
	t.Logf("document shape:\n%s", shape)
	require.Contains(t, shape, "<div>")
	require.Contains(t, shape, "text hello")
}
