package autoformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"pgregory.net/rapid"

	"github.com/zjrosen/draftpad/internal/document"
	"github.com/zjrosen/draftpad/internal/tracing"
)

// typeChars feeds chars one at a time the way the editor does: BeforeInput
// first, then OnBoundaryKey for a declined space, then a plain insertion.
func typeChars(e *Engine, snap document.Snapshot, chars string) (document.Snapshot, []Outcome) {
	var outcomes []Outcome
	for _, r := range chars {
		ch := string(r)
		res := e.BeforeInput(snap, ch)
		if !res.Handled() && ch == " " {
			res = e.OnBoundaryKey(snap)
		}
		outcomes = append(outcomes, res.Outcome)
		if res.Handled() {
			snap = res.Snapshot.CollapseToEnd()
			continue
		}
		snap = snap.InsertText(ch)
	}
	return snap, outcomes
}

func lineEnd(t *testing.T, text string) document.Snapshot {
	t.Helper()
	return document.FromText(text).MoveDocEnd()
}

func requireStyledExactly(t require.TestingT, b document.Block, style document.Style) {
	for i := 0; i < b.Len(); i++ {
		require.Equal(t, document.NewStyleSet(style), b.StyleAt(i), "rune %d", i)
	}
}

func TestBeforeInput_MarkerOnEmptyLine(t *testing.T) {
	tests := []struct {
		line  string
		style document.Style
	}{
		{line: "#", style: document.StyleHeading},
		{line: "*", style: document.StyleBold},
		{line: "**", style: document.StyleRed},
		{line: "***", style: document.StyleUnderline},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res := Default().BeforeInput(lineEnd(t, tt.line), " ")

			require.Equal(t, Handled, res.Outcome)
			require.Equal(t, tt.style, res.Rule.Style)
			b, _ := res.Snapshot.CurrentBlock()
			require.Equal(t, "", b.Text())
			override, ok := res.Snapshot.InlineStyleOverride()
			require.True(t, ok)
			require.Equal(t, document.NewStyleSet(tt.style), override)
		})
	}
}

func TestScenario_HashSpace(t *testing.T) {
	snap, outcomes := typeChars(Default(), document.Empty(), "# ")

	require.Equal(t, []Outcome{NotHandled, Handled}, outcomes)
	require.Equal(t, "", snap.PlainText())
	require.Equal(t, document.NewStyleSet(document.StyleHeading), snap.CurrentInlineStyle())

	snap, _ = typeChars(Default(), snap, "Title")
	b, _ := snap.CurrentBlock()
	require.Equal(t, "Title", b.Text())
	requireStyledExactly(t, b, document.StyleHeading)
}

func TestScenario_StarStarSpaceIsRed(t *testing.T) {
	snap, outcomes := typeChars(Default(), document.Empty(), "** ")

	require.Equal(t, []Outcome{NotHandled, NotHandled, Handled}, outcomes)
	require.Equal(t, "", snap.PlainText())
	require.Equal(t, document.NewStyleSet(document.StyleRed), snap.CurrentInlineStyle())
}

func TestOrdering_TripleStarIsUnderline(t *testing.T) {
	e := Default()

	res := e.BeforeInput(lineEnd(t, "***"), " ")
	require.Equal(t, document.StyleUnderline, res.Rule.Style)

	res = e.OnBoundaryKey(lineEnd(t, "*** words"))
	require.Equal(t, document.StyleUnderline, res.Rule.Style)
	b, _ := res.Snapshot.CurrentBlock()
	require.Equal(t, "words", b.Text())
	requireStyledExactly(t, b, document.StyleUnderline)
}

func TestOnBoundaryKey_StripsMarkerAndStylesWholeRemainder(t *testing.T) {
	snap, outcomes := typeChars(Default(), lineEnd(t, "# Hello"), " ")

	require.Equal(t, []Outcome{Handled}, outcomes)
	b, _ := snap.CurrentBlock()
	require.Equal(t, "Hello", b.Text())
	requireStyledExactly(t, b, document.StyleHeading)
	require.Equal(t, document.Collapsed(b.Key(), 5), snap.Selection())
}

func TestOnBoundaryKey_SelectsRemainder(t *testing.T) {
	res := Default().OnBoundaryKey(lineEnd(t, "* bold text"))

	b, _ := res.Snapshot.CurrentBlock()
	require.Equal(t, document.Span(b.Key(), 0, 9), res.Snapshot.Selection())
}

func TestOnBoundaryKey_ReplacesInheritedStyles(t *testing.T) {
	snap := document.FromText("** red")
	b, _ := snap.BlockAt(0)
	snap = snap.ForceSelection(document.Span(b.Key(), 0, 6)).ApplyInlineStyle(document.StyleBold)
	snap = snap.ForceSelection(document.Collapsed(b.Key(), 6))

	res := Default().OnBoundaryKey(snap)

	b, _ = res.Snapshot.CurrentBlock()
	require.Equal(t, "red", b.Text())
	requireStyledExactly(t, b, document.StyleRed)
}

func TestOnlyCurrentBlockIsTouched(t *testing.T) {
	snap := document.FromText("# keep\n# edit")
	second, _ := snap.BlockAt(1)
	snap = snap.ForceSelection(document.Collapsed(second.Key(), second.Len()))

	res := Default().OnBoundaryKey(snap)

	require.Equal(t, "# keep\nedit", res.Snapshot.PlainText())
}

func TestNotHandled(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		chars string
	}{
		{name: "plain text", line: "hello", chars: " "},
		{name: "marker without space", line: "", chars: "#"},
		{name: "marker mid line", line: "a #", chars: " "},
		{name: "longer than marker", line: "# x", chars: "y"},
		{name: "hash without space", line: "#x", chars: " "},
		{name: "four stars", line: "****", chars: " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := lineEnd(t, tt.line)
			res := Default().BeforeInput(snap, tt.chars)

			require.Equal(t, NotHandled, res.Outcome)
			require.Equal(t, "not-handled", res.Outcome.String())
			require.True(t, snap.ContentEqual(res.Snapshot))
			require.Equal(t, snap.Selection(), res.Snapshot.Selection())
		})
	}
}

func TestBeforeInput_UsesCaretPosition(t *testing.T) {
	snap := document.FromText(" ")
	b, _ := snap.BlockAt(0)
	snap = snap.ForceSelection(document.Collapsed(b.Key(), 0))

	res := Default().BeforeInput(snap, "#")

	require.Equal(t, Handled, res.Outcome)
	require.Equal(t, "", res.Snapshot.PlainText())
}

func TestBeforeInput_ReplacesSelectedText(t *testing.T) {
	snap := document.FromText("*abc")
	b, _ := snap.BlockAt(0)
	snap = snap.ForceSelection(document.Span(b.Key(), 1, 4))

	res := Default().BeforeInput(snap, " ")

	require.Equal(t, Handled, res.Outcome)
	require.Equal(t, document.StyleBold, res.Rule.Style)
}

func TestMissingBlockIsNotHandled(t *testing.T) {
	snap := document.FromText("# x").ForceSelection(document.Collapsed("gone", 0))
	e := Default()

	require.NotPanics(t, func() {
		require.Equal(t, NotHandled, e.BeforeInput(snap, " ").Outcome)
		require.Equal(t, NotHandled, e.OnBoundaryKey(snap).Outcome)
		require.Equal(t, NotHandled, e.Evaluate(snap, "# ", MatchExact).Outcome)
	})
}

func TestMatch(t *testing.T) {
	e := Default()

	r, ok := e.Match("** x", MatchPrefix)
	require.True(t, ok)
	require.Equal(t, document.StyleRed, r.Style)

	_, ok = e.Match("** x", MatchExact)
	require.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		err   error
	}{
		{name: "no rules", rules: nil, err: ErrNoRules},
		{name: "empty marker", rules: []Rule{{Marker: "", Style: document.StyleBold, StripLength: 1}}, err: ErrEmptyMarker},
		{name: "zero strip", rules: []Rule{{Marker: "# ", Style: document.StyleHeading}}, err: ErrStripLength},
		{name: "strip past marker", rules: []Rule{{Marker: "# ", Style: document.StyleHeading, StripLength: 3}}, err: ErrStripLength},
		{name: "shorter marker first", rules: []Rule{
			{Marker: "* ", Style: document.StyleBold, StripLength: 2},
			{Marker: "** ", Style: document.StyleRed, StripLength: 3},
		}, err: nil},
		{name: "prefix shadows later", rules: []Rule{
			{Marker: "*", Style: document.StyleBold, StripLength: 1},
			{Marker: "** ", Style: document.StyleRed, StripLength: 3},
		}, err: ErrShadowedRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rules)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDefaultRulesAreValid(t *testing.T) {
	require.NoError(t, validateRules(DefaultRules))
	require.Equal(t, DefaultRules, Default().Rules())
}

func TestProperty_MarkerThenSpaceEmptiesLine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rule := rapid.SampledFrom(DefaultRules).Draw(rt, "rule")
		typed := strings.TrimSuffix(rule.Marker, " ")

		res := Default().BeforeInput(document.FromText(typed).MoveDocEnd(), " ")

		require.Equal(rt, Handled, res.Outcome)
		require.Equal(rt, rule, res.Rule)
		require.Equal(rt, "", res.Snapshot.PlainText())
	})
}

func TestProperty_MarkerPlusTextKeepsText(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rule := rapid.SampledFrom(DefaultRules).Draw(rt, "rule")
		text := rapid.StringMatching(`[a-zA-Z0-9 #*é]{1,20}`).Draw(rt, "text")

		res := Default().OnBoundaryKey(document.FromText(rule.Marker + text).MoveDocEnd())

		require.Equal(rt, Handled, res.Outcome)
		require.Equal(rt, rule.Style, res.Rule.Style)
		b, ok := res.Snapshot.CurrentBlock()
		require.True(rt, ok)
		require.Equal(rt, text, b.Text())
		requireStyledExactly(rt, b, rule.Style)
	})
}

func TestProperty_UnmarkedLinesAreUntouched(t *testing.T) {
	e := Default()
	rapid.Check(t, func(rt *rapid.T) {
		line := rapid.StringMatching(`[a-z #*]{0,8}`).Draw(rt, "line")
		if _, ok := e.Match(line, MatchPrefix); ok {
			rt.Skip("line starts with a marker")
		}
		snap := document.FromText(line).MoveDocEnd()

		pre := e.BeforeInput(snap, "x")
		post := e.OnBoundaryKey(snap)

		for _, res := range []Result{pre, post} {
			require.Equal(rt, NotHandled, res.Outcome)
			require.True(rt, snap.ContentEqual(res.Snapshot))
			require.Equal(rt, snap.Selection(), res.Snapshot.Selection())
		}
	})
}

func spanAttrs(t *testing.T, s tracetest.SpanStub) map[string]string {
	t.Helper()
	out := make(map[string]string, len(s.Attributes))
	for _, kv := range s.Attributes {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func TestEvaluate_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("test")
	e := Default().WithTracer(tracer)

	res := e.OnBoundaryKey(lineEnd(t, "** warn"))
	require.True(t, res.Handled())
	e.BeforeInput(lineEnd(t, "plain"), "x")

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	for _, s := range spans {
		require.Equal(t, tracing.SpanAutoformatEvaluate, s.Name)
	}

	hit := spanAttrs(t, spans[0])
	require.Equal(t, "** ", hit[tracing.AttrMarker])
	require.Equal(t, "RED", hit[tracing.AttrStyle])
	require.Equal(t, "prefix", hit[tracing.AttrMode])
	require.Equal(t, "handled", hit[tracing.AttrOutcome])

	miss := spanAttrs(t, spans[1])
	require.Equal(t, "exact", miss[tracing.AttrMode])
	require.Equal(t, "not-handled", miss[tracing.AttrOutcome])
	require.NotContains(t, miss, tracing.AttrMarker)
}

func TestWithTracer_NilKeepsNoop(t *testing.T) {
	e := Default().WithTracer(nil)

	res := e.BeforeInput(document.Empty(), "#")

	require.False(t, res.Handled())
}
