// Package autoformat turns markdown-like line markers into inline styles.
//
// A line typed as "# " becomes an empty heading line, "* " bold, "** " red
// and "*** " underline. The engine never mutates a snapshot; it returns a
// new one together with an Outcome telling the caller whether to suppress
// its default handling of the keystroke.
package autoformat

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/draftpad/internal/document"
	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/tracing"
)

// Outcome reports whether the engine consumed the input.
type Outcome int

const (
	NotHandled Outcome = iota
	Handled
)

func (o Outcome) String() string {
	if o == Handled {
		return "handled"
	}
	return "not-handled"
}

// Result is the engine's answer for one input event. On NotHandled the
// snapshot is the input unchanged and Rule is the zero value.
type Result struct {
	Snapshot document.Snapshot
	Outcome  Outcome
	Rule     Rule
}

// Handled reports whether the caller should suppress default input handling.
func (r Result) Handled() bool { return r.Outcome == Handled }

// Engine evaluates an ordered rule table against the line being edited.
type Engine struct {
	rules  []Rule
	tracer trace.Tracer
}

// New validates rules and returns an engine evaluating them in order.
func New(rules []Rule) (*Engine, error) {
	if err := validateRules(rules); err != nil {
		return nil, err
	}
	return &Engine{rules: slices.Clone(rules), tracer: tracing.Noop()}, nil
}

// WithTracer records a span per Evaluate call on t.
func (e *Engine) WithTracer(t trace.Tracer) *Engine {
	if t != nil {
		e.tracer = t
	}
	return e
}

// Default returns an engine over DefaultRules.
func Default() *Engine {
	e, err := New(DefaultRules)
	if err != nil {
		panic(err) // DefaultRules is a constant table
	}
	return e
}

// Rules returns a copy of the rule table in evaluation order.
func (e *Engine) Rules() []Rule {
	return slices.Clone(e.rules)
}

// Match returns the first rule matching line under mode.
func (e *Engine) Match(line string, mode MatchMode) (Rule, bool) {
	for _, r := range e.rules {
		if r.matches(line, mode) {
			return r, true
		}
	}
	return Rule{}, false
}

// BeforeInput runs before chars are committed to the document. The line
// the user would see after the insertion must equal a marker exactly.
func (e *Engine) BeforeInput(snap document.Snapshot, chars string) Result {
	line, ok := prospectiveLine(snap, chars)
	if !ok {
		return notHandled(snap)
	}
	return e.Evaluate(snap, line, MatchExact)
}

// OnBoundaryKey runs for a space that BeforeInput declined, before the space
// is committed. The current line only has to start with a marker; when it
// does the space is consumed by the rewrite.
func (e *Engine) OnBoundaryKey(snap document.Snapshot) Result {
	b, ok := snap.CurrentBlock()
	if !ok {
		return notHandled(snap)
	}
	return e.Evaluate(snap, b.Text(), MatchPrefix)
}

// Evaluate matches line against the rule table and, on a hit, rewrites the
// block holding the selection start: the marker is stripped from line and
// the rule's style is applied to the remainder.
func (e *Engine) Evaluate(snap document.Snapshot, line string, mode MatchMode) (res Result) {
	_, span := e.tracer.Start(context.Background(), tracing.SpanAutoformatEvaluate,
		trace.WithAttributes(attribute.String(tracing.AttrMode, mode.String())))
	defer func() {
		span.SetAttributes(attribute.String(tracing.AttrOutcome, res.Outcome.String()))
		if res.Handled() {
			span.SetAttributes(
				attribute.String(tracing.AttrMarker, res.Rule.Marker),
				attribute.String(tracing.AttrStyle, string(res.Rule.Style)),
			)
		}
		tracing.End(span, nil)
	}()

	b, ok := snap.CurrentBlock()
	if !ok {
		return notHandled(snap)
	}
	rule, ok := e.Match(line, mode)
	if !ok {
		return notHandled(snap)
	}

	log.Debug(log.CatFormat, "rule fired",
		"marker", rule.Marker, "style", rule.Style, "mode", mode, "block", b.Key())
	return Result{Snapshot: rewrite(snap, b, line, rule), Outcome: Handled, Rule: rule}
}

func rewrite(snap document.Snapshot, b document.Block, line string, rule Rule) document.Snapshot {
	runes := []rune(line)
	rest := string(runes[min(rule.StripLength, len(runes)):])

	out := snap.ReplaceText(
		document.Point{Key: b.Key(), Offset: 0},
		document.Point{Key: b.Key(), Offset: b.Len()},
		rest,
	)
	n := len([]rune(rest))
	if n == 0 {
		return out.SetInlineStyleOverride(document.NewStyleSet(rule.Style))
	}
	return out.ForceSelection(document.Span(b.Key(), 0, n)).ApplyInlineStyle(rule.Style)
}

// prospectiveLine is the current block's text with chars in place of the
// part of the selection that lies in that block.
func prospectiveLine(snap document.Snapshot, chars string) (string, bool) {
	b, ok := snap.CurrentBlock()
	if !ok {
		return "", false
	}
	start, end := snap.SelectionStart(), snap.SelectionEnd()
	runes := b.Runes()
	from := clamp(start.Offset, len(runes))
	to := len(runes)
	if end.Key == b.Key() {
		to = clamp(end.Offset, len(runes))
	}
	if to < from {
		to = from
	}
	return string(runes[:from]) + chars + string(runes[to:]), true
}

func clamp(offset, n int) int {
	return max(0, min(offset, n))
}

func notHandled(snap document.Snapshot) Result {
	return Result{Snapshot: snap, Outcome: NotHandled}
}
