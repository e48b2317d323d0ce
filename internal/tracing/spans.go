package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanStoreLoad          = "store.load"
	SpanStoreSave          = "store.save"
	SpanStoreQuarantine    = "store.quarantine"
	SpanAutoformatEvaluate = "autoformat.evaluate"
)

// Span attribute keys.
const (
	AttrStoreKey   = "store.key"
	AttrStoreBytes = "store.bytes"
	AttrStoreFound = "store.found"
	AttrBlocks     = "document.blocks"

	AttrMarker  = "autoformat.marker"
	AttrStyle   = "autoformat.style"
	AttrMode    = "autoformat.mode"
	AttrOutcome = "autoformat.outcome"
)

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
