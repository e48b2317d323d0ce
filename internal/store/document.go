package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/draftpad/internal/document"
	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/tracing"
)

// DefaultKey is the key the document is stored under.
const DefaultKey = "editorContent"

// corruptSuffix is appended to the key when a bad value is set aside.
const corruptSuffix = ".corrupt"

// ErrCorrupt reports a stored value that could not be decoded.
var ErrCorrupt = errors.New("stored document is corrupt")

// CorruptError carries the undecodable value so it can be quarantined.
type CorruptError struct {
	Key string
	Raw string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s (key %q): %v", ErrCorrupt, e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Is matches ErrCorrupt.
func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// DocumentStore loads and saves one document under a fixed key.
type DocumentStore struct {
	kv     KV
	key    string
	tracer trace.Tracer
}

// NewDocumentStore stores documents in kv under key, or DefaultKey when
// key is empty.
func NewDocumentStore(kv KV, key string) *DocumentStore {
	if key == "" {
		key = DefaultKey
	}
	return &DocumentStore{kv: kv, key: key, tracer: tracing.Noop()}
}

// WithTracer records spans for Load, Save and Quarantine on t.
func (s *DocumentStore) WithTracer(t trace.Tracer) *DocumentStore {
	if t != nil {
		s.tracer = t
	}
	return s
}

// Key returns the storage key.
func (s *DocumentStore) Key() string { return s.key }

// Load returns the stored document. A missing key yields an empty document.
// A value that does not decode yields a *CorruptError matching ErrCorrupt.
func (s *DocumentStore) Load(ctx context.Context) (_ document.Snapshot, err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanStoreLoad,
		trace.WithAttributes(attribute.String(tracing.AttrStoreKey, s.key)))
	defer func() { tracing.End(span, err) }()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return document.Empty(), fmt.Errorf("loading document: %w", err)
	}
	span.SetAttributes(attribute.Bool(tracing.AttrStoreFound, ok))
	if !ok {
		log.Debug(log.CatStore, "No stored document", "key", s.key)
		return document.Empty(), nil
	}
	span.SetAttributes(attribute.Int(tracing.AttrStoreBytes, len(raw)))

	snap, err := document.Unmarshal([]byte(raw))
	if err != nil {
		log.ErrorErr(log.CatStore, "Stored document is corrupt", err, "key", s.key, "bytes", len(raw))
		return document.Empty(), &CorruptError{Key: s.key, Raw: raw, Err: err}
	}
	span.SetAttributes(attribute.Int(tracing.AttrBlocks, snap.BlockCount()))
	log.Info(log.CatStore, "Loaded document", "key", s.key, "blocks", snap.BlockCount())
	return snap, nil
}

// Raw returns the stored value without decoding it.
func (s *DocumentStore) Raw(ctx context.Context) (string, bool, error) {
	return s.kv.Get(ctx, s.key)
}

// Save serializes snap and overwrites the stored value. It returns the
// serialized form that was written.
func (s *DocumentStore) Save(ctx context.Context, snap document.Snapshot) (_ string, err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanStoreSave, trace.WithAttributes(
		attribute.String(tracing.AttrStoreKey, s.key),
		attribute.Int(tracing.AttrBlocks, snap.BlockCount()),
	))
	defer func() { tracing.End(span, err) }()

	data, err := document.Marshal(snap)
	if err != nil {
		return "", err
	}
	raw := string(data)
	span.SetAttributes(attribute.Int(tracing.AttrStoreBytes, len(raw)))
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return "", fmt.Errorf("saving document: %w", err)
	}
	log.Info(log.CatStore, "Saved document", "key", s.key, "bytes", len(raw))
	return raw, nil
}

// Quarantine copies a corrupt value to <key>.corrupt so a later save does
// not destroy it.
func (s *DocumentStore) Quarantine(ctx context.Context, raw string) (err error) {
	key := s.QuarantineKey()
	ctx, span := s.tracer.Start(ctx, tracing.SpanStoreQuarantine, trace.WithAttributes(
		attribute.String(tracing.AttrStoreKey, key),
		attribute.Int(tracing.AttrStoreBytes, len(raw)),
	))
	defer func() { tracing.End(span, err) }()

	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("quarantining document: %w", err)
	}
	log.Warn(log.CatStore, "Quarantined corrupt document", "key", key)
	return nil
}

// QuarantineKey is where Quarantine writes.
func (s *DocumentStore) QuarantineKey() string { return s.key + corruptSuffix }

// Clear deletes the stored document.
func (s *DocumentStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clearing document: %w", err)
	}
	log.Info(log.CatStore, "Cleared document", "key", s.key)
	return nil
}

// SavedAt returns when the document was last written.
func (s *DocumentStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	return s.kv.UpdatedAt(ctx, s.key)
}
