package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// SnapshotArchiver uploads raw odds payloads and surfaced picks to object
// storage. Archives are the audit trail for reconstructing what the engine
// saw at decision time; nothing in the hot path reads them back.
type SnapshotArchiver struct {
	writer domain.BlobWriter
}

// NewSnapshotArchiver creates a SnapshotArchiver on top of a BlobWriter.
func NewSnapshotArchiver(writer domain.BlobWriter) *SnapshotArchiver {
	return &SnapshotArchiver{writer: writer}
}

// ArchiveOdds uploads one raw odds API payload, keyed by fetch time:
//
//	odds/2025-11-09/174502.json
func (a *SnapshotArchiver) ArchiveOdds(ctx context.Context, ts time.Time, payload []byte) error {
	path := fmt.Sprintf("odds/%s/%s.json", ts.Format("2006-01-02"), ts.Format("150405"))
	if err := a.writer.Put(ctx, path, payload, "application/json"); err != nil {
		return fmt.Errorf("s3blob: archive odds snapshot: %w", err)
	}
	return nil
}

// ArchivePicks uploads one run's surfaced picks as JSONL, keyed by run time
// and window:
//
//	picks/2025-11-09/T30-174502.jsonl
func (a *SnapshotArchiver) ArchivePicks(ctx context.Context, ts time.Time, window string, picks []domain.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	buf, err := marshalJSONL(picks)
	if err != nil {
		return fmt.Errorf("s3blob: archive picks marshal: %w", err)
	}

	path := fmt.Sprintf("picks/%s/%s-%s.jsonl", ts.Format("2006-01-02"), window, ts.Format("150405"))
	if err := a.writer.Put(ctx, path, buf, "application/x-ndjson"); err != nil {
		return fmt.Errorf("s3blob: archive picks upload: %w", err)
	}
	return nil
}

// marshalJSONL serialises a slice of values as newline-delimited JSON (JSONL).
// Each element is marshalled as a single compact JSON line followed by '\n'.
func marshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("jsonl encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
