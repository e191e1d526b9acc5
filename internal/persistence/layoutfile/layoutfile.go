// Package layoutfile reads and writes layout snapshots: a zstd stream with a
// JSON header line followed by the JSON snapshot body. Bodies are checked
// against an embedded JSON schema on read.
package layoutfile

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/errors"
)

const (
	// Format identifies layout snapshot files
	Format = "pickupworld.layout"
	// Version is the current snapshot version
	Version = 1

	schemaURL = "https://pickupworld/schemas/layout.schema.json"
)

//go:embed layout.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return schema, schemaErr
}

// Header is the first line of a snapshot file
type Header struct {
	Format    string    `json:"format"`
	Version   int       `json:"version"`
	SessionID string    `json:"session_id"`
	WrittenAt time.Time `json:"written_at"`
}

// Snapshot is a recorded layout with the parameters that produced it
type Snapshot struct {
	Version    int                    `json:"version"`
	SessionID  string                 `json:"session_id"`
	Size       float64                `json:"size"`
	NumObjs    int                    `json:"num_objs"`
	Seed       int64                  `json:"seed"`
	RecordedAt time.Time              `json:"recorded_at"`
	Entries    []entities.LayoutEntry `json:"entries"`
}

// Layout returns the snapshot entries as a layout
func (s *Snapshot) Layout() *entities.Layout {
	entries := make([]entities.LayoutEntry, len(s.Entries))
	copy(entries, s.Entries)
	return &entities.Layout{Entries: entries}
}

// Write stores snap at path, creating parent directories
func Write(path string, snap *Snapshot, now time.Time) error {
	if snap == nil {
		return errors.InvalidArgument("snapshot is required")
	}
	if err := snap.Layout().Validate(); err != nil {
		return errors.InvalidArgumentf("invalid layout: %v", err)
	}
	if snap.Version == 0 {
		snap.Version = Version
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrap(err, "failed to create zstd writer")
	}

	bw := bufio.NewWriter(enc)
	header := Header{
		Format:    Format,
		Version:   snap.Version,
		SessionID: snap.SessionID,
		WrittenAt: now.UTC(),
	}
	if err := writeLine(bw, header); err != nil {
		_ = enc.Close()
		return err
	}
	if err := writeLine(bw, snap); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return errors.Wrap(err, "failed to flush snapshot")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "failed to finish zstd stream")
	}
	return f.Sync()
}

func writeLine(w *bufio.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "failed to write snapshot")
	}
	return w.WriteByte('\n')
}

// Read loads and validates the snapshot at path
func Read(path string) (*Header, *Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.NotFoundf("snapshot %s not found", path)
		}
		return nil, nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeDataLoss, "not a zstd stream")
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	headerLine, err := br.ReadBytes('\n')
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to read snapshot header")
	}

	var header Header
	if err := json.Unmarshal(headerLine, &header); err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed snapshot header")
	}
	if header.Format != Format {
		return nil, nil, errors.DataLoss("not a layout snapshot").WithMeta("format", header.Format)
	}
	if header.Version != Version {
		return nil, nil, errors.FailedPreconditionf("unsupported snapshot version %d", header.Version)
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to read snapshot body")
	}
	snap, err := decodeBody(bytes.TrimSpace(body))
	if err != nil {
		return nil, nil, err
	}
	return &header, snap, nil
}

// decodeBody validates the body against the schema and the layout invariants
func decodeBody(body []byte) (*Snapshot, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile layout schema")
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed snapshot body")
	}
	if err := sch.Validate(doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "snapshot does not match layout schema")
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed snapshot body")
	}
	if err := snap.Layout().Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "invalid layout in snapshot")
	}
	if len(snap.Entries) != snap.NumObjs+1 {
		return nil, errors.DataLoss("layout length does not match object count").
			WithMeta("entries", len(snap.Entries)).
			WithMeta("num_objs", snap.NumObjs)
	}
	return &snap, nil
}
