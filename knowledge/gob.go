package knowledge

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

const gobFormatVersion = 1

type gobSnapshot struct {
	Version int
	Records []record
}

// GobCodec writes a zstd compressed gob stream.
type GobCodec struct{}

func (GobCodec) Name() string {
	return "gob+zstd"
}

func (GobCodec) Encode(w io.Writer, store *Store) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	snapshot := gobSnapshot{Version: gobFormatVersion, Records: toRecords(store)}
	if err := gob.NewEncoder(enc).Encode(snapshot); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode knowledge: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush zstd writer: %w", err)
	}
	return nil
}

func (GobCodec) Decode(r io.Reader) (*Store, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer dec.Close()

	var snapshot gobSnapshot
	if err := gob.NewDecoder(dec).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if snapshot.Version != gobFormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, snapshot.Version)
	}
	return fromRecords(snapshot.Records)
}
