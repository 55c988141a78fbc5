package knowledge

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const parquetSchema = "connect4_knowledge_v1"

// ParquetCodec writes one row per entry, sorted by descending visits.
type ParquetCodec struct{}

func (ParquetCodec) Name() string {
	return "parquet"
}

func (ParquetCodec) Encode(w io.Writer, store *Store) error {
	writer := parquet.NewGenericWriter[record](w,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", parquetSchema),
	)
	if _, err := writer.Write(toRecords(store)); err != nil {
		return fmt.Errorf("failed to write knowledge rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func (ParquetCodec) Decode(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	reader := parquet.NewGenericReader[record](pf)
	defer reader.Close()

	records := make([]record, reader.NumRows())
	n, err := reader.Read(records)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return fromRecords(records[:n])
}
