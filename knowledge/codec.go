package knowledge

import (
	"connect4/game"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrCorrupt      = errors.New("corrupt knowledge data")
	ErrUnknownCodec = errors.New("unknown knowledge codec")
)

// Codec serializes a whole store.
type Codec interface {
	Name() string
	Encode(w io.Writer, store *Store) error
	Decode(r io.Reader) (*Store, error)
}

// record is the persisted form of an entry, shared by every codec.
type record struct {
	Key    []byte  `parquet:"key"`
	Wins   float64 `parquet:"wins"`
	Visits int64   `parquet:"visits"`
}

func toRecords(store *Store) []record {
	entries := store.Entries()
	records := make([]record, len(entries))
	for i, e := range entries {
		key := e.Key
		records[i] = record{Key: key[:], Wins: e.Wins, Visits: int64(e.Visits)}
	}
	return records
}

func fromRecords(records []record) (*Store, error) {
	store := NewStore()
	for i, r := range records {
		key, err := game.KeyFromBytes(r.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, i, err)
		}
		if r.Visits < 0 || r.Wins < 0 || r.Wins > float64(r.Visits) {
			return nil, fmt.Errorf("%w: record %d has wins %.1f over %d visits", ErrCorrupt, i, r.Wins, r.Visits)
		}
		store.Merge(key, r.Wins, int(r.Visits))
	}
	return store, nil
}

// CodecFor picks a codec from a file name: ".parquet" files are columnar,
// everything else uses the compressed gob format.
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return ParquetCodec{}
	}
	return GobCodec{}
}

// CodecByName resolves a codec from its Name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case GobCodec{}.Name():
		return GobCodec{}, nil
	case ParquetCodec{}.Name():
		return ParquetCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}
