package knowledge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ReadFile loads a store from path with the codec its name selects.
func ReadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	store, err := CodecFor(path).Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return store, nil
}

// LoadFile is ReadFile that never fails: a missing, unreadable or corrupt
// file yields an empty store.
func LoadFile(path string) *Store {
	store, err := ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", path).Msg("no knowledge file, starting empty")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("failed to load knowledge, starting empty")
		}
		return NewStore()
	}
	log.Info().Str("path", path).Int("states", store.Len()).Msg("loaded knowledge")
	return store
}

// SaveFile writes the store next to path and renames it into place, so a
// crash never leaves a truncated file behind.
func SaveFile(path string, store *Store) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create knowledge directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create knowledge file: %w", err)
	}
	if err := CodecFor(path).Encode(f, store); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close knowledge file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename knowledge file: %w", err)
	}

	log.Info().Str("path", path).Int("states", store.Len()).Msg("saved knowledge")
	return nil
}
