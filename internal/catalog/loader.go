package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"

	"restaurant-pos/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for gzipped seed files on local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped JSON-lines seed file from disk.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.DishSeed, error) {
	l.logger.Info().Str("file", path).Msg("loading dish seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	seeds, err := decodeSeeds(ctx, gzipReader, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode seed file")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("dishes_loaded", len(seeds)).
		Msg("dish seed file loaded successfully")

	return seeds, nil
}
