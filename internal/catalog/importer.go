package catalog

import (
	"context"
	"fmt"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Importer loads seed files and upserts their dishes into the catalogue.
type Importer struct {
	loader Loader
	dishes repository.DishRepository
	logger zerolog.Logger
}

// NewImporter creates a catalogue importer.
func NewImporter(loader Loader, dishes repository.DishRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		dishes: dishes,
		logger: logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads all paths concurrently and upserts the result in one
// transaction. When a name repeats, the entry from the later file wins.
// It returns the number of dishes written.
func (i *Importer) Import(ctx context.Context, paths []string) (n int, err error) {
	if len(paths) == 0 {
		return 0, nil
	}

	loaded := make([][]model.DishSeed, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for idx, path := range paths {
		g.Go(func() error {
			seeds, err := i.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load seed file %s: %w", path, err)
			}
			loaded[idx] = seeds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		i.logger.Error().Err(err).Msg("catalog import aborted")
		return 0, err
	}

	seeds := mergeSeeds(loaded)

	tx, err := i.dishes.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin catalog import: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
				i.logger.Warn().Err(rbErr).Msg("failed to roll back catalog import")
			}
		}
	}()

	n, err = i.dishes.Upsert(ctx, tx, seeds)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit catalog import: %w", err)
	}

	i.logger.Info().
		Int("files", len(paths)).
		Int("dishes", n).
		Msg("catalog imported")

	return n, nil
}

// mergeSeeds flattens files in order, keeping the last entry per name at the
// position of its first appearance.
func mergeSeeds(files [][]model.DishSeed) []model.DishSeed {
	index := make(map[string]int)
	out := []model.DishSeed{}
	for _, seeds := range files {
		for _, s := range seeds {
			if at, ok := index[s.Name]; ok {
				out[at] = s
				continue
			}
			index[s.Name] = len(out)
			out = append(out, s)
		}
	}
	return out
}
