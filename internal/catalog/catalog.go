package catalog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"restaurant-pos/internal/model"
)

// Loader defines the interface for loading dish seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines seed file and returns its dishes.
	Load(ctx context.Context, path string) ([]model.DishSeed, error)
}

// cancelCheckInterval is how many lines are read between context checks.
const cancelCheckInterval = 1000

// decodeSeeds reads one JSON dish per line. Blank lines are skipped.
func decodeSeeds(ctx context.Context, r io.Reader, source string) ([]model.DishSeed, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	seeds := []model.DishSeed{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var seed model.DishSeed
		if err := json.Unmarshal([]byte(line), &seed); err != nil {
			return nil, fmt.Errorf("invalid dish seed at %s:%d: %w", source, lineNo, err)
		}
		if err := normaliseSeed(&seed); err != nil {
			return nil, fmt.Errorf("invalid dish seed at %s:%d: %w", source, lineNo, err)
		}
		seeds = append(seeds, seed)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file %s: %w", source, err)
	}

	return seeds, nil
}

// normaliseSeed trims the name, defaults the status and checks the price.
func normaliseSeed(seed *model.DishSeed) error {
	seed.Name = strings.TrimSpace(seed.Name)
	if seed.Name == "" {
		return fmt.Errorf("name is required")
	}
	if seed.Price.IsNegative() {
		return fmt.Errorf("price of %q must not be negative", seed.Name)
	}
	if seed.Status == "" {
		seed.Status = model.DishStatusAvailable
	}
	if !seed.Status.Valid() {
		return fmt.Errorf("unknown status %q for %q", seed.Status, seed.Name)
	}
	return nil
}
