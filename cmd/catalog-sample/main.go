package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"restaurant-pos/internal/model"

	"github.com/shopspring/decimal"
)

// Writes sample catalog seed files for local runs and demos.
// dishes.gz holds the main menu; drinks.gz repeats "Iced Coffee" with a
// different price so the import shows that later files win.
func main() {
	dataDir := flag.String("dir", "data/catalog", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	files := map[string][]model.DishSeed{
		"dishes.gz": {
			seed("Pho Bo", "10.00", "Beef noodle soup", model.DishStatusAvailable),
			seed("Bun Cha", "9.50", "Grilled pork with vermicelli", model.DishStatusAvailable),
			seed("Banh Mi", "4.50", "Pork baguette", model.DishStatusAvailable),
			seed("Spring Rolls", "5.25", "Fresh rice paper rolls", model.DishStatusUnavailable),
			seed("Chef Special", "18.00", "Off-menu tasting plate", model.DishStatusHidden),
			seed("Iced Coffee", "2.50", "Vietnamese drip coffee", model.DishStatusAvailable),
		},
		"drinks.gz": {
			seed("Iced Coffee", "2.75", "Vietnamese drip coffee", model.DishStatusAvailable),
			seed("Lotus Tea", "2.00", "Hot lotus tea", model.DishStatusAvailable),
			seed("Sugarcane Juice", "3.00", "Fresh pressed", model.DishStatusAvailable),
		},
	}

	for filename, seeds := range files {
		filePath := filepath.Join(*dataDir, filename)

		if err := writeSeedFile(filePath, seeds); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d dishes\n", filePath, len(seeds))
	}

	fmt.Println("\nImport them at startup with:")
	fmt.Printf("  CATALOG_SEED_FILES=%s,%s\n",
		filepath.Join(*dataDir, "dishes.gz"), filepath.Join(*dataDir, "drinks.gz"))
}

func seed(name, price, description string, status model.DishStatus) model.DishSeed {
	return model.DishSeed{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: description,
		Status:      status,
	}
}

func writeSeedFile(filePath string, seeds []model.DishSeed) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(gzipWriter)
	for _, s := range seeds {
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("failed to write dish %q: %w", s.Name, err)
		}
	}

	return gzipWriter.Close()
}
