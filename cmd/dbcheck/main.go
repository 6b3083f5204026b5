package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"restaurant-pos/internal/config"
	"restaurant-pos/internal/database"

	"github.com/joho/godotenv"
)

// posTables are the tables the API server expects after migration.
var posTables = []string{"dishes", "dish_snapshots", "dining_tables", "guests", "orders", "sockets"}

// Connects with the API server's database settings and reports which POS
// tables exist. Exits non-zero when the database is unreachable.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, config.NewLogger(cfg.Logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	missing := 0
	for _, table := range posTables {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to inspect %s: %v\n", table, err)
			os.Exit(1)
		}
		state := "present"
		if !exists {
			state = "missing"
			missing++
		}
		fmt.Printf("  %-15s %s\n", table, state)
	}

	if missing > 0 {
		fmt.Printf("\n%d table(s) missing; start the API server to apply the schema.\n", missing)
	}
}
