package integration

import (
	"context"
	"testing"
	"time"

	"restaurant-pos/internal/database"
	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the POS schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedTable inserts a dining table.
func SeedTable(t *testing.T, pool *pgxpool.Pool, number int, status model.TableStatus) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO dining_tables (number, capacity, status) VALUES ($1, 4, $2)`, number, status)
	if err != nil {
		t.Fatalf("failed to seed table %d: %v", number, err)
	}
}

// SeedGuest inserts a guest seated at tableNumber and returns its ID.
func SeedGuest(t *testing.T, pool *pgxpool.Pool, name string, tableNumber *int, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO guests (name, table_number, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING id`,
		name, tableNumber, createdAt).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed guest %s: %v", name, err)
	}
	return id
}

// SeedDish inserts a dish and returns its ID.
func SeedDish(t *testing.T, pool *pgxpool.Pool, name, price string, status model.DishStatus) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO dishes (name, price, status) VALUES ($1, $2, $3) RETURNING id`,
		name, decimal.RequireFromString(price), status).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed dish %s: %v", name, err)
	}
	return id
}

// SeedSocket maps a guest to a live socket.
func SeedSocket(t *testing.T, pool *pgxpool.Pool, guestID int64, socketID string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO sockets (guest_id, socket_id) VALUES ($1, $2)`, guestID, socketID)
	if err != nil {
		t.Fatalf("failed to seed socket for guest %d: %v", guestID, err)
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

// CleanupDB removes all rows and resets identities.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`TRUNCATE sockets, orders, dish_snapshots, guests, dining_tables, dishes RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

func intPtr(v int) *int { return &v }
