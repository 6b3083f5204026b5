package repository

import (
	"context"
	"time"

	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner starts transactions. Every repository that writes exposes it.
type TxBeginner interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

// DishRepository defines the interface for catalogue data access operations.
// Lookups return (nil, nil) when the dish does not exist.
type DishRepository interface {
	TxBeginner

	// GetByID retrieves a single dish by its ID.
	GetByID(ctx context.Context, id int64) (*model.Dish, error)

	// GetByIDTx retrieves a single dish within the provided transaction.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Dish, error)

	// GetAll retrieves the whole catalogue ordered by ID.
	GetAll(ctx context.Context) ([]model.Dish, error)

	// List retrieves one filtered, sorted page and the total matching count.
	List(ctx context.Context, query model.DishListQuery) ([]model.Dish, int, error)

	// Upsert inserts or updates dishes by name within the provided transaction.
	Upsert(ctx context.Context, tx pgx.Tx, seeds []model.DishSeed) (int, error)
}

// SnapshotRepository defines the interface for dish snapshot persistence.
type SnapshotRepository interface {
	// Create inserts a snapshot within the provided transaction and sets its ID.
	Create(ctx context.Context, tx pgx.Tx, snapshot *model.DishSnapshot) error

	// GetByID retrieves a snapshot by its ID.
	GetByID(ctx context.Context, id int64) (*model.DishSnapshot, error)
}

// GuestRepository defines read access to guests.
type GuestRepository interface {
	// GetByID retrieves a guest by its ID.
	GetByID(ctx context.Context, id int64) (*model.Guest, error)

	// ListWithPaidOrders retrieves guests created in [from, to] having at
	// least one paid order.
	ListWithPaidOrders(ctx context.Context, from, to time.Time) ([]model.Guest, error)
}

// TableRepository defines read access to dining tables.
type TableRepository interface {
	// GetByNumber retrieves a table by its number.
	GetByNumber(ctx context.Context, number int) (*model.Table, error)
}

// OrderRepository defines the interface for order data access operations.
// Orders are always returned with their dish snapshot.
type OrderRepository interface {
	TxBeginner

	// Create inserts a new order within the provided transaction and sets its ID.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// Update writes status, snapshot, quantity and handler of an order.
	Update(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByIDTx retrieves an order by its ID within the provided transaction.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error)

	// GetByIDs retrieves orders by ID, newest first.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Order, error)

	// List retrieves orders created within the query bounds, newest first.
	List(ctx context.Context, query model.OrderQuery) ([]model.Order, error)

	// ListByGuest retrieves a guest's orders having one of the given statuses.
	ListByGuest(ctx context.Context, guestID int64, statuses []model.OrderStatus) ([]model.Order, error)

	// MarkPaid sets the given orders to Paid if they are still payable and
	// returns the number of rows changed.
	MarkPaid(ctx context.Context, tx pgx.Tx, ids []int64, orderHandlerID *int64, at time.Time) (int64, error)
}

// SocketRepository resolves a guest's live connection.
type SocketRepository interface {
	// GetSocketID returns the guest's socket ID or nil when none is registered.
	GetSocketID(ctx context.Context, guestID int64) (*string, error)
}
