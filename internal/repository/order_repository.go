package repository

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderSelect reads an order with its snapshot and, when set, its table.
const orderSelect = `
	SELECT o.id, o.guest_id, o.dish_snapshot_id, o.table_number, o.quantity, o.order_handler_id,
	       o.status, o.created_at, o.updated_at,
	       s.id, s.dish_id, s.name, s.price, s.description, s.image, s.status, s.created_at,
	       t.number, t.capacity, t.status, t.created_at, t.updated_at
	FROM orders o
	JOIN dish_snapshots s ON s.id = o.dish_snapshot_id
	LEFT JOIN dining_tables t ON t.number = o.table_number
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	txOpts pgx.TxOptions
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, txOpts pgx.TxOptions, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		txOpts: txOpts,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return beginTx(ctx, r.pool, r.txOpts, r.logger)
}

func scanOrder(row scanner) (*model.Order, error) {
	var (
		o     model.Order
		s     model.DishSnapshot
		table struct {
			number    *int
			capacity  *int
			status    *string
			createdAt *time.Time
			updatedAt *time.Time
		}
	)
	err := row.Scan(
		&o.ID, &o.GuestID, &o.DishSnapshotID, &o.TableNumber, &o.Quantity, &o.OrderHandlerID,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
		&s.ID, &s.DishID, &s.Name, &s.Price, &s.Description, &s.Image, &s.Status, &s.CreatedAt,
		&table.number, &table.capacity, &table.status, &table.createdAt, &table.updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.DishSnapshot = &s
	if table.number != nil {
		t := &model.Table{Number: *table.number}
		if table.capacity != nil {
			t.Capacity = *table.capacity
		}
		if table.status != nil {
			t.Status = model.TableStatus(*table.status)
		}
		if table.createdAt != nil {
			t.CreatedAt = *table.createdAt
		}
		if table.updatedAt != nil {
			t.UpdatedAt = *table.updatedAt
		}
		o.Table = t
	}
	return &o, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (guest_id, dish_snapshot_id, table_number, quantity, order_handler_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		order.GuestID, order.DishSnapshotID, order.TableNumber, order.Quantity,
		order.OrderHandlerID, order.Status, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("guest_id", order.GuestID).
			Int64("dish_snapshot_id", order.DishSnapshotID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// Update writes status, snapshot, quantity and handler of an order.
func (r *orderRepository) Update(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $2, dish_snapshot_id = $3, quantity = $4, order_handler_id = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		order.ID, order.Status, order.DishSnapshotID, order.Quantity, order.OrderHandlerID, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Str("status", string(order.Status)).
		Msg("order updated successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.getByID(ctx, r.pool, id)
}

// GetByIDTx retrieves an order by its ID within the provided transaction.
func (r *orderRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error) {
	return r.getByID(ctx, tx, id)
}

func (r *orderRepository) getByID(ctx context.Context, q Querier, id int64) (*model.Order, error) {
	o, err := scanOrder(q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return o, nil
}

// GetByIDs retrieves orders by ID, newest first.
func (r *orderRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Order, error) {
	if len(ids) == 0 {
		return []model.Order{}, nil
	}

	rows, err := r.pool.Query(ctx, orderSelect+` WHERE o.id = ANY($1) ORDER BY o.created_at DESC, o.id DESC`, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query orders by IDs")
		return nil, fmt.Errorf("failed to query orders by IDs: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// List retrieves orders created within the query bounds, newest first.
func (r *orderRepository) List(ctx context.Context, q model.OrderQuery) ([]model.Order, error) {
	query := orderSelect + `
		WHERE ($1::timestamptz IS NULL OR o.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR o.created_at <= $2)
		ORDER BY o.created_at DESC, o.id DESC
	`

	rows, err := r.pool.Query(ctx, query, q.FromDate, q.ToDate)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByGuest retrieves a guest's orders having one of the given statuses.
func (r *orderRepository) ListByGuest(ctx context.Context, guestID int64, statuses []model.OrderStatus) ([]model.Order, error) {
	query := orderSelect + `
		WHERE o.guest_id = $1 AND o.status = ANY($2)
		ORDER BY o.created_at DESC, o.id DESC
	`

	rows, err := r.pool.Query(ctx, query, guestID, statusStrings(statuses))
	if err != nil {
		r.logger.Error().Err(err).Int64("guest_id", guestID).Msg("failed to list guest orders")
		return nil, fmt.Errorf("failed to list guest orders: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// MarkPaid sets the given orders to Paid if they are still payable and
// returns the number of rows changed.
func (r *orderRepository) MarkPaid(ctx context.Context, tx pgx.Tx, ids []int64, orderHandlerID *int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE orders
		SET status = $2, order_handler_id = $3, updated_at = $4
		WHERE id = ANY($1) AND status = ANY($5)
	`

	tag, err := tx.Exec(ctx, query, ids, model.OrderStatusPaid, orderHandlerID, at, statusStrings(model.PayableStatuses))
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to mark orders paid")
		return 0, fmt.Errorf("failed to mark orders paid: %w", err)
	}

	r.logger.Debug().
		Int("requested", len(ids)).
		Int64("updated", tag.RowsAffected()).
		Msg("orders marked paid")

	return tag.RowsAffected(), nil
}

func (r *orderRepository) collect(rows pgx.Rows) ([]model.Order, error) {
	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func statusStrings(statuses []model.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
