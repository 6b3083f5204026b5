package repository

import (
	"context"
	"fmt"
	"math"
	"strings"

	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const dishColumns = `id, name, price, description, image, status, created_at, updated_at`

// dishSortColumns whitelists the columns a listing may be ordered by.
var dishSortColumns = map[model.DishSortKey]string{
	model.DishSortByName:      "name",
	model.DishSortByPrice:     "price",
	model.DishSortByCreatedAt: "created_at",
	model.DishSortByUpdatedAt: "updated_at",
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// dishRepository implements the DishRepository interface using PostgreSQL.
type dishRepository struct {
	pool   *pgxpool.Pool
	txOpts pgx.TxOptions
	logger zerolog.Logger
}

// NewDishRepository creates a new PostgreSQL-backed dish repository.
func NewDishRepository(pool *pgxpool.Pool, txOpts pgx.TxOptions, logger zerolog.Logger) DishRepository {
	return &dishRepository{
		pool:   pool,
		txOpts: txOpts,
		logger: logger.With().Str("repository", "dish").Logger(),
	}
}

func (r *dishRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return beginTx(ctx, r.pool, r.txOpts, r.logger)
}

func scanDish(row scanner) (*model.Dish, error) {
	var d model.Dish
	err := row.Scan(&d.ID, &d.Name, &d.Price, &d.Description, &d.Image, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID retrieves a single dish by its ID.
func (r *dishRepository) GetByID(ctx context.Context, id int64) (*model.Dish, error) {
	return r.getByID(ctx, r.pool, id)
}

// GetByIDTx retrieves a single dish within the provided transaction.
func (r *dishRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Dish, error) {
	return r.getByID(ctx, tx, id)
}

func (r *dishRepository) getByID(ctx context.Context, q Querier, id int64) (*model.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`

	d, err := scanDish(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("dish_id", id).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("dish_id", id).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}

	return d, nil
}

// GetAll retrieves the whole catalogue ordered by ID.
func (r *dishRepository) GetAll(ctx context.Context) ([]model.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dishes")
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// List retrieves one filtered, sorted page and the total matching count.
func (r *dishRepository) List(ctx context.Context, q model.DishListQuery) ([]model.Dish, int, error) {
	column, ok := dishSortColumns[q.SortBy]
	if !ok {
		return nil, 0, model.ErrInvalidSort
	}
	direction := "ASC"
	switch q.SortOrder {
	case model.SortAsc, "":
	case model.SortDesc:
		direction = "DESC"
	default:
		return nil, 0, model.ErrInvalidSort
	}

	page := max(q.Page, 1)
	if q.Limit <= 0 || page-1 > math.MaxInt32/q.Limit {
		return nil, 0, model.NewValidationError(model.ErrCodeInvalidFilter, "page %d is out of range", q.Page)
	}

	var (
		conds []string
		args  []any
	)
	if q.Search != "" {
		args = append(args, escapeLike(q.Search))
		conds = append(conds, fmt.Sprintf(`name ILIKE '%%' || $%d || '%%' ESCAPE '\'`, len(args)))
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if q.FromPrice != nil {
		args = append(args, *q.FromPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if q.ToPrice != nil {
		args = append(args, *q.ToPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dishes`+where, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count dishes")
		return nil, 0, fmt.Errorf("failed to count dishes: %w", err)
	}

	offset := (page - 1) * q.Limit
	query := fmt.Sprintf(`SELECT %s FROM dishes%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		dishColumns, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, q.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Str("sort_by", string(q.SortBy)).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to list dishes")
		return nil, 0, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	dishes, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return dishes, total, nil
}

// Upsert inserts or updates dishes by name within the provided transaction.
func (r *dishRepository) Upsert(ctx context.Context, tx pgx.Tx, seeds []model.DishSeed) (int, error) {
	if len(seeds) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO dishes (name, price, description, image, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			price = EXCLUDED.price,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, s := range seeds {
		batch.Queue(query, s.Name, s.Price, s.Description, s.Image, s.Status)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range seeds {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("dish_name", seeds[i].Name).
				Msg("failed to upsert dish")
			return 0, fmt.Errorf("failed to upsert dish %q: %w", seeds[i].Name, err)
		}
	}

	r.logger.Debug().Int("count", len(seeds)).Msg("dishes upserted successfully")

	return len(seeds), nil
}

func (r *dishRepository) collect(rows pgx.Rows) ([]model.Dish, error) {
	dishes := []model.Dish{}
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan dish row")
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, *d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating dish rows")
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}
