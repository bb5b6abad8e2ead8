package pin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pinColumns = `id, title, description, image_key, thumbnail_key, board_id, owner_id, is_private, created_at`

// PostgresRepository handles all pin database operations. The privacy flag
// is persisted as a SMALLINT 0/1 and converted at this boundary.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a PostgresRepository with the given connection pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new pin and returns the created record.
func (r *PostgresRepository) Create(ctx context.Context, p *Pin) (*Pin, error) {
	created := &Pin{}
	var priv int16
	err := r.db.QueryRow(ctx,
		`INSERT INTO pins (title, description, image_key, thumbnail_key, board_id, owner_id, is_private)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+pinColumns,
		p.Title, p.Description, p.ImageKey, p.ThumbnailKey, p.BoardID, p.OwnerID, boolToInt(p.IsPrivate),
	).Scan(&created.ID, &created.Title, &created.Description, &created.ImageKey, &created.ThumbnailKey,
		&created.BoardID, &created.OwnerID, &priv, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create pin: %w", err)
	}
	created.IsPrivate = priv == 1
	return created, nil
}

// GetByID fetches a pin by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Pin, error) {
	p := &Pin{}
	var priv int16
	err := r.db.QueryRow(ctx,
		`SELECT `+pinColumns+` FROM pins WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.ImageKey, &p.ThumbnailKey,
		&p.BoardID, &p.OwnerID, &priv, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pin by id: %w", err)
	}
	p.IsPrivate = priv == 1
	return p, nil
}

// ListByBoard returns all pins on the given board.
func (r *PostgresRepository) ListByBoard(ctx context.Context, boardID int64) ([]Pin, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pinColumns+` FROM pins WHERE board_id = $1 ORDER BY id`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pins by board: %w", err)
	}
	defer rows.Close()
	return scanPins(rows)
}

// SampleRandomPublic returns up to n public pins in uniform random order.
func (r *PostgresRepository) SampleRandomPublic(ctx context.Context, n int) ([]Pin, error) {
	if n < 0 {
		n = 0
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+pinColumns+` FROM pins WHERE is_private = 0 ORDER BY random() LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("sample public pins: %w", err)
	}
	defer rows.Close()
	return scanPins(rows)
}

func scanPins(rows pgx.Rows) ([]Pin, error) {
	pins := []Pin{}
	for rows.Next() {
		var p Pin
		var priv int16
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageKey, &p.ThumbnailKey,
			&p.BoardID, &p.OwnerID, &priv, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pin: %w", err)
		}
		p.IsPrivate = priv == 1
		pins = append(pins, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pins: %w", err)
	}
	return pins, nil
}

func boolToInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
