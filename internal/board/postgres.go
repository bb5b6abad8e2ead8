package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles all board database operations. The privacy
// flag is persisted as a SMALLINT 0/1 and converted at this boundary.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a PostgresRepository with the given connection pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new board and returns the created record.
func (r *PostgresRepository) Create(ctx context.Context, b *Board) (*Board, error) {
	created := &Board{}
	var priv int16
	err := r.db.QueryRow(ctx,
		`INSERT INTO boards (name, description, owner_id, is_private)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, description, owner_id, is_private, created_at`,
		b.Name, b.Description, b.OwnerID, boolToInt(b.IsPrivate),
	).Scan(&created.ID, &created.Name, &created.Description, &created.OwnerID, &priv, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	created.IsPrivate = priv == 1
	return created, nil
}

// GetByID fetches a board by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Board, error) {
	b := &Board{}
	var priv int16
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, owner_id, is_private, created_at
		 FROM boards WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Name, &b.Description, &b.OwnerID, &priv, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get board by id: %w", err)
	}
	b.IsPrivate = priv == 1
	return b, nil
}

// ListByOwner returns all boards owned by the given user.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Board, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, owner_id, is_private, created_at
		 FROM boards WHERE owner_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list boards by owner: %w", err)
	}
	defer rows.Close()

	boards := []Board{}
	for rows.Next() {
		var b Board
		var priv int16
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.OwnerID, &priv, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		b.IsPrivate = priv == 1
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boards: %w", err)
	}
	return boards, nil
}

func boolToInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
