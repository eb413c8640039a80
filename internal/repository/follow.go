package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wavegram/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, userID, followeeID int64) (bool, error) {
	query := `
		INSERT INTO follows (user_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, followee_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, userID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, followeeID int64) error {
	query := `DELETE FROM follows WHERE user_id = $1 AND followee_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFollowing
	}

	return nil
}

func (r *followRepository) GetFolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT followee_id FROM follows WHERE user_id = $1 ORDER BY followee_id`

	var ids []int64
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get followee ids: %w", err)
	}

	return ids, nil
}
