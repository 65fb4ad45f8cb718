package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// FriendRepo reads the friendship table maintained by the community
// platform. The engine only ever needs the outgoing relations of one
// identity, for friends-only room access.
type FriendRepo struct {
	DB *sql.DB
}

func NewFriendRepo(db *sql.DB) *FriendRepo {
	return &FriendRepo{DB: db}
}

func (r *FriendRepo) Friends(ctx context.Context, identity string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT friend_identity FROM friendships WHERE user_identity = $1;`, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query friendships: %v", err)
	}
	defer rows.Close()

	var friends []string
	for rows.Next() {
		var friend string
		if err := rows.Scan(&friend); err != nil {
			return nil, fmt.Errorf("failed to scan friendship row: %v", err)
		}
		friends = append(friends, friend)
	}
	return friends, rows.Err()
}

// AddFriendship inserts the relation in both directions. Used by seed
// tooling and tests; the platform's community service owns this table in
// production.
func (r *FriendRepo) AddFriendship(ctx context.Context, a, b string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO friendships (user_identity, friend_identity)
	VALUES ($1, $2)
	ON CONFLICT (user_identity, friend_identity) DO NOTHING;
	`
	if _, err := tx.ExecContext(ctx, query, a, b); err != nil {
		return fmt.Errorf("failed to insert friendship: %v", err)
	}
	if _, err := tx.ExecContext(ctx, query, b, a); err != nil {
		return fmt.Errorf("failed to insert friendship: %v", err)
	}

	return tx.Commit()
}
