package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/forumhive/gamehub/internal/domain"
)

// SnapshotRepo stores exported session models as JSONB documents keyed by
// session id. Every state transition upserts the whole snapshot.
type SnapshotRepo struct {
	DB *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{DB: db}
}

func (r *SnapshotRepo) SaveSnapshot(ctx context.Context, model *domain.SessionModel) error {
	doc, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal session model: %v", err)
	}

	query := `
	INSERT INTO game_sessions (session_id, game_type, status, model, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (session_id) DO UPDATE SET
		status = EXCLUDED.status,
		model = EXCLUDED.model,
		updated_at = now();
	`

	_, err = r.DB.ExecContext(ctx, query, model.SessionID, model.GameType, model.Status, doc, model.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert session snapshot: %v", err)
	}
	return nil
}

// GetSnapshot loads one stored model; (nil, nil) when the id is unknown.
func (r *SnapshotRepo) GetSnapshot(ctx context.Context, sessionID string) (*domain.SessionModel, error) {
	var doc []byte
	err := r.DB.QueryRowContext(ctx, `SELECT model FROM game_sessions WHERE session_id = $1;`, sessionID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session snapshot: %v", err)
	}

	var model domain.SessionModel
	if err := json.Unmarshal(doc, &model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %v", err)
	}
	return &model, nil
}

func (r *SnapshotRepo) DeleteSnapshot(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM game_sessions WHERE session_id = $1;`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session snapshot: %v", err)
	}
	return nil
}

// CleanupOldSnapshots deletes finished sessions whose last update is older
// than the retention window.
func (r *SnapshotRepo) CleanupOldSnapshots(daysToKeep int) (int64, error) {
	query := `
	DELETE FROM game_sessions
	WHERE status = 'over' AND updated_at < now() - ($1 || ' days')::interval;
	`

	result, err := r.DB.Exec(query, daysToKeep)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up old snapshots: %v", err)
	}
	return result.RowsAffected()
}
