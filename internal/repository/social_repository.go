package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/artconnect/artconnect-api/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SocialRepository stores favorites and follows
type SocialRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSocialRepository creates a new social repository
func NewSocialRepository(db *sqlx.DB, logger *zap.Logger) *SocialRepository {
	return &SocialRepository{
		db:     db,
		logger: logger,
	}
}

// ToggleFavorite removes the favorite if present, otherwise adds it.
// It returns whether the item is a favorite afterwards.
func (r *SocialRepository) ToggleFavorite(ctx context.Context, userID, itemID, itemType string) (bool, error) {
	return r.toggle(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND item_id = $2 AND item_type = $3`,
		`INSERT INTO favorites (user_id, item_id, item_type) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		userID, itemID, itemType,
	)
}

// ListFavorites retrieves a user's favorites, newest first
func (r *SocialRepository) ListFavorites(ctx context.Context, userID string) ([]model.FavoriteRef, error) {
	query := `
		SELECT item_id, item_type, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	favorites := []model.FavoriteRef{}
	if err := r.db.SelectContext(ctx, &favorites, query, userID); err != nil {
		r.logger.Error("failed to list favorites", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return favorites, nil
}

// ToggleFollow removes the follow if present, otherwise adds it.
// It returns whether the user follows the artist afterwards.
func (r *SocialRepository) ToggleFollow(ctx context.Context, userID, artistID string) (bool, error) {
	return r.toggle(ctx,
		`DELETE FROM follows WHERE user_id = $1 AND artist_id = $2`,
		`INSERT INTO follows (user_id, artist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, artistID,
	)
}

// ListFollowed retrieves the artists a user follows
func (r *SocialRepository) ListFollowed(ctx context.Context, userID string) ([]model.User, error) {
	query := `
		SELECT u.id, u.fullname, u.email, u.password_hash, u.type, u.image, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.artist_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	users := []model.User{}
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		r.logger.Error("failed to list followed artists", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return users, nil
}

// toggle runs deleteQuery and, when nothing was deleted, insertQuery, in
// one transaction
func (r *SocialRepository) toggle(ctx context.Context, deleteQuery, insertQuery string, args ...interface{}) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	active, err := toggleRow(ctx, tx, deleteQuery, insertQuery, args...)
	if err != nil {
		r.logger.Error("failed to toggle row", zap.Error(err))
		return false, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit toggle", zap.Error(err))
		return false, err
	}

	return active, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// toggleRow reports whether the row exists afterwards. Two toggles racing on
// a missing pair both delete nothing and both insert; ON CONFLICT DO NOTHING
// turns the second insert into a no-op, so both report active and one row is
// stored. The insert's affected count is ignored for that reason.
func toggleRow(ctx context.Context, ex execer, deleteQuery, insertQuery string, args ...interface{}) (bool, error) {
	res, err := ex.ExecContext(ctx, deleteQuery, args...)
	if err != nil {
		return false, fmt.Errorf("delete: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	if _, err := ex.ExecContext(ctx, insertQuery, args...); err != nil {
		return false, fmt.Errorf("insert: %w", err)
	}
	return true, nil
}
