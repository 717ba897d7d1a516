package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artconnect/artconnect-api/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ArtRepository handles database operations for arts
type ArtRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewArtRepository creates a new art repository
func NewArtRepository(db *sqlx.DB, logger *zap.Logger) *ArtRepository {
	return &ArtRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an art with all of its images in one statement
func (r *ArtRepository) Create(ctx context.Context, art *model.Art) error {
	query := `
		INSERT INTO arts (id, title, category, images, price, description, artist_id, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.GetContext(
		ctx,
		&art.CreatedAt,
		query,
		art.ID,
		art.Title,
		art.Category,
		pq.Array([]string(art.Images)),
		art.Price,
		art.Description,
		art.ArtistID,
		art.IsAvailable,
	)
	if err != nil {
		r.logger.Error("failed to create art", zap.Error(err), zap.String("artist_id", art.ArtistID))
		return err
	}

	return nil
}

// GetByID retrieves an art by ID
func (r *ArtRepository) GetByID(ctx context.Context, id string) (*model.Art, error) {
	var art model.Art
	if err := r.db.GetContext(ctx, &art, `SELECT * FROM arts WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get art by ID", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &art, nil
}

// List searches available arts
func (r *ArtRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Art, error) {
	query, args := listingQuery("arts", filter)

	arts := []model.Art{}
	if err := r.db.SelectContext(ctx, &arts, query, args...); err != nil {
		r.logger.Error("failed to list arts", zap.Error(err), zap.String("query", filter.Query))
		return nil, err
	}

	return arts, nil
}

// ListByArtist retrieves every art posted by an artist
func (r *ArtRepository) ListByArtist(ctx context.Context, artistID string) ([]model.Art, error) {
	query := `SELECT * FROM arts WHERE artist_id = $1 ORDER BY created_at DESC`

	arts := []model.Art{}
	if err := r.db.SelectContext(ctx, &arts, query, artistID); err != nil {
		r.logger.Error("failed to list arts by artist", zap.Error(err), zap.String("artist_id", artistID))
		return nil, err
	}

	return arts, nil
}

// ListByIDs retrieves the arts with the given IDs
func (r *ArtRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Art, error) {
	if len(ids) == 0 {
		return []model.Art{}, nil
	}

	arts := []model.Art{}
	query := `SELECT * FROM arts WHERE id = ANY($1) ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &arts, query, pq.Array(ids)); err != nil {
		r.logger.Error("failed to list arts by IDs", zap.Error(err))
		return nil, err
	}

	return arts, nil
}

// SetAvailability updates the availability flag and returns the updated art
func (r *ArtRepository) SetAvailability(ctx context.Context, id string, available bool) (*model.Art, error) {
	query := `UPDATE arts SET is_available = $2 WHERE id = $1 RETURNING *`

	var art model.Art
	if err := r.db.GetContext(ctx, &art, query, id, available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to set art availability", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &art, nil
}
