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

// EventRepository handles database operations for events
type EventRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB, logger *zap.Logger) *EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an event with all of its images in one statement
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (id, title, category, images, price, description, date, time, artist_id, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.db.GetContext(
		ctx,
		&event.CreatedAt,
		query,
		event.ID,
		event.Title,
		event.Category,
		pq.Array([]string(event.Images)),
		event.Price,
		event.Description,
		event.Date,
		event.Time,
		event.ArtistID,
		event.IsAvailable,
	)
	if err != nil {
		r.logger.Error("failed to create event", zap.Error(err), zap.String("artist_id", event.ArtistID))
		return err
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get event by ID", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &event, nil
}

// List searches available events
func (r *EventRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Event, error) {
	query, args := listingQuery("events", filter)

	events := []model.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		r.logger.Error("failed to list events", zap.Error(err), zap.String("query", filter.Query))
		return nil, err
	}

	return events, nil
}

// ListByArtist retrieves every event posted by an artist
func (r *EventRepository) ListByArtist(ctx context.Context, artistID string) ([]model.Event, error) {
	query := `SELECT * FROM events WHERE artist_id = $1 ORDER BY date DESC`

	events := []model.Event{}
	if err := r.db.SelectContext(ctx, &events, query, artistID); err != nil {
		r.logger.Error("failed to list events by artist", zap.Error(err), zap.String("artist_id", artistID))
		return nil, err
	}

	return events, nil
}

// ListByIDs retrieves the events with the given IDs
func (r *EventRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	if len(ids) == 0 {
		return []model.Event{}, nil
	}

	events := []model.Event{}
	query := `SELECT * FROM events WHERE id = ANY($1) ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &events, query, pq.Array(ids)); err != nil {
		r.logger.Error("failed to list events by IDs", zap.Error(err))
		return nil, err
	}

	return events, nil
}

// SetAvailability updates the availability flag and returns the updated event
func (r *EventRepository) SetAvailability(ctx context.Context, id string, available bool) (*model.Event, error) {
	query := `UPDATE events SET is_available = $2 WHERE id = $1 RETURNING *`

	var event model.Event
	if err := r.db.GetContext(ctx, &event, query, id, available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to set event availability", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &event, nil
}
