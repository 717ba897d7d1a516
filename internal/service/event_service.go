package service

import (
	"context"
	"fmt"

	"github.com/artconnect/artconnect-api/internal/events"
	"github.com/artconnect/artconnect-api/internal/imaging"
	"github.com/artconnect/artconnect-api/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventService handles event listings
type EventService struct {
	events EventStore
	deps   ListingDeps
	logger *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(store EventStore, deps ListingDeps, logger *zap.Logger) *EventService {
	deps.withDefaults()
	return &EventService{
		events: store,
		deps:   deps,
		logger: logger,
	}
}

// Create compresses every upload and stores the event with all of them.
// If any image fails nothing is stored.
func (s *EventService) Create(ctx context.Context, artistID string, in *model.EventCreate, uploads []imaging.Upload) (*model.Event, []model.ImageReport, error) {
	if _, err := requireArtist(ctx, s.deps.Users, artistID); err != nil {
		return nil, nil, err
	}

	results, err := s.deps.Compressor.CompressBatch(ctx, uploads, s.deps.Profile)
	if err != nil {
		return nil, nil, fmt.Errorf("event images: %w", err)
	}

	event := &model.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Images:      imaging.EncodeAll(results),
		Price:       in.Price,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		ArtistID:    artistID,
		IsAvailable: true,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		zap.String("eventID", event.ID),
		zap.String("artistID", artistID),
		zap.Int("images", len(results)))

	payload := events.NewEnvelope(events.TypeEventCreated, events.ListingCreated{
		ID:         event.ID,
		ArtistID:   artistID,
		Title:      event.Title,
		Category:   event.Category,
		ImageCount: len(results),
		ImageBytes: totalBytes(results),
	})
	if err := s.deps.Publisher.Publish(ctx, s.deps.Topic, event.ID, payload); err != nil {
		s.logger.Warn("failed to publish event created", zap.Error(err), zap.String("eventID", event.ID))
	}
	if err := s.deps.Cache.Flush(ctx); err != nil {
		s.logger.Warn("failed to flush event cache", zap.Error(err))
	}

	return event, reports(results), nil
}

// List searches available events
func (s *EventService) List(ctx context.Context, filter model.ListFilter) ([]model.Event, error) {
	return s.events.List(ctx, filter)
}

// Get retrieves an event by ID
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// SetAvailability opens or closes bookings. Only the hosting artist may.
func (s *EventService) SetAvailability(ctx context.Context, userID, id string, available bool) (*model.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.ArtistID != userID {
		return nil, ErrForbidden
	}

	updated, err := s.events.SetAvailability(ctx, id, available)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrEventNotFound
	}
	if err := s.deps.Cache.Flush(ctx); err != nil {
		s.logger.Warn("failed to flush event cache", zap.Error(err))
	}

	return updated, nil
}
