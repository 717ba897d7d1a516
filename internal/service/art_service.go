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

// ListingDeps groups the collaborators shared by the art and event services
type ListingDeps struct {
	Users      UserStore
	Compressor ImageCompressor
	Profile    imaging.Profile
	Publisher  events.Publisher
	Topic      string
	Cache      ListingCache
}

func (d *ListingDeps) withDefaults() {
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	if d.Cache == nil {
		d.Cache = noCache{}
	}
}

// requireArtist loads the poster of a new listing
func requireArtist(ctx context.Context, users UserStore, id string) (*model.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsArtist() {
		return nil, ErrForbidden
	}
	return user, nil
}

// ArtService handles art listings
type ArtService struct {
	arts   ArtStore
	deps   ListingDeps
	logger *zap.Logger
}

// NewArtService creates a new art service
func NewArtService(arts ArtStore, deps ListingDeps, logger *zap.Logger) *ArtService {
	deps.withDefaults()
	return &ArtService{
		arts:   arts,
		deps:   deps,
		logger: logger,
	}
}

// Create compresses every upload and stores the art with all of them.
// If any image fails nothing is stored.
func (s *ArtService) Create(ctx context.Context, artistID string, in *model.ArtCreate, uploads []imaging.Upload) (*model.Art, []model.ImageReport, error) {
	if _, err := requireArtist(ctx, s.deps.Users, artistID); err != nil {
		return nil, nil, err
	}

	results, err := s.deps.Compressor.CompressBatch(ctx, uploads, s.deps.Profile)
	if err != nil {
		return nil, nil, fmt.Errorf("art images: %w", err)
	}

	art := &model.Art{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Images:      imaging.EncodeAll(results),
		Price:       in.Price,
		Description: in.Description,
		ArtistID:    artistID,
		IsAvailable: true,
	}
	if err := s.arts.Create(ctx, art); err != nil {
		return nil, nil, fmt.Errorf("create art: %w", err)
	}

	s.logger.Info("art created",
		zap.String("artID", art.ID),
		zap.String("artistID", artistID),
		zap.Int("images", len(results)),
		zap.Int("imageBytes", totalBytes(results)))

	payload := events.NewEnvelope(events.TypeArtCreated, events.ListingCreated{
		ID:         art.ID,
		ArtistID:   artistID,
		Title:      art.Title,
		Category:   art.Category,
		ImageCount: len(results),
		ImageBytes: totalBytes(results),
	})
	if err := s.deps.Publisher.Publish(ctx, s.deps.Topic, art.ID, payload); err != nil {
		s.logger.Warn("failed to publish art event", zap.Error(err), zap.String("artID", art.ID))
	}
	s.flush(ctx)

	return art, reports(results), nil
}

// List searches available arts
func (s *ArtService) List(ctx context.Context, filter model.ListFilter) ([]model.Art, error) {
	return s.arts.List(ctx, filter)
}

// Get retrieves an art by ID
func (s *ArtService) Get(ctx context.Context, id string) (*model.Art, error) {
	art, err := s.arts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if art == nil {
		return nil, ErrArtNotFound
	}
	return art, nil
}

// SetAvailability changes whether an art can be bought. Only its artist may.
func (s *ArtService) SetAvailability(ctx context.Context, userID, id string, available bool) (*model.Art, error) {
	art, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if art.ArtistID != userID {
		return nil, ErrForbidden
	}

	updated, err := s.arts.SetAvailability(ctx, id, available)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrArtNotFound
	}
	s.flush(ctx)

	return updated, nil
}

func (s *ArtService) flush(ctx context.Context) {
	if err := s.deps.Cache.Flush(ctx); err != nil {
		s.logger.Warn("failed to flush art cache", zap.Error(err))
	}
}
