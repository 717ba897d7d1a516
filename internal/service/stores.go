package service

import (
	"context"

	"github.com/artconnect/artconnect-api/internal/imaging"
	"github.com/artconnect/artconnect-api/internal/model"
)

// UserStore persists users
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateImage(ctx context.Context, id string, image string) (bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
}

// ArtStore persists arts
type ArtStore interface {
	Create(ctx context.Context, art *model.Art) error
	GetByID(ctx context.Context, id string) (*model.Art, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Art, error)
	ListByArtist(ctx context.Context, artistID string) ([]model.Art, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Art, error)
	SetAvailability(ctx context.Context, id string, available bool) (*model.Art, error)
}

// EventStore persists events
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Event, error)
	ListByArtist(ctx context.Context, artistID string) ([]model.Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Event, error)
	SetAvailability(ctx context.Context, id string, available bool) (*model.Event, error)
}

// SocialStore persists favorites and follows
type SocialStore interface {
	ToggleFavorite(ctx context.Context, userID, itemID, itemType string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]model.FavoriteRef, error)
	ToggleFollow(ctx context.Context, userID, artistID string) (bool, error)
	ListFollowed(ctx context.Context, userID string) ([]model.User, error)
}

// OrderStore persists purchases and bookings
type OrderStore interface {
	Create(ctx context.Context, order *model.Order) error
	ListArtIDs(ctx context.Context, userID string) ([]string, error)
	ListEventIDs(ctx context.Context, userID string) ([]string, error)
}

// ImageCompressor turns uploads into size-bounded encodings
type ImageCompressor interface {
	Compress(ctx context.Context, data []byte, p imaging.Profile) (*imaging.Result, error)
	CompressBatch(ctx context.Context, uploads []imaging.Upload, p imaging.Profile) ([]*imaging.Result, error)
	ValidateFilename(name string) error
}

// ListingCache drops cached listing responses after a write
type ListingCache interface {
	Flush(ctx context.Context) error
}

type noCache struct{}

func (noCache) Flush(context.Context) error { return nil }

func reports(results []*imaging.Result) []model.ImageReport {
	out := make([]model.ImageReport, len(results))
	for i, r := range results {
		out[i] = report(r)
	}
	return out
}

func report(r *imaging.Result) model.ImageReport {
	return model.ImageReport{
		SizeBytes:      r.SizeBytes,
		QualityUsed:    r.QualityUsed,
		Attempts:       r.Attempts,
		BudgetExceeded: r.BudgetExceeded,
	}
}

func totalBytes(results []*imaging.Result) int {
	n := 0
	for _, r := range results {
		n += r.SizeBytes
	}
	return n
}
