package handler

import (
	"context"

	"github.com/artconnect/artconnect-api/internal/imaging"
	"github.com/artconnect/artconnect-api/internal/model"
	"github.com/artconnect/artconnect-api/internal/service"
)

// AuthAPI is the part of the auth service the handlers use
type AuthAPI interface {
	Register(ctx context.Context, in *model.UserRegister) (*model.User, error)
	Login(ctx context.Context, in *model.UserLogin) (*model.LoginResponse, error)
	Logout(ctx context.Context, userID string)
	ValidateToken(token string) (*service.Claims, error)
}

// UserAPI is the part of the user service the handlers use
type UserAPI interface {
	GetDetails(ctx context.Context, id string) (*model.UserDetails, error)
	UpdateImage(ctx context.Context, id string, upload imaging.Upload) (*model.ImageUploadResponse, error)
	ToggleFavorite(ctx context.Context, userID, itemID, itemType string) (bool, error)
	GetFavorites(ctx context.Context, userID string) (*model.Favorites, error)
	ToggleFollow(ctx context.Context, userID, artistID string) (bool, error)
	CompleteOrder(ctx context.Context, in *model.OrderCreate) (*model.Order, error)
}

// ArtAPI is the part of the art service the handlers use
type ArtAPI interface {
	Create(ctx context.Context, artistID string, in *model.ArtCreate, uploads []imaging.Upload) (*model.Art, []model.ImageReport, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Art, error)
	Get(ctx context.Context, id string) (*model.Art, error)
	SetAvailability(ctx context.Context, userID, id string, available bool) (*model.Art, error)
}

// EventAPI is the part of the event service the handlers use
type EventAPI interface {
	Create(ctx context.Context, artistID string, in *model.EventCreate, uploads []imaging.Upload) (*model.Event, []model.ImageReport, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	SetAvailability(ctx context.Context, userID, id string, available bool) (*model.Event, error)
}
