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

// UserService handles profiles, favorites, follows and orders
type UserService struct {
	users        UserStore
	arts         ArtStore
	events       EventStore
	social       SocialStore
	orders       OrderStore
	compressor   ImageCompressor
	imageProfile imaging.Profile
	publisher    events.Publisher
	orderTopic   string
	logger       *zap.Logger
}

// UserServiceDeps groups the collaborators of a UserService
type UserServiceDeps struct {
	Users        UserStore
	Arts         ArtStore
	Events       EventStore
	Social       SocialStore
	Orders       OrderStore
	Compressor   ImageCompressor
	ImageProfile imaging.Profile
	Publisher    events.Publisher
	OrderTopic   string
}

// NewUserService creates a new user service
func NewUserService(deps UserServiceDeps, logger *zap.Logger) *UserService {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &UserService{
		users:        deps.Users,
		arts:         deps.Arts,
		events:       deps.Events,
		social:       deps.Social,
		orders:       deps.Orders,
		compressor:   deps.Compressor,
		imageProfile: deps.ImageProfile,
		publisher:    publisher,
		orderTopic:   deps.OrderTopic,
		logger:       logger,
	}
}

func (s *UserService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetDetails returns a user with favorites, followed artists, purchases,
// bookings and everything they posted
func (s *UserService) GetDetails(ctx context.Context, id string) (*model.UserDetails, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &model.UserDetails{User: *user}

	if details.Favorites, err = s.social.ListFavorites(ctx, id); err != nil {
		return nil, err
	}
	if details.Followed, err = s.social.ListFollowed(ctx, id); err != nil {
		return nil, err
	}

	artIDs, err := s.orders.ListArtIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if details.PurchasedArts, err = s.arts.ListByIDs(ctx, artIDs); err != nil {
		return nil, err
	}

	eventIDs, err := s.orders.ListEventIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if details.BookedEvents, err = s.events.ListByIDs(ctx, eventIDs); err != nil {
		return nil, err
	}

	if details.PostedArts, err = s.arts.ListByArtist(ctx, id); err != nil {
		return nil, err
	}
	if details.PostedEvents, err = s.events.ListByArtist(ctx, id); err != nil {
		return nil, err
	}

	return details, nil
}

// UpdateImage compresses an uploaded profile picture and stores it
func (s *UserService) UpdateImage(ctx context.Context, id string, upload imaging.Upload) (*model.ImageUploadResponse, error) {
	if err := s.compressor.ValidateFilename(upload.Filename); err != nil {
		return nil, err
	}
	if _, err := s.getUser(ctx, id); err != nil {
		return nil, err
	}

	result, err := s.compressor.Compress(ctx, upload.Data, s.imageProfile)
	if err != nil {
		return nil, fmt.Errorf("profile image: %w", err)
	}

	encoded := result.Base64()
	updated, err := s.users.UpdateImage(ctx, id, encoded)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrUserNotFound
	}

	return &model.ImageUploadResponse{
		Message: "Image updated successfully",
		Image:   encoded,
		Report:  report(result),
	}, nil
}

// ToggleFavorite adds or removes an art or event from a user's favorites
func (s *UserService) ToggleFavorite(ctx context.Context, userID, itemID, itemType string) (bool, error) {
	itemType, ok := model.NormalizeItemType(itemType)
	if !ok {
		return false, ErrInvalidItemType
	}
	if _, err := s.getUser(ctx, userID); err != nil {
		return false, err
	}
	if err := s.ensureItem(ctx, itemID, itemType); err != nil {
		return false, err
	}

	return s.social.ToggleFavorite(ctx, userID, itemID, itemType)
}

// GetFavorites resolves a user's favorites into arts and events
func (s *UserService) GetFavorites(ctx context.Context, userID string) (*model.Favorites, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	refs, err := s.social.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	var artIDs, eventIDs []string
	for _, ref := range refs {
		switch ref.ItemType {
		case model.ItemTypeArt:
			artIDs = append(artIDs, ref.ItemID)
		case model.ItemTypeEvent:
			eventIDs = append(eventIDs, ref.ItemID)
		}
	}

	favorites := &model.Favorites{}
	if favorites.Arts, err = s.arts.ListByIDs(ctx, artIDs); err != nil {
		return nil, err
	}
	if favorites.Events, err = s.events.ListByIDs(ctx, eventIDs); err != nil {
		return nil, err
	}

	return favorites, nil
}

// ToggleFollow follows or unfollows an artist
func (s *UserService) ToggleFollow(ctx context.Context, userID, artistID string) (bool, error) {
	if userID == artistID {
		return false, ErrSelfFollow
	}
	if _, err := s.getUser(ctx, userID); err != nil {
		return false, err
	}

	artist, err := s.getUser(ctx, artistID)
	if err != nil {
		return false, err
	}
	if !artist.IsArtist() {
		return false, ErrNotAnArtist
	}

	return s.social.ToggleFollow(ctx, userID, artistID)
}

// CompleteOrder records a purchase of an art or a booking of an event
func (s *UserService) CompleteOrder(ctx context.Context, in *model.OrderCreate) (*model.Order, error) {
	itemType, ok := model.NormalizeItemType(in.ItemType)
	if !ok {
		return nil, ErrInvalidItemType
	}
	if _, err := s.getUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:       uuid.NewString(),
		UserID:   in.UserID,
		ItemID:   in.ItemID,
		ItemType: itemType,
	}

	switch itemType {
	case model.ItemTypeArt:
		art, err := s.arts.GetByID(ctx, in.ItemID)
		if err != nil {
			return nil, err
		}
		if art == nil {
			return nil, ErrArtNotFound
		}
		if !art.IsAvailable {
			return nil, ErrArtUnavailable
		}
		order.Price = art.Price
	case model.ItemTypeEvent:
		event, err := s.events.GetByID(ctx, in.ItemID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrEventNotFound
		}
		if !event.IsAvailable {
			return nil, ErrEventUnavailable
		}
		order.Price = event.Price
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	payload := events.NewEnvelope(events.TypeOrderCompleted, events.OrderCompleted{
		OrderID:  order.ID,
		UserID:   order.UserID,
		ItemID:   order.ItemID,
		ItemType: order.ItemType,
		Price:    order.Price,
	})
	if err := s.publisher.Publish(ctx, s.orderTopic, order.UserID, payload); err != nil {
		s.logger.Warn("failed to publish order event", zap.Error(err), zap.String("orderID", order.ID))
	}

	return order, nil
}

func (s *UserService) ensureItem(ctx context.Context, itemID, itemType string) error {
	if itemType == model.ItemTypeArt {
		art, err := s.arts.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if art == nil {
			return ErrArtNotFound
		}
		return nil
	}

	event, err := s.events.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	return nil
}
