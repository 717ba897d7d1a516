package repository

import (
	"context"

	"github.com/artconnect/artconnect-api/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// OrderRepository handles database operations for purchases and bookings
type OrderRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a completed order
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, item_id, item_type, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &order.CreatedAt, query,
		order.ID, order.UserID, order.ItemID, order.ItemType, order.Price)
	if err != nil {
		r.logger.Error("failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID),
			zap.String("item_id", order.ItemID))
		return err
	}

	return nil
}

// ListArtIDs returns the IDs of arts a user purchased
func (r *OrderRepository) ListArtIDs(ctx context.Context, userID string) ([]string, error) {
	return r.listItemIDs(ctx, userID, model.ItemTypeArt)
}

// ListEventIDs returns the IDs of events a user booked
func (r *OrderRepository) ListEventIDs(ctx context.Context, userID string) ([]string, error) {
	return r.listItemIDs(ctx, userID, model.ItemTypeEvent)
}

func (r *OrderRepository) listItemIDs(ctx context.Context, userID, itemType string) ([]string, error) {
	query := `
		SELECT item_id
		FROM orders
		WHERE user_id = $1 AND item_type = $2
		GROUP BY item_id
		ORDER BY MAX(created_at) DESC`

	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query, userID, itemType); err != nil {
		r.logger.Error("failed to list ordered items",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("item_type", itemType))
		return nil, err
	}

	return ids, nil
}
