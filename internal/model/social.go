package model

import (
	"strings"
	"time"
)

// Item types that can be favorited or ordered
const (
	ItemTypeArt   = "art"
	ItemTypeEvent = "event"
)

// NormalizeItemType lowercases an item type and reports whether it is known
func NormalizeItemType(itemType string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(itemType))
	return t, t == ItemTypeArt || t == ItemTypeEvent
}

// FavoriteRef points at a favorited art or event
type FavoriteRef struct {
	ItemID    string    `json:"itemId" db:"item_id"`
	ItemType  string    `json:"itemType" db:"item_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Favorites is a user's favorited items resolved into records
type Favorites struct {
	Arts   []Art   `json:"arts"`
	Events []Event `json:"events"`
}

// ToggleResult reports the state after a favorite or follow toggle
type ToggleResult struct {
	Active bool `json:"active"`
}

// Order records a purchased art or booked event
type Order struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ItemID    string    `json:"itemId" db:"item_id"`
	ItemType  string    `json:"itemType" db:"item_type"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OrderCreate represents the body of a complete-order request
type OrderCreate struct {
	UserID   string `json:"userId" binding:"required"`
	ItemID   string `json:"itemId" binding:"required"`
	ItemType string `json:"itemType" binding:"required,itemtype"`
}
