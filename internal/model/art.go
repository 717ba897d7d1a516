package model

import (
	"time"

	"github.com/lib/pq"
)

// Art represents a piece listed by an artist
type Art struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Category    string         `json:"category" db:"category"`
	Images      pq.StringArray `json:"images" db:"images"`
	Price       float64        `json:"price" db:"price"`
	Description string         `json:"description" db:"description"`
	ArtistID    string         `json:"artistId" db:"artist_id"`
	IsAvailable bool           `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

// Event represents a dated event hosted by an artist
type Event struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Category    string         `json:"category" db:"category"`
	Images      pq.StringArray `json:"images" db:"images"`
	Price       float64        `json:"price" db:"price"`
	Description string         `json:"description" db:"description"`
	Date        time.Time      `json:"date" db:"date"`
	Time        string         `json:"time" db:"time"`
	ArtistID    string         `json:"artistId" db:"artist_id"`
	IsAvailable bool           `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

// ArtCreate holds the form fields of an art upload
type ArtCreate struct {
	Title       string  `form:"title" binding:"required,max=200"`
	Category    string  `form:"category" binding:"required,max=100"`
	Price       float64 `form:"price" binding:"min=0"`
	Description string  `form:"description" binding:"required"`
}

// EventCreate holds the form fields of an event upload
type EventCreate struct {
	Title       string    `form:"title" binding:"required,max=200"`
	Category    string    `form:"category" binding:"required,max=100"`
	Price       float64   `form:"price" binding:"min=0"`
	Description string    `form:"description" binding:"required"`
	Date        time.Time `form:"date" binding:"required" time_format:"2006-01-02"`
	Time        string    `form:"time" binding:"required,max=20"`
}

// AvailabilityUpdate toggles whether a listing can be bought or booked
type AvailabilityUpdate struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// ListFilter narrows a listing query. Only available items are returned.
type ListFilter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}
