package model

import (
	"time"
)

// User types
const (
	UserTypeArtist   = "Artist"
	UserTypeCustomer = "Customer"
)

// User represents a registered artist or customer
type User struct {
	ID           string    `json:"id" db:"id"`
	Fullname     string    `json:"fullname" db:"fullname"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Type         string    `json:"type" db:"type"`
	Image        string    `json:"image" db:"image"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IsArtist reports whether the user may post arts and events
func (u *User) IsArtist() bool {
	return u.Type == UserTypeArtist
}

// UserDetails is a user together with everything linked to them
type UserDetails struct {
	User          User          `json:"user"`
	Favorites     []FavoriteRef `json:"favorites"`
	Followed      []User        `json:"followed"`
	PurchasedArts []Art         `json:"purchasedArts"`
	BookedEvents  []Event       `json:"bookedEvents"`
	PostedArts    []Art         `json:"postedArts"`
	PostedEvents  []Event       `json:"postedEvents"`
}

// UserRegister represents data needed to create a new user
type UserRegister struct {
	Fullname string `json:"fullname" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Type     string `json:"type" binding:"required,usertype"`
}

// UserLogin represents data needed for user login
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	UserType  string    `json:"userType"`
}
