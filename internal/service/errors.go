package service

import (
	"errors"

	"github.com/artconnect/artconnect-api/internal/imaging"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrArtNotFound        = errors.New("art not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidItemType    = errors.New("item type must be art or event")
	ErrInvalidUserType    = errors.New("user type must be Artist or Customer")
	ErrForbidden          = errors.New("not allowed")
	ErrArtUnavailable     = errors.New("art is no longer available")
	ErrEventUnavailable   = errors.New("event is no longer available")
	ErrNotAnArtist        = errors.New("only artists can be followed")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrInvalidToken       = errors.New("invalid token")
)

// IsIngestionError reports whether err came from reading or compressing an
// uploaded image, as opposed to storage or other failures.
func IsIngestionError(err error) bool {
	return errors.Is(err, imaging.ErrDecode) ||
		errors.Is(err, imaging.ErrEncode) ||
		errors.Is(err, imaging.ErrEmptyImage) ||
		errors.Is(err, imaging.ErrUnsupportedExtension) ||
		errors.Is(err, imaging.ErrTooManyImages) ||
		errors.Is(err, imaging.ErrNoImages)
}
