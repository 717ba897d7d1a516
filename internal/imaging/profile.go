package imaging

import (
	"errors"
	"fmt"
)

// Supported output formats
const (
	FormatWebP = "webp"
	FormatJPEG = "jpeg"
)

// Profile holds the target geometry and byte budget for one kind of image,
// together with the parameters of the quality search.
type Profile struct {
	Name           string `mapstructure:"name"`
	TargetWidth    int    `mapstructure:"targetWidth"`
	TargetHeight   int    `mapstructure:"targetHeight"`
	MaxOutputBytes int    `mapstructure:"maxOutputBytes"`
	InitialQuality int    `mapstructure:"initialQuality"`
	MaxQuality     int    `mapstructure:"maxQuality"`
	QualityStep    int    `mapstructure:"qualityStep"`
	QualityFloor   int    `mapstructure:"qualityFloor"`
	Format         string `mapstructure:"format"`
}

// ListingProfile is used for art and event images.
func ListingProfile() Profile {
	return Profile{
		Name:           "listing",
		TargetWidth:    1200,
		TargetHeight:   800,
		MaxOutputBytes: 150 * 1024,
		InitialQuality: 80,
		MaxQuality:     90,
		QualityStep:    10,
		QualityFloor:   10,
		Format:         FormatWebP,
	}
}

// ProfileImageProfile is used for user profile images.
func ProfileImageProfile() Profile {
	return Profile{
		Name:           "profile",
		TargetWidth:    250,
		TargetHeight:   250,
		MaxOutputBytes: 50 * 1024,
		InitialQuality: 80,
		MaxQuality:     90,
		QualityStep:    10,
		QualityFloor:   10,
		Format:         FormatWebP,
	}
}

// Validate checks that the profile describes a usable search
func (p Profile) Validate() error {
	if p.TargetWidth <= 0 || p.TargetHeight <= 0 {
		return fmt.Errorf("invalid target size %dx%d", p.TargetWidth, p.TargetHeight)
	}
	if p.MaxOutputBytes <= 0 {
		return errors.New("max output bytes must be positive")
	}
	if p.QualityStep <= 0 {
		return errors.New("quality step must be positive")
	}
	if p.QualityFloor < 1 || p.MaxQuality > 100 || p.QualityFloor > p.MaxQuality {
		return fmt.Errorf("invalid quality range %d..%d", p.QualityFloor, p.MaxQuality)
	}
	if p.InitialQuality < 1 || p.InitialQuality > 100 {
		return fmt.Errorf("invalid initial quality %d", p.InitialQuality)
	}
	return nil
}

// Qualities returns the descending sequence of qualities tried after the
// initial encode overshoots the budget. The floor is always the last value.
func (p Profile) Qualities() []int {
	qualities := make([]int, 0, (p.MaxQuality-p.QualityFloor)/p.QualityStep+1)
	for q := p.MaxQuality; q >= p.QualityFloor; q -= p.QualityStep {
		qualities = append(qualities, q)
	}
	if len(qualities) == 0 || qualities[len(qualities)-1] != p.QualityFloor {
		qualities = append(qualities, p.QualityFloor)
	}
	return qualities
}
