// Package geometry computes cover-fit sizes and visible viewports for
// wallpapers. Everything here is a pure function of its inputs.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidGeometry is returned when a rectangle that must have a positive
// area (an image or a display) does not.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Rect is an axis-aligned rectangle. X and Y are the offset relative to the
// origin of the containing rectangle and are zero for images and displays.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Size returns an origin-anchored rectangle of the given size.
func Size(width, height float64) Rect {
	return Rect{Width: width, Height: height}
}

// NewSize is like Size but rejects non-positive dimensions.
func NewSize(width, height float64) (Rect, error) {
	r := Size(width, height)
	if err := r.validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// IsZero reports whether r has no area.
func (r Rect) IsZero() bool { return r.Width <= 0 || r.Height <= 0 }

// Scale returns r with its size multiplied by f, anchored at the origin.
func (r Rect) Scale(f float64) Rect {
	return Size(r.Width*f, r.Height*f)
}

// Within reports whether r lies inside container's extent.
func (r Rect) Within(container Rect) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.Right() <= container.Width && r.Bottom() <= container.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g, %g - %g, %g)", r.X, r.Y, r.Right(), r.Bottom())
}

func (r Rect) validate() error {
	if !(r.Width > 0) || !(r.Height > 0) || math.IsInf(r.Width, 0) || math.IsInf(r.Height, 0) {
		return fmt.Errorf("%w: %g x %g", ErrInvalidGeometry, r.Width, r.Height)
	}
	return nil
}

// AspectRatio returns width / height.
func AspectRatio(r Rect) (float64, error) {
	if err := r.validate(); err != nil {
		return 0, err
	}
	return r.Width / r.Height, nil
}

// FormatDimensions renders r as "W x H pixels", truncating both values.
// Values too large for an integer print in full rather than wrapping.
func FormatDimensions(r Rect) string {
	return fmt.Sprintf("%.0f x %.0f pixels", truncate(r.Width), truncate(r.Height))
}

// truncate drops the fraction of v; adding zero turns -0 into 0.
func truncate(v float64) float64 {
	return math.Trunc(v) + 0
}

// ParseSize parses a "WIDTHxHEIGHT" string such as "1920x1080".
func ParseSize(s string) (Rect, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "xX*")
	if sep < 0 {
		return Rect{}, fmt.Errorf("parsing size %q: expected WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(s[:sep]), 64)
	if err != nil {
		return Rect{}, fmt.Errorf("parsing width of %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(s[sep+1:]), 64)
	if err != nil {
		return Rect{}, fmt.Errorf("parsing height of %q: %w", s, err)
	}
	return NewSize(w, h)
}
