package geometry

import (
	"fmt"
	"image"
	"math"
)

// Axis names the dimension that limits a cover fit.
type Axis int

const (
	// AxisWidth means the fitted width equals the display width.
	AxisWidth Axis = iota
	// AxisHeight means the fitted height equals the display height.
	AxisHeight
)

func (a Axis) String() string {
	switch a {
	case AxisWidth:
		return "width"
	case AxisHeight:
		return "height"
	}
	return "unknown"
}

// Fit is the result of fitting an image to cover a display.
type Fit struct {
	Image    Rect
	Display  Rect
	Limiting Axis

	// ScaleFactor is image pixels per display pixel along the limiting axis.
	ScaleFactor float64

	// Fitted is the image size after scaling it to cover the display.
	Fitted Rect

	// Viewport is the region of the source image, in source pixels, that is
	// visible once the fitted image is centered over the display.
	Viewport Rect
}

// Plan fits image to cover display and centers it.
//
// An image relatively wider than the display is limited by height and
// cropped horizontally; anything else, equal aspect ratios included, is
// limited by width and cropped vertically.
func Plan(img, display Rect) (Fit, error) {
	imageRatio, err := AspectRatio(img)
	if err != nil {
		return Fit{}, fmt.Errorf("image: %w", err)
	}
	displayRatio, err := AspectRatio(display)
	if err != nil {
		return Fit{}, fmt.Errorf("display: %w", err)
	}

	img = Size(img.Width, img.Height)
	display = Size(display.Width, display.Height)
	fit := Fit{Image: img, Display: display}

	// The extents below come straight from the cover-fit formulas. Min and
	// Max are no-ops in exact arithmetic and only absorb the last-bit
	// rounding that the ratio comparison cannot see.
	if imageRatio > displayRatio {
		// show all of the image height
		fit.Limiting = AxisHeight
		fit.ScaleFactor = img.Height / display.Height
		fit.Fitted = Size(math.Max(img.Width*display.Height/img.Height, display.Width), display.Height)

		cropped := math.Min(display.Width*img.Height/display.Height, img.Width)
		fit.Viewport = Rect{X: (img.Width - cropped) / 2, Width: cropped, Height: img.Height}
	} else {
		// show all of the image width
		fit.Limiting = AxisWidth
		fit.ScaleFactor = img.Width / display.Width
		fit.Fitted = Size(display.Width, math.Max(img.Height*display.Width/img.Width, display.Height))

		cropped := math.Min(display.Height*img.Width/display.Width, img.Height)
		fit.Viewport = Rect{Y: (img.Height - cropped) / 2, Width: img.Width, Height: cropped}
	}
	return fit, nil
}

// ScaleToDisplay converts a rectangle in source pixels to display pixels.
func (f Fit) ScaleToDisplay(r Rect) Rect {
	return Rect{
		X:      r.X / f.ScaleFactor,
		Y:      r.Y / f.ScaleFactor,
		Width:  r.Width / f.ScaleFactor,
		Height: r.Height / f.ScaleFactor,
	}
}

// CoverFitSize returns the smallest uniform scaling of image that covers
// display. The result is origin-anchored.
func CoverFitSize(img, display Rect) (Rect, error) {
	fit, err := Plan(img, display)
	if err != nil {
		return Rect{}, err
	}
	return fit.Fitted, nil
}

// VisibleViewport returns the region of image that is visible once its cover
// fit is centered over display, in image coordinates.
func VisibleViewport(img, display Rect) (Rect, error) {
	fit, err := Plan(img, display)
	if err != nil {
		return Rect{}, err
	}
	return fit.Viewport, nil
}

// Recenter moves viewport so that its center is as close to (focusX, focusY)
// as the container allows. The size is unchanged.
func Recenter(viewport, container Rect, focusX, focusY float64) Rect {
	viewport.X = clamp(focusX-viewport.Width/2, 0, container.Width-viewport.Width)
	viewport.Y = clamp(focusY-viewport.Height/2, 0, container.Height-viewport.Height)
	return viewport
}

// PixelBounds rounds viewport outward to whole pixels and clips the result to
// container.
func PixelBounds(viewport, container Rect) image.Rectangle {
	r := image.Rect(
		int(math.Floor(snap(viewport.X))),
		int(math.Floor(snap(viewport.Y))),
		int(math.Ceil(snap(viewport.Right()))),
		int(math.Ceil(snap(viewport.Bottom()))),
	)
	return r.Intersect(image.Rect(0, 0, int(container.Width), int(container.Height)))
}

// snap absorbs floating point noise around whole numbers so that 374.9999999
// does not grow a pixel when rounded outward.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-6 {
		return r
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
