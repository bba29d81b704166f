package wallpaper

import (
	"fmt"
	"strings"

	"github.com/jamesbarr/centr/pkg/geometry"
)

// DebugStats describes how img is fitted to display.
func DebugStats(img, display geometry.Rect) (string, error) {
	fit, err := geometry.Plan(img, display)
	if err != nil {
		return "", err
	}
	viewport := geometry.PixelBounds(fit.Viewport, fit.Image)

	var b strings.Builder
	fmt.Fprintf(&b, "DisplaySize = %s\n", geometry.FormatDimensions(fit.Display))
	fmt.Fprintf(&b, "      Image = %s\n", geometry.FormatDimensions(fit.Image))
	fmt.Fprintf(&b, " ResizedImg = %s\n", geometry.FormatDimensions(fit.Fitted))
	fmt.Fprintf(&b, "   Viewport = Rect(%d, %d - %d, %d)\n", viewport.Min.X, viewport.Min.Y, viewport.Max.X, viewport.Max.Y)
	fmt.Fprintf(&b, "      Limit = %s (scale %.4f)", fit.Limiting, fit.ScaleFactor)
	return b.String(), nil
}
