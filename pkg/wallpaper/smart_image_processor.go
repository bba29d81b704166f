package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/jamesbarr/centr/config"
	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/util/log"
	"github.com/muesli/smartcrop"
)

// imageSize returns the size of img as an origin-anchored rectangle.
func imageSize(img image.Image) geometry.Rect {
	b := img.Bounds()
	return geometry.Size(float64(b.Dx()), float64(b.Dy()))
}

// Viewport fits img to display and positions the visible region according
// to the configured anchor. The returned bounds are in img's coordinates.
func (p *Processor) Viewport(ctx context.Context, img image.Image, display geometry.Rect) (geometry.Fit, image.Rectangle, error) {
	if err := checkContext(ctx); err != nil {
		return geometry.Fit{}, image.Rectangle{}, err
	}

	size := imageSize(img)
	fit, err := geometry.Plan(size, display)
	if err != nil {
		return geometry.Fit{}, image.Rectangle{}, err
	}

	var (
		fx, fy float64
		moved  bool
	)
	switch p.anchor {
	case AnchorSmart:
		fx, fy, moved, err = p.smartFocus(ctx, img, display)
	case AnchorFace:
		fx, fy, moved = p.faceFocus(img)
	}
	if err != nil {
		return geometry.Fit{}, image.Rectangle{}, err
	}
	if moved {
		// a whole-pixel left/top edge keeps the rounded crop at
		// ceil(width) x ceil(height)
		v := geometry.Recenter(fit.Viewport, size, fx, fy)
		v.X, v.Y = math.Floor(v.X), math.Floor(v.Y)
		fit.Viewport = v
		log.Debugf("Anchor %s moved viewport to %v", p.anchor, fit.Viewport)
	}

	bounds := geometry.PixelBounds(fit.Viewport, size).Add(img.Bounds().Min)
	return fit, bounds, nil
}

// Center crops the visible region of img and scales it to the display size.
func (p *Processor) Center(ctx context.Context, img image.Image, display geometry.Rect) (image.Image, geometry.Fit, error) {
	fit, bounds, err := p.Viewport(ctx, img, display)
	if err != nil {
		return nil, geometry.Fit{}, err
	}

	cropped := imaging.Crop(img, bounds)
	if err := checkContext(ctx); err != nil {
		return nil, geometry.Fit{}, err
	}

	r := &resizer{resampler: p.resampler}
	resized := r.resizeWithContext(ctx, cropped, roundPixels(display.Width), roundPixels(display.Height))
	if resized == nil {
		return nil, geometry.Fit{}, ctx.Err() // Context was canceled during resize.
	}
	log.Debugf("Centered %s into %s (viewport %v)", geometry.FormatDimensions(fit.Image), geometry.FormatDimensions(display), bounds)
	return resized, fit, nil
}

// Preview scales the whole of img to its cover-fit size for display.
func (p *Processor) Preview(ctx context.Context, img image.Image, display geometry.Rect) (image.Image, error) {
	fitted, err := geometry.CoverFitSize(imageSize(img), display)
	if err != nil {
		return nil, err
	}

	r := &resizer{resampler: p.resampler}
	resized := r.resizeWithContext(ctx, img, roundPixels(fitted.Width), roundPixels(fitted.Height))
	if resized == nil {
		return nil, ctx.Err()
	}
	return resized, nil
}

// Encode encodes img in the configured format and returns the bytes along
// with the file extension to use.
func (p *Processor) Encode(ctx context.Context, img image.Image) ([]byte, string, error) {
	if err := checkContext(ctx); err != nil {
		return nil, "", err
	}

	var (
		buf bytes.Buffer
		err error
		ext string
	)
	switch p.cfg.Format {
	case config.FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
		ext = "png"
	case config.FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.cfg.JPEGQuality))
		ext = "jpg"
	default:
		return nil, "", fmt.Errorf("unsupported format: %s", p.cfg.Format)
	}
	if err != nil {
		return nil, "", fmt.Errorf("encoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ext, nil
}

// smartFocus asks smartcrop for the best crop with the display's aspect ratio
// and returns its center. The analysis runs on a thumbnail.
func (p *Processor) smartFocus(ctx context.Context, img image.Image, display geometry.Rect) (float64, float64, bool, error) {
	r := &resizer{resampler: p.resampler}
	thumb := imaging.Fit(img, p.tuning.SmartThumbSize, p.tuning.SmartThumbSize, p.resampler)
	scale := float64(img.Bounds().Dx()) / float64(thumb.Bounds().Dx())

	cropW, cropH := thumbCropSize(thumb.Bounds(), display)
	analyzer := smartcrop.NewAnalyzer(r)

	// FindBestCrop cannot be canceled, so race it against the context.
	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		crop, err := analyzer.FindBestCrop(thumb, cropW, cropH)
		resultChan <- cropResult{crop: crop, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, 0, false, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			log.Printf("Smart crop failed, keeping the centered viewport: %v", result.err)
			return 0, 0, false, nil
		}
		c := result.crop
		fx := float64(c.Min.X+c.Max.X) / 2 * scale
		fy := float64(c.Min.Y+c.Max.Y) / 2 * scale
		return fx, fy, true, nil
	}
}

// thumbCropSize returns the largest size with the display's aspect ratio
// that fits inside bounds.
func thumbCropSize(bounds image.Rectangle, display geometry.Rect) (int, int) {
	fit, err := geometry.Plan(geometry.Size(float64(bounds.Dx()), float64(bounds.Dy())), display)
	if err != nil {
		return bounds.Dx(), bounds.Dy()
	}
	w := int(math.Max(1, math.Floor(fit.Viewport.Width)))
	h := int(math.Max(1, math.Floor(fit.Viewport.Height)))
	return w, h
}

func roundPixels(v float64) int {
	return int(math.Max(1, math.Round(v)))
}

// resizer implements the smartcrop.Resizer interface and adds context awareness.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize *doesn't* take a context here.  The smartcrop.Resizer interface doesn't
// support contexts.  We handle cancellation in resizeWithContext.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// resizeWithContext performs the resize operation with context awareness.
// It returns nil if ctx is done first.
func (r *resizer) resizeWithContext(ctx context.Context, img image.Image, width, height int) image.Image {
	if checkContext(ctx) != nil {
		return nil
	}
	resultChan := make(chan image.Image, 1)

	go func() {
		resultChan <- imaging.Resize(img, width, height, r.resampler)
	}()

	select {
	case <-ctx.Done():
		return nil
	case result := <-resultChan:
		return result
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
