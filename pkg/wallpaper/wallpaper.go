// Package wallpaper renders the visible part of an image for a display and
// applies it as the desktop wallpaper.
package wallpaper

import (
	"fmt"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/jamesbarr/centr/config"
	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/util/log"
)

// OS interface defines the operating system specific operations.
type OS interface {
	DesktopSize() (geometry.Rect, error)
	SetWallpaper(path string) error
}

// Anchor decides where the viewport sits along the cropped axis.
type Anchor string

const (
	// AnchorCenter keeps the viewport centered on the image.
	AnchorCenter Anchor = config.AnchorCenter
	// AnchorSmart centers the viewport on the most interesting region.
	AnchorSmart Anchor = config.AnchorSmart
	// AnchorFace centers the viewport on the most confident face.
	AnchorFace Anchor = config.AnchorFace
)

var resampleFilters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// Processor turns source images into wallpapers for a display.
// It is safe for concurrent use.
type Processor struct {
	os        OS
	cfg       *config.Config
	anchor    Anchor
	resampler imaging.ResampleFilter
	faces     *pigo.Pigo
	tuning    TuningConfig
}

// NewProcessor creates a Processor. faces may be nil, in which case the face
// anchor behaves like the center anchor.
func NewProcessor(os OS, cfg *config.Config, faces *pigo.Pigo) *Processor {
	if cfg == nil {
		cfg = config.Default()
	}
	resampler, ok := resampleFilters[cfg.Resample]
	if !ok {
		log.Printf("Unknown resample filter %q, using lanczos", cfg.Resample)
		resampler = imaging.Lanczos
	}
	return &Processor{
		os:        os,
		cfg:       cfg,
		anchor:    Anchor(cfg.Anchor),
		resampler: resampler,
		faces:     faces,
		tuning:    DefaultTuningConfig(),
	}
}

// DisplaySize returns the configured display override or, without one, the
// size reported by the OS.
func (p *Processor) DisplaySize() (geometry.Rect, error) {
	if override, ok, err := p.cfg.DisplaySize(); err != nil || ok {
		return override, err
	}
	if p.os == nil {
		return geometry.Rect{}, fmt.Errorf("no display size configured and no OS to query")
	}
	size, err := p.os.DesktopSize()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("getting desktop dimensions: %w", err)
	}
	return size, nil
}
