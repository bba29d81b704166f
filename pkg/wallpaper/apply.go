package wallpaper

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/util/log"
)

// Render centers img on the desktop and writes the result to the output
// directory. It returns the path of the written file.
func (p *Processor) Render(ctx context.Context, img image.Image) (string, geometry.Fit, error) {
	display, err := p.DisplaySize()
	if err != nil {
		return "", geometry.Fit{}, err
	}

	out, fit, err := p.Center(ctx, img, display)
	if err != nil {
		return "", geometry.Fit{}, fmt.Errorf("centering image: %w", err)
	}
	data, ext, err := p.Encode(ctx, out)
	if err != nil {
		return "", geometry.Fit{}, err
	}

	fm := NewFileManager(p.cfg.OutputDir)
	if err := fm.EnsureDir(); err != nil {
		return "", geometry.Fit{}, err
	}
	path, err := fm.NewPath(ext)
	if err != nil {
		return "", geometry.Fit{}, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", geometry.Fit{}, fmt.Errorf("writing wallpaper: %w", err)
	}
	return path, fit, nil
}

// Apply renders img for the desktop and sets it as the wallpaper. Older
// renders beyond the configured keep count are pruned afterwards.
func (p *Processor) Apply(ctx context.Context, img image.Image) (string, error) {
	if p.os == nil {
		return "", fmt.Errorf("no OS to set the wallpaper on")
	}

	path, fit, err := p.Render(ctx, img)
	if err != nil {
		return "", err
	}
	if err := p.os.SetWallpaper(path); err != nil {
		return "", fmt.Errorf("setting wallpaper: %w", err)
	}
	log.Printf("Wallpaper set from %s viewport %v: %s", geometry.FormatDimensions(fit.Image), fit.Viewport, path)
	if p.cfg.KeepWallpapers > 0 {
		NewFileManager(p.cfg.OutputDir).Prune(p.cfg.KeepWallpapers, path)
	}
	return path, nil
}
