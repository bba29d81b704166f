package wallpaper

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/util/log"
	"golang.org/x/sync/errgroup"
)

// Monitor represents a connected display
type Monitor struct {
	ID   int             // Internal ID (0, 1, 2)
	Name string          // OS-specific name (e.g. "DP-1")
	Rect image.Rectangle // Position and size on the virtual desktop
}

// Resolution is a display size shared by one or more monitors.
type Resolution struct {
	Width, Height int
}

// Size returns the resolution as a geometry rectangle.
func (r Resolution) Size() geometry.Rect {
	return geometry.Size(float64(r.Width), float64(r.Height))
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// GetUniqueResolutions returns the distinct resolutions of monitors in first
// seen order, along with the monitor IDs that use each one. Monitors with an
// empty rectangle are skipped.
func GetUniqueResolutions(monitors []Monitor) ([]Resolution, map[Resolution][]int) {
	var order []Resolution
	users := make(map[Resolution][]int)

	for _, m := range monitors {
		res := Resolution{Width: m.Rect.Dx(), Height: m.Rect.Dy()}
		if res.Width <= 0 || res.Height <= 0 {
			continue
		}
		if _, seen := users[res]; !seen {
			order = append(order, res)
		}
		users[res] = append(users[res], m.ID)
	}
	return order, users
}

// RenderMonitors renders img once for every distinct monitor resolution.
// Renders run concurrently; the first failure cancels the rest.
func (p *Processor) RenderMonitors(ctx context.Context, img image.Image, monitors []Monitor) (map[Resolution]image.Image, error) {
	resolutions, _ := GetUniqueResolutions(monitors)
	if len(resolutions) == 0 {
		return nil, fmt.Errorf("no monitors with a usable resolution")
	}

	var mu sync.Mutex
	rendered := make(map[Resolution]image.Image, len(resolutions))
	g, ctx := errgroup.WithContext(ctx)

	for _, res := range resolutions {
		g.Go(func() error {
			out, _, err := p.Center(ctx, img, res.Size())
			if err != nil {
				return fmt.Errorf("rendering %s: %w", res, err)
			}
			mu.Lock()
			rendered[res] = out
			mu.Unlock()
			log.Debugf("Rendered wallpaper for %s", res)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rendered, nil
}
