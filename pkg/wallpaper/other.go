//go:build !linux && !darwin && !windows

package wallpaper

import (
	"errors"
	"runtime"

	"github.com/jamesbarr/centr/pkg/geometry"
)

var errUnsupportedOS = errors.New("unsupported OS: " + runtime.GOOS)

type unsupportedOS struct{}

// NewOS returns the OS implementation for the running platform.
func NewOS() OS {
	return unsupportedOS{}
}

func (unsupportedOS) DesktopSize() (geometry.Rect, error) {
	return geometry.Rect{}, errUnsupportedOS
}

func (unsupportedOS) SetWallpaper(string) error {
	return errUnsupportedOS
}
