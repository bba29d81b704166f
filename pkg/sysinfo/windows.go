//go:build windows

package sysinfo

import (
	"fmt"

	"github.com/jamesbarr/centr/pkg/geometry"
	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

// ScreenSize returns the primary display size in pixels.
func ScreenSize() (geometry.Rect, error) {
	width, _, err := getSystemMetrics.Call(uintptr(smCXScreen))
	if width == 0 {
		return geometry.Rect{}, fmt.Errorf("GetSystemMetrics(SM_CXSCREEN): %w", err)
	}
	height, _, err := getSystemMetrics.Call(uintptr(smCYScreen))
	if height == 0 {
		return geometry.Rect{}, fmt.Errorf("GetSystemMetrics(SM_CYSCREEN): %w", err)
	}
	return geometry.NewSize(float64(width), float64(height))
}
