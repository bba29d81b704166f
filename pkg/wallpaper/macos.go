//go:build darwin

package wallpaper

import (
	"fmt"
	"os/exec"

	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/pkg/sysinfo"
)

// macOSOS implements the OS interface for macOS.
type macOSOS struct{}

// NewOS returns the OS implementation for the running platform.
func NewOS() OS {
	return &macOSOS{}
}

// SetWallpaper sets the desktop picture of every desktop.
func (m *macOSOS) SetWallpaper(imagePath string) error {
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to POSIX file %q`, imagePath)

	cmd := exec.Command("osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w", err)
	}
	return nil
}

// DesktopSize returns the main display size on macOS.
func (m *macOSOS) DesktopSize() (geometry.Rect, error) {
	return sysinfo.ScreenSize()
}
