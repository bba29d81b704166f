//go:build linux

package wallpaper

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/pkg/sysinfo"
)

// linuxOS implements the OS interface for Linux.
type linuxOS struct{}

// NewOS returns the OS implementation for the running platform.
func NewOS() OS {
	return &linuxOS{}
}

// DesktopSize returns the desktop dimensions on Linux.
func (l *linuxOS) DesktopSize() (geometry.Rect, error) {
	return sysinfo.ScreenSize()
}

// SetWallpaper sets the desktop wallpaper, supporting X11 and some Wayland compositors.
func (l *linuxOS) SetWallpaper(imagePath string) error {
	desktopEnv := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = os.Getenv("DESKTOP_SESSION")
	}
	desktopEnv = strings.ToLower(desktopEnv)

	if isGNOME(desktopEnv) {
		return l.setWallpaperGNOME(imagePath)
	}
	args, err := wallpaperCommand(desktopEnv, imagePath)
	if err != nil {
		return err
	}

	cmd := exec.Command(args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func isGNOME(desktopEnv string) bool {
	for _, name := range []string{"gnome", "unity", "cinnamon", "mutter"} {
		if strings.Contains(desktopEnv, name) {
			return true
		}
	}
	return false
}

// wallpaperCommand returns the command line that sets imagePath as the
// wallpaper on a non-GNOME desktop.
func wallpaperCommand(desktopEnv, imagePath string) ([]string, error) {
	switch {
	case strings.Contains(desktopEnv, "kde"):
		return []string{"plasma-apply-wallpaperimage", imagePath}, nil
	case strings.Contains(desktopEnv, "xfce"):
		return []string{"xfconf-query",
			"--channel", "xfce4-desktop",
			"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
			"--set", imagePath}, nil
	case strings.Contains(desktopEnv, "sway"):
		return []string{"swaymsg", "output", "*", "bg", imagePath, "fill"}, nil
	}
	return nil, fmt.Errorf("unsupported desktop environment: %q", desktopEnv)
}

// setWallpaperGNOME sets the wallpaper for GNOME-based desktop environments,
// for both the light and dark style.
func (l *linuxOS) setWallpaperGNOME(imagePath string) error {
	uri := "file://" + imagePath
	for _, key := range []string{"picture-uri", "picture-uri-dark"} {
		cmd := exec.Command("gsettings", "set", "org.gnome.desktop.background", key, uri)
		if err := cmd.Run(); err != nil && key == "picture-uri" {
			return fmt.Errorf("gsettings %s: %w", key, err)
		}
	}
	return nil
}
