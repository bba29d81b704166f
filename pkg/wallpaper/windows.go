//go:build windows

package wallpaper

import (
	"fmt"
	"unsafe"

	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/pkg/sysinfo"
	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

// Windows API constants
const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// NewOS returns the OS implementation for the running platform.
func NewOS() OS {
	return &windowsOS{}
}

// SetWallpaper sets the wallpaper to the given image file path.
func (w *windowsOS) SetWallpaper(imagePath string) error {
	imagePathUTF16, err := windows.UTF16PtrFromString(imagePath)
	if err != nil {
		return err
	}

	ret, _, err := systemParametersInfo.Call(
		uintptr(spiSetDeskWallpaper),
		uintptr(0),
		uintptr(unsafe.Pointer(imagePathUTF16)),
		uintptr(spifUpdateIniFile|spifSendChange),
	)
	if ret == 0 {
		return fmt.Errorf("SystemParametersInfoW: %w", err)
	}
	return nil
}

// DesktopSize returns the primary display size in pixels.
func (w *windowsOS) DesktopSize() (geometry.Rect, error) {
	return sysinfo.ScreenSize()
}
