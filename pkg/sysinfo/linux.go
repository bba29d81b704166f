//go:build linux

package sysinfo

import (
	"fmt"
	"os/exec"

	"github.com/jamesbarr/centr/pkg/geometry"
)

// ScreenSize returns the desktop size on Linux as reported by xdpyinfo.
func ScreenSize() (geometry.Rect, error) {
	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("running xdpyinfo: %w", err)
	}
	return parseXdpyinfo(out)
}
