//go:build darwin

package sysinfo

import (
	"fmt"
	"os/exec"

	"github.com/jamesbarr/centr/pkg/geometry"
)

// ScreenSize returns the main display size on macOS.
func ScreenSize() (geometry.Rect, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("running system_profiler: %w", err)
	}
	return parseProfilerJSON(out)
}
