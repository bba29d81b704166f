// Package sysinfo queries the host for the size of the primary display.
package sysinfo

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jamesbarr/centr/pkg/geometry"
)

// resolutionRegex matches strings like "3456 x 2234", "2880x1864Retina" or
// "1710 x 1107 @ 60.00Hz".
var resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// parseXdpyinfo extracts the screen size from xdpyinfo output, which
// contains a line like "dimensions:    1920x1080 pixels (508x285 millimeters)".
func parseXdpyinfo(out []byte) (geometry.Rect, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "dimensions:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		return parseResolutionString(fields[1])
	}
	return geometry.Rect{}, fmt.Errorf("no dimensions line in xdpyinfo output")
}

// systemProfilerOutput is the part of `system_profiler -json` we read.
type systemProfilerOutput struct {
	Displays []gpuInfo `json:"SPDisplaysDataType"`
}

type gpuInfo struct {
	NDRVs []displayInfo `json:"spdisplays_ndrvs"`
}

type displayInfo struct {
	PixelResolution string `json:"spdisplays_pixelresolution"`
	Resolution      string `json:"_spdisplays_pixels"`
	Main            string `json:"spdisplays_main"`
}

func (d displayInfo) size() (geometry.Rect, error) {
	if d.Resolution != "" {
		return parseResolutionString(d.Resolution)
	}
	return parseResolutionString(d.PixelResolution)
}

// parseProfilerJSON returns the main display's size, falling back to the
// first display listed.
func parseProfilerJSON(data []byte) (geometry.Rect, error) {
	var profiler systemProfilerOutput
	if err := json.Unmarshal(data, &profiler); err != nil {
		return geometry.Rect{}, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}

	for _, gpu := range profiler.Displays {
		for _, display := range gpu.NDRVs {
			if display.Main == "spdisplays_yes" {
				return display.size()
			}
		}
	}
	for _, gpu := range profiler.Displays {
		if len(gpu.NDRVs) > 0 {
			return gpu.NDRVs[0].size()
		}
	}
	return geometry.Rect{}, fmt.Errorf("no displays found in system_profiler output")
}

func parseResolutionString(s string) (geometry.Rect, error) {
	matches := resolutionRegex.FindStringSubmatch(s)
	if len(matches) < 3 {
		return geometry.Rect{}, fmt.Errorf("failed to parse resolution from string: %q", s)
	}
	width, err := strconv.Atoi(matches[1])
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("parsing width: %w", err)
	}
	height, err := strconv.Atoi(matches[2])
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("parsing height: %w", err)
	}
	return geometry.NewSize(float64(width), float64(height))
}
