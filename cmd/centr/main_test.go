package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOS struct {
	size geometry.Rect
	set  []string
}

func (f *fakeOS) DesktopSize() (geometry.Rect, error) { return f.size, nil }

func (f *fakeOS) SetWallpaper(path string) error {
	f.set = append(f.set, path)
	return nil
}

func writeImage(t *testing.T, width, height int) string {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	path := filepath.Join(t.TempDir(), "source.png")
	require.NoError(t, imaging.Save(img, path))
	return path
}

// writeConfig points the run at an empty output dir and no user config.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: "+outDir+"\n"), 0644))
	return path, outDir
}

func TestRun_DefaultPrintsStats(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	src := writeImage(t, 1000, 500)

	var out bytes.Buffer
	err := run(t.Context(), []string{"-config", cfgPath, "-display", "400x800", src}, &out, &fakeOS{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Image = 1000 x 500 pixels")
	assert.Contains(t, out.String(), "Viewport = Rect(375, 0 - 625, 500)")
	assert.Contains(t, out.String(), "Limit = height")
}

func TestRun_UsesDesktopSize(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	src := writeImage(t, 300, 900)

	var out bytes.Buffer
	host := &fakeOS{size: geometry.Size(1080, 2280)}
	require.NoError(t, run(t.Context(), []string{"-config", cfgPath, "-stats", src}, &out, host))
	assert.Contains(t, out.String(), "DisplaySize = 1080 x 2280 pixels")
	assert.Contains(t, out.String(), "Limit = width")
}

func TestRun_WritesOutputAndPreview(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	src := writeImage(t, 1000, 500)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "wall.png")
	previewPath := filepath.Join(dir, "preview.jpg")

	var out bytes.Buffer
	err := run(t.Context(), []string{
		"-config", cfgPath, "-display", "40x80",
		"-out", outPath, "-preview", previewPath, src,
	}, &out, &fakeOS{})
	require.NoError(t, err)

	wall, err := imaging.Open(outPath)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 80), wall.Bounds().Size())

	preview, err := imaging.Open(previewPath)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(160, 80), preview.Bounds().Size())

	assert.NotContains(t, out.String(), "Viewport =", "stats only print without another action")
}

func TestRun_SetWallpaper(t *testing.T) {
	cfgPath, outDir := writeConfig(t)
	src := writeImage(t, 200, 200)
	host := &fakeOS{size: geometry.Size(64, 36)}

	var out bytes.Buffer
	require.NoError(t, run(t.Context(), []string{"-config", cfgPath, "-set", src}, &out, host))

	require.Len(t, host.set, 1)
	assert.Equal(t, outDir, filepath.Dir(host.set[0]))
	assert.Contains(t, out.String(), "Wallpaper set: "+host.set[0])
}

func TestRun_Monitors(t *testing.T) {
	cfgPath, outDir := writeConfig(t)
	src := writeImage(t, 400, 300)

	var out bytes.Buffer
	err := run(t.Context(), []string{
		"-config", cfgPath, "-display", "100x100",
		"-monitors", "192x108,108x192,192x108", src,
	}, &out, &fakeOS{})
	require.NoError(t, err)

	for _, name := range []string{"centr-192x108.jpg", "centr-108x192.jpg"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.Contains(t, out.String(), "monitors [0 2]")
}

func TestRun_Errors(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	src := writeImage(t, 10, 10)

	tests := []struct {
		name string
		args []string
	}{
		{"no image", []string{"-config", cfgPath}},
		{"bad display", []string{"-config", cfgPath, "-display", "0x100", src}},
		{"bad anchor", []string{"-config", cfgPath, "-anchor", "left", src}},
		{"missing image", []string{"-config", cfgPath, filepath.Join(t.TempDir(), "nope.png")}},
		{"bad monitors", []string{"-config", cfgPath, "-display", "10x10", "-monitors", "wide", src}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t.Context(), tt.args, &bytes.Buffer{}, &fakeOS{})
			assert.Error(t, err)
		})
	}
}

func TestParseMonitors(t *testing.T) {
	monitors, err := parseMonitors("1920x1080, 1080x1920")
	require.NoError(t, err)
	require.Len(t, monitors, 2)
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), monitors[0].Rect)
	assert.Equal(t, image.Rect(1920, 0, 3000, 1920), monitors[1].Rect)
	assert.Equal(t, 1, monitors[1].ID)
}
