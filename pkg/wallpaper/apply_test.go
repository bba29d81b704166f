package wallpaper

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jamesbarr/centr/config"
	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Apply(t *testing.T) {
	p, mockOS := newTestProcessor(t, nil)
	mockOS.On("DesktopSize").Return(geometry.Size(64, 36), nil)
	mockOS.On("SetWallpaper", mock.AnythingOfType("string")).Return(nil)

	path, err := p.Apply(context.Background(), createTestImage(200, 200))
	require.NoError(t, err)
	mockOS.AssertCalled(t, "SetWallpaper", path)

	assert.Equal(t, p.cfg.OutputDir, filepath.Dir(path))
	assert.Equal(t, ".jpg", filepath.Ext(path))

	written, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 36), written.Bounds())
}

func TestProcessor_ApplyErrors(t *testing.T) {
	t.Run("desktop size", func(t *testing.T) {
		p, mockOS := newTestProcessor(t, nil)
		mockOS.On("DesktopSize").Return(geometry.Rect{}, errors.New("no display"))

		_, err := p.Apply(context.Background(), createTestImage(10, 10))
		assert.ErrorContains(t, err, "no display")
		mockOS.AssertNotCalled(t, "SetWallpaper", mock.Anything)
	})

	t.Run("set wallpaper", func(t *testing.T) {
		p, mockOS := newTestProcessor(t, func(c *config.Config) {
			c.Display = "32x32"
			c.Format = config.FormatPNG
		})
		mockOS.On("SetWallpaper", mock.Anything).Return(errors.New("unsupported desktop"))

		_, err := p.Apply(context.Background(), createTestImage(10, 10))
		assert.ErrorContains(t, err, "setting wallpaper")

		entries, err := os.ReadDir(p.cfg.OutputDir)
		require.NoError(t, err)
		require.Len(t, entries, 1, "the rendered file is kept for inspection")
		assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))
	})
}

func TestProcessor_ApplyPrunesOldWallpapers(t *testing.T) {
	p, mockOS := newTestProcessor(t, func(c *config.Config) {
		c.Display = "16x16"
		c.KeepWallpapers = 1
	})
	mockOS.On("SetWallpaper", mock.Anything).Return(nil)

	first, err := p.Apply(context.Background(), createTestImage(20, 20))
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(first, old, old))

	second, err := p.Apply(context.Background(), createTestImage(20, 20))
	require.NoError(t, err)

	assert.NoFileExists(t, first)
	assert.FileExists(t, second)
}
