package wallpaper

import (
	"os"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFaceDetector_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFaceDetector(filepath.Join(t.TempDir(), "facefinder"))
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.ErrorContains(t, err, "reading face model")
	})

	for name, data := range map[string][]byte{
		"empty":   {},
		"garbage": []byte("abc"),
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "facefinder")
			require.NoError(t, os.WriteFile(path, data, 0644))

			classifier, err := LoadFaceDetector(path)
			assert.Nil(t, classifier)
			assert.ErrorContains(t, err, "unpacking face model")
		})
	}
}

func TestBestFace(t *testing.T) {
	detections := []pigo.Detection{
		{Row: 10, Col: 20, Scale: 8, Q: 12},
		{Row: 50, Col: 90, Scale: 16, Q: 40},
		{Row: 5, Col: 5, Scale: 4, Q: 3},
	}

	t.Run("most confident wins and scales to the image", func(t *testing.T) {
		fx, fy, ok := bestFace(detections, 10, 2.5)
		require.True(t, ok)
		assert.Equal(t, 225.0, fx)
		assert.Equal(t, 125.0, fy)
	})

	t.Run("threshold filters weak detections", func(t *testing.T) {
		_, _, ok := bestFace(detections, 50, 1)
		assert.False(t, ok)
	})

	t.Run("only weak candidate above threshold", func(t *testing.T) {
		fx, fy, ok := bestFace(detections[:1], 10, 1)
		require.True(t, ok)
		assert.Equal(t, 20.0, fx)
		assert.Equal(t, 10.0, fy)
	})

	t.Run("none", func(t *testing.T) {
		_, _, ok := bestFace(nil, 0, 1)
		assert.False(t, ok)
	})
}
