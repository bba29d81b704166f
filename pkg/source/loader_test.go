package source

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallpaper.png")
	require.NoError(t, os.WriteFile(path, encodeTestPNG(t, width, height), 0644))
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeTestPNG(t, 40, 30)
	l := NewLoader()

	for _, uri := range []string{path, "file://" + filepath.ToSlash(path)} {
		img, err := l.Load(context.Background(), uri)
		require.NoError(t, err, uri)
		assert.Equal(t, "png", img.Format)
		assert.Equal(t, uri, img.URI)
		assert.Equal(t, geometry.Size(40, 30), img.Size())
	}
}

func TestLoader_LoadHTTP(t *testing.T) {
	payload := encodeTestPNG(t, 64, 48)
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/wall.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer ts.Close()

	l := NewLoader(WithHTTPClient(ts.Client()), WithUserAgent("Centr/test"), WithRateLimit(100))

	img, err := l.Load(context.Background(), ts.URL+"/wall.png")
	require.NoError(t, err)
	assert.Equal(t, geometry.Size(64, 48), img.Size())
	assert.Equal(t, "Centr/test", gotUA)

	_, err = l.Load(context.Background(), ts.URL+"/missing.png")
	assert.ErrorContains(t, err, "unexpected status")
}

func TestLoader_Probe(t *testing.T) {
	path := writeTestPNG(t, 1000, 500)
	size, format, err := NewLoader().Probe(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, geometry.Size(1000, 500), size)
}

func TestLoader_Errors(t *testing.T) {
	path := writeTestPNG(t, 40, 30)

	t.Run("too large", func(t *testing.T) {
		_, err := NewLoader(WithMaxBytes(16)).Load(context.Background(), path)
		assert.ErrorContains(t, err, "larger than 16 bytes")
	})

	t.Run("not an image", func(t *testing.T) {
		txt := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(txt, []byte("hello"), 0644))
		_, err := NewLoader().Load(context.Background(), txt)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), "content://media/external/images/1")
		assert.ErrorContains(t, err, "unsupported image source scheme")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewLoader().Load(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
