package wallpaper

import (
	"testing"

	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugStats(t *testing.T) {
	stats, err := DebugStats(geometry.Size(1000, 500), geometry.Size(400, 800))
	require.NoError(t, err)

	expected := "" +
		"DisplaySize = 400 x 800 pixels\n" +
		"      Image = 1000 x 500 pixels\n" +
		" ResizedImg = 1600 x 800 pixels\n" +
		"   Viewport = Rect(375, 0 - 625, 500)\n" +
		"      Limit = height (scale 0.6250)"
	assert.Equal(t, expected, stats)

	_, err = DebugStats(geometry.Size(1000, 0), geometry.Size(400, 800))
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry)
}
