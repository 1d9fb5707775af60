package ogimage

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesCardSizedPNG(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, Card{
		Name:  "Christopher Rodriguez",
		Role:  "Full Stack Developer",
		Chips: []string{"Go", "Gin", "HTMX", "WebAssembly"},
	})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())

	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0x03), r>>8)
	assert.Equal(t, uint32(0x07), g>>8)
	assert.Equal(t, uint32(0x11), b>>8)
}

func TestRenderWithoutChips(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, Card{Name: "Solo"}))
	assert.NotZero(t, buf.Len())
}

func TestCacheRendersOnce(t *testing.T) {
	c := NewCache(Card{Name: "Cached", Role: "Dev"})

	first, err := c.PNG()
	require.NoError(t, err)
	second, err := c.PNG()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])
}
