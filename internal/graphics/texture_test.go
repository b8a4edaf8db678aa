package graphics

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(0, 2, color.NRGBA{0, 0, 255, 255})
	path := filepath.Join(dir, "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestDecodeImage(t *testing.T) {
	path := writePNG(t, t.TempDir())

	rgba, err := DecodeImage(path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, rgba.Rect.Dx())
	assert.Equal(t, 3, rgba.Rect.Dy())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgba.RGBAAt(0, 2))
}

func TestDecodeImageFlipY(t *testing.T) {
	path := writePNG(t, t.TempDir())

	rgba, err := DecodeImage(path, true)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba.RGBAAt(0, 2))
}

func TestDecodeImageMissing(t *testing.T) {
	_, err := DecodeImage(filepath.Join(t.TempDir(), "nope.png"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTextureCacheDegradesToZero(t *testing.T) {
	c := NewTextureCache(TextureOptions{})
	loads := 0
	c.load = func(path string, _ TextureOptions) (uint32, int, int, error) {
		loads++
		if path == "missing.png" {
			return 0, 0, 0, errors.New("no such file")
		}
		return 42, 1, 1, nil
	}

	assert.Equal(t, uint32(0), c.Get("missing.png"))
	assert.Equal(t, uint32(42), c.Get("ok.png"))
	assert.Equal(t, uint32(42), c.Get("ok.png"))
	assert.Equal(t, uint32(0), c.Get("missing.png"))
	assert.Equal(t, 2, loads)
	assert.Equal(t, 2, c.Len())
}

func TestDecodeShippedTextures(t *testing.T) {
	for _, name := range []string{"container2.png", "container2_specular.png"} {
		img, err := DecodeImage(filepath.Join("..", "..", "assets", "textures", name), true)
		require.NoError(t, err, name)
		assert.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds(), name)
	}
}
