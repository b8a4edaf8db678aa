package graphics

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureOptions controls how an image is uploaded
type TextureOptions struct {
	// FlipY flips rows so the first row is the bottom of the image, as GL expects.
	FlipY bool
	// Nearest selects nearest filtering instead of trilinear mipmapping.
	Nearest bool
	// Clamp selects CLAMP_TO_EDGE wrapping instead of REPEAT.
	Clamp bool
}

// DecodeImage reads an image file and converts it to RGBA.
func DecodeImage(path string, flipY bool) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	if flipY {
		flipVertical(rgba)
	}
	return rgba, nil
}

func flipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// LoadTexture loads a 2D texture from a file
func LoadTexture(path string, opts TextureOptions) (uint32, int, int, error) {
	rgba, err := DecodeImage(path, opts.FlipY)
	if err != nil {
		return 0, 0, 0, err
	}
	return UploadTexture(rgba, opts), rgba.Rect.Dx(), rgba.Rect.Dy(), nil
}

// UploadTexture creates a GL texture from RGBA pixels
func UploadTexture(rgba *image.RGBA, opts TextureOptions) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	wrap := int32(gl.REPEAT)
	if opts.Clamp {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	if opts.Nearest {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(rgba.Rect.Size().X),
		int32(rgba.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	if !opts.Nearest {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}

// TextureCache uploads each texture path once.
type TextureCache struct {
	mu       sync.RWMutex
	opts     TextureOptions
	textures map[string]uint32
	load     func(path string, opts TextureOptions) (uint32, int, int, error)
}

// NewTextureCache creates a cache that uploads with opts.
func NewTextureCache(opts TextureOptions) *TextureCache {
	return &TextureCache{
		opts:     opts,
		textures: make(map[string]uint32),
		load:     LoadTexture,
	}
}

// Get returns the texture for path, loading it on first use. A file that
// cannot be loaded is logged and yields texture 0 so rendering carries on
// with an unusable texture.
func (c *TextureCache) Get(path string) uint32 {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[path]; ok {
		return tex
	}

	tex, _, _, err := c.load(path, c.opts)
	if err != nil {
		log.Printf("Texture failed to load at path %s: %v", path, err)
		tex = 0
	}
	c.textures[path] = tex
	return tex
}

// Len reports how many paths have been requested
func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Delete releases every uploaded texture
func (c *TextureCache) Delete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, tex := range c.textures {
		if tex != 0 {
			gl.DeleteTextures(1, &tex)
		}
		delete(c.textures, path)
	}
}
