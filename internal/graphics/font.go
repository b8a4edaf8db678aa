package graphics

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph describes a single character's placement and metrics within the atlas
type Glyph struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	X, Y          int
	Width, Height int
	// Offset from the pen position on the baseline
	BearingX, BearingY int
	Advance            int
}

// GlyphAtlas is a baked single-channel glyph sheet
type GlyphAtlas struct {
	Image  *image.Alpha
	Glyphs map[rune]Glyph
	// LineHeight is the tallest glyph plus padding
	LineHeight int
}

// DefaultFace returns the Go Mono face at the given pixel size.
func DefaultFace(pixels float64) (font.Face, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: pixels, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// BakeAtlas renders printable ASCII into an alpha atlas of the given width
// using a simple row packer.
func BakeAtlas(face font.Face, width int) *GlyphAtlas {
	const padding = 1

	type placed struct {
		r    rune
		g    Glyph
		mask *image.Alpha
	}
	var glyphs []placed
	x, y, rowH, tallest := 0, 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			Width:    dr.Dx(),
			Height:   dr.Dy(),
			BearingX: dr.Min.X,
			BearingY: -dr.Min.Y,
			Advance:  int(math.Round(float64(advance) / 64.0)),
		}
		var own *image.Alpha
		if g.Width > 0 && g.Height > 0 {
			if x+g.Width > width {
				x = 0
				y += rowH + padding
				rowH = 0
			}
			g.X, g.Y = x, y
			x += g.Width + padding
			rowH = max(rowH, g.Height)
			tallest = max(tallest, g.Height)

			// The face reuses its mask buffer between calls
			own = image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
			draw.Draw(own, own.Bounds(), mask, maskp, draw.Src)
		}
		glyphs = append(glyphs, placed{r: r, g: g, mask: own})
	}

	atlas := &GlyphAtlas{
		Image:      image.NewAlpha(image.Rect(0, 0, width, y+rowH+padding)),
		Glyphs:     make(map[rune]Glyph, len(glyphs)),
		LineHeight: tallest + padding,
	}
	for _, p := range glyphs {
		if p.mask != nil {
			dst := image.Rect(p.g.X, p.g.Y, p.g.X+p.g.Width, p.g.Y+p.g.Height)
			draw.Draw(atlas.Image, dst, p.mask, image.Point{}, draw.Src)
		}
		atlas.Glyphs[p.r] = p.g
	}
	return atlas
}

// Quads returns two triangles per glyph as (x, y, u, v) vertices.
// Missing glyphs advance by the width of a space.
func (a *GlyphAtlas) Quads(text string, x, y, scale float32) []float32 {
	w := float32(a.Image.Rect.Dx())
	h := float32(a.Image.Rect.Dy())
	verts := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			x += float32(a.Glyphs[' '].Advance) * scale
			continue
		}
		if g.Width > 0 {
			x0 := x + float32(g.BearingX)*scale
			y0 := y - float32(g.BearingY)*scale
			x1 := x0 + float32(g.Width)*scale
			y1 := y0 + float32(g.Height)*scale
			u0, v0 := float32(g.X)/w, float32(g.Y)/h
			u1, v1 := float32(g.X+g.Width)/w, float32(g.Y+g.Height)/h
			verts = append(verts,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += float32(g.Advance) * scale
	}
	return verts
}

const textVertexSrc = `#version 330 core
layout (location = 0) in vec4 vertex;
out vec2 TexCoords;
uniform mat4 projection;
void main() {
	gl_Position = projection * vec4(vertex.xy, 0.0, 1.0);
	TexCoords = vertex.zw;
}`

const textFragmentSrc = `#version 330 core
in vec2 TexCoords;
out vec4 color;
uniform sampler2D text;
uniform vec3 textColor;
void main() {
	color = vec4(textColor, texture(text, TexCoords).r);
}`

// TextRenderer draws screen-space text from a GlyphAtlas
type TextRenderer struct {
	atlas      *GlyphAtlas
	texture    uint32
	shader     *Shader
	projection mgl32.Mat4
	vao, vbo   uint32
}

// NewTextRenderer uploads the atlas and builds the text program.
func NewTextRenderer(atlas *GlyphAtlas, width, height int) (*TextRenderer, error) {
	if atlas == nil || len(atlas.Glyphs) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShaderFromSource(textVertexSrc, textFragmentSrc)
	if err != nil {
		return nil, err
	}
	tr := &TextRenderer{atlas: atlas, shader: shader}
	tr.SetViewport(width, height)

	gl.GenTextures(1, &tr.texture)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	size := atlas.Image.Rect.Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(size.X), int32(size.Y), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Image.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return tr, nil
}

// SetViewport updates the pixel-space orthographic projection
func (tr *TextRenderer) SetViewport(width, height int) {
	tr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// LineHeight in pixels at scale 1
func (tr *TextRenderer) LineHeight() float32 {
	return float32(tr.atlas.LineHeight)
}

// RenderLines draws lines of text starting at (x, y), one lineStep apart.
func (tr *TextRenderer) RenderLines(lines []string, x, y, lineStep, scale float32, color mgl32.Vec3) {
	var verts []float32
	for _, line := range lines {
		verts = append(verts, tr.atlas.Quads(line, x, y, scale)...)
		y += lineStep
	}
	if len(verts) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	tr.shader.Use()
	tr.shader.SetVec3("textColor", color)
	tr.shader.SetMatrix4("projection", tr.projection)
	tr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)

	// Orphan and refill each frame
	size := len(verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/4))

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Delete releases GL objects
func (tr *TextRenderer) Delete() {
	gl.DeleteTextures(1, &tr.texture)
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteVertexArrays(1, &tr.vao)
	tr.shader.Delete()
}
