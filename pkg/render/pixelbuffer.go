// Package render provides the software rasterizer: colours, screen-space
// triangles, the camera and projection, and the pixel buffer that the mesh
// pipeline fills.
package render

import (
	"fmt"
	"image"
	"image/color"
)

// PixelBuffer draws into caller-owned memory of packed 0x00RRGGBB words.
// It never allocates or frees that memory. Pixel (x, y) lives at
// index y*Width + x; writes outside the buffer are dropped.
//
// A PixelBuffer is not safe for concurrent use.
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []uint32

	DisableBackfaceCulling bool // If true, render both sides of mesh triangles
}

// NewPixelBuffer wraps buf. buf must hold at least width*height words.
func NewPixelBuffer(buf []uint32, width, height int) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrBufferSize, width, height)
	}
	if len(buf) < width*height {
		return nil, fmt.Errorf("%w: %d words for %dx%d", ErrBufferSize, len(buf), width, height)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: buf[:width*height],
	}, nil
}

// Clear fills every pixel with c.
func (pb *PixelBuffer) Clear(c Colour) {
	n := len(pb.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling is faster than a plain loop for large buffers.
	pb.Pixels[0] = c.Pack()
	for i := 1; i < n; i *= 2 {
		copy(pb.Pixels[i:], pb.Pixels[:i])
	}
}

// SetPixel sets (x, y) to c. Out of range coordinates are ignored.
func (pb *PixelBuffer) SetPixel(x, y int, c Colour) {
	if x < 0 || x >= pb.Width || y < 0 || y >= pb.Height {
		return
	}
	pb.Pixels[y*pb.Width+x] = c.Pack()
}

// Pixel returns the colour at (x, y), or black when out of range.
func (pb *PixelBuffer) Pixel(x, y int) Colour {
	if x < 0 || x >= pb.Width || y < 0 || y >= pb.Height {
		return Black
	}
	return Unpack(pb.Pixels[y*pb.Width+x])
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Both endpoints are drawn.
func (pb *PixelBuffer) DrawLine(x0, y0, x1, y1 int, c Colour) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		pb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ColorModel implements image.Image.
func (pb *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (pb *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, pb.Width, pb.Height)
}

// At implements image.Image.
func (pb *PixelBuffer) At(x, y int) color.Color {
	return pb.Pixel(x, y)
}

// ToImage copies the buffer into a standard Go image.RGBA.
func (pb *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(pb.Bounds())
	pb.WriteRGBA(img.Pix)
	return img
}

// WriteRGBA writes the buffer as opaque RGBA bytes, four per pixel, into dst.
// It stops early if dst is too short.
func (pb *PixelBuffer) WriteRGBA(dst []byte) {
	for i, v := range pb.Pixels {
		j := i * 4
		if j+3 >= len(dst) {
			return
		}
		dst[j+0] = uint8(v >> 16)
		dst[j+1] = uint8(v >> 8)
		dst[j+2] = uint8(v)
		dst[j+3] = 0xff
	}
}
