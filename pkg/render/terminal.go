package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw presents the buffer on a terminal screen. Each cell shows two pixel
// rows with the upper half block (▀): foreground is the top pixel, background
// the bottom one. The buffer height should be twice the area height.
func (pb *PixelBuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= pb.Width {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: pb.cellColor(x, topY),
					Bg: pb.cellColor(x, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor returns nil for rows past the buffer so the terminal default shows.
func (pb *PixelBuffer) cellColor(x, y int) color.Color {
	if y >= pb.Height {
		return nil
	}
	return pb.Pixel(x, y)
}

// TerminalSize returns the pixel buffer size for a terminal of cols x rows.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}
