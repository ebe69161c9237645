package render

// aaDistance is how far outside a triangle, in barycentric units, the debug
// fill still shades a pixel.
const aaDistance = 0.01

// FillTriangle fills tri, interpolating c1, c2 and c3 across it with the
// barycentric weights of each covered pixel. Pixels are sampled at integer
// coordinates and coverage is inclusive of the edges.
//
// It reports false, writing nothing, when tri is degenerate.
func (pb *PixelBuffer) FillTriangle(tri Triangle, c1, c2, c3 Colour) bool {
	if tri.IsDegenerate() {
		return false
	}
	box, ok := tri.AABB().Clip(pb.Width, pb.Height)
	if !ok {
		return true
	}

	for y := box.TopLeft.Y; y <= box.BottomRight.Y; y++ {
		for x := box.TopLeft.X; x <= box.BottomRight.X; x++ {
			w := tri.Barycentric(float64(x), float64(y))
			if covered(w) {
				pb.SetPixel(x, y, Interpolate(w, c1, c2, c3))
			}
		}
	}
	return true
}

// DebugTriangle fills tri with its own barycentric weights as red, green and
// blue, and softens the edges: pixels just outside the triangle are blended
// toward whatever is already in the buffer.
//
// It reports false, writing nothing, when tri is degenerate.
func (pb *PixelBuffer) DebugTriangle(tri Triangle) bool {
	if tri.IsDegenerate() {
		return false
	}
	box, ok := tri.AABB().Clip(pb.Width, pb.Height)
	if !ok {
		return true
	}

	for y := box.TopLeft.Y; y <= box.BottomRight.Y; y++ {
		for x := box.TopLeft.X; x <= box.BottomRight.X; x++ {
			w := tri.Barycentric(float64(x), float64(y))
			if covered(w) {
				pb.SetPixel(x, y, WeightColour(w))
				continue
			}
			m := w.MinElement()
			if m < 0 && m > -aaDistance {
				alpha := 1 + m/aaDistance
				pb.SetPixel(x, y, Mix(WeightColour(w.Clamp01()), pb.Pixel(x, y), alpha))
			}
		}
	}
	return true
}
