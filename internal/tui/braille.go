package tui

// brailleDots holds the dot bit of each micro-pixel of a braille cell,
// indexed by column then row.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// brailleBuf is a canvas of w by h braille cells, each 2x4 micro-pixels.
type brailleBuf struct {
	w, h  int
	masks []uint8
}

func newBrailleBuf(w, h int) *brailleBuf {
	return &brailleBuf{w: w, h: h, masks: make([]uint8, w*h)}
}

// setPixel turns on micro-pixel (mx, my). Pixels off the canvas are ignored.
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= b.w || cy >= b.h {
		return
	}
	b.masks[cy*b.w+cx] |= brailleDots[mx%2][my%4]
}

// drawLineMicro draws a Bresenham line between two micro-pixels.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	row := make([]rune, b.w)
	for y := 0; y < b.h; y++ {
		for x, mask := range b.masks[y*b.w : (y+1)*b.w] {
			row[x] = ' '
			if mask != 0 {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
