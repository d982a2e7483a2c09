package pix

// Checkerboard fills the pixmap with the standard gray checkerboard used to
// indicate empty or transparent content, with square cells of the given size.
func Checkerboard(p *Pixmap, cell int) {
	if cell <= 0 {
		cell = 8
	}
	light := RGB(0.8, 0.8, 0.8)
	dark := RGB(0.6, 0.6, 0.6)

	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if (x/cell+y/cell)%2 == 0 {
				p.SetPixel(x, y, light)
			} else {
				p.SetPixel(x, y, dark)
			}
		}
	}
}
