package clip

// MatthesDrakopoulosClip clips the finite segment p0-p1 to box, mutating
// *p0 and *p1 in place to the clipped endpoints. Returns whether any portion
// of the segment lies inside box; on false the points are left unchanged.
//
// Unlike Cohen-Sutherland (the teacher's internal/clip.EdgeClipper.ClipLine,
// which loops re-testing outcodes), Matthes-Drakopoulos corrects each
// endpoint at most twice — once against the x-range, once against the
// y-range — per spec §4.3's exactness requirement.
func MatthesDrakopoulosClip(p0, p1 *Point, box Rect) bool {
	x0, y0 := p0.X, p0.Y
	x1, y1 := p1.X, p1.Y

	xmin, xmax := box.X, box.Right()
	ymin, ymax := box.Y, box.Bottom()

	// Reject: both endpoints outside the same side.
	if (x0 < xmin && x1 < xmin) || (x0 > xmax && x1 > xmax) ||
		(y0 < ymin && y1 < ymin) || (y0 > ymax && y1 > ymax) {
		return false
	}

	// dx, dy are the ORIGINAL slope; both the x-pass and the y-pass below
	// interpolate along this one fixed direction, which is what keeps each
	// endpoint's correction count to at most one per axis.
	dx := x1 - x0
	dy := y1 - y0

	// Clip against x range.
	if dx != 0 {
		if x0 < xmin {
			y0 += dy * (xmin - x0) / dx
			x0 = xmin
		} else if x0 > xmax {
			y0 += dy * (xmax - x0) / dx
			x0 = xmax
		}
		if x1 < xmin {
			y1 += dy * (xmin - x1) / dx
			x1 = xmin
		} else if x1 > xmax {
			y1 += dy * (xmax - x1) / dx
			x1 = xmax
		}
	} else if x0 < xmin || x0 > xmax {
		return false
	}

	// Clip against y range.
	if dy != 0 {
		if y0 < ymin {
			x0 += dx * (ymin - y0) / dy
			y0 = ymin
		} else if y0 > ymax {
			x0 += dx * (ymax - y0) / dy
			y0 = ymax
		}
		if y1 < ymin {
			x1 += dx * (ymin - y1) / dy
			y1 = ymin
		} else if y1 > ymax {
			x1 += dx * (ymax - y1) / dy
			y1 = ymax
		}
	} else if y0 < ymin || y0 > ymax {
		return false
	}

	// Reject the "both outside the same side after adjustment" case spec
	// §4.3 calls out explicitly.
	if (x0 < xmin && x1 < xmin) || (x0 > xmax && x1 > xmax) ||
		(y0 < ymin && y1 < ymin) || (y0 > ymax && y1 > ymax) {
		return false
	}

	p0.X, p0.Y = x0, y0
	p1.X, p1.Y = x1, y1
	return true
}
