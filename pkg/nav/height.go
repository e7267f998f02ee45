package nav

import (
	"math"
)

// Contains reports whether (x, y) lies inside the area's footprint polygon.
// The bounding box is used as a cheap pre-filter; the real test is an
// even-odd ray crossing over the corner ring, which also handles
// non-rectangular rings correctly.
func (a *Area) Contains(x, y float64) bool {
	if !a.bounds.ContainsPoint(x, y) {
		return false
	}

	inside := false
	n := len(a.Corners)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := float64(a.Corners[i].X), float64(a.Corners[i].Y)
		xj, yj := float64(a.Corners[j].X), float64(a.Corners[j].Y)
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	if inside {
		return true
	}
	return a.onEdge(x, y)
}

// onEdge reports whether (x, y) lies on the polygon's boundary, which the
// crossing test treats as outside on two of the four sides.
func (a *Area) onEdge(x, y float64) bool {
	const eps = 1e-9
	n := len(a.Corners)
	for i := 0; i < n; i++ {
		x1, y1 := float64(a.Corners[i].X), float64(a.Corners[i].Y)
		x2, y2 := float64(a.Corners[(i+1)%n].X), float64(a.Corners[(i+1)%n].Y)
		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if math.Abs(cross) > eps*math.Max(1, math.Abs(x2-x1)+math.Abs(y2-y1)) {
			continue
		}
		if x >= math.Min(x1, x2)-eps && x <= math.Max(x1, x2)+eps &&
			y >= math.Min(y1, y2)-eps && y <= math.Max(y1, y2)+eps {
			return true
		}
	}
	return false
}

// HeightAt returns the interpolated surface height at (x, y). Four-corner
// areas use bilinear interpolation across their corner heights; other rings
// fall back to a plane fit through three non-collinear corners. The result
// is only meaningful when the point is inside the footprint.
func (a *Area) HeightAt(x, y float64) float64 {
	if len(a.Corners) == 4 {
		return a.bilinearHeight(x, y)
	}
	return a.planarHeight(x, y)
}

// bilinearHeight interpolates across the NW, NE, SE, SW corner heights
// using the point's fractional position within the footprint bounds.
func (a *Area) bilinearHeight(x, y float64) float64 {
	nw, ne, se, sw := a.Corners[0], a.Corners[1], a.Corners[2], a.Corners[3]

	width := float64(a.bounds.Width())
	height := float64(a.bounds.Height())

	u, v := 0.5, 0.5
	if width > 0 {
		u = (x - float64(a.bounds.Min.X)) / width
	}
	if height > 0 {
		v = (y - float64(a.bounds.Min.Y)) / height
	}

	northZ := float64(nw.Z) + u*(float64(ne.Z)-float64(nw.Z))
	southZ := float64(sw.Z) + u*(float64(se.Z)-float64(sw.Z))
	return northZ + v*(southZ-northZ)
}

// planarHeight fits a plane through the first three non-collinear corners
// and evaluates it at (x, y). Degenerate rings fall back to the mean
// corner height.
func (a *Area) planarHeight(x, y float64) float64 {
	p0 := a.Corners[0]
	for i := 1; i < len(a.Corners)-1; i++ {
		for j := i + 1; j < len(a.Corners); j++ {
			u := a.Corners[i].Sub(p0)
			w := a.Corners[j].Sub(p0)
			n := u.Cross(w)
			if math.Abs(float64(n.Z)) < 1e-9 {
				continue
			}
			nx, ny, nz := float64(n.X), float64(n.Y), float64(n.Z)
			return float64(p0.Z) - (nx*(x-float64(p0.X))+ny*(y-float64(p0.Y)))/nz
		}
	}

	sum := 0.0
	for _, c := range a.Corners {
		sum += float64(c.Z)
	}
	return sum / float64(len(a.Corners))
}

// HeightsAt returns the interpolated height of every area containing (x, y).
// Multiple heights exist where footprints overlap, such as stacked
// platforms or a bridge over a road.
func (ix *Index) HeightsAt(x, y float64) []float64 {
	areas := ix.At(x, y)
	if len(areas) == 0 {
		return nil
	}
	heights := make([]float64, len(areas))
	for i, a := range areas {
		heights[i] = a.HeightAt(x, y)
	}
	return heights
}

// FindBestHeight returns the surface height at (x, y) whose value is
// closest to zHint, disambiguating overlapping areas. The hint is only a
// tie-breaker; callers that do not care pass any value and accept the
// nearest surface. The second return is false when no area contains the
// point; callers must handle that case, there is no default height.
func (ix *Index) FindBestHeight(x, y, zHint float64) (float64, bool) {
	var best float64
	found := false
	for _, a := range ix.At(x, y) {
		h := a.HeightAt(x, y)
		if !found || math.Abs(h-zHint) < math.Abs(best-zHint) {
			best = h
			found = true
		}
	}
	return best, found
}
