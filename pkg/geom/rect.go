package geom

// Rect is a 2D axis-aligned bounding box with inclusive edges.
type Rect struct {
	Min, Max Vec2
}

// RectFrom returns the smallest Rect containing all points.
// Returns the zero Rect if points is empty.
func RectFrom(points ...Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

// Width returns the X extent.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the Y extent.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint.
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// ContainsPoint reports whether (x, y) lies inside the rect, edges included.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= float64(r.Min.X) && x <= float64(r.Max.X) &&
		y >= float64(r.Min.Y) && y <= float64(r.Max.Y)
}

// Intersects reports whether the two rects share any point, edges included.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X && other.Min.X <= r.Max.X &&
		r.Min.Y <= other.Max.Y && other.Min.Y <= r.Max.Y
}

// Union returns the smallest Rect containing both.
func (r Rect) Union(other Rect) Rect {
	out := r
	if other.Min.X < out.Min.X {
		out.Min.X = other.Min.X
	}
	if other.Min.Y < out.Min.Y {
		out.Min.Y = other.Min.Y
	}
	if other.Max.X > out.Max.X {
		out.Max.X = other.Max.X
	}
	if other.Max.Y > out.Max.Y {
		out.Max.Y = other.Max.Y
	}
	return out
}

// Expand returns the rect grown by d on every side.
func (r Rect) Expand(d float32) Rect {
	return Rect{
		Min: Vec2{r.Min.X - d, r.Min.Y - d},
		Max: Vec2{r.Max.X + d, r.Max.Y + d},
	}
}

// Quadrants splits the rect at its center into NW, NE, SW, SE sub-rects.
// The quadrants share edges, so a point on a split line is contained by
// every touching quadrant.
func (r Rect) Quadrants() [4]Rect {
	c := r.Center()
	return [4]Rect{
		{Min: Vec2{r.Min.X, r.Min.Y}, Max: Vec2{c.X, c.Y}},
		{Min: Vec2{c.X, r.Min.Y}, Max: Vec2{r.Max.X, c.Y}},
		{Min: Vec2{r.Min.X, c.Y}, Max: Vec2{c.X, r.Max.Y}},
		{Min: Vec2{c.X, c.Y}, Max: Vec2{r.Max.X, r.Max.Y}},
	}
}
