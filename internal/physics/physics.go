// Package physics provides 2D vectors and collision detection.
package physics

// Vector is a mutable 2D quantity used both as a position and as an offset.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	c := *v
	return &c
}

// Move translates v in place and returns it for chaining.
func (v *Vector) Move(dx, dy float64) *Vector {
	v.X += dx
	v.Y += dy
	return v
}

// Add translates v in place by o and returns it for chaining.
func (v *Vector) Add(o Vector) *Vector {
	return v.Move(o.X, o.Y)
}

// Box is an axis-aligned bounding box described by its center and half extents.
type Box struct {
	Center     Vector
	HalfWidth  float64
	HalfHeight float64
}

// Left returns the minimum x of the box.
func (b Box) Left() float64 { return b.Center.X - b.HalfWidth }

// Right returns the maximum x of the box.
func (b Box) Right() float64 { return b.Center.X + b.HalfWidth }

// Top returns the minimum y of the box.
func (b Box) Top() float64 { return b.Center.Y - b.HalfHeight }

// Bottom returns the maximum y of the box.
func (b Box) Bottom() float64 { return b.Center.Y + b.HalfHeight }

// BoxesOverlap checks if two boxes intersect. Touching edges count as overlap,
// so zero-extent boxes collide with anything that contains their center.
func BoxesOverlap(a, b Box) bool {
	return !(a.Right() < b.Left() ||
		a.Bottom() < b.Top() ||
		a.Left() > b.Right() ||
		a.Top() > b.Bottom())
}

// BoxWithin reports whether any part of the box lies strictly inside the
// rectangle [0, width] x [0, height].
func BoxWithin(b Box, width, height float64) bool {
	return b.Right() > 0 &&
		b.Left() < width &&
		b.Bottom() > 0 &&
		b.Top() < height
}
