package sprites

import (
	"math"
	"math/rand/v2"
)

// Overlapping reports whether the circular bounds of a and b touch.
func Overlapping(a, b *Sprite) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= a.Radius+b.Radius
}

// Collide separates an overlapping pair along the line between their
// centres and, if they approach each other, applies an elastic impulse along
// that normal. rng drives the cosmetic spin and opacity kicks and may be nil.
func Collide(a, b *Sprite, p Params, rng *rand.Rand) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	reach := a.Radius + b.Radius

	// Coincident centres have no normal; push along x.
	nx, ny := 1.0, 0.0
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	}

	if dist < reach {
		overlap := reach - dist
		moveX := overlap * nx / 2
		moveY := overlap * ny / 2
		a.X -= moveX
		a.Y -= moveY
		b.X += moveX
		b.Y += moveY
	}

	// Relative velocity along the normal; positive means separating.
	vn := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
	if vn > 0 {
		return
	}

	impulse := -(1 + p.Bounce) * vn
	ix, iy := impulse*nx, impulse*ny

	a.VX -= ix
	a.VY -= iy
	b.VX += ix
	b.VY += iy
	if p.MaxSpeed > 0 {
		a.VX = clamp(a.VX, -p.MaxSpeed, p.MaxSpeed)
		a.VY = clamp(a.VY, -p.MaxSpeed, p.MaxSpeed)
		b.VX = clamp(b.VX, -p.MaxSpeed, p.MaxSpeed)
		b.VY = clamp(b.VY, -p.MaxSpeed, p.MaxSpeed)
	}

	if rng == nil {
		return
	}
	if p.SpinKick > 0 {
		a.Spin += (rng.Float64() - 0.5) * p.SpinKick
		b.Spin += (rng.Float64() - 0.5) * p.SpinKick
	}
	if p.OpacityKick > 0 {
		a.Opacity = clamp(a.Opacity+(rng.Float64()-0.5)*p.OpacityKick, p.MinOpacity, p.MaxOpacity)
		b.Opacity = clamp(b.Opacity+(rng.Float64()-0.5)*p.OpacityKick, p.MinOpacity, p.MaxOpacity)
	}
}
