// Package sprites moves the decorative background sprites: floating icons
// and shooting stars. Positions are in CSS pixels and time is measured in
// 60 Hz frames.
package sprites

import (
	"math"
	"math/rand/v2"
)

// Sprite is one moving body.
type Sprite struct {
	X, Y     float64
	VX, VY   float64
	Rotation float64
	Spin     float64
	Radius   float64
	Opacity  float64
	// Kind selects the image drawn for the sprite.
	Kind int
}

// Field is a fixed set of sprites bouncing inside a canvas.
type Field struct {
	Width   float64
	Height  float64
	Sprites []Sprite

	params Params
	rng    *rand.Rand
}

// NewField scatters p.Count sprites inside a width×height canvas.
func NewField(width, height float64, p Params, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		Width:   width,
		Height:  height,
		Sprites: make([]Sprite, p.Count),
		params:  p,
		rng:     rng,
	}
	margin := p.MaxRadius * 2
	for i := range f.Sprites {
		f.Sprites[i] = Sprite{
			X:        spawn(rng, margin, width),
			Y:        spawn(rng, margin, height),
			VX:       (rng.Float64() - 0.5) * p.Speed,
			VY:       (rng.Float64() - 0.5) * p.Speed,
			Rotation: rng.Float64() * math.Pi * 2,
			Spin:     (rng.Float64() - 0.5) * p.SpinSpeed,
			Radius:   p.MinRadius + rng.Float64()*(p.MaxRadius-p.MinRadius),
			Opacity:  p.MinOpacity + rng.Float64()*(p.MaxOpacity-p.MinOpacity),
			Kind:     i,
		}
	}
	return f
}

func spawn(rng *rand.Rand, margin, extent float64) float64 {
	span := extent - margin*2
	if span <= 0 {
		return extent / 2
	}
	return margin + rng.Float64()*span
}

// Resize changes the canvas bounds. Sprites outside the new bounds are left
// where they are; their next edge checks steer them back inside.
func (f *Field) Resize(width, height float64) {
	f.Width = width
	f.Height = height
}

// Step advances the field by timeScale frames: integrate, bounce off the
// edges, decay, then resolve every overlapping pair. timeScale is capped at
// MaxTimeScale so a stalled animation loop does not fling sprites away.
func (f *Field) Step(timeScale float64) {
	p := f.params
	timeScale = math.Min(timeScale, MaxTimeScale)
	decay := math.Pow(p.Decay, timeScale)
	for i := range f.Sprites {
		s := &f.Sprites[i]
		margin := s.Radius * p.EdgeMargin

		s.X, s.VX = f.advance(s.X, s.VX, margin, f.Width, timeScale)
		s.Y, s.VY = f.advance(s.Y, s.VY, margin, f.Height, timeScale)

		s.Rotation += s.Spin * timeScale
		s.VX *= decay
		s.VY *= decay
		s.Spin *= decay

		s.VX = floor(s.VX, p.MinSpeed)
		s.VY = floor(s.VY, p.MinSpeed)

		if p.Flicker > 0 {
			s.Opacity += (f.rng.Float64() - 0.5) * p.Flicker * timeScale
			s.Opacity = clamp(s.Opacity, p.MinOpacity, p.MaxOpacity)
		}
	}

	if !p.Collide {
		return
	}
	for i := 0; i < len(f.Sprites); i++ {
		for j := i + 1; j < len(f.Sprites); j++ {
			a, b := &f.Sprites[i], &f.Sprites[j]
			if Overlapping(a, b) {
				Collide(a, b, p, f.rng)
			}
		}
	}
}

// advance moves one axis. A move that would leave [margin, extent-margin]
// through a side the velocity points at inverts and damps the velocity, then
// moves with the new velocity. A sprite already outside keeps a velocity
// that points inward.
func (f *Field) advance(pos, vel, margin, extent, timeScale float64) (float64, float64) {
	next := pos + vel*timeScale
	switch {
	case next < margin && vel < 0, next > extent-margin && vel > 0:
		vel = f.clampSpeed(-vel * f.params.EdgeRestitution)
		return pos + vel*timeScale, vel
	default:
		return next, vel
	}
}

func (f *Field) clampSpeed(v float64) float64 {
	if f.params.MaxSpeed <= 0 {
		return v
	}
	return clamp(v, -f.params.MaxSpeed, f.params.MaxSpeed)
}

// floor raises |v| to at least lo, keeping its sign. Zero counts as
// positive.
func floor(v, lo float64) float64 {
	if math.Abs(v) >= lo {
		return v
	}
	if v < 0 {
		return -lo
	}
	return lo
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
