package sprites

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlappingUsesSummedRadii(t *testing.T) {
	a := &Sprite{X: 0, Y: 0, Radius: 3}
	b := &Sprite{X: 3, Y: 4, Radius: 2}

	assert.True(t, Overlapping(a, b), "touching counts")

	b.X = 4
	assert.False(t, Overlapping(a, b))
}

func TestCollideHeadOn(t *testing.T) {
	p := StarParams(0, 0, 0, 0)
	a := &Sprite{X: 0, Y: 0, VX: 1, Radius: 2}
	b := &Sprite{X: 3, Y: 0, VX: -1, Radius: 2}

	Collide(a, b, p, nil)

	assert.InDelta(t, -0.5, a.X, 1e-9)
	assert.InDelta(t, 3.5, b.X, 1e-9)
	// vn = -2, impulse = 1.85 * 2
	assert.InDelta(t, 1-3.7, a.VX, 1e-9)
	assert.InDelta(t, -1+3.7, b.VX, 1e-9)
	assert.Zero(t, a.VY)
	assert.Zero(t, b.VY)
}

func TestCollideConservesMomentum(t *testing.T) {
	p := StarParams(0, 0, 0, 0)
	a := &Sprite{X: 0, Y: 0, VX: 0.7, VY: 0.2, Radius: 4}
	b := &Sprite{X: 3, Y: 3, VX: -0.3, VY: -0.6, Radius: 4}
	px, py := a.VX+b.VX, a.VY+b.VY

	Collide(a, b, p, nil)

	assert.InDelta(t, px, a.VX+b.VX, 1e-9)
	assert.InDelta(t, py, a.VY+b.VY, 1e-9)
	assert.InDelta(t, 8, math.Hypot(b.X-a.X, b.Y-a.Y), 1e-9)
}

func TestCollideSeparatingPairKeepsVelocity(t *testing.T) {
	p := IconParams(0)
	a := &Sprite{X: 0, Y: 0, VX: -1, Radius: 25}
	b := &Sprite{X: 40, Y: 0, VX: 1, Radius: 25}

	Collide(a, b, p, nil)

	assert.Equal(t, -1.0, a.VX)
	assert.Equal(t, 1.0, b.VX)
	assert.InDelta(t, 50, b.X-a.X, 1e-9, "still separated")
}

func TestCollideClampsIconSpeed(t *testing.T) {
	p := IconParams(0)
	a := &Sprite{X: 0, Y: 0, VX: 1.6, Radius: 25}
	b := &Sprite{X: 45, Y: 0, VX: -1.6, Radius: 25}

	Collide(a, b, p, nil)

	assert.Equal(t, -IconMaxSpeed, a.VX)
	assert.Equal(t, IconMaxSpeed, b.VX)
}

func TestCollideCoincidentCentres(t *testing.T) {
	p := IconParams(0)
	a := &Sprite{X: 10, Y: 10, Radius: 25}
	b := &Sprite{X: 10, Y: 10, Radius: 25}

	Collide(a, b, p, seeded())

	assert.False(t, math.IsNaN(a.X) || math.IsNaN(b.X) || math.IsNaN(a.VX))
	assert.InDelta(t, 50, b.X-a.X, 1e-9)
}

func TestCollideKicksSpinAndOpacity(t *testing.T) {
	icons := IconParams(0)
	a := &Sprite{X: 0, Y: 0, VX: 1, Radius: 25}
	b := &Sprite{X: 30, Y: 0, VX: -1, Radius: 25}
	Collide(a, b, icons, seeded())
	assert.NotZero(t, a.Spin)
	assert.LessOrEqual(t, math.Abs(a.Spin), IconSpinKick/2)

	stars := StarParams(0, 0, 0, 0)
	c := &Sprite{X: 0, Y: 0, VX: 1, Radius: 2, Opacity: 1}
	d := &Sprite{X: 3, Y: 0, VX: -1, Radius: 2, Opacity: 0.7}
	Collide(c, d, stars, seeded())
	assert.GreaterOrEqual(t, c.Opacity, StarMinOpacity)
	assert.LessOrEqual(t, c.Opacity, StarMaxOpacity)
	assert.GreaterOrEqual(t, d.Opacity, StarMinOpacity)
	assert.LessOrEqual(t, d.Opacity, StarMaxOpacity)
}
