package sprites

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// lone returns a field holding exactly the given sprites.
func lone(w, h float64, p Params, sprites ...Sprite) *Field {
	p.Count = 0
	f := NewField(w, h, p, seeded())
	f.Sprites = sprites
	return f
}

func TestNewFieldPlacesSpritesInsideMargin(t *testing.T) {
	p := IconParams(9)
	f := NewField(800, 600, p, seeded())

	require.Len(t, f.Sprites, 9)
	for i, s := range f.Sprites {
		assert.Equal(t, i, s.Kind)
		assert.GreaterOrEqual(t, s.X, IconBoxSize)
		assert.LessOrEqual(t, s.X, 800-IconBoxSize)
		assert.GreaterOrEqual(t, s.Y, IconBoxSize)
		assert.LessOrEqual(t, s.Y, 600-IconBoxSize)
		assert.LessOrEqual(t, math.Abs(s.VX), IconMovementSpeed/2)
		assert.LessOrEqual(t, math.Abs(s.Spin), IconRotationSpeed/2)
		assert.Equal(t, IconBoxSize/2, s.Radius)
		assert.Equal(t, IconOpacity, s.Opacity)
	}
}

func TestNewFieldTinyCanvasCentres(t *testing.T) {
	f := NewField(20, 20, IconParams(2), seeded())

	for _, s := range f.Sprites {
		assert.Equal(t, 10.0, s.X)
		assert.Equal(t, 10.0, s.Y)
	}
}

func TestStarParamsDefaults(t *testing.T) {
	p := StarParams(0, 0, 0, 0)

	assert.Equal(t, StarDensity, p.Count)
	assert.Equal(t, StarMinSize, p.MinRadius)
	assert.Equal(t, StarMaxSize, p.MaxRadius)
	assert.Equal(t, StarSpeed, p.Speed)

	f := NewField(1000, 800, p, seeded())
	for _, s := range f.Sprites {
		assert.GreaterOrEqual(t, s.Radius, StarMinSize)
		assert.LessOrEqual(t, s.Radius, StarMaxSize)
		assert.GreaterOrEqual(t, s.Opacity, StarMinOpacity)
		assert.LessOrEqual(t, s.Opacity, StarMaxOpacity)
	}
}

func TestStepIntegratesScaledByTime(t *testing.T) {
	p := IconParams(0)
	f := lone(1000, 1000, p, Sprite{X: 500, Y: 500, VX: 1, VY: -0.5, Radius: 25})

	f.Step(2)

	s := f.Sprites[0]
	assert.InDelta(t, 502, s.X, 1e-9)
	assert.InDelta(t, 499, s.Y, 1e-9)
	assert.InDelta(t, 1*math.Pow(Decay, 2), s.VX, 1e-9)
	assert.InDelta(t, -0.5*math.Pow(Decay, 2), s.VY, 1e-9)
}

func TestStepBouncesOffEdges(t *testing.T) {
	p := IconParams(0)
	f := lone(200, 200, p, Sprite{X: 176, Y: 26, VX: 1.5, VY: -1.5, Radius: 25})

	f.Step(1)

	s := f.Sprites[0]
	assert.Less(t, s.VX, 0.0, "right wall inverts vx")
	assert.Greater(t, s.VY, 0.0, "top wall inverts vy")
	assert.InDelta(t, -1.5*EdgeRestitution*Decay, s.VX, 1e-9)
	assert.InDelta(t, 176-1.5*EdgeRestitution, s.X, 1e-9)
	assert.InDelta(t, 26+1.5*EdgeRestitution, s.Y, 1e-9)
}

func TestStepEdgeBounceClampsIconSpeed(t *testing.T) {
	p := IconParams(0)
	f := lone(200, 200, p, Sprite{X: 174, Y: 100, VX: 5, VY: 0.5, Radius: 25})

	f.Step(1)

	assert.InDelta(t, -IconMaxSpeed*Decay, f.Sprites[0].VX, 1e-9)
}

func TestStepKeepsMinimumSpeed(t *testing.T) {
	p := IconParams(0)
	f := lone(1000, 1000, p,
		Sprite{X: 300, Y: 300, VX: 0, VY: -0.01, Radius: 25},
	)

	f.Step(1)

	assert.Equal(t, MinSpeed, f.Sprites[0].VX)
	assert.Equal(t, -MinSpeed, f.Sprites[0].VY)
}

func TestStepFlickerStaysInRange(t *testing.T) {
	f := NewField(600, 400, StarParams(25, 2, 4, 1), seeded())

	for i := 0; i < 500; i++ {
		f.Step(1)
	}
	for _, s := range f.Sprites {
		assert.GreaterOrEqual(t, s.Opacity, StarMinOpacity)
		assert.LessOrEqual(t, s.Opacity, StarMaxOpacity)
	}
}

func TestStepResolvesOverlaps(t *testing.T) {
	p := IconParams(0)
	f := lone(1000, 1000, p,
		Sprite{X: 480, Y: 500, VX: 1, VY: 0.1, Radius: 25},
		Sprite{X: 500, Y: 500, VX: -1, VY: 0.1, Radius: 25},
	)

	f.Step(1)

	a, b := f.Sprites[0], f.Sprites[1]
	assert.InDelta(t, 50, b.X-a.X, 1e-9, "pair is pushed to touching distance")
	assert.Less(t, a.VX, 0.0)
	assert.Greater(t, b.VX, 0.0)
}

func TestResizeDoesNotClamp(t *testing.T) {
	f := lone(1000, 1000, IconParams(0), Sprite{X: 900, Y: 900, Radius: 25})

	f.Resize(400, 300)

	assert.Equal(t, 400.0, f.Width)
	assert.Equal(t, 300.0, f.Height)
	assert.Equal(t, 900.0, f.Sprites[0].X)
	assert.Equal(t, 900.0, f.Sprites[0].Y)
}

func TestStepSteersStrandedSpriteInward(t *testing.T) {
	f := lone(1000, 1000, IconParams(0), Sprite{X: 900, Y: 900, VX: 0.5, VY: 0.5, Radius: 25})
	f.Resize(400, 300)

	f.Step(1)
	s := f.Sprites[0]
	assert.Less(t, s.VX, 0.0)
	assert.Less(t, s.VY, 0.0)
	assert.Less(t, s.X, 900.0)
	assert.Less(t, s.Y, 900.0)

	for i := 0; i < 10000; i++ {
		f.Step(1)
	}
	s = f.Sprites[0]
	assert.GreaterOrEqual(t, s.X, 25.0)
	assert.LessOrEqual(t, s.X, 375.0)
	assert.GreaterOrEqual(t, s.Y, 25.0)
	assert.LessOrEqual(t, s.Y, 275.0)
}

func TestShrunkFieldReturnsInside(t *testing.T) {
	f := NewField(1600, 1000, IconParams(9), seeded())
	f.Resize(400, 300)

	for i := 0; i < 20000; i++ {
		f.Step(1)
	}
	for i, s := range f.Sprites {
		assert.True(t, s.X >= 0 && s.X <= 400, "sprite %d x=%.1f", i, s.X)
		assert.True(t, s.Y >= 0 && s.Y <= 300, "sprite %d y=%.1f", i, s.Y)
	}
}

func TestStepCapsTimeScale(t *testing.T) {
	f := lone(1000, 1000, IconParams(0), Sprite{X: 500, Y: 500, VX: 1, VY: 1, Radius: 25})

	f.Step(1200)

	assert.InDelta(t, 500+MaxTimeScale, f.Sprites[0].X, 1e-9)
	assert.InDelta(t, 500+MaxTimeScale, f.Sprites[0].Y, 1e-9)
}

func TestFieldStaysBoundedOverTime(t *testing.T) {
	f := NewField(800, 600, IconParams(9), seeded())

	for i := 0; i < 2000; i++ {
		f.Step(1)
	}
	for _, s := range f.Sprites {
		assert.False(t, math.IsNaN(s.X) || math.IsNaN(s.Y))
		assert.LessOrEqual(t, math.Abs(s.VX), IconMaxSpeed)
		assert.LessOrEqual(t, math.Abs(s.VY), IconMaxSpeed)
		assert.GreaterOrEqual(t, math.Abs(s.VX), MinSpeed)
	}
}
