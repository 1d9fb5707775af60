package sprites

// Floating icon constants. Distances are CSS pixels, speeds are pixels per
// 60 Hz frame.
const (
	// IconSize is the drawn icon edge
	IconSize = 30.0
	// IconPadding surrounds the icon inside its rounded box
	IconPadding = 10.0
	// IconBoxSize is the rounded box edge; half of it is the collision radius
	IconBoxSize = IconSize + IconPadding*2
	// IconMovementSpeed is the spread of the initial velocity
	IconMovementSpeed = 1.5
	// IconMaxSpeed clamps every velocity component after bounces
	IconMaxSpeed = 1.6
	// IconRotationSpeed is the spread of the initial spin (radians per frame)
	IconRotationSpeed = 0.003
	// IconSpinKick is the spread of the spin added by a collision
	IconSpinKick = 0.0005
	// IconOpacity is constant for icons
	IconOpacity = 0.6
)

// Shooting star defaults.
const (
	StarDensity = 25
	StarMinSize = 2.0
	StarMaxSize = 4.0
	StarSpeed   = 1.0
	// StarFlicker is the spread of the per-frame opacity drift
	StarFlicker = 0.01
	// StarOpacityKick is the spread of the opacity change on collision
	StarOpacityKick = 0.1
	StarMinOpacity  = 0.7
	StarMaxOpacity  = 1.0
)

// Shared motion constants.
const (
	// Decay is the velocity multiplier per frame
	Decay = 0.995
	// EdgeRestitution scales the inverted velocity on a wall bounce
	EdgeRestitution = 0.9
	// MinSpeed keeps sprites from stalling
	MinSpeed = 0.1
	// Bounce is the restitution of sprite-sprite collisions
	Bounce = 0.85
	// FPS is the update rate cap
	FPS = 60.0
	// MaxTimeScale bounds the frames a single Step may cover
	MaxTimeScale = 4.0
)

// Params configures a Field.
type Params struct {
	Count     int
	MinRadius float64
	MaxRadius float64
	// EdgeMargin multiplies a sprite's radius to get its distance from the
	// canvas edge at which it bounces.
	EdgeMargin float64
	Speed      float64
	SpinSpeed  float64
	// MaxSpeed clamps velocity components after bounces; zero disables it.
	MaxSpeed        float64
	MinSpeed        float64
	Decay           float64
	EdgeRestitution float64
	Bounce          float64
	SpinKick        float64

	MinOpacity  float64
	MaxOpacity  float64
	Flicker     float64
	OpacityKick float64

	Collide bool
}

// IconParams is the floating icon field with n icons.
func IconParams(n int) Params {
	return Params{
		Count:           n,
		MinRadius:       IconBoxSize / 2,
		MaxRadius:       IconBoxSize / 2,
		EdgeMargin:      1,
		Speed:           IconMovementSpeed,
		SpinSpeed:       IconRotationSpeed,
		MaxSpeed:        IconMaxSpeed,
		MinSpeed:        MinSpeed,
		Decay:           Decay,
		EdgeRestitution: EdgeRestitution,
		Bounce:          Bounce,
		SpinKick:        IconSpinKick,
		MinOpacity:      IconOpacity,
		MaxOpacity:      IconOpacity,
		Collide:         true,
	}
}

// StarParams is the shooting star field. Zero arguments take the defaults.
func StarParams(density int, minSize, maxSize, speed float64) Params {
	if density <= 0 {
		density = StarDensity
	}
	if minSize <= 0 {
		minSize = StarMinSize
	}
	if maxSize < minSize {
		maxSize = StarMaxSize
		if maxSize < minSize {
			maxSize = minSize
		}
	}
	if speed <= 0 {
		speed = StarSpeed
	}
	return Params{
		Count:           density,
		MinRadius:       minSize,
		MaxRadius:       maxSize,
		EdgeMargin:      2,
		Speed:           speed,
		MinSpeed:        MinSpeed,
		Decay:           Decay,
		EdgeRestitution: EdgeRestitution,
		Bounce:          Bounce,
		MinOpacity:      StarMinOpacity,
		MaxOpacity:      StarMaxOpacity,
		Flicker:         StarFlicker,
		OpacityKick:     StarOpacityKick,
		Collide:         true,
	}
}
