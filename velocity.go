package aspen

// Direction is one of the four cardinal movement directions.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionRight
	DirectionDown
	DirectionLeft
)

// VelocityController accumulates 4-directional key state into a 2D velocity
// vector. Diagonal movement is normalized to unit length before scaling by
// speed, so the 8 diagonal combinations move at the same speed as the 4
// cardinal ones.
type VelocityController struct {
	speed float64
	up    bool
	right bool
	down  bool
	left  bool
}

// NewVelocityController creates a controller that yields vectors of length
// speed while any direction is held.
func NewVelocityController(speed float64) *VelocityController {
	return &VelocityController{speed: speed}
}

// SetDirection marks one direction as pressed or released.
func (v *VelocityController) SetDirection(direction Direction, pressed bool) {
	switch direction {
	case DirectionUp:
		v.up = pressed
	case DirectionRight:
		v.right = pressed
	case DirectionDown:
		v.down = pressed
	case DirectionLeft:
		v.left = pressed
	}
}

// StopMovement clears all direction flags.
func (v *VelocityController) StopMovement() {
	v.up = false
	v.right = false
	v.down = false
	v.left = false
}

// Velocity returns the current velocity vector: the sum of unit contributions
// per held direction (up = +Y, right = +X, down = -Y, left = -X), normalized
// when the magnitude reaches 1, scaled by speed. Pure function of the current
// flags.
func (v *VelocityController) Velocity() Vec2 {
	var velocity Vec2
	if v.up {
		velocity.Y++
	}
	if v.right {
		velocity.X++
	}
	if v.down {
		velocity.Y--
	}
	if v.left {
		velocity.X--
	}
	if velocity.MagnitudeSquared() >= 1 {
		velocity = velocity.Normalize()
	}
	return velocity.Scale(v.speed)
}
