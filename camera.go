package aspen

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// cameraDecelerationThreshold is compared against the per-tick velocity
// components; below it an axis is considered coasting and its offset decays.
const cameraDecelerationThreshold = 1e-4

// Camera follow failures. Callers log these and skip the frame's camera
// update; they are never fatal.
var (
	ErrNoTargetEntity = fmt.Errorf("camera target entity not found")
	ErrNoBoundEntity  = fmt.Errorf("camera bound entity not found")
)

// CameraDescriptor configures a Camera.
type CameraDescriptor struct {
	// Name is the uniform buffer the camera writes its view matrix to.
	Name     UniformBufferName
	ViewSize Size
	// Speed is the offset speed in world units per second of held input;
	// reaching it takes AccelerationSteps ticks.
	Speed             float64
	AccelerationSteps int
	// TargetEntity is the entity the camera re-centers on each frame.
	TargetEntity EntityName
	// BoundEntity optionally names the entity whose bounding box restricts
	// the camera: the box described by the camera's position and ViewSize
	// stays inside it. Empty means unbounded.
	BoundEntity EntityName
	// MaxOffsetPosition caps the offset magnitude: the camera may lead its
	// target by at most this many world units in any direction.
	MaxOffsetPosition float64
}

// Camera is a built-in Entity that follows a target entity and is optionally
// clamped inside a bound entity's box. It references both by name and
// resolves them against the sibling list every frame; it never owns or
// caches the entities themselves.
type Camera struct {
	name           EntityName
	uniformName    UniformBufferName
	position       Vec2
	offsetPosition Vec2
	maxOffset      float64
	decayFactor    float64
	velocity       *VelocityController
	viewSize       Size
	targetEntity   EntityName
	boundEntity    EntityName
	pan            *TweenGroup
}

// NewCamera builds a camera from its descriptor. The controller's per-tick
// speed is Speed / AccelerationSteps, and the per-tick exponential decay of
// the offset is 1 - 1/AccelerationSteps, which yields inertial drift-to-stop
// instead of an instant halt.
func NewCamera(descriptor CameraDescriptor) *Camera {
	steps := float64(descriptor.AccelerationSteps)
	return &Camera{
		name:         EntityName(descriptor.Name),
		uniformName:  descriptor.Name,
		maxOffset:    descriptor.MaxOffsetPosition,
		decayFactor:  1 - 1/steps,
		velocity:     NewVelocityController(descriptor.Speed / steps),
		viewSize:     descriptor.ViewSize,
		targetEntity: descriptor.TargetEntity,
		boundEntity:  descriptor.BoundEntity,
	}
}

// UniformName returns the uniform buffer the camera writes to.
func (c *Camera) UniformName() UniformBufferName {
	return c.uniformName
}

// ResetOffset stops the controller, cancels any pan, and zeroes the offset
// instantly, so reactivating a suspended scene shows no residual drift.
func (c *Camera) ResetOffset() {
	c.velocity.StopMovement()
	c.offsetPosition = Vec2{}
	c.pan = nil
}

// PanTo animates the camera offset to the given displacement over duration
// seconds. The pan overrides key-driven offset movement until it completes;
// the radial cap and bound clamping still apply.
func (c *Camera) PanTo(offset Vec2, duration float32, easeFn ease.TweenFunc) {
	c.pan = TweenVec2(&c.offsetPosition, offset, duration, easeFn)
}

// Advance runs one frame of the follow-and-clamp algorithm against the
// current entity list. On a missing target or bound entity the camera state
// is left as is and the matching sentinel error is returned.
func (c *Camera) Advance(entities []Entity, delta time.Duration) error {
	target := findEntity(entities, c.targetEntity)
	if target == nil {
		return fmt.Errorf("%w: %q", ErrNoTargetEntity, c.targetEntity)
	}

	if c.pan != nil {
		c.pan.Update(delta)
		if c.pan.Done {
			c.pan = nil
		}
	} else {
		velocity := c.velocity.Velocity()
		if math.Abs(velocity.X) <= cameraDecelerationThreshold {
			c.offsetPosition.X *= c.decayFactor
		}
		if math.Abs(velocity.Y) <= cameraDecelerationThreshold {
			c.offsetPosition.Y *= c.decayFactor
		}
		c.offsetPosition = c.offsetPosition.Add(velocity)
	}
	if c.offsetPosition.MagnitudeSquared() >= c.maxOffset*c.maxOffset {
		c.offsetPosition = c.offsetPosition.Normalize().Scale(c.maxOffset)
	}

	c.position = target.Position()

	if c.boundEntity != "" {
		bound := findEntity(entities, c.boundEntity)
		if bound == nil {
			return fmt.Errorf("%w: %q", ErrNoBoundEntity, c.boundEntity)
		}
		corrected, ok := bound.BoundingBox().ClampBoxInside(BoundingBox{
			Anchor: c.position.Add(c.offsetPosition),
			Size:   c.viewSize,
		})
		if ok {
			// Keep the offset; move the anchor so offset+anchor lands
			// on the corrected, in-bounds point.
			c.position = corrected.Sub(c.offsetPosition)
		}
	}
	return nil
}

// Bytes encodes the camera's uniform contents: a column-major 2D
// orthographic-style projection of six little-endian float32 values mapping
// the view rectangle around position+offset to clip space.
func (c *Camera) Bytes() []byte {
	center := c.position.Add(c.offsetPosition)
	return encodeViewMatrix(c.viewSize, center)
}

// StaticCameraMatrix returns the uniform contents of a fixed camera at the
// origin, for render targets that never scroll.
func StaticCameraMatrix(viewSize Size) []byte {
	return encodeViewMatrix(viewSize, Vec2{})
}

func encodeViewMatrix(viewSize Size, center Vec2) []byte {
	columns := [6]float64{
		2 / viewSize.Width, 0,
		0, 2 / viewSize.Height,
		-2 * center.X / viewSize.Width, -2 * center.Y / viewSize.Height,
	}
	buf := make([]byte, 0, 24)
	for _, v := range columns {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
	}
	return buf
}

func findEntity(entities []Entity, name EntityName) Entity {
	for _, e := range entities {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// Camera composes uniformly with the update loop as an Entity.

// Update advances the camera and logs instead of failing; a missing
// reference skips the frame's camera movement.
func (c *Camera) Update(others []Entity, delta time.Duration, _ SceneName) []ExternalEvent {
	if err := c.Advance(others, delta); err != nil {
		logger.Error("camera update failed", "camera", c.name, "err", err)
	}
	return nil
}

// Render draws nothing; the camera only produces uniform updates.
func (c *Camera) Render(*VertexBuffer, *IndexBuffer, []*SpriteSheet) {}

func (c *Camera) SpriteSheets() []SpriteSheetName { return nil }

// HandleKeyInput toggles the WASD movement directions. The camera does not
// react to other keys.
func (c *Camera) HandleKeyInput(event KeyEvent) []ExternalEvent {
	switch event.Key {
	case KeyW:
		c.velocity.SetDirection(DirectionUp, event.Pressed)
	case KeyA:
		c.velocity.SetDirection(DirectionLeft, event.Pressed)
	case KeyS:
		c.velocity.SetDirection(DirectionDown, event.Pressed)
	case KeyD:
		c.velocity.SetDirection(DirectionRight, event.Pressed)
	}
	return nil
}

func (c *Camera) HandleMouseInput(MouseEvent) []ExternalEvent { return nil }

func (c *Camera) Name() EntityName { return c.name }

// BoundingBox is the camera viewport centered on position+offset.
func (c *Camera) BoundingBox() BoundingBox {
	return BoundingBox{
		Anchor: c.position.Add(c.offsetPosition),
		Size:   c.viewSize,
	}
}

func (c *Camera) EntityType() EntityType { return "camera" }

func (c *Camera) Z() float64 { return 0 }

func (c *Camera) Position() Vec2 { return c.position.Add(c.offsetPosition) }

func (c *Camera) DeleteChildEntity(EntityName) {}

func (c *Camera) HandleEvent(EntityEvent) []ExternalEvent { return nil }

// Offset returns the camera's current free-floating displacement from its
// target.
func (c *Camera) Offset() Vec2 { return c.offsetPosition }
