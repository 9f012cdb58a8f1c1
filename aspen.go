package aspen

import (
	"encoding/binary"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns the component-wise difference of v and other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// MagnitudeSquared returns the squared length of v. Cheaper than Magnitude
// when only comparisons are needed.
func (v Vec2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Magnitude returns the length of v.
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.Scale(1 / m)
}

// Size is a width/height pair in world units.
type Size struct {
	Width, Height float64
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA8 packs the color into a little-endian RGBA byte quad, the layout
// vertex streams carry color in.
func (c Color) RGBA8() uint32 {
	var b [4]byte
	b[0] = uint8(math.Round(clamp01(c.R) * 255))
	b[1] = uint8(math.Round(clamp01(c.G) * 255))
	b[2] = uint8(math.Round(clamp01(c.B) * 255))
	b[3] = uint8(math.Round(clamp01(c.A) * 255))
	return binary.LittleEndian.Uint32(b[:])
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Names are plain string keys. Scenes own entities, so an EntityName only has
// to be unique within its scene; every other name is a global key.
type (
	// SceneName identifies a scene across the pending, active, and
	// suspended buckets.
	SceneName string
	// EntityName identifies an entity within its scene.
	EntityName string
	// EntityType is a host-defined coarse classification of an entity.
	EntityType string
	// SpriteSheetName identifies a loaded sprite sheet.
	SpriteSheetName string
	// WindowName identifies a window descriptor in the resource table.
	WindowName string
	// WindowID is a platform-assigned handle for a created window.
	WindowID string
	// RenderTargetName is the external renderer's handle for the GPU
	// pipeline and buffers backing a scene.
	RenderTargetName string
	// UniformBufferName identifies a small GPU-visible data block updated
	// outside the vertex/index stream.
	UniformBufferName string
)

// Visibility toggles whether a render target is drawn.
type Visibility uint8

const (
	// Visible render targets are drawn every frame.
	Visible Visibility = iota
	// Hidden render targets keep their buffers but are not drawn.
	Hidden
)

// String returns "visible" or "hidden".
func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}
