package aspen

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenVec2, TweenColor, TweenFloat) and call
// Update with the frame delta; values are written to the target fields in
// place. Done reports completion.
//
// There is no global animation manager. Entities own their groups and advance
// them from Update.
type TweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
	Done   bool
}

// Update advances all tweens by delta and writes the current values to the
// target fields. A finished group is inert.
func (g *TweenGroup) Update(delta time.Duration) {
	if g.Done {
		return
	}
	dt := float32(delta.Seconds())
	allDone := true
	for i := 0; i < g.count; i++ {
		value, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(value)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenVec2 animates both components of a vector to the given target over
// duration seconds using the easing function.
func TweenVec2(v *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	return g
}

// TweenColor animates all four components of a color to the target color over
// duration seconds using the easing function.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// TweenFloat animates a single value to the target over duration seconds
// using the easing function.
func TweenFloat(f *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*f), float32(to), duration, fn)
	g.fields[0] = f
	return g
}
