package aspen

// BoundingBox is an axis-aligned box described by its center point and size.
// Both the negative sides (Anchor - Size/2) and the positive sides
// (Anchor + Size/2) are inclusive.
//
// Boxes are value types recomputed every frame from the owning entity's
// state; they are never persisted independently.
type BoundingBox struct {
	// Anchor is the middle point of the box.
	Anchor Vec2
	Size   Size
}

// ContainsPoint reports whether p lies inside the box. Points on the edge are
// considered inside.
func (b BoundingBox) ContainsPoint(p Vec2) bool {
	offset := p.Sub(b.Anchor)
	halfW := b.Size.Width / 2
	halfH := b.Size.Height / 2
	return offset.X >= -halfW && offset.X <= halfW &&
		offset.Y >= -halfH && offset.Y <= halfH
}

// ContainsBox reports whether other lies fully inside b, testing both of
// other's corners.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	half := Vec2{other.Size.Width / 2, other.Size.Height / 2}
	return b.ContainsPoint(other.Anchor.Sub(half)) &&
		b.ContainsPoint(other.Anchor.Add(half))
}

// Intersects reports whether b and other overlap. Boxes that only touch at an
// edge do not count as intersecting.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	bw := b.Size.Width / 2
	bh := b.Size.Height / 2
	ow := other.Size.Width / 2
	oh := other.Size.Height / 2
	return b.Anchor.X-bw < other.Anchor.X+ow &&
		b.Anchor.X+bw > other.Anchor.X-ow &&
		b.Anchor.Y-bh < other.Anchor.Y+oh &&
		b.Anchor.Y+bh > other.Anchor.Y-oh
}

// ClampBoxInside returns the nearest anchor for other such that other lies
// inside b, clamping each axis independently. If other already fits, ok is
// false and no correction is needed. If other's extent on an axis is not
// smaller than b's, that axis cannot be contained and snaps to b's own
// anchor.
func (b BoundingBox) ClampBoxInside(other BoundingBox) (anchor Vec2, ok bool) {
	if b.ContainsBox(other) {
		return Vec2{}, false
	}
	anchor.X = clampAxis(b.Anchor.X, other.Anchor.X, b.Size.Width, other.Size.Width)
	anchor.Y = clampAxis(b.Anchor.Y, other.Anchor.Y, b.Size.Height, other.Size.Height)
	return anchor, true
}

// clampAxis computes the corrected anchor coordinate for one axis.
// sizeDifference is negative when other fits on this axis; a distance within
// it needs no correction, otherwise the anchor shifts so other's nearer edge
// touches b's edge.
func clampAxis(selfAnchor, otherAnchor, selfExtent, otherExtent float64) float64 {
	if otherExtent >= selfExtent {
		return selfAnchor
	}
	sizeDifference := (otherExtent - selfExtent) / 2
	distance := selfAnchor - otherAnchor
	switch {
	case distance <= -sizeDifference && distance >= sizeDifference:
		return otherAnchor
	case distance > 0:
		return otherAnchor + distance + sizeDifference
	default:
		return otherAnchor + distance - sizeDifference
	}
}
