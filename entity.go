package aspen

import "time"

// EntityEvent is an opaque host-defined payload delivered to a single entity
// through an entity-targeted external event. Entities type-assert it to the
// host's concrete event type.
type EntityEvent any

// Entity is the capability contract every simulated object implements.
// Scenes exclusively own their entities as a polymorphic collection; entities
// are destroyed only by explicit deletion requests or scene deletion.
//
// Embed BaseEntity to pick up no-op defaults for the methods an entity does
// not care about; a concrete entity then only supplies Name, BoundingBox,
// Position, and whatever behavior it has.
type Entity interface {
	// Update advances the entity by delta. others is the full
	// current-frame sibling list excluding the entity itself; cross-entity
	// effects happen only through the returned events, never by mutating a
	// sibling directly.
	Update(others []Entity, delta time.Duration, scene SceneName) []ExternalEvent
	// Render appends the entity's vertices and indices to the frame's
	// shared buffers. sheets holds the resolved sprite sheets in the order
	// of SpriteSheets; an entry is nil when the sheet is not loaded yet.
	Render(vertices *VertexBuffer, indices *IndexBuffer, sheets []*SpriteSheet)
	// SpriteSheets lists the sheets the entity renders with.
	SpriteSheets() []SpriteSheetName
	// HandleKeyInput reacts to a key event on the scene's window.
	HandleKeyInput(event KeyEvent) []ExternalEvent
	// HandleMouseInput reacts to a mouse event on the scene's window.
	HandleMouseInput(event MouseEvent) []ExternalEvent
	// Name returns the entity's identity, unique within its scene.
	Name() EntityName
	// BoundingBox returns the entity's current box, recomputed on demand.
	BoundingBox() BoundingBox
	// EntityType returns the host-defined classification.
	EntityType() EntityType
	// Z is the draw-order key; entities are stable-sorted by it ascending
	// every frame. NaN is a fatal condition.
	Z() float64
	// Position returns the entity's world position.
	Position() Vec2
	// DeleteChildEntity tells the entity that a sibling was deleted, so
	// parents holding child references can clean up.
	DeleteChildEntity(name EntityName)
	// HandleEvent delivers an entity-targeted host event.
	HandleEvent(event EntityEvent) []ExternalEvent
}

// BaseEntity provides no-op defaults for the optional Entity capabilities.
type BaseEntity struct{}

func (BaseEntity) Update([]Entity, time.Duration, SceneName) []ExternalEvent { return nil }

func (BaseEntity) Render(*VertexBuffer, *IndexBuffer, []*SpriteSheet) {}

func (BaseEntity) SpriteSheets() []SpriteSheetName { return nil }

func (BaseEntity) HandleKeyInput(KeyEvent) []ExternalEvent { return nil }

func (BaseEntity) HandleMouseInput(MouseEvent) []ExternalEvent { return nil }

func (BaseEntity) EntityType() EntityType { return "" }

func (BaseEntity) Z() float64 { return 0 }

func (BaseEntity) DeleteChildEntity(EntityName) {}

func (BaseEntity) HandleEvent(EntityEvent) []ExternalEvent { return nil }
