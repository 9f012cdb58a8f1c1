package aspen

import (
	"math"
	"sort"
)

// Scene is a named, ordered group of entities sharing one render target and
// window. The Game owns scenes by lifecycle bucket; a Scene exclusively owns
// its entities.
type Scene struct {
	// Name must be unique across the pending, active, and suspended
	// buckets at the same time.
	Name             SceneName
	RenderTarget     RenderTargetName
	TargetWindow     WindowName
	ShaderDescriptor ShaderDescriptor
	Entities         []Entity
	// ZIndex breaks draw-order ties between scenes on the same window.
	ZIndex int
}

// sortEntitiesByZ stable-sorts the entity list by Z ascending. A NaN Z is an
// unrecoverable ordering violation.
func sortEntitiesByZ(entities []Entity) {
	for _, e := range entities {
		if math.IsNaN(e.Z()) {
			panic("aspen: entity " + string(e.Name()) + " has NaN z")
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Z() < entities[j].Z()
	})
}

// resolveSheets looks up an entity's sprite sheets in the loaded table.
// Missing sheets resolve to nil so the entity renders without them.
func resolveSheets(entity Entity, table map[SpriteSheetName]*SpriteSheet) []*SpriteSheet {
	names := entity.SpriteSheets()
	if len(names) == 0 {
		return nil
	}
	sheets := make([]*SpriteSheet, len(names))
	for i, name := range names {
		sheets[i] = table[name]
	}
	return sheets
}

// StaticRender renders the scene once, outside the simulation loop, without
// updating any entity, and posts the resulting buffers. Used for
// static/non-simulated redraws.
func (s *Scene) StaticRender(sheets map[SpriteSheetName]*SpriteSheet, queue EventQueue) {
	vertices := NewVertexBuffer()
	indices := NewIndexBuffer()
	sortEntitiesByZ(s.Entities)
	for _, entity := range s.Entities {
		entity.Render(vertices, indices, resolveSheets(entity, sheets))
	}
	queue.Post(RenderUpdateEvent{
		Target:   s.RenderTarget,
		Vertices: vertices,
		Indices:  indices,
	})
}

// HandleKeyInput fans a key event out to every entity and collects the
// produced events.
func (s *Scene) HandleKeyInput(event KeyEvent) []ExternalEvent {
	var events []ExternalEvent
	for _, entity := range s.Entities {
		events = append(events, entity.HandleKeyInput(event)...)
	}
	return events
}

// HandleMouseInput fans a mouse event out to every entity and collects the
// produced events.
func (s *Scene) HandleMouseInput(event MouseEvent) []ExternalEvent {
	var events []ExternalEvent
	for _, entity := range s.Entities {
		events = append(events, entity.HandleMouseInput(event)...)
	}
	return events
}

// removeEntity deletes the named entity and notifies every remaining entity
// through DeleteChildEntity. The notification is a broadcast, not a targeted
// call. Reports whether the entity was present.
func (s *Scene) removeEntity(name EntityName) bool {
	found := false
	kept := s.Entities[:0]
	for _, entity := range s.Entities {
		if entity.Name() == name {
			found = true
			continue
		}
		kept = append(kept, entity)
	}
	s.Entities = kept
	if found {
		for _, entity := range s.Entities {
			entity.DeleteChildEntity(name)
		}
	}
	return found
}
