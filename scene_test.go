package aspen

import (
	"math"
	"testing"
)

// sceneTestEvent is a host event used to observe input fan-out.
type sceneTestEvent struct {
	BaseExternalEvent
	from EntityName
}

// inputEntity records input fan-out and child deletions.
type inputEntity struct {
	stubEntity
	keys            []KeyEvent
	mice            []MouseEvent
	deletedChildren []EntityName
}

func (e *inputEntity) HandleKeyInput(event KeyEvent) []ExternalEvent {
	e.keys = append(e.keys, event)
	return []ExternalEvent{sceneTestEvent{from: e.name}}
}

func (e *inputEntity) HandleMouseInput(event MouseEvent) []ExternalEvent {
	e.mice = append(e.mice, event)
	return nil
}

func (e *inputEntity) DeleteChildEntity(name EntityName) {
	e.deletedChildren = append(e.deletedChildren, name)
}

func TestSortEntitiesByZ(t *testing.T) {
	a := &stubEntity{name: "a", z: 3}
	b := &stubEntity{name: "b", z: -1}
	c := &stubEntity{name: "c", z: 0}
	d := &stubEntity{name: "d", z: 0}
	entities := []Entity{a, b, c, d}
	sortEntitiesByZ(entities)
	want := []EntityName{"b", "c", "d", "a"}
	for i, name := range want {
		if entities[i].Name() != name {
			t.Errorf("entities[%d] = %s, want %s", i, entities[i].Name(), name)
		}
	}
}

func TestSortEntitiesByZStable(t *testing.T) {
	// Equal z keeps insertion order.
	first := &stubEntity{name: "first", z: 5}
	second := &stubEntity{name: "second", z: 5}
	entities := []Entity{first, second}
	sortEntitiesByZ(entities)
	if entities[0].Name() != "first" || entities[1].Name() != "second" {
		t.Errorf("equal-z order changed: %s, %s", entities[0].Name(), entities[1].Name())
	}
}

func TestSortEntitiesByZPanicsOnNaN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a NaN z")
		}
	}()
	sortEntitiesByZ([]Entity{&stubEntity{name: "bad", z: math.NaN()}})
}

func TestSceneKeyInputFanOut(t *testing.T) {
	a := &inputEntity{stubEntity: stubEntity{name: "a"}}
	b := &inputEntity{stubEntity: stubEntity{name: "b"}}
	scene := &Scene{Name: "level", Entities: []Entity{a, b}}

	events := scene.HandleKeyInput(KeyEvent{Key: KeyW, Pressed: true})
	if len(a.keys) != 1 || len(b.keys) != 1 {
		t.Errorf("key fan-out reached %d and %d entities, want 1 and 1", len(a.keys), len(b.keys))
	}
	if len(events) != 2 {
		t.Fatalf("collected %d events, want 2", len(events))
	}
	if events[0].(sceneTestEvent).from != "a" || events[1].(sceneTestEvent).from != "b" {
		t.Error("collected events out of entity order")
	}
}

func TestSceneMouseInputFanOut(t *testing.T) {
	a := &inputEntity{stubEntity: stubEntity{name: "a"}}
	scene := &Scene{Name: "level", Entities: []Entity{a}}
	scene.HandleMouseInput(MouseEvent{Button: MouseButtonLeft, Pressed: true, Position: Vec2{X: 4, Y: -2}})
	if len(a.mice) != 1 {
		t.Fatalf("mouse fan-out reached %d entities, want 1", len(a.mice))
	}
	if a.mice[0].Position != (Vec2{X: 4, Y: -2}) {
		t.Errorf("mouse position = %v, want (4,-2)", a.mice[0].Position)
	}
}

func TestRemoveEntityBroadcastsDeletion(t *testing.T) {
	parent := &inputEntity{stubEntity: stubEntity{name: "parent"}}
	other := &inputEntity{stubEntity: stubEntity{name: "other"}}
	child := &stubEntity{name: "child"}
	scene := &Scene{Name: "level", Entities: []Entity{parent, child, other}}

	if !scene.removeEntity("child") {
		t.Fatal("removeEntity returned false for a present entity")
	}
	if len(scene.Entities) != 2 {
		t.Fatalf("scene has %d entities after removal, want 2", len(scene.Entities))
	}
	for _, e := range []*inputEntity{parent, other} {
		if len(e.deletedChildren) != 1 || e.deletedChildren[0] != "child" {
			t.Errorf("%s deletions = %v, want [child]", e.name, e.deletedChildren)
		}
	}
}

func TestRemoveEntityMissing(t *testing.T) {
	parent := &inputEntity{stubEntity: stubEntity{name: "parent"}}
	scene := &Scene{Name: "level", Entities: []Entity{parent}}
	if scene.removeEntity("ghost") {
		t.Error("removeEntity returned true for an absent entity")
	}
	if len(parent.deletedChildren) != 0 {
		t.Errorf("deletion broadcast fired for an absent entity: %v", parent.deletedChildren)
	}
}

// renderEntity pushes one recognizable vertex.
type renderEntity struct {
	stubEntity
	sheets []SpriteSheetName
	seen   []*SpriteSheet
}

func (e *renderEntity) SpriteSheets() []SpriteSheetName { return e.sheets }

func (e *renderEntity) Render(vertices *VertexBuffer, indices *IndexBuffer, sheets []*SpriteSheet) {
	e.seen = sheets
	base := uint16(vertices.Len())
	vertices.Push(SimpleVertex{Position: e.position}.Encode())
	indices.Push(base)
}

func TestStaticRenderPostsBuffers(t *testing.T) {
	back := &renderEntity{stubEntity: stubEntity{name: "back", z: 0}}
	front := &renderEntity{stubEntity: stubEntity{name: "front", z: 1}}
	scene := &Scene{Name: "level", RenderTarget: "level", Entities: []Entity{front, back}}
	queue := &recordQueue{}

	scene.StaticRender(nil, queue)

	posted := queue.single(t)
	update, ok := posted.(RenderUpdateEvent)
	if !ok {
		t.Fatalf("posted %T, want RenderUpdateEvent", posted)
	}
	if update.Target != "level" {
		t.Errorf("render target = %s, want level", update.Target)
	}
	if update.Vertices.Len() != 2 || update.Indices.Len() != 2 {
		t.Errorf("buffers hold %d vertices and %d indices, want 2 and 2", update.Vertices.Len(), update.Indices.Len())
	}
	// StaticRender sorts by z, so back renders first.
	if scene.Entities[0].Name() != "back" {
		t.Errorf("first entity after render = %s, want back", scene.Entities[0].Name())
	}
}

func TestResolveSheets(t *testing.T) {
	table := map[SpriteSheetName]*SpriteSheet{
		"tiles": NewSpriteSheet(1, SpriteSheetDimensions{Rows: 2, Columns: 2}),
	}
	entity := &renderEntity{stubEntity: stubEntity{name: "e"}, sheets: []SpriteSheetName{"tiles", "missing"}}
	sheets := resolveSheets(entity, table)
	if len(sheets) != 2 {
		t.Fatalf("resolved %d sheets, want 2", len(sheets))
	}
	if sheets[0] == nil {
		t.Error("loaded sheet resolved to nil")
	}
	if sheets[1] != nil {
		t.Error("missing sheet did not resolve to nil")
	}
}
