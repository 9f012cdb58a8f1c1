package aspen

import (
	"fmt"
	"sort"
	"time"
)

// windowBinding pairs a window name with the platform id it resolved to.
type windowBinding struct {
	name WindowName
	id   WindowID
}

// sceneCamera pairs a scene with its camera.
type sceneCamera struct {
	scene  SceneName
	camera *Camera
}

// Game owns all scenes by lifecycle bucket (pending, active, suspended), all
// cameras, and the resource lookups, and runs the per-frame
// update/render/event-dispatch cycle.
//
// Game is a single-threaded reactive handler: every platform event and every
// timer tick enters the same queue and is processed to completion before the
// next is accepted, so scene state never sees concurrent mutation.
type Game struct {
	resources *ResourceDescriptor
	state     State
	targetFPS int

	queue    EventQueue
	renderer Renderer

	pending   []*Scene
	active    []*Scene
	suspended []*Scene

	windows      []windowBinding
	windowSizes  map[WindowID]Size
	cursors      map[WindowID]Vec2
	spriteSheets map[SpriteSheetName]*SpriteSheet
	cameras      []sceneCamera
	stats        frameStats

	timer *frameTimer
}

// NewGame creates a game over the given resources and host state. The
// state's initial scenes start out pending and activate once their windows
// and render targets exist.
func NewGame(resources *ResourceDescriptor, targetFPS int, state State) *Game {
	return &Game{
		resources:    resources,
		state:        state,
		targetFPS:    targetFPS,
		pending:      state.StartScenes(),
		windowSizes:  map[WindowID]Size{},
		cursors:      map[WindowID]Vec2{},
		spriteSheets: map[SpriteSheetName]*SpriteSheet{},
	}
}

// Bind connects the game to the platform layer's queue and renderer. Must be
// called before any event is handled.
func (g *Game) Bind(queue EventQueue, renderer Renderer) {
	g.queue = queue
	g.renderer = renderer
}

// Stop terminates the frame timer. Safe to call more than once.
func (g *Game) Stop() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// HandleEvent processes one queued event to completion. Events meant for the
// platform layer (window, texture, and render target requests) are ignored
// here; the platform intercepts them on the same queue.
func (g *Game) HandleEvent(event GameEvent) {
	switch e := event.(type) {
	case ResumedEvent:
		g.activateScenes()
		if g.timer == nil {
			g.timer = startFrameTimer(g.targetFPS, g.queue)
		}
	case NewWindowEvent:
		g.windows = append(g.windows, windowBinding{name: e.Name, id: e.ID})
		for _, scene := range g.pending {
			if scene.TargetWindow == e.Name {
				g.requestRenderTarget(e.ID, scene)
			}
		}
	case NewRenderTargetEvent:
		g.finishActivation(e.Target)
	case NewSpriteSheetEvent:
		if !e.OK {
			logger.Error("sprite sheet texture failed to load", "sheet", e.Name)
			return
		}
		// Always re-register: a hot-reloaded sheet arrives under an existing
		// name with a fresh texture handle.
		_, dimensions := g.resources.SpriteSheet(e.Name)
		g.spriteSheets[e.Name] = NewSpriteSheet(e.Texture, dimensions)
	case TimerEvent:
		g.tick(e.Delta)
	case ExternalGameEvent:
		g.routeExternal(e.Event)
	case EndGameEvent:
		g.Stop()
	}
}

// activateScenes tries to promote pending scenes: scenes whose target window
// exists get a render target requested; windows that do not exist yet are
// requested from the platform. A pending scene whose name is already taken
// anywhere (pending, active, or suspended) is discarded with a warning,
// never silently overwritten.
func (g *Game) activateScenes() {
	var neededWindows []WindowName
	seen := map[SceneName]bool{}
	kept := g.pending[:0]
	for _, scene := range g.pending {
		if seen[scene.Name] || g.findScene(scene.Name, g.active) != nil || g.findScene(scene.Name, g.suspended) != nil {
			logger.Warn("scene already exists, discarding", "scene", scene.Name)
			continue
		}
		seen[scene.Name] = true
		kept = append(kept, scene)
		if id, ok := g.windowID(scene.TargetWindow); ok {
			g.requestRenderTarget(id, scene)
		} else if !containsWindow(neededWindows, scene.TargetWindow) {
			neededWindows = append(neededWindows, scene.TargetWindow)
		}
	}
	g.pending = kept
	for _, name := range neededWindows {
		descriptor, ok := g.resources.Window(name)
		if !ok {
			logger.Error("no window descriptor in resources", "window", name)
			continue
		}
		g.queue.Post(RequestNewWindowEvent{Descriptor: descriptor, Name: name})
	}
}

// requestRenderTarget asks the renderer for a scene's pipeline, resolving
// the shader's uniform buffers and, if the render target is configured with
// one, creating the scene's camera. A uniform named by the shader but absent
// from the resources is a host configuration bug and aborts.
func (g *Game) requestRenderTarget(window WindowID, scene *Scene) {
	cameraDescriptor, descriptor := g.resources.RenderTarget(scene.RenderTarget)
	uniforms := make([]UniformBuffer, 0, len(scene.ShaderDescriptor.Uniforms)+1)
	for _, name := range scene.ShaderDescriptor.Uniforms {
		uniform, ok := g.resources.Uniform(name)
		if !ok {
			panic(fmt.Sprintf("aspen: uniform buffer %q named by shader %s is not in the resource descriptor", name, scene.ShaderDescriptor.File))
		}
		uniforms = append(uniforms, uniform)
	}
	if cameraDescriptor != nil {
		d := *cameraDescriptor
		d.Name = UniformBufferName(fmt.Sprintf("%s camera", scene.RenderTarget))
		camera := NewCamera(d)
		g.cameras = append(g.cameras, sceneCamera{scene: scene.Name, camera: camera})
		uniforms = append(uniforms, UniformBuffer{
			Name:     d.Name,
			Contents: camera.Bytes(),
			Stage:    StageVertex,
		})
	}
	g.queue.Post(RequestNewRenderTargetEvent{
		Window:     window,
		Target:     scene.RenderTarget,
		Shader:     scene.ShaderDescriptor,
		Descriptor: descriptor,
		Uniforms:   uniforms,
	})
}

// finishActivation moves the pending scene owning the freshly created render
// target into the active bucket and requests its entities' sprite sheets.
func (g *Game) finishActivation(target RenderTargetName) {
	index := -1
	for i, scene := range g.pending {
		if scene.RenderTarget == target {
			index = i
			break
		}
	}
	if index < 0 {
		panic(fmt.Sprintf("aspen: render target %q created for a scene that vanished before activation", target))
	}
	scene := g.pending[index]
	g.pending = append(g.pending[:index], g.pending[index+1:]...)
	for _, entity := range scene.Entities {
		for _, sheet := range entity.SpriteSheets() {
			g.requestSpriteSheet(sheet)
		}
	}
	g.active = append(g.active, scene)
	g.sortActive()
	if observer, ok := g.state.(SceneObserver); ok {
		g.postExternal(observer.SceneSpawned(scene.Name))
	}
}

func (g *Game) requestSpriteSheet(name SpriteSheetName) {
	path, _ := g.resources.SpriteSheet(name)
	g.queue.Post(RequestNewSpriteSheetEvent{Name: name, Path: path})
}

// tick advances every active scene by one frame and re-renders suspended
// scenes without updating them, so their last visual state persists without
// simulation cost.
func (g *Game) tick(delta time.Duration) {
	g.stats.record(delta)
	for _, scene := range g.active {
		vertices := NewVertexBuffer()
		indices := NewIndexBuffer()
		sortEntitiesByZ(scene.Entities)
		for i := range scene.Entities {
			entity := scene.Entities[i]
			// Every entity sees the full current-frame sibling list
			// except itself; only the entity itself is mutated.
			others := make([]Entity, 0, len(scene.Entities)-1)
			others = append(others, scene.Entities[:i]...)
			others = append(others, scene.Entities[i+1:]...)
			g.postExternal(entity.Update(others, delta, scene.Name))
			entity.Render(vertices, indices, resolveSheets(entity, g.spriteSheets))
		}
		if camera := g.camera(scene.Name); camera != nil {
			// The camera advances against the post-update entity list.
			if err := camera.Advance(scene.Entities, delta); err != nil {
				logger.Info("camera update skipped", "scene", scene.Name, "err", err)
			}
			g.renderer.UpdateUniformBuffer(camera.UniformName(), camera.Bytes())
		}
		g.queue.Post(RenderUpdateEvent{
			Target:   scene.RenderTarget,
			Vertices: vertices,
			Indices:  indices,
		})
	}
	for _, scene := range g.suspended {
		scene.StaticRender(g.spriteSheets, g.queue)
	}
}

// routeExternal applies the routing rules in fixed priority order. An event
// may match more than one rule; requests that rebuild scene lists return
// early, as does the end-game request.
func (g *Game) routeExternal(event ExternalEvent) {
	if event.IsRequestNewScenes() {
		scenes := event.ConsumeScenesRequest()
		if scenes == nil {
			panic("aspen: external event claims IsRequestNewScenes but ConsumeScenesRequest returned nothing")
		}
		logger.Info("creating new scenes", "count", len(scenes))
		g.pending = append(g.pending, scenes...)
		g.activateScenes()
		return
	}
	if event.IsAddEntities() {
		entities, name := event.ConsumeAddEntitiesRequest()
		if entities == nil {
			panic("aspen: external event claims IsAddEntities but ConsumeAddEntitiesRequest returned nothing")
		}
		scene := g.findSceneAnywhere(name)
		if scene == nil {
			logger.Error("cannot add entities, scene is neither active nor suspended", "scene", name)
			return
		}
		scene.Entities = append(scene.Entities, entities...)
		return
	}
	if name, visibility, ok := event.VisibilityRequest(); ok {
		if scene := g.findSceneAnywhere(name); scene != nil {
			g.queue.Post(SetVisibilityEvent{Target: scene.RenderTarget, Visibility: visibility})
		} else {
			logger.Warn("cannot set visibility, scene is neither active nor suspended", "scene", name)
		}
	}
	if name, ok := event.SuspendSceneRequest(); ok {
		g.suspendScene(name)
	}
	if name, ok := event.ActivateSceneRequest(); ok {
		g.activateSuspendedScene(name)
	}
	if name, ok := event.DeleteSceneRequest(); ok {
		g.deleteScene(name)
	}
	if name, contents, ok := event.UniformBufferUpdate(); ok {
		g.renderer.UpdateUniformBuffer(name, contents)
	}
	if entity, name, ok := event.DeleteEntityRequest(); ok {
		g.deleteEntity(entity, name)
	}
	if name, ok := event.RenderSceneRequest(); ok {
		if scene := g.findScene(name, g.active); scene != nil {
			scene.StaticRender(g.spriteSheets, g.queue)
		} else {
			logger.Warn("cannot render scene, it is not active", "scene", name)
		}
	}
	if event.IsEndGame() {
		g.queue.Post(EndGameEvent{})
		return
	}

	var responses []ExternalEvent
	if event.IsEntityEvent() {
		target, payload := event.ConsumeEntityEvent()
		if entity := g.findActiveEntity(target); entity != nil {
			responses = entity.HandleEvent(payload)
		} else {
			logger.Warn("entity event target does not exist in an active scene", "entity", target)
		}
	} else {
		responses = g.state.HandleEvent(event)
	}
	g.postExternal(responses)
}

func (g *Game) suspendScene(name SceneName) {
	index := g.sceneIndex(name, g.active)
	if index < 0 {
		logger.Warn("cannot suspend scene, it is not active", "scene", name)
		return
	}
	logger.Info("suspending scene", "scene", name)
	scene := g.active[index]
	g.active = append(g.active[:index], g.active[index+1:]...)
	g.suspended = append(g.suspended, scene)
	if camera := g.camera(name); camera != nil {
		camera.ResetOffset()
	}
}

func (g *Game) activateSuspendedScene(name SceneName) {
	index := g.sceneIndex(name, g.suspended)
	if index < 0 {
		logger.Warn("cannot activate scene, it is not suspended", "scene", name)
		return
	}
	logger.Info("activating suspended scene", "scene", name)
	scene := g.suspended[index]
	g.suspended = append(g.suspended[:index], g.suspended[index+1:]...)
	g.active = append(g.active, scene)
	g.sortActive()
}

// deleteScene removes the scene permanently, releases its render target, and
// drops its camera.
func (g *Game) deleteScene(name SceneName) {
	var scene *Scene
	if index := g.sceneIndex(name, g.active); index >= 0 {
		scene = g.active[index]
		g.active = append(g.active[:index], g.active[index+1:]...)
	} else if index := g.sceneIndex(name, g.suspended); index >= 0 {
		scene = g.suspended[index]
		g.suspended = append(g.suspended[:index], g.suspended[index+1:]...)
	}
	if scene == nil {
		logger.Warn("cannot delete scene, it is neither active nor suspended", "scene", name)
	} else {
		logger.Info("deleting scene", "scene", name)
		g.renderer.RemoveRenderTarget(scene.RenderTarget)
	}
	kept := g.cameras[:0]
	for _, sc := range g.cameras {
		if sc.scene != name {
			kept = append(kept, sc)
		}
	}
	g.cameras = kept
}

func (g *Game) deleteEntity(entity EntityName, name SceneName) {
	scene := g.findSceneAnywhere(name)
	if scene == nil {
		logger.Error("cannot delete entity, scene is neither active nor suspended", "scene", name, "entity", entity)
		return
	}
	logger.Info("deleting entity", "scene", name, "entity", entity)
	if !scene.removeEntity(entity) {
		logger.Warn("entity not found in scene", "scene", name, "entity", entity)
	}
}

// --- Window-side input plumbing, called by the platform layer ---

// HandleWindowResized records a window's size; cursor positions are centered
// against it.
func (g *Game) HandleWindowResized(id WindowID, size Size) {
	g.windowSizes[id] = size
}

// HandleCursorEntered starts tracking the cursor for a window.
func (g *Game) HandleCursorEntered(id WindowID) {
	g.cursors[id] = Vec2{}
}

// HandleCursorLeft stops tracking the cursor for a window.
func (g *Game) HandleCursorLeft(id WindowID) {
	delete(g.cursors, id)
}

// HandleCursorMoved updates a tracked cursor with a position relative to the
// window center.
func (g *Game) HandleCursorMoved(id WindowID, position Vec2) {
	if _, ok := g.cursors[id]; !ok {
		return
	}
	size, ok := g.windowSizes[id]
	if !ok {
		return
	}
	g.cursors[id] = Vec2{
		X: position.X - size.Width/2,
		Y: position.Y - size.Height/2,
	}
}

// HandleMouseInput forwards a button event at the window's tracked cursor
// position to every active scene on that window.
func (g *Game) HandleMouseInput(id WindowID, button MouseButton, pressed bool) {
	name, ok := g.windowName(id)
	if !ok {
		logger.Warn("mouse input for unknown window", "window", id)
		return
	}
	position, ok := g.cursors[id]
	if !ok {
		return
	}
	event := MouseEvent{Button: button, Pressed: pressed, Position: position}
	for _, scene := range g.active {
		if scene.TargetWindow == name {
			g.postExternal(scene.HandleMouseInput(event))
		}
	}
}

// HandleKeyInput forwards a key event to every active scene on the window
// and to those scenes' cameras.
func (g *Game) HandleKeyInput(id WindowID, event KeyEvent) {
	name, ok := g.windowName(id)
	if !ok {
		logger.Warn("key input for unknown window", "window", id)
		return
	}
	for _, scene := range g.active {
		if scene.TargetWindow != name {
			continue
		}
		events := scene.HandleKeyInput(event)
		if camera := g.camera(scene.Name); camera != nil {
			camera.HandleKeyInput(event)
		}
		g.postExternal(events)
	}
}

// --- lookups ---

func (g *Game) postExternal(events []ExternalEvent) {
	for _, event := range events {
		g.queue.Post(ExternalGameEvent{Event: event})
	}
}

func (g *Game) sortActive() {
	sort.SliceStable(g.active, func(i, j int) bool {
		return g.active[i].ZIndex < g.active[j].ZIndex
	})
}

func (g *Game) findScene(name SceneName, bucket []*Scene) *Scene {
	if index := g.sceneIndex(name, bucket); index >= 0 {
		return bucket[index]
	}
	return nil
}

func (g *Game) sceneIndex(name SceneName, bucket []*Scene) int {
	for i, scene := range bucket {
		if scene.Name == name {
			return i
		}
	}
	return -1
}

// findSceneAnywhere looks a scene up among active, then suspended scenes.
func (g *Game) findSceneAnywhere(name SceneName) *Scene {
	if scene := g.findScene(name, g.active); scene != nil {
		return scene
	}
	return g.findScene(name, g.suspended)
}

// findActiveEntity locates an entity by name across active scenes only;
// suspended scenes do not receive entity events.
func (g *Game) findActiveEntity(name EntityName) Entity {
	for _, scene := range g.active {
		if entity := findEntity(scene.Entities, name); entity != nil {
			return entity
		}
	}
	return nil
}

func (g *Game) camera(scene SceneName) *Camera {
	for _, sc := range g.cameras {
		if sc.scene == scene {
			return sc.camera
		}
	}
	return nil
}

func (g *Game) windowID(name WindowName) (WindowID, bool) {
	for _, w := range g.windows {
		if w.name == name {
			return w.id, true
		}
	}
	return "", false
}

func (g *Game) windowName(id WindowID) (WindowName, bool) {
	for _, w := range g.windows {
		if w.id == id {
			return w.name, true
		}
	}
	return "", false
}

func containsWindow(names []WindowName, name WindowName) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
