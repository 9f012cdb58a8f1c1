package aspen

import "time"

// GameEvent is the closed set of orchestration events flowing between the
// platform layer and the Game. All events are data-only; the host constructs
// them freely; new kinds cannot be added outside this package.
type GameEvent interface {
	isGameEvent()
}

// TimerEvent is the per-frame tick posted by the frame timer. Delta is the
// time elapsed since the previous tick was posted.
type TimerEvent struct {
	Delta time.Duration
}

// ResumedEvent is posted once when the platform layer is up and events can
// flow. The Game reacts by activating its initial scenes and starting the
// frame timer.
type ResumedEvent struct{}

// NewWindowEvent reports a window created by the platform layer.
type NewWindowEvent struct {
	ID   WindowID
	Name WindowName
}

// RequestNewWindowEvent asks the platform layer to create a window.
type RequestNewWindowEvent struct {
	Descriptor WindowDescriptor
	Name       WindowName
}

// RenderUpdateEvent carries one frame's accumulated vertex and index buffers
// for a render target.
type RenderUpdateEvent struct {
	Target   RenderTargetName
	Vertices *VertexBuffer
	Indices  *IndexBuffer
}

// RequestNewSpriteSheetEvent asks the platform layer to load the texture
// backing a sprite sheet.
type RequestNewSpriteSheetEvent struct {
	Name SpriteSheetName
	Path string
}

// NewSpriteSheetEvent reports the result of a sprite sheet load. OK is false
// when the texture could not be created; the sheet then stays unresolved and
// entities referencing it render without it.
type NewSpriteSheetEvent struct {
	Name    SpriteSheetName
	Texture TextureHandle
	OK      bool
}

// RequestNewRenderTargetEvent asks the renderer to build the pipeline and
// buffers for a scene.
type RequestNewRenderTargetEvent struct {
	Window     WindowID
	Target     RenderTargetName
	Shader     ShaderDescriptor
	Descriptor RenderTargetDescriptor
	Uniforms   []UniformBuffer
}

// NewRenderTargetEvent reports a render target created by the renderer.
type NewRenderTargetEvent struct {
	Target RenderTargetName
}

// SetVisibilityEvent asks the renderer to show or hide a render target.
type SetVisibilityEvent struct {
	Target     RenderTargetName
	Visibility Visibility
}

// ExternalGameEvent wraps a host-defined event for routing.
type ExternalGameEvent struct {
	Event ExternalEvent
}

// EndGameEvent tells the platform layer to quit.
type EndGameEvent struct{}

func (TimerEvent) isGameEvent()                 {}
func (ResumedEvent) isGameEvent()               {}
func (NewWindowEvent) isGameEvent()             {}
func (RequestNewWindowEvent) isGameEvent()      {}
func (RenderUpdateEvent) isGameEvent()          {}
func (RequestNewSpriteSheetEvent) isGameEvent() {}
func (NewSpriteSheetEvent) isGameEvent()        {}
func (RequestNewRenderTargetEvent) isGameEvent() {}
func (NewRenderTargetEvent) isGameEvent()       {}
func (SetVisibilityEvent) isGameEvent()         {}
func (ExternalGameEvent) isGameEvent()          {}
func (EndGameEvent) isGameEvent()               {}

// ExternalEvent is the open extension point for host-defined events. The
// engine never learns concrete host event shapes; it interrogates them
// through this fixed set of classification queries and consuming accessors.
//
// Each Consume method may only be called when its predicate returned a match;
// a Consume returning the zero "not mine" result after a positive predicate
// is a host-side contract violation and aborts.
//
// Embed BaseExternalEvent to pick up "matches nothing" defaults and override
// only the queries an event kind answers.
type ExternalEvent interface {
	// IsRequestNewScenes reports whether the event carries scenes to
	// append to the pending bucket.
	IsRequestNewScenes() bool
	// ConsumeScenesRequest yields the scenes. nil means the predicate lied.
	ConsumeScenesRequest() []*Scene
	// IsAddEntities reports whether the event carries entities for an
	// existing scene.
	IsAddEntities() bool
	// ConsumeAddEntitiesRequest yields the entities and their scene.
	ConsumeAddEntitiesRequest() ([]Entity, SceneName)
	// VisibilityRequest matches a visibility toggle for a scene.
	VisibilityRequest() (SceneName, Visibility, bool)
	// SuspendSceneRequest matches a request to freeze a scene. Suspended
	// scenes no longer update their buffers but keep their last visuals.
	SuspendSceneRequest() (SceneName, bool)
	// ActivateSceneRequest matches a request to reactivate a suspended
	// scene.
	ActivateSceneRequest() (SceneName, bool)
	// DeleteSceneRequest matches a request to remove a scene entirely, so
	// that it cannot be rendered again.
	DeleteSceneRequest() (SceneName, bool)
	// UniformBufferUpdate matches a raw uniform buffer write.
	UniformBufferUpdate() (UniformBufferName, []byte, bool)
	// DeleteEntityRequest matches a request to remove one entity from a
	// scene.
	DeleteEntityRequest() (EntityName, SceneName, bool)
	// RenderSceneRequest matches a request for an immediate out-of-band
	// render of one scene.
	RenderSceneRequest() (SceneName, bool)
	// IsEntityEvent reports whether the event targets a single entity.
	IsEntityEvent() bool
	// ConsumeEntityEvent yields the target entity and the payload.
	ConsumeEntityEvent() (EntityName, EntityEvent)
	// IsEndGame reports whether the event requests quitting.
	IsEndGame() bool
}

// BaseExternalEvent answers every classification query negatively.
type BaseExternalEvent struct{}

func (BaseExternalEvent) IsRequestNewScenes() bool                     { return false }
func (BaseExternalEvent) ConsumeScenesRequest() []*Scene               { return nil }
func (BaseExternalEvent) IsAddEntities() bool                          { return false }
func (BaseExternalEvent) ConsumeAddEntitiesRequest() ([]Entity, SceneName) {
	return nil, ""
}
func (BaseExternalEvent) VisibilityRequest() (SceneName, Visibility, bool) {
	return "", Visible, false
}
func (BaseExternalEvent) SuspendSceneRequest() (SceneName, bool)  { return "", false }
func (BaseExternalEvent) ActivateSceneRequest() (SceneName, bool) { return "", false }
func (BaseExternalEvent) DeleteSceneRequest() (SceneName, bool)   { return "", false }
func (BaseExternalEvent) UniformBufferUpdate() (UniformBufferName, []byte, bool) {
	return "", nil, false
}
func (BaseExternalEvent) DeleteEntityRequest() (EntityName, SceneName, bool) {
	return "", "", false
}
func (BaseExternalEvent) RenderSceneRequest() (SceneName, bool) { return "", false }
func (BaseExternalEvent) IsEntityEvent() bool                   { return false }
func (BaseExternalEvent) ConsumeEntityEvent() (EntityName, EntityEvent) {
	return "", nil
}
func (BaseExternalEvent) IsEndGame() bool { return false }

// State is the host-side game logic the orchestrator defers to.
type State interface {
	// StartScenes yields the initial scenes. Called once at construction.
	StartScenes() []*Scene
	// HandleEvent receives every external event no routing rule claimed.
	// Returned events are re-queued as new external events; the single
	// extra indirection does not recurse, so bounding the depth is the
	// host's responsibility.
	HandleEvent(event ExternalEvent) []ExternalEvent
}

// SceneObserver is an optional State extension notified when a pending scene
// finishes activating. Returned events are routed like any other external
// event.
type SceneObserver interface {
	SceneSpawned(name SceneName) []ExternalEvent
}

// EventQueue is the thread-safe event-post primitive connecting the engine,
// the frame timer, and the platform layer. Post never blocks the caller
// beyond queue admission and is safe for concurrent use.
type EventQueue interface {
	Post(event GameEvent)
}
