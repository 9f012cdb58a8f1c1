// Package app runs an aspen Game on [Ebitengine].
//
// The application implements the engine's platform collaborators: the
// thread-safe event queue, the window layer, and a renderer that draws the
// engine's vertex/index streams with DrawTriangles. Vertices must use the
// aspen.SimpleVertex layout; textured layouts need a custom renderer.
//
// Ebitengine drives a single OS window. The first window the engine requests
// configures it; any further windows share the same screen and exist only as
// distinct identifiers.
//
// [Ebitengine]: https://ebitengine.org
package app

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/aspen"
)

const queueCapacity = 1024

// keyMap translates Ebitengine key codes to engine keys.
var keyMap = map[ebiten.Key]aspen.Key{
	ebiten.KeyW:      aspen.KeyW,
	ebiten.KeyA:      aspen.KeyA,
	ebiten.KeyS:      aspen.KeyS,
	ebiten.KeyD:      aspen.KeyD,
	ebiten.KeyUp:     aspen.KeyUp,
	ebiten.KeyDown:   aspen.KeyDown,
	ebiten.KeyLeft:   aspen.KeyLeft,
	ebiten.KeyRight:  aspen.KeyRight,
	ebiten.KeySpace:  aspen.KeySpace,
	ebiten.KeyEnter:  aspen.KeyEnter,
	ebiten.KeyEscape: aspen.KeyEscape,
}

var buttonMap = map[ebiten.MouseButton]aspen.MouseButton{
	ebiten.MouseButtonLeft:   aspen.MouseButtonLeft,
	ebiten.MouseButtonRight:  aspen.MouseButtonRight,
	ebiten.MouseButtonMiddle: aspen.MouseButtonMiddle,
}

// whitePixel is the texture for untextured triangles.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// queue is the thread-safe event-post primitive shared by the engine, the
// frame timer, and the application.
type queue struct {
	ch chan aspen.GameEvent
}

func (q *queue) Post(event aspen.GameEvent) {
	q.ch <- event
}

// renderTarget is the application-side state of one engine render target.
type renderTarget struct {
	name       aspen.RenderTargetName
	descriptor aspen.RenderTargetDescriptor
	shader     aspen.ShaderDescriptor
	uniforms   []aspen.UniformBufferName
	visible    bool
	vertices   []byte
	indices    []byte
}

// Application glues an aspen.Game to the Ebitengine loop.
type Application struct {
	game   *aspen.Game
	events *queue

	windows     []aspen.WindowID
	width       int
	height      int
	title       string
	initialized bool
	quit        bool

	targets     []*renderTarget
	uniforms    map[aspen.UniformBufferName][]byte
	textures    map[aspen.TextureHandle]*ebiten.Image
	nextTexture aspen.TextureHandle
}

// Run binds the game to a new application and blocks in the Ebitengine loop
// until the game ends or the window closes.
func Run(game *aspen.Game) error {
	a := New(game)
	return ebiten.RunGame(a)
}

// New creates an application and binds the game to it.
func New(game *aspen.Game) *Application {
	a := &Application{
		game:        game,
		events:      &queue{ch: make(chan aspen.GameEvent, queueCapacity)},
		width:       640,
		height:      480,
		uniforms:    map[aspen.UniformBufferName][]byte{},
		textures:    map[aspen.TextureHandle]*ebiten.Image{},
		nextTexture: 1,
	}
	game.Bind(a.events, a)
	a.events.Post(aspen.ResumedEvent{})
	return a
}

// Update drains the event queue and feeds input state to the engine.
// Implements ebiten.Game.
func (a *Application) Update() error {
	a.pollInput()
	for {
		select {
		case event := <-a.events.ch:
			a.dispatch(event)
		default:
			if a.quit {
				a.game.Stop()
				return ebiten.Termination
			}
			return nil
		}
	}
}

// dispatch executes platform-targeted events and forwards the rest to the
// engine, each processed to completion in queue order.
func (a *Application) dispatch(event aspen.GameEvent) {
	switch e := event.(type) {
	case aspen.RequestNewWindowEvent:
		id := aspen.WindowID(uuid.NewString())
		a.windows = append(a.windows, id)
		if !a.initialized {
			a.initialized = true
			a.title = e.Descriptor.Title
			if e.Descriptor.Width > 0 && e.Descriptor.Height > 0 {
				a.width = e.Descriptor.Width
				a.height = e.Descriptor.Height
			}
			ebiten.SetWindowTitle(a.title)
			ebiten.SetWindowSize(a.width, a.height)
			ebiten.SetFullscreen(e.Descriptor.Fullscreen)
		}
		a.game.HandleWindowResized(id, aspen.Size{Width: float64(a.width), Height: float64(a.height)})
		a.game.HandleCursorEntered(id)
		a.game.HandleEvent(aspen.NewWindowEvent{ID: id, Name: e.Name})
	case aspen.RequestNewSpriteSheetEvent:
		handle, ok := a.CreateTexture(e.Path, string(e.Name))
		a.game.HandleEvent(aspen.NewSpriteSheetEvent{Name: e.Name, Texture: handle, OK: ok})
	case aspen.RequestNewRenderTargetEvent:
		a.CreateRenderTarget(e.Window, e.Target, e.Shader, e.Descriptor, e.Uniforms)
		a.game.HandleEvent(aspen.NewRenderTargetEvent{Target: e.Target})
	case aspen.RenderUpdateEvent:
		a.UpdateSceneBuffers(e.Target, e.Vertices, e.Indices)
	case aspen.SetVisibilityEvent:
		a.SetVisibility(e.Target, e.Visibility)
	case aspen.EndGameEvent:
		a.quit = true
		a.game.HandleEvent(event)
	default:
		a.game.HandleEvent(event)
	}
}

// pollInput translates Ebitengine's polled input into engine events for
// every window identifier.
func (a *Application) pollInput() {
	cx, cy := ebiten.CursorPosition()
	for _, id := range a.windows {
		a.game.HandleCursorMoved(id, aspen.Vec2{X: float64(cx), Y: float64(cy)})
		for ek, key := range keyMap {
			if inpututil.IsKeyJustPressed(ek) {
				a.game.HandleKeyInput(id, aspen.KeyEvent{Key: key, Pressed: true})
			}
			if inpututil.IsKeyJustReleased(ek) {
				a.game.HandleKeyInput(id, aspen.KeyEvent{Key: key, Pressed: false})
			}
		}
		for eb, button := range buttonMap {
			if inpututil.IsMouseButtonJustPressed(eb) {
				a.game.HandleMouseInput(id, button, true)
			}
			if inpututil.IsMouseButtonJustReleased(eb) {
				a.game.HandleMouseInput(id, button, false)
			}
		}
	}
}

// Draw renders every visible target in creation order. Implements
// ebiten.Game.
func (a *Application) Draw(screen *ebiten.Image) {
	for _, target := range a.targets {
		if !target.visible {
			continue
		}
		a.drawTarget(screen, target)
	}
}

// Layout reports the fixed logical screen size. Implements ebiten.Game.
func (a *Application) Layout(int, int) (int, int) {
	return a.width, a.height
}

// drawTarget decodes one target's SimpleVertex stream and submits it.
func (a *Application) drawTarget(screen *ebiten.Image, target *renderTarget) {
	stride := target.descriptor.VertexStride
	if stride != aspen.SimpleVertexStride {
		return
	}
	view := a.viewMatrix(target)
	count := len(target.vertices) / stride
	vertices := make([]ebiten.Vertex, 0, count)
	for i := 0; i < count; i++ {
		raw := target.vertices[i*stride : (i+1)*stride]
		x := float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[0:4])))
		y := float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[4:8])))
		clipX := view[0]*x + view[4]
		clipY := view[3]*y + view[5]
		r := float32(raw[8]) / 255
		g := float32(raw[9]) / 255
		b := float32(raw[10]) / 255
		alpha := float32(raw[11]) / 255
		vertices = append(vertices, ebiten.Vertex{
			DstX:   float32((clipX + 1) / 2 * float64(a.width)),
			DstY:   float32((1 - clipY) / 2 * float64(a.height)),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: alpha,
		})
	}
	indices := make([]uint16, 0, len(target.indices)/2)
	for i := 0; i+1 < len(target.indices); i += 2 {
		indices = append(indices, binary.LittleEndian.Uint16(target.indices[i:i+2]))
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	screen.DrawTriangles(vertices, indices, whitePixel, op)
}

// viewMatrix resolves a target's camera uniform, defaulting to a static view
// over the full screen.
func (a *Application) viewMatrix(target *renderTarget) [6]float64 {
	contents := a.uniforms[cameraUniformName(target.name)]
	if len(contents) != 24 {
		contents = aspen.StaticCameraMatrix(aspen.Size{
			Width:  float64(a.width),
			Height: float64(a.height),
		})
	}
	var view [6]float64
	for i := range view {
		view[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(contents[i*4 : i*4+4])))
	}
	return view
}

func cameraUniformName(target aspen.RenderTargetName) aspen.UniformBufferName {
	return aspen.UniformBufferName(fmt.Sprintf("%s camera", target))
}

// --- aspen.Renderer ---

// CreateRenderTarget registers a target and its initial uniform contents.
func (a *Application) CreateRenderTarget(_ aspen.WindowID, name aspen.RenderTargetName, shader aspen.ShaderDescriptor, descriptor aspen.RenderTargetDescriptor, uniforms []aspen.UniformBuffer) {
	target := &renderTarget{
		name:       name,
		descriptor: descriptor,
		shader:     shader,
		visible:    true,
	}
	for _, uniform := range uniforms {
		target.uniforms = append(target.uniforms, uniform.Name)
		a.uniforms[uniform.Name] = uniform.Contents
	}
	a.targets = append(a.targets, target)
}

// UpdateSceneBuffers replaces a target's vertex and index bytes.
func (a *Application) UpdateSceneBuffers(name aspen.RenderTargetName, vertices *aspen.VertexBuffer, indices *aspen.IndexBuffer) {
	if target := a.target(name); target != nil {
		target.vertices = vertices.Bytes()
		target.indices = indices.Bytes()
	}
}

// UpdateUniformBuffer replaces a uniform block's contents.
func (a *Application) UpdateUniformBuffer(name aspen.UniformBufferName, contents []byte) {
	a.uniforms[name] = contents
}

// SetVisibility shows or hides a target.
func (a *Application) SetVisibility(name aspen.RenderTargetName, visibility aspen.Visibility) {
	if target := a.target(name); target != nil {
		target.visible = visibility == aspen.Visible
	}
}

// RemoveRenderTarget drops a target and its uniform blocks.
func (a *Application) RemoveRenderTarget(name aspen.RenderTargetName) {
	kept := a.targets[:0]
	for _, target := range a.targets {
		if target.name != name {
			kept = append(kept, target)
			continue
		}
		for _, uniform := range target.uniforms {
			delete(a.uniforms, uniform)
		}
	}
	a.targets = kept
}

// CreateTexture loads an image file into a texture handle.
func (a *Application) CreateTexture(path, _ string) (aspen.TextureHandle, bool) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return 0, false
	}
	handle := a.nextTexture
	a.nextTexture++
	a.textures[handle] = img
	return handle, true
}

func (a *Application) target(name aspen.RenderTargetName) *renderTarget {
	for _, target := range a.targets {
		if target.name == name {
			return target
		}
	}
	return nil
}
