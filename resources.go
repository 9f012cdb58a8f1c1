package aspen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// SpriteSheetResource locates a sprite sheet image and its grid layout.
type SpriteSheetResource struct {
	Path       string
	Dimensions SpriteSheetDimensions
}

// RenderTargetResource describes how to build one or more render targets:
// an optional camera plus the buffer layout.
type RenderTargetResource struct {
	// Targets lists the render target names this entry applies to. Empty
	// on the default entry.
	Targets    []RenderTargetName
	Camera     *CameraDescriptor
	Descriptor RenderTargetDescriptor
}

// ResourceDescriptor is the lookup table for everything scenes reference by
// name: window descriptors, sprite sheets, extra uniform buffers, and render
// target configurations. Lookups that miss fall back to documented defaults
// instead of failing.
type ResourceDescriptor struct {
	Windows map[WindowName]WindowDescriptor
	// ImageDirectory anchors the default sprite sheet path: a sheet named
	// n that is not in SpriteSheets resolves to ImageDirectory/n.png with
	// a 1x1 grid.
	ImageDirectory string
	SpriteSheets   map[SpriteSheetName]SpriteSheetResource
	// Uniforms describes uniform buffers that are not cameras; cameras
	// are declared per render target because of their elevated role.
	Uniforms map[UniformBufferName]UniformBuffer
	// DefaultRenderTarget is used for any render target name with no
	// matching RenderTargets entry.
	DefaultRenderTarget RenderTargetResource
	RenderTargets       []RenderTargetResource
}

// NewResourceDescriptor creates a descriptor whose unmatched render targets
// use defaultDescriptor with no camera.
func NewResourceDescriptor(defaultDescriptor RenderTargetDescriptor) *ResourceDescriptor {
	return &ResourceDescriptor{
		Windows:      map[WindowName]WindowDescriptor{},
		SpriteSheets: map[SpriteSheetName]SpriteSheetResource{},
		Uniforms:     map[UniformBufferName]UniformBuffer{},
		DefaultRenderTarget: RenderTargetResource{
			Descriptor: defaultDescriptor,
		},
	}
}

// WithWindow registers a window descriptor.
func (r *ResourceDescriptor) WithWindow(name WindowName, descriptor WindowDescriptor) *ResourceDescriptor {
	r.Windows[name] = descriptor
	return r
}

// WithImageDirectory sets the default sprite sheet directory.
func (r *ResourceDescriptor) WithImageDirectory(dir string) *ResourceDescriptor {
	r.ImageDirectory = dir
	return r
}

// WithSpriteSheet registers a sprite sheet.
func (r *ResourceDescriptor) WithSpriteSheet(name SpriteSheetName, path string, dimensions SpriteSheetDimensions) *ResourceDescriptor {
	r.SpriteSheets[name] = SpriteSheetResource{Path: path, Dimensions: dimensions}
	return r
}

// WithUniform registers a non-camera uniform buffer.
func (r *ResourceDescriptor) WithUniform(uniform UniformBuffer) *ResourceDescriptor {
	r.Uniforms[uniform.Name] = uniform
	return r
}

// WithRenderTarget registers a render target configuration.
func (r *ResourceDescriptor) WithRenderTarget(resource RenderTargetResource) *ResourceDescriptor {
	r.RenderTargets = append(r.RenderTargets, resource)
	return r
}

// WithDefaultCamera attaches a camera to the default render target entry.
func (r *ResourceDescriptor) WithDefaultCamera(camera CameraDescriptor) *ResourceDescriptor {
	r.DefaultRenderTarget.Camera = &camera
	return r
}

// Window looks up a window descriptor.
func (r *ResourceDescriptor) Window(name WindowName) (WindowDescriptor, bool) {
	d, ok := r.Windows[name]
	return d, ok
}

// Uniform looks up a non-camera uniform buffer.
func (r *ResourceDescriptor) Uniform(name UniformBufferName) (UniformBuffer, bool) {
	u, ok := r.Uniforms[name]
	return u, ok
}

// RenderTarget resolves a render target name to its camera and descriptor,
// falling back to the default entry for unknown names.
func (r *ResourceDescriptor) RenderTarget(name RenderTargetName) (*CameraDescriptor, RenderTargetDescriptor) {
	for _, resource := range r.RenderTargets {
		for _, target := range resource.Targets {
			if target == name {
				return resource.Camera, resource.Descriptor
			}
		}
	}
	logger.Info("render target not configured, using default", "target", name)
	return r.DefaultRenderTarget.Camera, r.DefaultRenderTarget.Descriptor
}

// SpriteSheet resolves a sheet name to its image path and grid, defaulting
// to a 1x1 sheet at ImageDirectory/name.png for unknown names.
func (r *ResourceDescriptor) SpriteSheet(name SpriteSheetName) (string, SpriteSheetDimensions) {
	if s, ok := r.SpriteSheets[name]; ok {
		return s.Path, s.Dimensions
	}
	logger.Info("sprite sheet not configured, using default", "sheet", name)
	path := filepath.Join(r.ImageDirectory, string(name)+".png")
	return path, SpriteSheetDimensions{Rows: 1, Columns: 1}
}

// --- TOML loading ---

type windowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Icon       string `toml:"icon"`
	Cursor     string `toml:"cursor"`
}

type spriteSheetConfig struct {
	Path    string `toml:"path"`
	Rows    uint8  `toml:"rows"`
	Columns uint8  `toml:"columns"`
}

type cameraConfig struct {
	Name              string  `toml:"name"`
	Width             float64 `toml:"width"`
	Height            float64 `toml:"height"`
	Speed             float64 `toml:"speed"`
	AccelerationSteps int     `toml:"acceleration_steps"`
	TargetEntity      string  `toml:"target_entity"`
	BoundEntity       string  `toml:"bound_entity"`
	MaxOffset         float64 `toml:"max_offset"`
}

type renderTargetConfig struct {
	Targets      []string      `toml:"targets"`
	VertexStride int           `toml:"vertex_stride"`
	UseTextures  bool          `toml:"use_textures"`
	Camera       *cameraConfig `toml:"camera"`
}

type resourceConfig struct {
	ImageDirectory      string                       `toml:"image_directory"`
	Windows             map[string]windowConfig      `toml:"windows"`
	SpriteSheets        map[string]spriteSheetConfig `toml:"sprite_sheets"`
	DefaultRenderTarget renderTargetConfig           `toml:"default_render_target"`
	RenderTargets       []renderTargetConfig         `toml:"render_targets"`
}

// LoadResourceDescriptor reads a resource descriptor from a TOML file.
func LoadResourceDescriptor(path string) (*ResourceDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource file: %w", err)
	}
	var config resourceConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse resource file %s: %w", path, err)
	}

	r := NewResourceDescriptor(config.DefaultRenderTarget.descriptor())
	r.DefaultRenderTarget.Camera = config.DefaultRenderTarget.Camera.descriptor()
	r.WithImageDirectory(config.ImageDirectory)
	for name, w := range config.Windows {
		r.WithWindow(WindowName(name), WindowDescriptor{
			Title:      w.Title,
			Width:      w.Width,
			Height:     w.Height,
			Fullscreen: w.Fullscreen,
			IconPath:   w.Icon,
			CursorPath: w.Cursor,
		})
	}
	for name, s := range config.SpriteSheets {
		r.WithSpriteSheet(SpriteSheetName(name), s.Path, SpriteSheetDimensions{
			Rows:    s.Rows,
			Columns: s.Columns,
		})
	}
	for _, rt := range config.RenderTargets {
		targets := make([]RenderTargetName, len(rt.Targets))
		for i, t := range rt.Targets {
			targets[i] = RenderTargetName(t)
		}
		r.WithRenderTarget(RenderTargetResource{
			Targets:    targets,
			Camera:     rt.Camera.descriptor(),
			Descriptor: rt.descriptor(),
		})
	}
	return r, nil
}

func (c renderTargetConfig) descriptor() RenderTargetDescriptor {
	return RenderTargetDescriptor{
		IndexFormat:  IndexUint16,
		VertexStride: c.VertexStride,
		UseTextures:  c.UseTextures,
	}
}

func (c *cameraConfig) descriptor() *CameraDescriptor {
	if c == nil {
		return nil
	}
	return &CameraDescriptor{
		Name:              UniformBufferName(c.Name),
		ViewSize:          Size{Width: c.Width, Height: c.Height},
		Speed:             c.Speed,
		AccelerationSteps: c.AccelerationSteps,
		TargetEntity:      EntityName(c.TargetEntity),
		BoundEntity:       EntityName(c.BoundEntity),
		MaxOffsetPosition: c.MaxOffset,
	}
}
