package aspen

// WindowDescriptor carries the hints the platform layer needs to create a
// window.
type WindowDescriptor struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// IconPath optionally names an image file for the window icon.
	IconPath string
	// CursorPath optionally names an image file for a custom cursor.
	CursorPath string
}

// ShaderDescriptor names the shader source and entry points for a render
// target. Uniforms lists the uniform buffers the shader binds, in binding
// order. Camera uniforms are excluded because of their elevated role; they
// are declared per render target in the ResourceDescriptor and appended
// after the listed ones.
type ShaderDescriptor struct {
	File           string
	VertexShader   string
	FragmentShader string
	Uniforms       []UniformBufferName
}

// IndexFormat is the width of the indices in a render target's index buffer.
type IndexFormat uint8

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// RenderTargetDescriptor describes the buffer layout of a render target.
type RenderTargetDescriptor struct {
	IndexFormat IndexFormat
	// VertexStride is the byte size of one encoded vertex.
	VertexStride int
	UseTextures  bool
}

// ShaderStage is the pipeline stage a uniform buffer is visible to.
type ShaderStage uint8

const (
	StageVertex ShaderStage = 1 << iota
	StageFragment
)

// UniformBuffer is a named uniform block with its initial contents.
type UniformBuffer struct {
	Name     UniformBufferName
	Contents []byte
	Stage    ShaderStage
}

// Renderer is the interface the engine drives the external GPU renderer
// through. Implementations live in the platform layer; the engine calls
// UpdateUniformBuffer and RemoveRenderTarget directly and reaches the rest
// through queued events.
type Renderer interface {
	// CreateRenderTarget builds the pipeline and buffers for a scene.
	CreateRenderTarget(window WindowID, target RenderTargetName, shader ShaderDescriptor, descriptor RenderTargetDescriptor, uniforms []UniformBuffer)
	// UpdateSceneBuffers replaces a target's vertex and index data.
	UpdateSceneBuffers(target RenderTargetName, vertices *VertexBuffer, indices *IndexBuffer)
	// UpdateUniformBuffer replaces a uniform block's contents.
	UpdateUniformBuffer(name UniformBufferName, contents []byte)
	// SetVisibility shows or hides a render target.
	SetVisibility(target RenderTargetName, visibility Visibility)
	// RemoveRenderTarget releases a target's GPU resources.
	RemoveRenderTarget(target RenderTargetName)
	// CreateTexture decodes and uploads an image file. ok is false when
	// the file cannot be loaded.
	CreateTexture(path, label string) (handle TextureHandle, ok bool)
}
