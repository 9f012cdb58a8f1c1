package aspen

import (
	"encoding/binary"
	"math"
)

// VertexBuffer accumulates encoded vertices for one frame of one render
// target. The byte layout of each vertex is the host's contract with its
// shader; the engine only tracks the count and forwards the bytes.
type VertexBuffer struct {
	data  []byte
	count int
}

// NewVertexBuffer returns an empty vertex buffer.
func NewVertexBuffer() *VertexBuffer {
	return &VertexBuffer{}
}

// Push appends encoded vertices, one byte slice per vertex.
func (b *VertexBuffer) Push(vertices ...[]byte) {
	for _, v := range vertices {
		b.data = append(b.data, v...)
	}
	b.count += len(vertices)
}

// Len returns the number of vertices pushed so far.
func (b *VertexBuffer) Len() int { return b.count }

// Bytes returns the accumulated vertex bytes.
func (b *VertexBuffer) Bytes() []byte { return b.data }

// IndexBuffer accumulates little-endian uint16 indices for one frame of one
// render target.
type IndexBuffer struct {
	data  []byte
	count int
}

// NewIndexBuffer returns an empty index buffer.
func NewIndexBuffer() *IndexBuffer {
	return &IndexBuffer{}
}

// Push appends indices.
func (b *IndexBuffer) Push(indices ...uint16) {
	for _, i := range indices {
		b.data = binary.LittleEndian.AppendUint16(b.data, i)
	}
	b.count += len(indices)
}

// Len returns the number of indices pushed so far.
func (b *IndexBuffer) Len() int { return b.count }

// Bytes returns the accumulated index bytes.
func (b *IndexBuffer) Bytes() []byte { return b.data }

// WriteRegularNgon appends the vertices of a convex polygon and the fan
// triangulation indices connecting them. Vertices must be given in winding
// order; at least three are required.
func WriteRegularNgon(vertices *VertexBuffer, indices *IndexBuffer, corners ...[]byte) {
	n := uint16(len(corners)) - 2
	start := uint16(vertices.Len())
	for i := uint16(0); i < n; i++ {
		indices.Push(start, start+i+1, start+i+2)
	}
	vertices.Push(corners...)
}

// SimpleVertex is a minimal vertex layout for untextured colored geometry:
// two float32 position components followed by a packed RGBA8 color, 12 bytes
// total, little-endian.
type SimpleVertex struct {
	Position Vec2
	Color    Color
}

// Encode returns the vertex's wire bytes.
func (v SimpleVertex) Encode() []byte {
	buf := make([]byte, 0, 12)
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v.Position.X)))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v.Position.Y)))
	buf = binary.LittleEndian.AppendUint32(buf, v.Color.RGBA8())
	return buf
}

// SimpleVertexStride is the byte size of an encoded SimpleVertex.
const SimpleVertexStride = 12
