package aspen

// TextureHandle is the external renderer's identifier for an uploaded
// texture. Handle 0 is the renderer's default texture.
type TextureHandle uint32

// SpriteSheetDimensions is the grid layout of a sprite sheet image.
type SpriteSheetDimensions struct {
	Rows, Columns uint8
}

// SpritePosition addresses one sprite cell within a sheet.
type SpritePosition struct {
	X, Y uint8
}

// TextureCoordinates is a single UV pair.
type TextureCoordinates struct {
	U, V float32
}

// SpriteSheet is a texture subdivided into a regular grid of sprites.
type SpriteSheet struct {
	texture          TextureHandle
	SpritesPerRow    uint8
	SpritesPerColumn uint8
}

// NewSpriteSheet creates a sheet over the given texture.
func NewSpriteSheet(texture TextureHandle, dimensions SpriteSheetDimensions) *SpriteSheet {
	return &SpriteSheet{
		texture:          texture,
		SpritesPerRow:    dimensions.Columns,
		SpritesPerColumn: dimensions.Rows,
	}
}

// Texture returns the sheet's texture handle.
func (s *SpriteSheet) Texture() TextureHandle {
	return s.texture
}

// SpriteCoordinates returns the UV quad for one sprite cell, in the order
// top-left, top-right, bottom-right, bottom-left.
func (s *SpriteSheet) SpriteCoordinates(position SpritePosition) [4]TextureCoordinates {
	width := 1.0 / float32(s.SpritesPerRow)
	height := 1.0 / float32(s.SpritesPerColumn)
	u := float32(position.X) * width
	v := float32(position.Y) * height
	return [4]TextureCoordinates{
		{U: u, V: v},
		{U: u + width, V: v},
		{U: u + width, V: v + height},
		{U: u, V: v + height},
	}
}
