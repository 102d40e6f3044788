package renderer

import (
	"image"
)

// Tile is a rectangular block of pixels rendered by a single worker
type Tile struct {
	ID     int             // Unique tile identifier, also used to derive the tile's random seed
	Bounds image.Rectangle // Pixel bounds; X is the column, Y is the row
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	var tiles []Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// tileSeed derives a well-mixed per-tile seed (splitmix64 finalizer) so that
// neighbouring tiles and neighbouring render seeds get unrelated streams
func tileSeed(seed int64, tileID int) int64 {
	z := uint64(seed) + uint64(tileID+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
