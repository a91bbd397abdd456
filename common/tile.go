package common

// TileSize is the edge length of one board cell in pixels.
const TileSize = 32

// SnapToTile rounds a pixel coordinate to the nearest tile boundary on each
// axis. A remainder strictly below half a tile snaps down, anything else
// snaps up, so 16 goes to 32.
func SnapToTile(x, y int) (int, int) {
	return snapAxis(x), snapAxis(y)
}

func snapAxis(v int) int {
	r := v % TileSize
	if r < TileSize/2 {
		return v - r
	}
	return v + (TileSize - r)
}

// PixelToTile converts a pixel position into the tile that contains it.
func PixelToTile(px, py int) (int, int) {
	return floorDiv(px, TileSize), floorDiv(py, TileSize)
}

// TileToPixel returns the top-left pixel of a tile.
func TileToPixel(tx, ty int) (int, int) {
	return tx * TileSize, ty * TileSize
}

func floorDiv(v, d int) int {
	q := v / d
	if v%d != 0 && v < 0 {
		q--
	}
	return q
}
