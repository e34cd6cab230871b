package constants

const (
	// GridRows is the number of map rows sent by the server.
	GridRows = 32
	// GridCols is the number of map columns sent by the server.
	GridCols = 64

	// TileSize is the edge length of a tile in pixels.
	TileSize = 40

	// CanvasWidth is the width of the map surface in pixels.
	CanvasWidth = 1000
	// CanvasHeight is the height of the map surface in pixels.
	CanvasHeight = 720

	// ViewportRows is the number of rows visible at once (CanvasHeight / TileSize).
	ViewportRows = CanvasHeight / TileSize
	// ViewportCols is the number of columns visible at once (CanvasWidth / TileSize).
	ViewportCols = CanvasWidth / TileSize

	// MaxUnitHP is the hitpoint value that fills a unit health bar.
	MaxUnitHP = 10

	// DefaultPlayerName is used when the player leaves the name empty.
	DefaultPlayerName = "Player"
)
