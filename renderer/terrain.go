// Package renderer draws the world with raylib: cached terrain chunk
// textures underneath, organisms on top.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/NeoLorenzo/eco-system-evolution/camera"
	"github.com/NeoLorenzo/eco-system-evolution/config"
	"github.com/NeoLorenzo/eco-system-evolution/systems"
)

// ViewMode selects which environment field the terrain layer shows.
type ViewMode int

const (
	ViewTerrain ViewMode = iota
	ViewTemperature
	ViewHumidity
	numViewModes
)

// String returns the HUD label for the view mode.
func (v ViewMode) String() string {
	switch v {
	case ViewTerrain:
		return "terrain"
	case ViewTemperature:
		return "temperature"
	case ViewHumidity:
		return "humidity"
	default:
		return "unknown"
	}
}

// Next cycles to the following view mode.
func (v ViewMode) Next() ViewMode {
	return (v + 1) % numViewModes
}

type chunkKey struct {
	cx, cy int
	mode   ViewMode
}

// maxCachedChunks bounds GPU memory; the cache is dropped wholesale when
// exceeded, which costs one regeneration of the visible set.
const maxCachedChunks = 512

// TerrainRenderer rasterizes the static environment fields into cached
// chunk textures. The fields never change during a run, so a chunk is
// rendered at most once per view mode until evicted.
type TerrainRenderer struct {
	env    *systems.Environment
	chunks map[chunkKey]rl.Texture2D
}

// NewTerrainRenderer creates an empty chunk cache over the environment.
func NewTerrainRenderer(env *systems.Environment) *TerrainRenderer {
	return &TerrainRenderer{
		env:    env,
		chunks: make(map[chunkKey]rl.Texture2D),
	}
}

// Draw renders every chunk intersecting the camera view in the given mode.
func (t *TerrainRenderer) Draw(cam *camera.Camera, mode ViewMode) {
	cfg := config.Cfg()
	size := cfg.Terrain.ChunkSizeCM

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	c0 := int(minX / size)
	c1 := int(maxX / size)
	r0 := int(minY / size)
	r1 := int(maxY / size)

	maxCol := int(cfg.World.WidthCM/size) - 1
	maxRow := int(cfg.World.HeightCM/size) - 1

	for cy := r0; cy <= r1; cy++ {
		if cy < 0 || cy > maxRow {
			continue
		}
		for cx := c0; cx <= c1; cx++ {
			if cx < 0 || cx > maxCol {
				continue
			}
			tex := t.chunk(cx, cy, mode)

			wx := float64(cx) * size
			wy := float64(cy) * size
			sx, sy := cam.WorldToScreen(wx, wy)
			scale := size * cam.Zoom / float64(tex.Width)

			rl.DrawTextureEx(tex, rl.NewVector2(float32(sx), float32(sy)), 0,
				float32(scale), rl.White)
		}
	}
}

// chunk returns the cached texture for a chunk, rendering it on a miss.
func (t *TerrainRenderer) chunk(cx, cy int, mode ViewMode) rl.Texture2D {
	key := chunkKey{cx: cx, cy: cy, mode: mode}
	if tex, ok := t.chunks[key]; ok {
		return tex
	}

	if len(t.chunks) >= maxCachedChunks {
		t.Unload()
		t.chunks = make(map[chunkKey]rl.Texture2D)
	}

	tex := t.renderChunk(cx, cy, mode)
	t.chunks[key] = tex
	return tex
}

// renderChunk samples the environment over the chunk and uploads a texture.
func (t *TerrainRenderer) renderChunk(cx, cy int, mode ViewMode) rl.Texture2D {
	cfg := config.Cfg()
	size := cfg.Terrain.ChunkSizeCM
	res := cfg.Terrain.ChunkResolution

	img := rl.GenImageColor(res, res, rl.Black)
	step := size / float64(res)
	baseX := float64(cx) * size
	baseY := float64(cy) * size

	for py := 0; py < res; py++ {
		wy := baseY + (float64(py)+0.5)*step
		for px := 0; px < res; px++ {
			wx := baseX + (float64(px)+0.5)*step
			rl.ImageDrawPixel(img, int32(px), int32(py), t.sampleColor(wx, wy, mode))
		}
	}

	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

// sampleColor maps one environment sample to a pixel color.
func (t *TerrainRenderer) sampleColor(wx, wy float64, mode ViewMode) color.RGBA {
	switch mode {
	case ViewTemperature:
		v := t.env.Temperature(wx, wy)
		return rl.NewColor(uint8(255*v), 40, uint8(255*(1-v)), 255)
	case ViewHumidity:
		v := t.env.Humidity(wx, wy)
		return rl.NewColor(uint8(230*(1-v)), uint8(230*(1-v)), 255, 255)
	default:
		return elevationColor(t.env.Elevation(wx, wy))
	}
}

// elevationColor maps elevation to the terrain band palette.
func elevationColor(e float64) color.RGBA {
	tc := config.Cfg().Terrain
	switch {
	case e < tc.WaterLevel:
		// Deeper water darker.
		depth := 1.0
		if tc.WaterLevel > 0 {
			depth = e / tc.WaterLevel
		}
		return rl.NewColor(uint8(20+60*depth), uint8(60+80*depth), uint8(140+80*depth), 255)
	case e < tc.SandLevel:
		return rl.NewColor(216, 200, 148, 255)
	case e < tc.GrassLevel:
		return rl.NewColor(88, 144, 72, 255)
	case e < tc.DirtLevel:
		return rl.NewColor(132, 100, 68, 255)
	default:
		// Mountain, brighter with altitude.
		v := uint8(140 + 90*clamp01((e-tc.DirtLevel)/(1-tc.DirtLevel)))
		return rl.NewColor(v, v, v, 255)
	}
}

// Unload releases every cached texture. Call before closing the window.
func (t *TerrainRenderer) Unload() {
	for _, tex := range t.chunks {
		rl.UnloadTexture(tex)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
