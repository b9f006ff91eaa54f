// Package atlas provides a GPU texture atlas for the GoGPU ecosystem.
//
// # Overview
//
// An Atlas packs many small, independently produced bitmap tiles (glyphs,
// icons, images, rasterized paths) into a few large backing textures. Tiles
// are addressed by a Key that fingerprints their content. The atlas tracks
// how many live keys each backing texture holds, reclaims a texture as soon
// as its last key is removed, and stages pixel uploads so they are written
// exactly once per frame through an Encoder supplied by the renderer.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/atlas"
//	    "github.com/gogpu/atlas/backend/software"
//	)
//
//	a, err := atlas.New(software.NewDevice())
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	key := atlas.GlyphParams{FontID: 1, GlyphID: 42, FontSize: 16, ScaleFactor: 2}.Key()
//	tile, ok, err := a.GetOrInsertWith(key, func() (*atlas.Content, error) {
//	    return &atlas.Content{Size: atlas.Size{Width: 8, Height: 12}, Bytes: mask}, nil
//	})
//
// The returned Tile is usable by layout code immediately even though its
// pixels are not on the GPU yet.
//
// # Frame Protocol
//
// Once per frame the renderer brackets its work:
//
//	a.BeforeFrame(enc)  // create pending textures, write pending uploads
//	// ... encode draws, binding a.TextureInfo(tile.TextureID).View
//	// ... submit enc
//	a.AfterFrame()      // recycle staging memory, destroy retired textures
//
// RenderFrame wraps this sequence for renderers that implement FrameRenderer.
//
// # Kinds
//
// Tiles come in two kinds. Monochrome tiles are single-channel coverage masks
// stored in R8Unorm textures; Polychrome tiles are RGBA8Unorm. Each kind has
// its own set of backing textures.
//
// # Thread Safety
//
// Atlas is safe for concurrent use. All operations are serialized by a
// single mutex, including the BuildFunc invoked on a cache miss. A BuildFunc
// must not call back into the Atlas; doing so deadlocks.
//
// # Related Packages
//
// Package raster builds glyph, path and image content. Package shape turns
// text into glyph keys. Package shader holds the WGSL that samples atlas
// pages. Package backend selects a Device and Encoder implementation.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive texture
// lifecycle and upload diagnostics through log/slog.
package atlas
