// Package raster builds atlas tile content on the CPU.
//
// Every builder returns an [atlas.BuildFunc] that the atlas runs at most
// once per key:
//
//	tile, ok, err := a.GetOrInsertWith(params.Key(), raster.Glyph(f, gid, 16, raster.Subpixel{}))
//
// Glyph and Path produce single-channel coverage masks for Monochrome
// keys. Image produces premultiplied RGBA8 pixels for Polychrome keys.
package raster
