// Package shader provides the WGSL program that samples atlas pages.
//
// The vertex stage expands one Sprite instance into a quad. Monochrome
// pages use the fs_mono entry point, which tints R8 coverage. Polychrome
// pages use fs_poly, which samples premultiplied RGBA.
package shader

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/atlas"
)

//go:embed atlas_sprite.wgsl
var spriteSource string

// Entry point names.
const (
	VertexEntry     = "vs_main"
	MonochromeEntry = "fs_mono"
	PolychromeEntry = "fs_poly"
)

// Bind group 0 layout.
const (
	BindingGlobals = 0
	BindingTexture = 1
	BindingSampler = 2
)

// Source returns the WGSL source.
func Source() string {
	return spriteSource
}

// FragmentEntry returns the fragment entry point for pages of kind.
func FragmentEntry(kind atlas.Kind) string {
	if kind == atlas.Polychrome {
		return PolychromeEntry
	}
	return MonochromeEntry
}

// Compile compiles the sprite shader to SPIR-V.
func Compile() ([]byte, error) {
	spirv, err := naga.Compile(spriteSource)
	if err != nil {
		return nil, fmt.Errorf("shader: compile atlas_sprite.wgsl: %w", err)
	}
	return spirv, nil
}

// CompileWords compiles the sprite shader to SPIR-V words, the form HAL
// shader modules take.
func CompileWords() ([]uint32, error) {
	spirv, err := Compile()
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}
