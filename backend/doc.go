// Package backend provides a registry of texture backends for the atlas.
//
// A backend bundles the atlas.Device that creates backing textures with the
// atlas.Encoder that uploads tile pixels, so applications can pick a GPU or
// CPU implementation at runtime.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/atlas/backend"
//
// The wgpu backend registers itself when its package is imported:
//
//	import _ "github.com/gogpu/atlas/backend/wgpu"
//
// # Backend Selection
//
// Use InitDefault to initialize the best available backend, or Get to
// request one by name:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	a, err := atlas.New(b.Device())
//	// per frame:
//	a.BeforeFrame(b.Encoder())
//
// # Available Backends
//
// - "wgpu": GPU textures via gogpu/wgpu (when imported)
// - "software": host-memory textures (always available)
package backend
