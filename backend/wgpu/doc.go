// Package wgpu backs atlas textures with GPU textures from gogpu/wgpu.
//
// Wrap an existing device and queue with New, or the device of a host
// application with FromProvider:
//
//	dev, err := wgpu.FromProvider(app) // app implements gpucontext.DeviceProvider
//	if err != nil {
//		return err
//	}
//	a, err := atlas.New(dev)
//	...
//	a.BeforeFrame(dev.Encoder())
//
// Uploads are written with Queue.WriteTexture, which records them into the
// queue's pending writes; they are executed before the next submitted
// command buffer, so tiles inserted before BeforeFrame are visible to the
// draws of the same frame.
//
// Importing the package also registers a standalone backend named "wgpu"
// with the backend registry. It opens its own adapter and device on Init.
//
// Texture.Release defers destruction of the underlying GPU texture until
// the last submission that may reference it has completed.
package wgpu
