package atlas

// FrameRenderer is the renderer side of a frame. The atlas only needs the
// three steps it brackets.
type FrameRenderer interface {
	// Draw encodes the frame's draw calls, binding atlas textures through
	// Atlas.TextureInfo.
	Draw(enc Encoder, a *Atlas) error

	// Submit hands the encoded commands to the GPU queue.
	Submit(enc Encoder) error

	// Present shows the frame.
	Present() error
}

// RenderFrame runs one frame: BeforeFrame, Draw, Submit, AfterFrame and
// Present. AfterFrame runs whenever BeforeFrame succeeded, even if Draw or
// Submit fail, so staging memory is never held across frames.
func RenderFrame(a *Atlas, enc Encoder, r FrameRenderer) error {
	if err := a.BeforeFrame(enc); err != nil {
		return err
	}

	err := r.Draw(enc, a)
	if err == nil {
		err = r.Submit(enc)
	}
	a.AfterFrame()
	if err != nil {
		return err
	}
	return r.Present()
}
