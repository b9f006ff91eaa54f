package atlas

import (
	"errors"
	"slices"
	"testing"
)

type recordingRenderer struct {
	steps   []string
	drawErr error
	tile    Tile
}

func (r *recordingRenderer) Draw(_ Encoder, a *Atlas) error {
	r.steps = append(r.steps, "draw")
	if r.drawErr != nil {
		return r.drawErr
	}
	if a.TextureInfo(r.tile.TextureID).View.IsNil() {
		return errors.New("texture not ready during draw")
	}
	return nil
}

func (r *recordingRenderer) Submit(Encoder) error {
	r.steps = append(r.steps, "submit")
	return nil
}

func (r *recordingRenderer) Present() error {
	r.steps = append(r.steps, "present")
	return nil
}

func TestRenderFrame(t *testing.T) {
	a, _ := newTestAtlas(t)
	tile := mustInsert(t, a, testKey(Monochrome, "a"), solid(Monochrome, 4, 4, 1))
	enc := newFakeEncoder()
	r := &recordingRenderer{tile: tile}

	if err := RenderFrame(a, enc, r); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	if want := []string{"draw", "submit", "present"}; !slices.Equal(r.steps, want) {
		t.Errorf("steps = %v, want %v", r.steps, want)
	}
	if len(enc.writes) != 1 {
		t.Errorf("writes = %d, want 1", len(enc.writes))
	}
}

func TestRenderFrameDrawError(t *testing.T) {
	a, _ := newTestAtlas(t)
	tile := mustInsert(t, a, testKey(Monochrome, "a"), solid(Monochrome, 4, 4, 1))
	r := &recordingRenderer{tile: tile, drawErr: errors.New("pipeline missing")}

	err := RenderFrame(a, newFakeEncoder(), r)
	if !errors.Is(err, r.drawErr) {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	if !slices.Equal(r.steps, []string{"draw"}) {
		t.Errorf("steps = %v, want only draw", r.steps)
	}
	if len(a.state.staging.submitted) != 0 {
		t.Error("AfterFrame not run after a draw failure")
	}
}
