package ebitenatlas

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Flipbook steps through a sequence of atlas regions over time. The easing
// function shapes how quickly the frames advance; ease.Linear shows each
// frame for the same duration. Call Update(dt) each tick and draw Frame().
//
// There is no global animation manager, users call Update themselves.
type Flipbook struct {
	atlas    *Atlas
	frames   []string
	duration float32
	fn       ease.TweenFunc
	tween    *gween.Tween
	index    int

	Loop bool
	Done bool
}

// NewFlipbook creates a flipbook over frames, playing all of them once per
// duration seconds. A nil fn means ease.Linear.
func NewFlipbook(atlas *Atlas, frames []string, duration float32, fn ease.TweenFunc, loop bool) *Flipbook {
	if fn == nil {
		fn = ease.Linear
	}
	f := &Flipbook{atlas: atlas, frames: frames, duration: duration, fn: fn, Loop: loop}
	f.restart()
	if len(frames) == 0 {
		f.Done = true
	}
	return f
}

func (f *Flipbook) restart() {
	f.tween = gween.New(0, float32(len(f.frames)), f.duration, f.fn)
	f.index = 0
}

// Update advances the flipbook by dt seconds.
func (f *Flipbook) Update(dt float32) {
	if f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	f.index = min(max(int(val), 0), len(f.frames)-1)
	if !finished {
		return
	}
	if f.Loop {
		f.restart()
		return
	}
	f.Done = true
}

// Index returns the current frame index.
func (f *Flipbook) Index() int {
	return f.index
}

// Name returns the current frame's region name, or "" for an empty flipbook.
func (f *Flipbook) Name() string {
	if len(f.frames) == 0 {
		return ""
	}
	return f.frames[f.index]
}

// Frame returns the current frame image. Empty flipbooks and unknown names
// return the magenta placeholder.
func (f *Flipbook) Frame() *ebiten.Image {
	return f.atlas.SubImage(f.Name())
}
