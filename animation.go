package tooni

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween drives one or two float64 fields of a Node with gween and marks the
// node dirty as they change. A tween on a disposed node finishes at once
// without writing.
type Tween struct {
	tweens [2]*gween.Tween
	fields [2]*float64
	n      int
	target *Node
	Done   bool
}

func newTween(target *Node, duration float32, fn ease.TweenFunc, fields ...fieldTarget) *Tween {
	t := &Tween{target: target, n: len(fields)}
	for i, f := range fields {
		t.tweens[i] = gween.New(float32(*f.field), float32(f.to), duration, fn)
		t.fields[i] = f.field
	}
	return t
}

type fieldTarget struct {
	field *float64
	to    float64
}

// Update advances the tween by dt seconds.
func (t *Tween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target.IsDisposed() {
		t.Done = true
		return
	}
	done := true
	for i := 0; i < t.n; i++ {
		v, finished := t.tweens[i].Update(dt)
		*t.fields[i] = float64(v)
		done = done && finished
	}
	t.Done = done
	t.target.MarkDirty()
}

// TweenPosition moves node to (toX, toY) over duration seconds.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, fieldTarget{&node.X, toX}, fieldTarget{&node.Y, toY})
}

// TweenAlpha fades node.Alpha to the target over duration seconds.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, fieldTarget{&node.Alpha, to})
}

// FadeIn makes node transparent and returns a tween that brings it back to
// full opacity.
func FadeIn(node *Node, duration float32) *Tween {
	node.SetAlpha(0)
	return TweenAlpha(node, 1, duration, ease.OutQuad)
}

// Tweens is a set of running tweens advanced together. Finished tweens are
// dropped on the next Update.
type Tweens struct {
	list []*Tween
}

// Add starts tracking t.
func (ts *Tweens) Add(t *Tween) {
	ts.list = append(ts.list, t)
}

// Update advances every tween by dt and reports whether any field changed.
func (ts *Tweens) Update(dt float32) bool {
	if len(ts.list) == 0 {
		return false
	}
	live := ts.list[:0]
	for _, t := range ts.list {
		t.Update(dt)
		if !t.Done {
			live = append(live, t)
		}
	}
	clear(ts.list[len(live):])
	ts.list = live
	return true
}

// Len returns the number of unfinished tweens.
func (ts *Tweens) Len() int {
	return len(ts.list)
}

// Clear stops every tween where it is.
func (ts *Tweens) Clear() {
	clear(ts.list)
	ts.list = ts.list[:0]
}
