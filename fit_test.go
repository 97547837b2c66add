package tooni

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestViewportHeight(t *testing.T) {
	tests := []struct {
		width, want float64
	}{
		{568, 400},
		{1136, 800},
		{284, 200},
		{0, 0},
	}
	for _, tt := range tests {
		if got := ViewportHeight(tt.width); got != tt.want {
			t.Errorf("ViewportHeight(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestFitToViewportStretches(t *testing.T) {
	n := NewSprite("n", ebiten.NewImage(200, 100))
	FitToViewport(n, 568, 400)

	assertNear(t, "scaleX", n.ScaleX, 2.84)
	assertNear(t, "scaleY", n.ScaleY, 4)
	assertNear(t, "x", n.X, 284)
	assertNear(t, "y", n.Y, 200)
	assertNear(t, "pivotX", n.PivotX, 100)
	assertNear(t, "pivotY", n.PivotY, 50)

	b := n.Bounds()
	assertNear(t, "bounds x", b.X, 0)
	assertNear(t, "bounds y", b.Y, 0)
	assertNear(t, "bounds w", b.Width, 568)
	assertNear(t, "bounds h", b.Height, 400)
}

func TestFitToViewportNoArea(t *testing.T) {
	n := NewSprite("n", ebiten.NewImage(10, 10))
	n.SetScale(2, 2)
	n.SetPosition(7, 7)
	FitToViewport(n, 0, 0)
	if n.ScaleX != 2 || n.X != 7 {
		t.Error("fit to an empty viewport should leave the node alone")
	}
}

func TestCoverFit(t *testing.T) {
	tests := []struct {
		name       string
		iw, ih     int
		w, h       float64
		wantScale  float64
		wantWidth  float64
		wantHeight float64
	}{
		{"wide image", 200, 100, 568, 400, 4, 800, 400},
		{"tall image", 100, 400, 568, 400, 5.68, 568, 2272},
		{"same aspect", 284, 200, 568, 400, 2, 568, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewSprite("bg", ebiten.NewImage(tt.iw, tt.ih))
			CoverFit(n, tt.w, tt.h)
			assertNear(t, "scaleX", n.ScaleX, tt.wantScale)
			assertNear(t, "scaleY", n.ScaleY, tt.wantScale)

			b := n.Bounds()
			assertNear(t, "width", b.Width, tt.wantWidth)
			assertNear(t, "height", b.Height, tt.wantHeight)
			// Centered on the viewport.
			assertNear(t, "center x", b.X+b.Width/2, tt.w/2)
			assertNear(t, "center y", b.Y+b.Height/2, tt.h/2)
		})
	}
}
