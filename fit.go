package tooni

import "math"

// FitToViewport stretches n so its image exactly fills a w x h viewport and
// centers it. Each axis is scaled on its own; the aspect ratio is not kept,
// so overlay art must be authored at the viewport's aspect ratio.
// No-op while the viewport has no area.
func FitToViewport(n *Node, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	n.ScaleToWidth(w)
	n.ScaleToHeight(h)
	n.CenterIn(w, h)
}

// CoverFit scales n uniformly by the smallest factor that covers a w x h
// viewport and centers it, cropping whatever overflows.
// No-op while the viewport or the image has no area.
func CoverFit(n *Node, w, h float64) {
	iw, ih := n.ImageSize()
	if w <= 0 || h <= 0 || iw == 0 || ih == 0 {
		return
	}
	s := math.Max(w/iw, h/ih)
	n.SetScale(s, s)
	n.CenterIn(w, h)
}

// ViewportHeight returns the surface height for a container width. The
// surface keeps the 568:400 aspect of the default character art.
func ViewportHeight(width float64) float64 {
	return width * viewportAspectH / viewportAspectW
}

const (
	viewportAspectW = 568
	viewportAspectH = 400
)
