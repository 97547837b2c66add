package tooni

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY
	preTx := -n.PivotX * sx
	preTy := -n.PivotY * sy

	if n.Rotation == 0 {
		return [6]float64{sx, 0, 0, sy, preTx + n.X, preTy + n.Y}
	}

	sin, cos := math.Sincos(n.Rotation)
	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetPivot sets the node's PivotX and PivotY and marks it dirty.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Sizing ---

// ScaledWidth is the image width after ScaleX.
func (n *Node) ScaledWidth() float64 {
	w, _ := n.ImageSize()
	return w * math.Abs(n.ScaleX)
}

// ScaledHeight is the image height after ScaleY.
func (n *Node) ScaledHeight() float64 {
	_, h := n.ImageSize()
	return h * math.Abs(n.ScaleY)
}

// ScaleToWidth sets ScaleX so the scaled width equals w. ScaleY is kept.
// No-op for nodes without an image.
func (n *Node) ScaleToWidth(w float64) {
	iw, _ := n.ImageSize()
	if iw == 0 {
		return
	}
	n.ScaleX = w / iw
	n.transformDirty = true
}

// ScaleToHeight sets ScaleY so the scaled height equals h. ScaleX is kept.
// No-op for nodes without an image.
func (n *Node) ScaleToHeight(h float64) {
	_, ih := n.ImageSize()
	if ih == 0 {
		return
	}
	n.ScaleY = h / ih
	n.transformDirty = true
}

// CenterIn anchors the node by its image center and moves that center to
// the middle of a w x h area.
func (n *Node) CenterIn(w, h float64) {
	iw, ih := n.ImageSize()
	n.PivotX = iw / 2
	n.PivotY = ih / 2
	n.X = w / 2
	n.Y = h / 2
	n.transformDirty = true
}

// Bounds returns the axis-aligned box of the node's image in its parent's
// coordinate space.
func (n *Node) Bounds() Rect {
	w, h := n.ImageSize()
	m := computeLocalTransform(n)
	x0, y0 := transformPoint(m, 0, 0)
	minX, minY, maxX, maxY := x0, y0, x0, y0
	for _, p := range [3][2]float64{{w, 0}, {0, h}, {w, h}} {
		x, y := transformPoint(m, p[0], p[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
