package tooni

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// WhitePixel is a 1x1 white image used for solid color sprites and particles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Node IDs are only assigned on the event loop goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a scene graph element: a layer image, a group, or a particle
// emitter. A single flat struct is used for all node types.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha      float64
	Visible    bool
	Renderable bool

	// Sprite fields (NodeTypeSprite)
	image     *ebiten.Image
	BlendMode BlendMode
	Color     Color

	// Particle fields (NodeTypeParticleEmitter)
	Emitter *ParticleEmitter

	// Manipulation flags. Nothing in this package moves nodes on pointer
	// input; hosts that add manipulation must honor them.
	Selectable bool
	Movable    bool
	Scalable   bool
	Rotatable  bool

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.Selectable = true
	n.Movable = true
	n.Scalable = true
	n.Rotatable = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders img at its natural size.
// A nil img renders a 1x1 WhitePixel tinted by Color.
func NewSprite(name string, img *ebiten.Image) *Node {
	if img == nil {
		img = WhitePixel
	}
	n := &Node{Name: name, Type: NodeTypeSprite, image: img}
	nodeDefaults(n)
	return n
}

// NewParticleEmitter creates a particle emitter node with a preallocated pool.
func NewParticleEmitter(name string, cfg EmitterConfig) *Node {
	n := &Node{
		Name:      name,
		Type:      NodeTypeParticleEmitter,
		BlendMode: cfg.BlendMode,
		Emitter:   newParticleEmitter(cfg),
	}
	nodeDefaults(n)
	return n
}

// Image returns the image a sprite renders.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// SetImage swaps the sprite image. Scale is left untouched.
func (n *Node) SetImage(img *ebiten.Image) {
	if img == nil {
		img = WhitePixel
	}
	n.image = img
}

// ImageSize returns the unscaled image dimensions, or zero for nodes
// without an image.
func (n *Node) ImageSize() (w, h float64) {
	if n.image == nil {
		return 0, 0
	}
	b := n.image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Lock disables every manipulation flag. Locked nodes are positioned and
// scaled only by code.
func (n *Node) Lock() {
	n.Selectable = false
	n.Movable = false
	n.Scalable = false
	n.Rotatable = false
}

// Locked reports whether every manipulation flag is off.
func (n *Node) Locked() bool {
	return !n.Selectable && !n.Movable && !n.Scalable && !n.Rotatable
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.attach(child, -1)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if index < 0 || index > len(n.children) {
		panic("tooni: child index out of range")
	}
	n.attach(child, index)
}

// attach links child under n at index, or at the end when index is negative.
func (n *Node) attach(child *Node, index int) {
	if child == nil {
		panic("tooni: cannot add nil child")
	}
	if child.disposed {
		panic("tooni: cannot add disposed node " + child.Name)
	}
	if isAncestor(child, n) {
		panic("tooni: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("tooni: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Images are not deallocated;
// loaders may share them between nodes.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.image = nil
	n.Emitter = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
