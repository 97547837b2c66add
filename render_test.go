package tooni

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Command emission ---

func TestSingleSpriteEmitsOneCommand(t *testing.T) {
	root := NewContainer("root")
	sprite := NewSprite("s", nil)
	root.AddChild(sprite)

	cmds := emitCommands(root, identityTransform, 1, false, nil)
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	if cmds[0].Type != CommandSprite {
		t.Errorf("Type = %d, want CommandSprite", cmds[0].Type)
	}
	if cmds[0].Node != sprite {
		t.Error("command should reference its node")
	}
}

func TestInvisibleNodeNoCommands(t *testing.T) {
	root := NewContainer("root")
	sprite := NewSprite("s", nil)
	sprite.Visible = false
	root.AddChild(sprite)

	if cmds := emitCommands(root, identityTransform, 1, false, nil); len(cmds) != 0 {
		t.Errorf("commands = %d, want 0 for invisible node", len(cmds))
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.Visible = false
	parent.AddChild(NewSprite("child", nil))
	root.AddChild(parent)

	if cmds := emitCommands(root, identityTransform, 1, false, nil); len(cmds) != 0 {
		t.Errorf("commands = %d, want 0 for invisible subtree", len(cmds))
	}
}

func TestNonRenderableNodeSkipped(t *testing.T) {
	root := NewContainer("root")
	parent := NewSprite("parent", nil)
	parent.Renderable = false
	child := NewSprite("child", nil)
	parent.AddChild(child)
	root.AddChild(parent)

	cmds := emitCommands(root, identityTransform, 1, false, nil)
	// Parent is skipped but its children still render.
	if len(cmds) != 1 || cmds[0].Node != child {
		t.Errorf("commands = %+v, want only the child", cmds)
	}
}

func TestContainerNoCommand(t *testing.T) {
	root := NewContainer("root")
	root.AddChild(NewContainer("empty"))
	if cmds := emitCommands(root, identityTransform, 1, false, nil); len(cmds) != 0 {
		t.Errorf("commands = %d, want 0 for containers", len(cmds))
	}
}

func TestCommandOrderFollowsChildren(t *testing.T) {
	root := NewContainer("root")
	a := NewSprite("a", nil)
	b := NewSprite("b", nil)
	c := NewSprite("c", nil)
	root.AddChild(a)
	root.AddChild(c)
	root.AddChildAt(b, 1)

	cmds := emitCommands(root, identityTransform, 1, false, nil)
	want := []*Node{a, b, c}
	if len(cmds) != len(want) {
		t.Fatalf("commands = %d, want %d", len(cmds), len(want))
	}
	for i := range want {
		if cmds[i].Node != want[i] {
			t.Errorf("command %d = %s, want %s", i, cmds[i].Node.Name, want[i].Name)
		}
	}
}

func TestWorldAlphaInCommand(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.Alpha = 0.5
	sprite := NewSprite("s", nil)
	sprite.Alpha = 0.8
	sprite.Color = Color{1, 0.5, 0.25, 0.5}
	parent.AddChild(sprite)
	root.AddChild(parent)

	cmds := emitCommands(root, identityTransform, 1, false, nil)
	c := cmds[0].Color
	assertNear32(t, "R", c.R, 1)
	assertNear32(t, "G", c.G, 0.5)
	assertNear32(t, "B", c.B, 0.25)
	assertNear32(t, "A", c.A, 0.5*0.8*0.5)
}

func TestBlendModeInCommand(t *testing.T) {
	root := NewContainer("root")
	sprite := NewSprite("s", nil)
	sprite.BlendMode = BlendAdd
	root.AddChild(sprite)

	cmds := emitCommands(root, identityTransform, 1, false, nil)
	if cmds[0].BlendMode != BlendAdd {
		t.Errorf("BlendMode = %v, want BlendAdd", cmds[0].BlendMode)
	}
}

func TestCommandTransform(t *testing.T) {
	root := NewContainer("root")
	root.X = 10
	sprite := NewSprite("s", ebiten.NewImage(4, 4))
	sprite.SetScale(2, 3)
	sprite.SetPosition(5, 6)
	root.AddChild(sprite)

	cmds := emitCommands(root, identityTransform, 1, false, nil)
	want := [6]float32{2, 0, 0, 3, 15, 6}
	if cmds[0].Transform != want {
		t.Errorf("Transform = %v, want %v", cmds[0].Transform, want)
	}

	m := commandGeoM(&cmds[0])
	x, y := m.Apply(1, 1)
	if x != 17 || y != 9 {
		t.Errorf("GeoM.Apply(1,1) = %v,%v, want 17,9", x, y)
	}
}

func TestAffine32(t *testing.T) {
	got := affine32([6]float64{1, 2, 3, 4, 5.5, -6.25})
	want := [6]float32{1, 2, 3, 4, 5.5, -6.25}
	if got != want {
		t.Errorf("affine32 = %v, want %v", got, want)
	}
}

func buildSpriteTree(count int) *Node {
	root := NewContainer("root")
	for i := 0; i < count; i++ {
		s := NewSprite("s", nil)
		s.X = float64(i % 100)
		s.Y = float64(i / 100)
		root.AddChild(s)
	}
	return root
}

func BenchmarkEmit1000(b *testing.B) {
	root := buildSpriteTree(1000)
	cmds := make([]RenderCommand, 0, 1000)

	b.ReportAllocs()
	for b.Loop() {
		root.MarkDirty()
		cmds = emitCommands(root, identityTransform, 1, false, cmds[:0])
	}
}
