package tooni

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite   CommandType = iota // DrawImage
	CommandParticle                    // one quad per alive particle
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during traversal.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float32
	Color     color32
	BlendMode BlendMode
	// Node is the node that emitted the command.
	Node *Node

	image   *ebiten.Image
	emitter *ParticleEmitter
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// emitCommands walks the tree depth-first, updating transforms and appending
// a command for each visible, renderable sprite or live emitter. Children are
// emitted in child order, so later children draw on top.
func emitCommands(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, cmds []RenderCommand) []RenderCommand {
	if !n.Visible {
		return cmds
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable {
		switch n.Type {
		case NodeTypeSprite:
			if n.image != nil {
				cmds = append(cmds, RenderCommand{
					Type:      CommandSprite,
					Transform: affine32(n.worldTransform),
					Color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
					BlendMode: n.BlendMode,
					Node:      n,
					image:     n.image,
				})
			}
		case NodeTypeParticleEmitter:
			if n.Emitter != nil {
				cmds = append(cmds, RenderCommand{
					Type:      CommandParticle,
					Transform: affine32(n.worldTransform),
					Color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
					BlendMode: n.BlendMode,
					Node:      n,
					image:     WhitePixel,
					emitter:   n.Emitter,
				})
			}
		}
	}

	for _, child := range n.children {
		cmds = emitCommands(child, n.worldTransform, n.worldAlpha, recompute, cmds)
	}
	return cmds
}

// submitCommands draws the display list onto target in order.
func submitCommands(target *ebiten.Image, cmds []RenderCommand) {
	var op ebiten.DrawImageOptions
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Type {
		case CommandSprite:
			submitSprite(target, cmd, &op)
		case CommandParticle:
			submitParticles(target, cmd, &op)
		}
	}
}

// submitSprite draws a single sprite command using DrawImage.
func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.GeoM.Concat(commandGeoM(cmd))

	// Premultiplied color scale.
	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)

	op.Blend = cmd.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	target.DrawImage(cmd.image, op)
}

// submitParticles draws all alive particles for a CommandParticle command.
// Particle positions are relative to the emitter node.
func submitParticles(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	e := cmd.emitter
	if e == nil || e.alive == 0 {
		return
	}
	base := commandGeoM(cmd)
	op.Filter = ebiten.FilterNearest

	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]

		op.GeoM.Reset()
		// Per-particle scale around the pixel center.
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(float64(p.scale.cur), float64(p.scale.cur))
		op.GeoM.Translate(p.x, p.y)
		op.GeoM.Concat(base)

		// Particle color * node color, particle alpha * node alpha.
		cr := p.r.cur * cmd.Color.R
		cg := p.g.cur * cmd.Color.G
		cb := p.b.cur * cmd.Color.B
		ca := p.alpha.cur * cmd.Color.A
		op.ColorScale.Reset()
		op.ColorScale.Scale(cr*ca, cg*ca, cb*ca, ca)

		op.Blend = cmd.BlendMode.EbitenBlend()
		target.DrawImage(cmd.image, op)
	}
}

// commandGeoM converts a command's affine transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.Transform[0]))
	m.SetElement(1, 0, float64(cmd.Transform[1]))
	m.SetElement(0, 1, float64(cmd.Transform[2]))
	m.SetElement(1, 1, float64(cmd.Transform[3]))
	m.SetElement(0, 2, float64(cmd.Transform[4]))
	m.SetElement(1, 2, float64(cmd.Transform[5]))
	return m
}
