package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/tooni"
)

const (
	hudPad        = 12
	hudGap        = 6
	buttonPadX    = 10
	buttonHeight  = 28
	swatchWidth   = 28
	sectionMargin = 10
)

var (
	hudBackground = color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff}
	buttonIdle    = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	buttonActive  = color.RGBA{R: 0xff, G: 0xc8, B: 0x3d, A: 0xff}
	labelColor    = tooni.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
)

// button is a clickable label or color swatch.
type button struct {
	rect   image.Rectangle
	label  string
	swatch *tooni.Color
	active func() bool
	click  func()
}

func (b *button) isActive() bool {
	return b.active != nil && b.active()
}

type section struct {
	title    string
	titlePos image.Point
	buttons  []*button
}

// hud is the control panel under the surface: one row of buttons per
// catalog category, background colors, and actions. Buttons flow left to
// right and wrap at the window edge.
type hud struct {
	font     *tooni.Font
	sections []*section
	width    int
	top      int
	bottom   int
	laidOut  bool
	touches  []ebiten.TouchID
}

func newHUD(font *tooni.Font) *hud {
	return &hud{font: font}
}

func (h *hud) addSection(title string, buttons ...*button) {
	h.sections = append(h.sections, &section{title: title, buttons: buttons})
	h.laidOut = false
}

// layout positions every button below top for a window width wide.
func (h *hud) layout(width, top int) {
	if h.laidOut && width == h.width && top == h.top {
		return
	}
	h.laidOut = true
	h.width = width
	h.top = top
	lh := int(h.font.LineHeight())
	y := top + hudPad
	for _, s := range h.sections {
		s.titlePos = image.Pt(hudPad, y)
		y += lh + hudGap/2

		x := hudPad
		for _, b := range s.buttons {
			w := swatchWidth
			if b.swatch == nil {
				tw, _ := h.font.MeasureString(b.label)
				w = int(tw) + 2*buttonPadX
			}
			if x > hudPad && x+w > width-hudPad {
				x = hudPad
				y += buttonHeight + hudGap
			}
			b.rect = image.Rect(x, y, x+w, y+buttonHeight)
			x += w + hudGap
		}
		y += buttonHeight + sectionMargin
	}
	h.bottom = y
}

// hit returns the button under p, or nil.
func (h *hud) hit(p image.Point) *button {
	for _, s := range h.sections {
		for _, b := range s.buttons {
			if pixelRect(b.rect).Contains(float64(p.X), float64(p.Y)) {
				return b
			}
		}
	}
	return nil
}

// pixelRect converts r to a tooni.Rect covering its pixels. Contains is
// edge inclusive, so the far edge is the last pixel row and column.
func pixelRect(r image.Rectangle) tooni.Rect {
	return tooni.Rect{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Dx() - 1),
		Height: float64(r.Dy() - 1),
	}
}

// update dispatches clicks and taps that started this tick.
func (h *hud) update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.press(image.Pt(ebiten.CursorPosition()))
	}
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	for _, id := range h.touches {
		h.press(image.Pt(ebiten.TouchPosition(id)))
	}
}

func (h *hud) press(p image.Point) {
	if b := h.hit(p); b != nil && b.click != nil {
		b.click()
	}
}

func (h *hud) draw(screen *ebiten.Image) {
	panel := image.Rect(0, h.top, screen.Bounds().Dx(), screen.Bounds().Dy())
	fillRect(screen, panel, hudBackground)

	for _, s := range h.sections {
		h.font.DrawString(screen, s.title, float64(s.titlePos.X), float64(s.titlePos.Y), labelColor)
		for _, b := range s.buttons {
			bg := buttonIdle
			if b.isActive() {
				bg = buttonActive
			}
			fillRect(screen, b.rect, bg)
			if b.swatch != nil {
				fillRect(screen, b.rect.Inset(3), rgba(*b.swatch))
				continue
			}
			_, th := h.font.MeasureString(b.label)
			ty := float64(b.rect.Min.Y) + (buttonHeight-th)/2
			h.font.DrawString(screen, b.label, float64(b.rect.Min.X+buttonPadX), ty, labelColor)
		}
	}
}

func fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	dst.SubImage(r).(*ebiten.Image).Fill(c)
}

func rgba(c tooni.Color) color.RGBA {
	return color.RGBA{
		R: uint8(c.R * c.A * 255),
		G: uint8(c.G * c.A * 255),
		B: uint8(c.B * c.A * 255),
		A: uint8(c.A * 255),
	}
}
