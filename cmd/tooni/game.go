package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/tooni"
	"github.com/phanxgames/tooni/catalog"
	"github.com/phanxgames/tooni/config"
	"github.com/phanxgames/tooni/sound"
)

const (
	surfaceID   = "canvas"
	fireworksID = "fireworks"
	fontSize    = 14
	soundVolume = 0.8
)

var palette = []string{"#ffffff", "#ffd6e0", "#c9f0ff", "#fff3b0", "#d4f8d4", "#e5d4ff", "#222222"}

// Game wires the customizer into Ebitengine.
type Game struct {
	cfg    config.Config
	win    *tooni.Window
	ctrl   *tooni.Controller
	fw     *tooni.Fireworks
	hud    *hud
	runner *tooni.Runner
	player *sound.Player
	debug  bool
}

func newGame(cfg config.Config) (*Game, error) {
	loader, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}
	font, useNames, err := loadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	win := tooni.NewWindow(float64(cfg.Width), float64(cfg.Height))
	win.Register(surfaceID)
	win.Register(fireworksID)

	g := &Game{
		cfg: cfg,
		win: win,
		ctrl: tooni.NewController(tooni.ControllerOptions{
			Host:       win,
			Loader:     loader,
			Downloader: newDownloader(cfg),
			FadeIn:     float32(cfg.FadeIn),
		}),
		fw:    tooni.NewFireworks(win, fireworksID, tooni.DefaultFireworksOptions()),
		hud:   newHUD(font),
		debug: cfg.Debug,
	}
	g.ctrl.SetDebugMode(cfg.Debug)

	if cfg.Sound {
		p := sound.NewPlayer(soundVolume)
		if err := p.Initialize(); err != nil {
			tooni.Logger().Printf("sound disabled: %v", err)
		} else {
			g.player = p
			g.fw.SetSounder(p)
		}
	}

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		if g.runner, err = tooni.LoadScript(data); err != nil {
			return nil, err
		}
	}

	fill, err := tooni.ParseColor(cfg.BackgroundColor)
	if err != nil {
		return nil, err
	}
	g.buildHUD(useNames)
	g.ctrl.Initialize(surfaceID, fill)
	if cfg.BackgroundFile != "" {
		if err := g.ctrl.LoadBackgroundImage(tooni.LocalFile(cfg.BackgroundFile)); err != nil {
			return nil, fmt.Errorf("background file %s: %w", cfg.BackgroundFile, err)
		}
	}
	return g, nil
}

// newLoader serves images from TOONI_ASSETS_URL when set, otherwise from
// the platform default (see defaultLoader).
func newLoader(cfg config.Config) (tooni.ImageLoader, error) {
	if cfg.AssetsURL != "" {
		return tooni.NewHTTPLoader(cfg.AssetsURL, http.DefaultClient)
	}
	return defaultLoader(cfg)
}

// pageBase strips the query and fragment from a page URL so asset paths
// resolve against the directory the page was served from.
func pageBase(href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// loadFont returns the HUD font and whether it can show item display names.
func loadFont(path string) (*tooni.Font, bool, error) {
	if path == "" {
		f, err := tooni.LoadFont(goregular.TTF, fontSize)
		return f, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read font: %w", err)
	}
	f, err := tooni.LoadFont(data, fontSize)
	return f, err == nil, err
}

func (g *Game) buildHUD(useNames bool) {
	items := catalog.ListCategories()
	for _, cat := range catalog.Categories() {
		var buttons []*button
		for _, it := range items[cat] {
			label := it.Label()
			if useNames {
				label = it.Name
			}
			buttons = append(buttons, &button{
				label:  label,
				active: func() bool { return g.ctrl.IsActive(it.File) },
				click:  func() { g.ctrl.ToggleItem(it, cat) },
			})
		}
		g.hud.addSection(string(cat), buttons...)
	}

	var swatches []*button
	for _, hex := range palette {
		c := tooni.MustParseColor(hex)
		swatches = append(swatches, &button{
			swatch: &c,
			active: func() bool {
				s := g.ctrl.Surface()
				return s != nil && s.Fill() == c
			},
			click: func() { g.ctrl.SetBackgroundColor(c) },
		})
	}
	g.hud.addSection("background", swatches...)

	g.hud.addSection("actions",
		&button{label: "Clear photo", click: g.ctrl.ClearBackgroundImage},
		&button{label: "Fireworks", active: g.fw.Running, click: g.fw.Start},
		&button{label: "Save PNG", click: g.ctrl.ExportImage},
	)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.Step(g.ctrl, g.fw)
	}

	g.hud.update()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.fw.Start()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.ctrl.ExportImage()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.ctrl.ClearBackgroundImage()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.debug = !g.debug
		g.ctrl.SetDebugMode(g.debug)
	}
	if dropped := ebiten.DroppedFiles(); dropped != nil {
		g.ctrl.SetBackgroundImage(tooni.DroppedFiles{FS: dropped})
	}

	g.ctrl.Update()
	g.fw.Update(1 / float64(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.ctrl.Draw(screen)
	g.hud.draw(screen)
	g.fw.Draw(screen)
	if g.debug {
		var vp tooni.Rect
		if s := g.ctrl.Surface(); s != nil {
			vp = s.Viewport()
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nsurface: %.0fx%.0f\nitems: %d\nloading: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), vp.Width, vp.Height, len(g.ctrl.ActiveItems()), g.ctrl.Pending()), 4, 4)
	}
}

// Layout implements ebiten.Game. The window host follows the outside size,
// which resizes the surface through its listener.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.win.SetSize(float64(outsideWidth), float64(outsideHeight))
	g.hud.layout(outsideWidth, int(tooni.ViewportHeight(float64(outsideWidth))))
	return outsideWidth, outsideHeight
}

// Close releases the resize listener and the speaker.
func (g *Game) Close() {
	g.ctrl.Teardown()
	g.fw.Stop()
	if g.player != nil {
		g.player.Close()
	}
}
