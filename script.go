package tooni

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/tooni/catalog"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action   string `json:"action"`
	Category string `json:"category,omitempty"`
	File     string `json:"file,omitempty"`
	Color    string `json:"color,omitempty"`
	Path     string `json:"path,omitempty"`
	Frames   int    `json:"frames,omitempty"`

	item  catalog.Item
	color Color
}

// script is the top-level JSON structure of a script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Runner plays a scripted sequence of controller operations, one step per
// frame, for demos and automated checks.
type Runner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script. Actions are toggle (category, file),
// color (color), background (path), clear-background, fireworks, export,
// wait (frames) and teardown.
func LoadScript(jsonData []byte) (*Runner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i := range sc.Steps {
		if err := sc.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Runner{steps: sc.Steps}, nil
}

func (st *scriptStep) resolve() error {
	switch st.Action {
	case "toggle":
		it, ok := catalog.Lookup(catalog.Category(st.Category), st.File)
		if !ok {
			return fmt.Errorf("unknown item %s/%s", st.Category, st.File)
		}
		st.item = it
	case "color":
		c, err := ParseColor(st.Color)
		if err != nil {
			return err
		}
		st.color = c
	case "background":
		if st.Path == "" {
			return fmt.Errorf("background: path is empty")
		}
	case "clear-background", "fireworks", "export", "wait", "teardown":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has run and its loads have settled.
func (r *Runner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it from the game's Update
// before Controller.Update. fw may be nil.
func (r *Runner) Step(c *Controller, fw *Fireworks) {
	if r.done {
		return
	}
	// Wait for loads to land before advancing.
	if c.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "toggle":
		c.ToggleItem(st.item, catalog.Category(st.Category))
	case "color":
		c.SetBackgroundColor(st.color)
	case "background":
		c.SetBackgroundImage(LocalFile(st.Path))
	case "clear-background":
		c.ClearBackgroundImage()
	case "fireworks":
		if fw != nil {
			fw.Start()
		}
	case "export":
		c.ExportImage()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "teardown":
		c.Teardown()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && c.Pending() == 0 {
		r.done = true
	}
}
