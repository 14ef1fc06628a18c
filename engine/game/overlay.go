package game

import "fmt"

// FormatDistance renders a depth in thousands with one decimal.
func FormatDistance(layout string, z float64) string {
	return fmt.Sprintf(layout, z/1000)
}

func (e *Engine) label(l Label) {
	e.renderer.Text(l.Text, l.Pos, l.Size)
}

func (e *Engine) drawTitle() {
	h := e.cfg.HUD
	e.renderer.Clear()
	e.label(h.Title)
	e.label(h.Instruction)
	e.label(h.Inputs)
	e.label(h.Inputs2)
	e.label(h.Start)
}

func (e *Engine) drawHUD() {
	h := e.cfg.HUD
	e.renderer.Text(fmt.Sprintf(h.FPS.Text, e.fps), h.FPS.Pos, h.FPS.Size)
	e.renderer.Text(FormatDistance(h.Distance.Text, e.world.Player().Z), h.Distance.Pos, h.Distance.Size)
}

func (e *Engine) drawGameOver(distance float64) {
	h := e.cfg.HUD
	e.renderer.Clear()
	e.label(h.GameOver)
	e.renderer.Text(FormatDistance(h.Score.Text, distance), h.Score.Pos, h.Score.Size)
	e.label(h.Restart)
}

func (e *Engine) drawPause() {
	e.label(e.cfg.HUD.Pause)
}
