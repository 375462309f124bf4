package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/DoyleJ11/attack15/internal/engine"
	"github.com/DoyleJ11/attack15/internal/ui"
)

const (
	borderWidth = 2
	timerHeight = 5
)

func DrawMenu(dst *ebiten.Image, ctx *Context, buttons ui.Buttons) {
	dst.Fill(ctx.Palette.Background)
	w, h := ctx.Layout.ScreenWidth, ctx.Layout.ScreenHeight
	drawTextCentered(dst, ctx, "Attack15", ctx.Title, w/2, h/4, ctx.Palette.Ink)
	DrawButton(dst, ctx, buttons.Start, ctx.Palette.Button)
	DrawButton(dst, ctx, buttons.Exit, ctx.Palette.Button)
}

func DrawGame(dst *ebiten.Image, ctx *Context, s engine.State, buttons ui.Buttons) {
	dst.Fill(ctx.Palette.Background)
	for _, p := range s.Panels {
		DrawPanel(dst, ctx, p)
	}
	drawHUD(dst, ctx, s)
	if s.GameOver {
		drawGameOver(dst, ctx, s)
	}
	DrawButton(dst, ctx, buttons.Back, ctx.Palette.BackButton)
}

// DrawPanel fills the tile, outlines it, prints the value and shrinks the timer bar along
// the bottom edge as the panel approaches its reset.
func DrawPanel(dst *ebiten.Image, ctx *Context, p engine.PanelView) {
	fill := ctx.Palette.Panel
	if p.Selected {
		fill = ctx.Palette.Selected
	}
	drawBox(dst, p.Bounds, fill, ctx.Palette.Ink)

	cx := (p.Bounds.Min.X + p.Bounds.Max.X) / 2
	cy := (p.Bounds.Min.Y + p.Bounds.Max.Y) / 2
	drawTextCentered(dst, ctx, fmt.Sprint(p.Value), ctx.Body, cx, cy, ctx.Palette.Ink)

	if p.Remaining > 0 {
		width := float32(p.Remaining) * float32(p.Bounds.Dx())
		vector.DrawFilledRect(dst,
			float32(p.Bounds.Min.X), float32(p.Bounds.Max.Y-timerHeight),
			width, timerHeight, ctx.Palette.Timer, false)
	}
}

func DrawButton(dst *ebiten.Image, ctx *Context, b ui.Button, fill color.RGBA) {
	drawBox(dst, b.Bounds, fill, ctx.Palette.Ink)
	cx := (b.Bounds.Min.X + b.Bounds.Max.X) / 2
	cy := (b.Bounds.Min.Y + b.Bounds.Max.Y) / 2
	drawTextCentered(dst, ctx, b.Label, ctx.Body, cx, cy, ctx.Palette.Ink)
}

func drawHUD(dst *ebiten.Image, ctx *Context, s engine.State) {
	w := ctx.Layout.ScreenWidth
	drawText(dst, ctx, fmt.Sprintf("Score: %d", s.Score), ctx.Small, 20, 20, ctx.Palette.Ink)
	drawText(dst, ctx, fmt.Sprintf("Time: %ds", int(s.Remaining().Seconds())), ctx.Small, w-150, 20, ctx.Palette.Ink)
	if len(s.Selected) > 0 {
		drawText(dst, ctx, ui.SumLabel(s), ctx.Small, w/2-50, 20, sumColor(ctx, s))
	}
}

func sumColor(ctx *Context, s engine.State) color.RGBA {
	if ui.SumOverTarget(s) {
		return ctx.Palette.Alert
	}
	return ctx.Palette.Ink
}

func drawGameOver(dst *ebiten.Image, ctx *Context, s engine.State) {
	w, h := ctx.Layout.ScreenWidth, ctx.Layout.ScreenHeight
	vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, 96}, false)
	drawTextCentered(dst, ctx, "Game Over!", ctx.Title, w/2, h/2-50, ctx.Palette.Alert)
	drawTextCentered(dst, ctx, fmt.Sprintf("Final Score: %d", s.Score), ctx.Body, w/2, h/2+20, ctx.Palette.Ink)
}

func drawBox(dst *ebiten.Image, r engine.Rect, fill, border color.RGBA) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(dst, x, y, w, h, fill, false)
	vector.StrokeRect(dst, x, y, w, h, borderWidth, border, false)
}

// drawText places the top-left corner of the scaled string at (x, y).
func drawText(dst *ebiten.Image, ctx *Context, s string, scale float64, x, y int, clr color.Color) {
	b := text.BoundString(ctx.Face, s)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(-b.Min.Y))
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(dst, s, ctx.Face, op)
}

func drawTextCentered(dst *ebiten.Image, ctx *Context, s string, scale float64, cx, cy int, clr color.Color) {
	b := text.BoundString(ctx.Face, s)
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	drawText(dst, ctx, s, scale, cx-w/2, cy-h/2, clr)
}
