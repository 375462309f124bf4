package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/DoyleJ11/attack15/internal/engine"
	"github.com/DoyleJ11/attack15/internal/ui"
)

// App adapts a ui.Controller to ebiten.Game.
type App struct {
	ctx        *Context
	controller *ui.Controller
}

func NewApp(ctx *Context, controller *ui.Controller) *App {
	return &App{ctx: ctx, controller: controller}
}

func (a *App) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if action, _ := a.controller.Click(engine.Point{X: x, Y: y}); action == ui.ActionExit {
			return ebiten.Termination
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if a.controller.Snapshot().Screen == engine.ScreenMenu {
			return ebiten.Termination
		}
		a.controller.Back()
	}

	a.controller.Tick()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	s := a.controller.Snapshot()
	if s.Screen == engine.ScreenMenu {
		DrawMenu(screen, a.ctx, a.controller.Buttons())
		return
	}
	DrawGame(screen, a.ctx, s, a.controller.Buttons())
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.ctx.Layout.ScreenWidth, a.ctx.Layout.ScreenHeight
}
