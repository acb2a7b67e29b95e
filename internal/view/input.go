package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Mags/internal/game"
)

var slotKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// keyboardInput turns keyboard and mouse state into a game.Input. It is the
// windowed game.InputSource; the autopilot plays the same role headless.
type keyboardInput struct {
	cam *camera
}

func (k *keyboardInput) Poll(w *game.World) game.Input {
	var in game.Input

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX++
	}

	mx, my := ebiten.CursorPosition()
	in.AimX, in.AimY = k.cam.toWorld(mx, my)

	in.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Rearrange = inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	slots := min(w.Magazines().Len(), len(slotKeys))
	for i := 0; i < slots; i++ {
		if inpututil.IsKeyJustPressed(slotKeys[i]) {
			in.Select = i + 1
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		in.Cycle = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		in.Cycle = -1
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		in.Cycle = -1
	} else if wy < 0 {
		in.Cycle = 1
	}

	in.HoldTime = ebiten.IsKeyPressed(ebiten.KeySpace)
	return in
}
