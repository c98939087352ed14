package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window holds the initial window settings.
type Window struct {
	Width, Height int
	Title         string
	Fullscreen    bool
	TargetFPS     int
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// (input, scheduled frame callbacks), then clears the screen and calls draw. close runs while the
// window and its graphics context still exist, so GPU resources can be released.
// ESC does not close the window; it is left to the console.
func Run(win Window, update, draw, close func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	w, h := win.Width, win.Height
	if win.Fullscreen {
		w, h = rl.GetMonitorWidth(0), rl.GetMonitorHeight(0)
	}
	rl.InitWindow(int32(w), int32(h), win.Title)
	defer rl.CloseWindow()
	rl.SetWindowMinSize(320, 240)

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(win.TargetFPS))

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		draw()
		rl.EndDrawing()
	}
	if close != nil {
		close()
	}
}
