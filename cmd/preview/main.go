package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"spatial-preview/internal/app"
	"spatial-preview/internal/commands"
	"spatial-preview/internal/content"
	"spatial-preview/internal/debug"
	"spatial-preview/internal/fonts"
	"spatial-preview/internal/frame"
	"spatial-preview/internal/graphics"
	"spatial-preview/internal/layout"
	"spatial-preview/internal/logger"
	"spatial-preview/internal/preview"
	"spatial-preview/internal/previewconfig"
	"spatial-preview/internal/scene"
	"spatial-preview/internal/terminal"
)

func main() {
	prefs, cfgErr := previewconfig.Load(previewconfig.Path)
	log, err := logger.New(prefs.LogPath, prefs.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Warn("preferences partly ignored", zap.Error(cfgErr))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads, err := previewconfig.Watch(ctx, previewconfig.Path, func(err error) {
		log.Warn("preferences reload failed", zap.Error(err))
	})
	if err != nil {
		log.Info("preferences are not watched", zap.Error(err))
	}

	dev := graphics.NewDevice()
	sched := frame.NewScheduler()
	pane := graphics.NewPane(scene.Background)
	var opts []preview.Option
	if prefs.PointSeed != 0 {
		opts = append(opts, preview.WithSeed(prefs.PointSeed))
	}
	mgr := preview.New(dev, sched, log.Logger, opts...)
	a := app.New(log.Logger, dev, mgr, pane, prefs)

	reg := commands.NewRegistry()
	a.RegisterCommands(reg)
	term := terminal.New(log, reg)
	dbg := debug.New(a.Stats)

	var (
		font    *graphics.Font
		panel   layout.Rect
		started bool
	)
	start := func() {
		started = true
		path, err := fonts.FindCJK(prefs.FontPath, fonts.BaseDirs())
		if err != nil {
			log.Warn("no CJK font found; Chinese text will not render", zap.Error(err))
		}
		var ok bool
		font, ok = graphics.LoadFont(path, fonts.Codepoints(append(content.AllStrings(), checkMark)...))
		if path != "" && !ok {
			log.Warn("font failed to load", zap.String("path", path))
		}
		term.SetFont(font)
		dbg.SetFont(font)

		panel, _ = layoutWindow(pane)
		if err := a.Mount(); err != nil {
			log.Error("preview mount failed", zap.Error(err))
		}
	}

	update := func() {
		if !started {
			start()
		}
		select {
		case p, ok := <-reloads:
			if ok {
				log.Info("preferences reloaded")
				a.ApplyPrefs(p)
			}
		default:
		}

		panel, _ = layoutWindow(pane)
		term.Update()
		if !term.IsOpen() {
			if rl.IsKeyPressed(rl.KeyP) {
				if err := a.TogglePreview(); err != nil && !errors.Is(err, preview.ErrMounted) {
					log.Error("preview toggle failed", zap.Error(err))
				}
			}
			if rl.IsKeyPressed(rl.KeyL) {
				a.ToggleLang()
			}
		}
		for _, ev := range pane.Poll(term.IsOpen()) {
			mgr.HandleInput(ev)
		}
		a.Overlay().Update(rl.GetFrameTime())
		sched.RunFrame()

		dbg.ShowFPS = a.Display.ShowFPS
		dbg.ShowMemAlloc = a.Display.ShowMem
		dbg.ShowHandles = a.Display.ShowHandles
	}

	draw := func() {
		pane.Draw()
		drawPanel(font, panel, a)
		drawPaneOverlay(font, pane.Rect(), a)
		term.Draw()
		dbg.Draw()
	}

	closeAll := func() {
		if err := mgr.Unmount(); err != nil {
			log.Error("preview unmount failed", zap.Error(err))
		}
		if font != nil {
			font.Unload()
		}
		log.Info("window closed", zap.Int("live_handles", dev.Live()))
	}

	graphics.Run(graphics.Window{
		Width:      prefs.Window.Width,
		Height:     prefs.Window.Height,
		Title:      prefs.Window.Title,
		Fullscreen: prefs.Window.Fullscreen,
		TargetFPS:  prefs.TargetFPS,
	}, update, draw, closeAll)
}

// layoutWindow splits the window and moves the pane; a size change reaches the preview through
// the pane's resize observers.
func layoutWindow(pane *graphics.Pane) (panel, view layout.Rect) {
	panel, view = layout.Split(rl.GetScreenWidth(), rl.GetScreenHeight())
	pane.SetRect(view)
	return panel, view
}
