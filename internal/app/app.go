// Package app wires the preview manager, language, text overlay and console commands together
// independently of the window backend.
package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"spatial-preview/internal/commands"
	"spatial-preview/internal/content"
	"spatial-preview/internal/gpu"
	"spatial-preview/internal/i18n"
	"spatial-preview/internal/overlay"
	"spatial-preview/internal/preview"
	"spatial-preview/internal/previewconfig"
)

// Overlay block indices, in entrance order.
const (
	BlockHeading = iota
	BlockDescription
	BlockFeature0
	BlockFeature1
	BlockFeature2
	BlockButton
	BlockCaption
	BlockHint
	blockCount
)

// Display holds the debug overlay switches.
type Display struct {
	ShowFPS     bool
	ShowMem     bool
	ShowHandles bool
}

// App is the application state shared by the window loop and the console.
type App struct {
	log     *zap.Logger
	dev     gpu.Device
	mgr     *preview.Manager
	host    preview.Host
	lang    *i18n.Provider
	player  content.Player
	overlay *overlay.Overlay
	prefs   previewconfig.Prefs

	Display Display
}

// New returns an App presenting into host. The preview is not mounted until Mount.
func New(log *zap.Logger, dev gpu.Device, mgr *preview.Manager, host preview.Host, prefs previewconfig.Prefs) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		log:  log,
		dev:  dev,
		mgr:  mgr,
		host: host,
		lang: i18n.NewProvider(i18n.Resolve(prefs.Language)),
	}
	a.player = content.ForPlayer(a.lang)
	a.overlay = overlay.New(overlay.DefaultEntrance(), Texts(a.player)...)
	a.applyDisplay(prefs)
	a.prefs = prefs
	return a
}

// Texts returns one string per overlay block. Feature blocks join title and description.
func Texts(c content.Player) []string {
	out := make([]string, blockCount)
	out[BlockHeading] = c.Heading
	out[BlockDescription] = c.Description
	for i, f := range c.Features {
		if BlockFeature0+i > BlockFeature2 {
			break
		}
		out[BlockFeature0+i] = f.Title + "\n" + f.Desc
	}
	out[BlockButton] = c.Button
	out[BlockCaption] = c.ConceptTitle + "\n" + c.Subtitle
	out[BlockHint] = c.Hint
	return out
}

// Copy returns the localized strings for the current language.
func (a *App) Copy() content.Player { return a.player }

// Lang returns the current language.
func (a *App) Lang() i18n.Lang { return a.lang.Lang() }

// Overlay returns the animated text blocks.
func (a *App) Overlay() *overlay.Overlay { return a.overlay }

// Manager returns the preview manager.
func (a *App) Manager() *preview.Manager { return a.mgr }

// Mount mounts the preview into the host.
func (a *App) Mount() error {
	return a.mgr.Mount(a.host)
}

// TogglePreview mounts the preview when unmounted and unmounts it otherwise.
func (a *App) TogglePreview() error {
	if a.mgr.State() == preview.Active {
		return a.mgr.Unmount()
	}
	return a.mountAndReplay()
}

// mountAndReplay mounts the preview and replays the entrance only when the preview became active.
// A host without area or a missing graphics context leaves the preview unmounted and the overlay
// untouched.
func (a *App) mountAndReplay() error {
	if err := a.mgr.Mount(a.host); err != nil {
		return err
	}
	if a.mgr.State() == preview.Active {
		a.overlay.Restart()
	}
	return nil
}

// SetLang switches the language. The entrance animation keeps its progress.
func (a *App) SetLang(l i18n.Lang) {
	if l == a.lang.Lang() {
		return
	}
	a.lang.Set(l)
	a.refreshCopy()
}

// ToggleLang switches between Chinese and English.
func (a *App) ToggleLang() i18n.Lang {
	a.lang.Toggle()
	a.refreshCopy()
	return a.lang.Lang()
}

func (a *App) refreshCopy() {
	a.player = content.ForPlayer(a.lang)
	a.overlay.SetTexts(Texts(a.player)...)
	a.log.Info("language changed", zap.String("lang", string(a.lang.Lang())))
}

// ApplyPrefs applies reloaded preferences: language and overlay switches change immediately,
// window and seed changes wait for a restart.
func (a *App) ApplyPrefs(p previewconfig.Prefs) {
	if p.Language != a.prefs.Language {
		a.SetLang(i18n.Resolve(p.Language))
	}
	if p.ShowFPS != a.prefs.ShowFPS || p.ShowMem != a.prefs.ShowMem || p.ShowHandles != a.prefs.ShowHandles {
		a.applyDisplay(p)
	}
	if p.Window != a.prefs.Window || p.PointSeed != a.prefs.PointSeed || p.TargetFPS != a.prefs.TargetFPS {
		a.log.Info("preferences changed that apply on restart")
	}
	a.prefs = p
}

func (a *App) applyDisplay(p previewconfig.Prefs) {
	a.Display = Display{ShowFPS: p.ShowFPS, ShowMem: p.ShowMem, ShowHandles: p.ShowHandles}
}

// Stats returns the live GPU handle count (when the device counts them) and the preview state.
func (a *App) Stats() (liveHandles int, state string) {
	if c, ok := a.dev.(gpu.Counter); ok {
		liveHandles = c.Live()
	}
	return liveHandles, a.mgr.State().String()
}

// RegisterCommands adds the console commands: lang, preview, fps, mem and handles.
func (a *App) RegisterCommands(reg *commands.Registry) {
	langFS := commands.NewFlagSet("lang")
	reg.Register("lang", "switch language: /lang [zh|en] (no argument toggles)", langFS, func() error {
		switch langFS.NArg() {
		case 0:
			a.ToggleLang()
			return nil
		case 1:
			l, err := i18n.Parse(langFS.Arg(0))
			if err != nil {
				return fmt.Errorf("lang: %w", err)
			}
			a.SetLang(l)
			return nil
		}
		return fmt.Errorf("lang: too many arguments")
	})

	previewFS := commands.NewFlagSet("preview")
	reg.Register("preview", "mount or unmount the 3D preview: /preview [mount|unmount]", previewFS, func() error {
		if previewFS.NArg() == 0 {
			return a.TogglePreview()
		}
		switch strings.ToLower(previewFS.Arg(0)) {
		case "mount":
			return a.mountAndReplay()
		case "unmount":
			return a.mgr.Unmount()
		}
		return fmt.Errorf("preview: unknown action %q", previewFS.Arg(0))
	})

	toggles := []struct {
		name, usage string
		flag        *bool
	}{
		{"fps", "toggle the FPS counter", &a.Display.ShowFPS},
		{"mem", "toggle the heap counter", &a.Display.ShowMem},
		{"handles", "toggle the GPU handle counter", &a.Display.ShowHandles},
	}
	for _, t := range toggles {
		fs := commands.NewFlagSet(t.name)
		reg.Register(t.name, t.usage+": /"+t.name+" [on|off]", fs, func() error {
			return setToggle(t.flag, fs.Args())
		})
	}
}

func setToggle(flag *bool, args []string) error {
	if len(args) == 0 {
		*flag = !*flag
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		*flag = true
	case "off", "false", "0":
		*flag = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}
	return nil
}
