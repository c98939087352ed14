package previewconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// Path is the preferences file, relative to the process working directory.
const Path = "config/preview.toml"

// EnvFile is loaded (if present) before environment overrides are applied.
const EnvFile = ".env"

// EnvPrefix prefixes every environment override, e.g. SPATIAL_PREVIEW_LANG=zh.
const EnvPrefix = "SPATIAL_PREVIEW_"

// Window holds the initial window settings.
type Window struct {
	Width      int    `toml:"width" validate:"gte=320"`
	Height     int    `toml:"height" validate:"gte=240"`
	Title      string `toml:"title" validate:"required"`
	Fullscreen bool   `toml:"fullscreen"`
}

// Prefs holds the preview application's preferences. The scene itself has no configuration surface.
type Prefs struct {
	Window      Window `toml:"window"`
	TargetFPS   int    `toml:"target_fps" validate:"gte=1,lte=240"`
	Language    string `toml:"language" validate:"oneof=zh en auto"`
	ShowFPS     bool   `toml:"show_fps"`
	ShowMem     bool   `toml:"show_memalloc"`
	ShowHandles bool   `toml:"show_handles"`
	PointSeed   uint64 `toml:"point_seed"`
	FontPath    string `toml:"font_path,omitempty"`
	LogPath     string `toml:"log_path" validate:"required"`
	Debug       bool   `toml:"debug"`
}

var validate = validator.New()

// Default returns default preferences (1280×720 window, 60 FPS, system language, overlays off).
func Default() Prefs {
	return Prefs{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Spatial Preview",
		},
		TargetFPS: 60,
		Language:  "auto",
		LogPath:   "logs/preview.log",
	}
}

// Validate checks p against the field constraints.
func Validate(p Prefs) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("previewconfig: %w", err)
	}
	return nil
}

// Load reads preferences from path, then applies SPATIAL_PREVIEW_* overrides from the environment
// and from .env, which is re-read on every call. Variables set in the environment win over .env.
// A missing file yields Default() and no error. An unreadable, malformed or invalid file yields
// Default() (with overrides) and the error, so callers can log it and keep running.
func Load(path string) (Prefs, error) {
	p := Default()
	var fileErr error
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		fromFile := Default()
		if err := toml.Unmarshal(data, &fromFile); err != nil {
			fileErr = fmt.Errorf("previewconfig: parse %s: %w", path, err)
		} else if err := Validate(fromFile); err != nil {
			fileErr = err
		} else {
			p = fromFile
		}
	case !errors.Is(err, os.ErrNotExist):
		fileErr = fmt.Errorf("previewconfig: %w", err)
	}

	dotenv, err := godotenv.Read(EnvFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fileErr = multierr.Append(fileErr, fmt.Errorf("previewconfig: %s: %w", EnvFile, err))
	}
	overridden := applyEnv(p, dotenv)
	if err := Validate(overridden); err != nil {
		return p, multierr.Append(fileErr, err)
	}
	return overridden, fileErr
}

// applyEnv returns p with SPATIAL_PREVIEW_* variables applied, taken from the process environment
// or else from dotenv. Unparsable values are ignored.
func applyEnv(p Prefs, dotenv map[string]string) Prefs {
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	str("LANG", &p.Language)
	str("FONT", &p.FontPath)
	str("LOG", &p.LogPath)
	num("WIDTH", &p.Window.Width)
	num("HEIGHT", &p.Window.Height)
	num("FPS", &p.TargetFPS)
	flag("FULLSCREEN", &p.Window.Fullscreen)
	flag("DEBUG", &p.Debug)
	if v, ok := lookup("SEED"); ok {
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			p.PointSeed = n
		}
	}
	return p
}

// Save writes preferences to path, creating the config directory if needed.
func Save(path string, p Prefs) error {
	if err := Validate(p); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("previewconfig: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
