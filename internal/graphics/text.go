package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial-preview/internal/layout"
)

// fontAtlasSize is the glyph size the font atlas is rasterized at.
const fontAtlasSize = 48

// Font draws text with a loaded font, or raylib's default font when none could be loaded.
type Font struct {
	font   rl.Font
	loaded bool
	wraps  *layout.WrapCache
}

// LoadFont loads path with the given codepoints. An empty path or a failed load yields the default
// font; ok reports whether path was loaded.
func LoadFont(path string, codepoints []rune) (f *Font, ok bool) {
	if path == "" {
		return &Font{}, false
	}
	font := rl.LoadFontEx(path, fontAtlasSize, codepoints)
	if font.Texture.ID == 0 {
		return &Font{}, false
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return &Font{font: font, loaded: true}, true
}

// Raylib returns the underlying font, zero when the default font is used.
func (f *Font) Raylib() rl.Font {
	if !f.loaded {
		return rl.Font{}
	}
	return f.font
}

// Unload releases the font atlas.
func (f *Font) Unload() {
	if f.loaded {
		rl.UnloadFont(f.font)
		f.loaded = false
		f.wraps = nil
	}
}

// Measure returns the width and height of text drawn at size.
func (f *Font) Measure(text string, size float32) (w, h float32) {
	if !f.loaded {
		return float32(rl.MeasureText(text, int32(size))), size
	}
	v := rl.MeasureTextEx(f.font, text, size, 1)
	return v.X, v.Y
}

// Draw draws text with its top-left corner at (x, y).
func (f *Font) Draw(text string, x, y, size float32, c color.RGBA) {
	if !f.loaded {
		rl.DrawText(text, int32(x), int32(y), int32(size), c)
		return
	}
	rl.DrawTextEx(f.font, text, rl.NewVector2(x, y), size, 1, c)
}

// Wrap splits text into lines no wider than width at size. Results are cached per text, size and
// width until the font is unloaded.
func (f *Font) Wrap(text string, size, width float32) []string {
	if f.wraps == nil {
		f.wraps = layout.NewWrapCache(func(s string, size float32) float32 {
			w, _ := f.Measure(s, size)
			return w
		})
	}
	return f.wraps.Wrap(text, size, width)
}
