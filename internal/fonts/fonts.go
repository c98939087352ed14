// Package fonts finds a font file able to draw the preview's Chinese and English strings and
// lists the codepoints to load from it.
package fonts

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Exts lists the font file extensions considered when scanning. Collections (.ttc) cannot be
// loaded and are skipped.
var Exts = []string{".ttf", ".otf"}

// CJKFamilies are family names, in order of preference, known to cover Simplified Chinese.
var CJKFamilies = []string{
	"Noto Sans SC",
	"Noto Sans CJK",
	"Source Han Sans",
	"WenQuanYi Micro Hei",
	"WenQuanYi Zen Hei",
	"Droid Sans Fallback",
	"PingFang",
	"Hiragino Sans GB",
	"Microsoft YaHei",
	"msyh",
	"SimHei",
}

// BaseDirs returns candidate font directories: the bundled assets first (relative to the process
// working directory), then the usual system locations.
func BaseDirs() []string {
	dirs := []string{"assets/fonts", "../../assets/fonts"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, "Library", "Fonts"))
	}
	dirs = append(dirs, "/usr/share/fonts", "/usr/local/share/fonts", "/System/Library/Fonts",
		"/Library/Fonts")
	if win := os.Getenv("WINDIR"); win != "" {
		dirs = append(dirs, filepath.Join(win, "Fonts"))
	}
	return dirs
}

// ScanDir returns relative paths of all font files under dir (e.g. "Noto/NotoSansSC-Regular.otf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) || os.IsPermission(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	return slices.Contains(Exts, strings.ToLower(filepath.Ext(path)))
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// FindIn searches dirs for a font file whose path matches search (a family name or partial path).
// It returns the first matching full path, preferring a "Regular" face, or os.ErrNotExist.
func FindIn(dirs []string, search string) (string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var matches []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

// FindCJK returns the configured font if it exists, otherwise the first CJKFamilies match in
// dirs. os.ErrNotExist means the default font (Latin only) has to do.
func FindCJK(configured string, dirs []string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		if p, err := FindIn(dirs, configured); err == nil {
			return p, nil
		}
	}
	for _, fam := range CJKFamilies {
		if p, err := FindIn(dirs, fam); err == nil {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}

// Codepoints returns printable ASCII plus every rune in texts, sorted and without duplicates.
// Loading only these glyphs keeps the CJK atlas small.
func Codepoints(texts ...string) []rune {
	seen := make(map[rune]bool, 128)
	for r := rune(32); r < 127; r++ {
		seen[r] = true
	}
	for _, t := range texts {
		for _, r := range t {
			if r >= 32 {
				seen[r] = true
			}
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
