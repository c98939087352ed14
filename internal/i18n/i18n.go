// Package i18n picks between the two display languages of the showcase (Chinese and English).
package i18n

import (
	"fmt"
	"strings"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

// Lang is a supported display language.
type Lang string

const (
	Chinese Lang = "zh"
	English Lang = "en"
)

// Parse maps a BCP 47 or POSIX locale ("en-US", "zh-Hans-CN", "zh_TW.UTF-8") to a supported
// language by its base language. Anything that is not Chinese falls back to English.
func Parse(s string) (Lang, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	// Strip POSIX suffixes such as ".UTF-8" or "@euro".
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	tag, err := language.Parse(s)
	if err != nil {
		return English, fmt.Errorf("i18n: parse %q: %w", s, err)
	}
	base, _ := tag.Base()
	if zh, _ := language.Chinese.Base(); base == zh {
		return Chinese, nil
	}
	return English, nil
}

// Detect returns the language of the user's system locale, or English when it cannot be read.
func Detect() Lang {
	loc, err := locale.GetLocale()
	if err != nil || loc == "" {
		return English
	}
	l, err := Parse(loc)
	if err != nil {
		return English
	}
	return l
}

// Resolve turns a configured language ("zh", "en" or "auto") into a Lang.
func Resolve(configured string) Lang {
	switch Lang(strings.ToLower(configured)) {
	case Chinese:
		return Chinese
	case English:
		return English
	}
	return Detect()
}

// Provider returns display text for its current language.
type Provider struct {
	lang Lang
}

// NewProvider returns a provider for l.
func NewProvider(l Lang) *Provider {
	if l != Chinese {
		l = English
	}
	return &Provider{lang: l}
}

// Lang returns the current language.
func (p *Provider) Lang() Lang { return p.lang }

// Set switches the current language. Unknown values select English.
func (p *Provider) Set(l Lang) {
	if l != Chinese {
		l = English
	}
	p.lang = l
}

// Toggle switches between Chinese and English and returns the new language.
func (p *Provider) Toggle() Lang {
	if p.lang == Chinese {
		p.lang = English
	} else {
		p.lang = Chinese
	}
	return p.lang
}

// T returns zh or en depending on the current language.
func (p *Provider) T(zh, en string) string {
	if p.lang == Chinese {
		return zh
	}
	return en
}
