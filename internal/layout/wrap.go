package layout

// maxWrapEntries bounds the wrap cache; resizing the window produces a new width per frame.
const maxWrapEntries = 64

// Measure returns the drawn width of text at size.
type Measure func(text string, size float32) float32

// Wrap splits text into lines no wider than width at size. Lines break between words, or between
// runes for text without spaces (Chinese). A single rune wider than width gets a line of its own.
func Wrap(text string, size, width float32, measure Measure) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var line []rune
	lastSpace := -1
	for _, r := range text {
		line = append(line, r)
		if r == ' ' {
			lastSpace = len(line) - 1
		}
		if len(line) == 1 || measure(string(line), size) <= width {
			continue
		}
		if lastSpace > 0 {
			lines = append(lines, string(line[:lastSpace]))
			line = append([]rune(nil), line[lastSpace+1:]...)
		} else {
			lines = append(lines, string(line[:len(line)-1]))
			line = []rune{r}
		}
		lastSpace = -1
		for i, lr := range line {
			if lr == ' ' {
				lastSpace = i
			}
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

type wrapKey struct {
	text        string
	size, width float32
}

// WrapCache memoizes Wrap per text, size and width so a panel can be laid out every frame without
// re-measuring its copy.
type WrapCache struct {
	measure Measure
	lines   map[wrapKey][]string
}

// NewWrapCache returns an empty cache measuring with measure.
func NewWrapCache(measure Measure) *WrapCache {
	return &WrapCache{measure: measure, lines: make(map[wrapKey][]string)}
}

// Wrap returns the cached lines for text, wrapping it on a miss.
func (c *WrapCache) Wrap(text string, size, width float32) []string {
	k := wrapKey{text, size, width}
	if lines, ok := c.lines[k]; ok {
		return lines
	}
	if len(c.lines) >= maxWrapEntries {
		clear(c.lines)
	}
	lines := Wrap(text, size, width, c.measure)
	c.lines[k] = lines
	return lines
}

// Len returns the number of cached entries.
func (c *WrapCache) Len() int { return len(c.lines) }
