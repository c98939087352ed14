package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Lang{
		"en":          English,
		"en-US":       English,
		"zh":          Chinese,
		"zh-CN":       Chinese,
		"zh-Hans-CN":  Chinese,
		"zh_TW.UTF-8": Chinese,
		"en_GB@euro":  English,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseInvalid(t *testing.T) {
	got, err := Parse("!!")
	assert.Error(t, err)
	assert.Equal(t, English, got)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Chinese, Resolve("zh"))
	assert.Equal(t, English, Resolve("EN"))
	assert.Contains(t, []Lang{Chinese, English}, Resolve("auto"))
}

func TestProvider(t *testing.T) {
	p := NewProvider(Chinese)
	assert.Equal(t, "你好", p.T("你好", "hello"))

	assert.Equal(t, English, p.Toggle())
	assert.Equal(t, "hello", p.T("你好", "hello"))

	p.Set(Lang("fr"))
	assert.Equal(t, English, p.Lang())
	assert.Equal(t, English, NewProvider(Lang("")).Lang())
}
