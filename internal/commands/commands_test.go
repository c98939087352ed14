package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("/lang  en ")
	assert.True(t, ok)
	assert.Equal(t, []string{"lang", "en"}, args)

	args, ok = Parse("/")
	assert.True(t, ok)
	assert.Empty(t, args)

	_, ok = Parse("hello")
	assert.False(t, ok)
}

func TestExecuteRunsWithArgsAndFlags(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("fps")
	on := fs.Bool("on", false, "")
	var got []string
	r.Register("fps", "toggle the FPS counter", fs, func() error {
		got = fs.Args()
		return nil
	})

	_, err := r.Execute([]string{"fps", "-on", "extra"})
	require.NoError(t, err)
	assert.True(t, *on)
	assert.Equal(t, []string{"extra"}, got)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", "", NewFlagSet("fail"), func() error { return boom })

	_, err := r.Execute(nil)
	assert.Error(t, err)

	_, err = r.Execute([]string{"nope"})
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = r.Execute([]string{"fail", "-bogus"})
	assert.Error(t, err)

	_, err = r.Execute([]string{"fail"})
	assert.ErrorIs(t, err, boom)
}

func TestHelp(t *testing.T) {
	r := NewRegistry()
	r.Register("lang", "switch language: /lang [zh|en]", NewFlagSet("lang"), func() error { return nil })

	out, err := r.Execute([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/help  list commands", "/lang  switch language: /lang [zh|en]"}, out)
	assert.Equal(t, []string{"help", "lang"}, r.Names())
}
