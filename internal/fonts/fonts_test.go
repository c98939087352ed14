package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Noto", "NotoSansSC-Regular.otf"))
	touch(t, filepath.Join(dir, "Inter-Bold.TTF"))
	touch(t, filepath.Join(dir, "README.txt"))

	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Noto/NotoSansSC-Regular.otf", "Inter-Bold.TTF"}, list)

	list, err = ScanDir(filepath.Join(dir, "missing"))
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestFindInPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "NotoSansSC-Bold.otf"))
	touch(t, filepath.Join(dir, "NotoSansSC-Regular.otf"))

	p, err := FindIn([]string{dir}, "Noto Sans SC")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "NotoSansSC-Regular.otf"), p)

	_, err = FindIn([]string{dir}, "Inter")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindCJK(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "droid", "DroidSansFallback.ttf"))
	touch(t, filepath.Join(dir, "custom.ttf"))

	p, err := FindCJK("", []string{dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "droid", "DroidSansFallback.ttf"), p)

	p, err = FindCJK(filepath.Join(dir, "custom.ttf"), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom.ttf"), p, "configured path wins")

	p, err = FindCJK(filepath.Join(dir, "gone.ttf"), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "droid", "DroidSansFallback.ttf"), p, "missing configured font falls back")

	_, err = FindCJK("", []string{t.TempDir()})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCodepoints(t *testing.T) {
	cps := Codepoints("数字孪生", "Digital Twin", "数字\n")
	assert.Contains(t, cps, 'A')
	assert.Contains(t, cps, '孪')
	assert.NotContains(t, cps, '\n')
	assert.Len(t, cps, 95+4)
	for i := 1; i < len(cps); i++ {
		assert.Less(t, cps[i-1], cps[i])
	}
}
