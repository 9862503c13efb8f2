package sessions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tui-greeter/internal/ui/state"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestParseDesktopEntry(t *testing.T) {
	input := `# comment
[Desktop Entry]
Name=GNOME Classic
Name[de]=GNOME Klassisch
Exec=env GNOME_SHELL_SESSION_MODE=classic gnome-session
Type=Application

[Desktop Action Other]
Name=ignored
Exec=ignored
`
	session, ok, err := parseDesktopEntry(strings.NewReader(input))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "GNOME Classic", session.Name)
	assert.Equal(t, "env GNOME_SHELL_SESSION_MODE=classic gnome-session", session.Command)
}

func TestParseDesktopEntrySkipsHiddenAndIncomplete(t *testing.T) {
	for _, input := range []string{
		"[Desktop Entry]\nName=Hidden\nExec=x\nHidden=true\n",
		"[Desktop Entry]\nName=NoExec\n",
		"[Other]\nName=Wrong\nExec=x\n",
	} {
		_, ok, err := parseDesktopEntry(strings.NewReader(input))
		require.NoError(t, err)
		assert.False(t, ok, input)
	}
}

func TestCrawlOrdersByFileNameAndSkipsDotfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.desktop", "[Desktop Entry]\nName=Bspwm\nExec=bspwm\n")
	writeFile(t, dir, "a.desktop", "[Desktop Entry]\nName=Awesome\nExec=awesome\n")
	writeFile(t, dir, ".hidden.desktop", "[Desktop Entry]\nName=Dot\nExec=dot\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	found, err := Crawl(dir, state.KindXorg, Options{})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Awesome", found[0].Name)
	assert.Equal(t, "Bspwm", found[1].Name)
	assert.Equal(t, state.KindXorg, found[0].Kind)
	assert.Equal(t, filepath.Join(dir, "a.desktop"), found[0].Path)
}

func TestCrawlAddsWaylandSpecifierOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plasma.desktop", "[Desktop Entry]\nName=Plasma\nExec=startplasma-wayland\n")
	writeFile(t, dir, "sway.desktop", "[Desktop Entry]\nName=Sway (Wayland)\nExec=sway\n")

	found, err := Crawl(dir, state.KindWayland, Options{WaylandSpecifier: true})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Plasma (Wayland)", found[0].Name)
	assert.Equal(t, "Sway (Wayland)", found[1].Name)

	plain, err := Crawl(dir, state.KindWayland, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Plasma", plain[0].Name)
}

func TestCrawlAllCollectsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "i3.desktop", "[Desktop Entry]\nName=i3\nExec=i3\n")

	found, errs := CrawlAll([]Source{
		{Dir: filepath.Join(dir, "missing"), Kind: state.KindWayland},
		{Dir: "", Kind: state.KindWayland},
		{Dir: dir, Kind: state.KindXorg},
	}, Options{})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
	require.Len(t, found, 1)
	assert.Equal(t, "i3", found[0].Name)
}

func TestAppendToSkipsDuplicates(t *testing.T) {
	sel := state.NewSelector("shell")
	found := []Session{
		{Name: "i3", Command: "i3", Kind: state.KindXorg},
		{Name: "Sway", Command: "sway", Kind: state.KindWayland},
	}
	assert.Equal(t, 2, AppendTo(sel, found))
	assert.Equal(t, 2, sel.Cursor())
	assert.Equal(t, 0, AppendTo(sel, found))
	assert.Equal(t, 3, sel.Len())
}
