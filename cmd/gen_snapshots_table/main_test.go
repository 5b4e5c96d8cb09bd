package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceBetweenMarkers(t *testing.T) {
	content := "# Title\n" + startMarker + "\nold\n" + endMarker + "\ntail\n"

	updated, err := replaceBetweenMarkers(content, []byte("<table>\n</table>\n"))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n"+startMarker+"\n<table>\n</table>\n"+endMarker+"\ntail\n", updated)

	_, err = replaceBetweenMarkers("no markers", nil)
	assert.Error(t, err)
}

func TestUpdateReadme(t *testing.T) {
	dir := t.TempDir()
	snapshots := filepath.Join(dir, "snapshots")
	require.NoError(t, os.MkdirAll(snapshots, 0755))
	for _, name := range []string{"xor.png", "font.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(snapshots, name), nil, 0644))
	}

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte(startMarker+"\n"+endMarker+"\n"), 0644))

	require.NoError(t, updateReadme(readme, "snapshots", 4, 128))

	content, err := os.ReadFile(readme)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, `<img src="snapshots/font.png" width="128" />`)
	assert.Contains(t, text, `<img src="snapshots/xor.png" width="128" />`)
	assert.NotContains(t, text, "notes")
	assert.Less(t, indexOf(text, "font"), indexOf(text, "xor"), "sorted by name")
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
