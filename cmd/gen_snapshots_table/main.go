package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli"
)

const (
	startMarker = "<!-- SNAPSHOTS:START -->"
	endMarker   = "<!-- SNAPSHOTS:END -->"
)

type snapshot struct {
	Name    string
	Encoded string
}

func main() {
	app := cli.NewApp()
	app.Name = "gen_snapshots_table"
	app.Usage = "Rewrite the snapshot table in the README from the integration golden images"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "readme",
			Usage: "Path to README file to update in place",
			Value: "README.md",
		},
		cli.StringFlag{
			Name:  "snapshots",
			Usage: "Snapshots directory",
			Value: filepath.Join("test", "integration", "testdata", "snapshots"),
		},
		cli.IntFlag{
			Name:  "cols",
			Usage: "Number of columns per row",
			Value: 4,
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Image width in pixels",
			Value: 256,
		},
	}
	app.Action = func(c *cli.Context) error {
		return updateReadme(c.String("readme"), c.String("snapshots"), c.Int("cols"), c.Int("width"))
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Failed to update snapshot table", "error", err)
		os.Exit(1)
	}
}

func listSnapshots(dir string) ([]snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var items []snapshot
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".png") {
			continue
		}
		items = append(items, snapshot{Name: strings.TrimSuffix(name, ".png"), Encoded: url.PathEscape(name)})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func renderTable(items []snapshot, dir string, cols, width int) []byte {
	if cols <= 0 {
		cols = 3
	}

	var buf bytes.Buffer
	buf.WriteString("<table>\n")
	for i := 0; i < len(items); i += cols {
		buf.WriteString("  <tr>\n")
		for c := 0; c < cols; c++ {
			if i+c >= len(items) {
				buf.WriteString("    <td></td>\n")
				continue
			}
			it := items[i+c]
			src := filepath.ToSlash(filepath.Join(dir, it.Encoded))
			fmt.Fprintf(&buf, "    <td align=\"center\"><img src=\"%s\" width=\"%d\" /><br><sub>%s</sub></td>\n", src, width, it.Name)
		}
		buf.WriteString("  </tr>\n")
	}
	buf.WriteString("</table>\n")
	return buf.Bytes()
}

// replaceBetweenMarkers swaps the text between the snapshot markers for table.
func replaceBetweenMarkers(content string, table []byte) (string, error) {
	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("markers not found, ensure %s and %s exist", startMarker, endMarker)
	}

	var out strings.Builder
	out.WriteString(content[:start+len(startMarker)])
	out.WriteString("\n")
	out.Write(table)
	after := content[end:]
	if !strings.HasPrefix(after, "\n") && !bytes.HasSuffix(table, []byte("\n")) {
		out.WriteString("\n")
	}
	out.WriteString(after)
	return out.String(), nil
}

func updateReadme(readme, dir string, cols, width int) error {
	items, err := listSnapshots(dir)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(readme)
	if err != nil {
		return fmt.Errorf("reading %s: %w", readme, err)
	}

	updated, err := replaceBetweenMarkers(string(content), renderTable(items, dir, cols, width))
	if err != nil {
		return fmt.Errorf("%s: %w", readme, err)
	}

	if err := os.WriteFile(readme, []byte(updated), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", readme, err)
	}
	slog.Info("Snapshot table updated", "readme", readme, "snapshots", len(items))
	return nil
}
