package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  ____`, "#2dd4bf"},
	{` |  _ \ __ _ ___ ___  __ _  __ _  ___`, "#22d3ee"},
	{` | |_) / _' / __/ __|/ _' |/ _' |/ _ \`, "#38bdf8"},
	{` |  __/ (_| \__ \__ \ (_| | (_| |  __/`, "#60a5fa"},
	{` |_|   \__,_|___/___/\__,_|\__, |\___|`, "#818cf8"},
	{`                           |___/`, "#a78bfa"},
}

// PrintBanner writes the Passage banner and version to w, coloured when w supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w, out.String(fmt.Sprintf("  travel document requirements v%s", version)).Faint())
	fmt.Fprintln(w)
}
