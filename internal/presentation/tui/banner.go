package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Athena banner to w using the given colour profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text   string
		colour string
	}{
		{`     _   _   _                    `, "#ffa600"},
		{`    / \ | |_| |__   ___ _ __   __ _ `, "#f5b342"},
		{`   / _ \| __| '_ \ / _ \ '_ \ / _' |`, "#f5c07a"},
		{`  / ___ \ |_| | | |  __/ | | | (_| |`, "#9ef07a"},
		{` /_/   \_\__|_| |_|\___|_| |_|\__,_|`, "#43f707"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.colour)))
	}
	fmt.Fprintln(w)
}
