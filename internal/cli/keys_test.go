package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Command
	}{
		{"letters", "npq", []Command{CmdForward, CmdBackward, CmdQuit}},
		{"arrows", "\x1b[C\x1b[D", []Command{CmdForward, CmdBackward}},
		{"up arrow ignored", "\x1b[A", nil},
		{"ctrl-c quits", "\x03", []Command{CmdQuit}},
		{"redraw", "r", []Command{CmdRedraw}},
		{"unbound", "xyz", nil},
		{"lone escape", "\x1b", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeys([]byte(tt.in)))
		})
	}
}
