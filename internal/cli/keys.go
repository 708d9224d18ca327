package cli

// Command is a player action bound to a key.
type Command int

const (
	CmdNone Command = iota
	CmdForward
	CmdBackward
	CmdRedraw
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdForward:
		return "forward"
	case CmdBackward:
		return "backward"
	case CmdRedraw:
		return "redraw"
	case CmdQuit:
		return "quit"
	}
	return "none"
}

// ParseKeys decodes raw terminal input into commands. Arrow keys arrive as
// ESC [ C / ESC [ D. Unbound bytes are dropped.
func ParseKeys(buf []byte) []Command {
	var cmds []Command
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == 0x1b && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				cmds = append(cmds, CmdForward)
			case 'D':
				cmds = append(cmds, CmdBackward)
			}
			i += 2
			continue
		}
		switch b {
		case 'n', 'N', 'l', ' ':
			cmds = append(cmds, CmdForward)
		case 'p', 'P', 'h':
			cmds = append(cmds, CmdBackward)
		case 'r', 'R', 0x0c: // Ctrl-L
			cmds = append(cmds, CmdRedraw)
		case 'q', 'Q', 0x03, 0x04: // Ctrl-C, Ctrl-D
			cmds = append(cmds, CmdQuit)
		}
	}
	return cmds
}
