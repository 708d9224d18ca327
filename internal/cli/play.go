package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MIBbrandon/Athena"
	"github.com/MIBbrandon/Athena/internal/presentation/tui"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/render"
)

const clearScreen = "\x1b[H\x1b[2J"

// PlayOptions selects what the terminal player shows.
type PlayOptions struct {
	SessionID string

	// Puzzle is submitted before playback starts. Nil resumes the stored session.
	Puzzle *domain.Puzzle

	// Steps prints the step listing before the first frame.
	Steps bool
}

// Terminal is the I/O the player draws on.
type Terminal struct {
	In       io.Reader
	Out      io.Writer
	View     *tui.View
	Markdown func(string) (string, error)

	// Raw is set when In is in raw mode: frames clear the screen and lines end in CRLF.
	Raw bool
}

// Play runs the interactive step loop until the user quits, input ends or ctx is cancelled.
func Play(ctx context.Context, p *athena.Player, opts PlayOptions, t Terminal) error {
	board := render.NewBoard()

	var sess *domain.Session
	var err error
	if opts.Puzzle != nil {
		sess, err = p.Submit(ctx, opts.SessionID, *opts.Puzzle, board)
	} else {
		if _, err = p.Open(ctx, opts.SessionID); err == nil {
			sess, err = p.Redraw(ctx, opts.SessionID, board)
		}
	}
	if err != nil {
		return err
	}

	if opts.Steps && sess.Solution != nil && t.Markdown != nil {
		out, err := t.Markdown(tui.StepsMarkdown(sess.Solution, sess.Soddi))
		if err != nil {
			return fmt.Errorf("failed to render steps: %w", err)
		}
		t.write(out)
	}
	t.frame(board)

	// The reader stops at the next key once ctx is done. A Read that is
	// still blocked keeps its goroutine until In yields or the process exits.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := t.In.Read(buf)
			if n > 0 {
				chunk := append([]byte(nil), buf[:n]...)
				select {
				case keys <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case chunk := <-keys:
			for _, cmd := range ParseKeys(chunk) {
				if cmd == CmdQuit {
					return nil
				}
				if board, err = apply(ctx, p, opts.SessionID, cmd, board); err != nil {
					return err
				}
				t.frame(board)
			}
		}
	}
}

// apply runs one command. Halted playback is not fatal: the frame shows the error.
func apply(ctx context.Context, p *athena.Player, id string, cmd Command, board *render.Board) (*render.Board, error) {
	var err error
	switch cmd {
	case CmdForward:
		_, _, err = p.StepForward(ctx, id, board)
	case CmdBackward:
		_, _, err = p.StepBackward(ctx, id, board)
	case CmdRedraw:
		board = render.NewBoard()
		_, err = p.Redraw(ctx, id, board)
	}

	var inv *domain.InvariantError
	if errors.Is(err, domain.ErrPlaybackHalted) || errors.As(err, &inv) {
		return board, nil
	}
	return board, err
}

func (t Terminal) frame(board *render.Board) {
	if t.Raw {
		t.write(clearScreen)
	}
	t.write(t.View.Render(board) + "\n")
}

func (t Terminal) write(s string) {
	if t.Raw {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	_, _ = io.WriteString(t.Out, s)
}
