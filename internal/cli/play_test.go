package cli_test

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena"
	"github.com/MIBbrandon/Athena/internal/cli"
	"github.com/MIBbrandon/Athena/internal/presentation/tui"
	"github.com/MIBbrandon/Athena/internal/testutils"
	"github.com/MIBbrandon/Athena/pkg/adapters/solver"
	"github.com/MIBbrandon/Athena/pkg/domain"
)

var puzzle = testutils.FourNodePuzzle()

func newPlayer() *athena.Player {
	return athena.New(athena.WithSolver(solver.NewStatic(testutils.FourNodeSolution())))
}

func terminal(in string, out *bytes.Buffer) cli.Terminal {
	return cli.Terminal{
		In:       strings.NewReader(in),
		Out:      out,
		View:     tui.NewView(termenv.Ascii),
		Markdown: func(s string) (string, error) { return s, nil },
	}
}

func TestPlay_SubmitAndStep(t *testing.T) {
	ctx := context.Background()
	p := newPlayer()
	var out bytes.Buffer

	err := cli.Play(ctx, p, cli.PlayOptions{SessionID: "t1", Puzzle: &puzzle, Steps: true}, terminal("nnnp\x1b[Cq", &out))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Total swaps: **2**")
	assert.Contains(t, text, "[1] [2] [3] [4]")
	assert.Contains(t, text, "swapped (1, 2)")
	assert.Contains(t, text, "allowed interaction 2->1")
	assert.Contains(t, text, "swapped (3, 4)")
	assert.NotContains(t, text, "\r\n")

	sess, err := p.Inspect(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.Cursor{StepIndex: 2, SoddiIndex: 1}, *sess.Cursor)
	assert.Equal(t, []domain.Label{"2", "1", "4", "3"}, sess.Labels)
}

func TestPlay_ResumesStoredSession(t *testing.T) {
	ctx := context.Background()
	p := newPlayer()
	_, err := p.Submit(ctx, "t2", puzzle, nil)
	require.NoError(t, err)
	_, _, err = p.StepForward(ctx, "t2", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, cli.Play(ctx, p, cli.PlayOptions{SessionID: "t2"}, terminal("", &out)))
	assert.True(t, strings.HasPrefix(out.String(), "[2] [1] [3] [4]"))
}

func TestPlay_RawModeUsesCRLF(t *testing.T) {
	p := newPlayer()
	var out bytes.Buffer
	term := terminal("q", &out)
	term.Raw = true

	require.NoError(t, cli.Play(context.Background(), p, cli.PlayOptions{SessionID: "t3", Puzzle: &puzzle}, term))
	assert.True(t, strings.HasPrefix(out.String(), "\x1b[H\x1b[2J"))
	assert.Contains(t, out.String(), "\r\n")
}

func TestPlay_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := newPlayer()
	_, err := p.Submit(ctx, "t4", puzzle, nil)
	require.NoError(t, err)

	cancel()
	var out bytes.Buffer
	err = cli.Play(ctx, p, cli.PlayOptions{SessionID: "t4"}, cli.Terminal{
		In:   blockingReader{},
		Out:  &out,
		View: tui.NewView(termenv.Ascii),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}

// heldReader returns "q", then blocks until release is closed and returns "n".
type heldReader struct {
	reads   int
	release chan struct{}
}

func (r *heldReader) Read(p []byte) (int, error) {
	r.reads++
	switch r.reads {
	case 1:
		return copy(p, "q"), nil
	case 2:
		<-r.release
		return copy(p, "n"), nil
	default:
		return 0, io.EOF
	}
}

func TestPlay_KeyReaderStopsAfterQuit(t *testing.T) {
	p := newPlayer()
	var out bytes.Buffer
	in := &heldReader{release: make(chan struct{})}
	term := terminal("", &out)
	term.In = in

	require.NoError(t, cli.Play(context.Background(), p, cli.PlayOptions{SessionID: "t4", Puzzle: &puzzle}, term))

	// The reader goroutine is parked in Read; once it yields a key nobody
	// consumes, it must exit instead of blocking on the send.
	before := runtime.NumGoroutine()
	close(in.release)
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() < before
	}, time.Second, 10*time.Millisecond)
}
