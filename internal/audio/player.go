package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Player plays a fully buffered audio source
type Player interface {
	Play(ctx context.Context, src *Source) error
}

// candidate players in preference order, all invoked to play a single
// file and exit
var playerCommands = [][]string{
	{"mpv", "--no-terminal", "--no-video"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpg123", "-q"},
	{"afplay"},
}

// ExecPlayer plays audio by writing the buffer to a temp file and
// handing it to the first available system player
type ExecPlayer struct {
	command []string
}

// NewExecPlayer locates a system audio player. Returns an error when
// none of the known players is installed.
func NewExecPlayer() (*ExecPlayer, error) {
	for _, cmd := range playerCommands {
		if _, err := exec.LookPath(cmd[0]); err == nil {
			return &ExecPlayer{command: cmd}, nil
		}
	}
	return nil, fmt.Errorf("no audio player found (tried mpv, ffplay, mpg123, afplay)")
}

// Play writes the source to a temporary mp3 file and blocks until the
// player exits
func (p *ExecPlayer) Play(ctx context.Context, src *Source) error {
	if src == nil || src.Len() == 0 {
		return fmt.Errorf("nothing to play")
	}

	f, err := os.CreateTemp("", "gemvoice-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(src.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp audio file: %w", err)
	}

	args := append(append([]string{}, p.command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio player %s failed: %w", p.command[0], err)
	}
	return nil
}
