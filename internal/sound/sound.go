// Package sound plays a cue when the tournament clock changes level or
// starts a break. Playback is fire-and-forget: nothing waits on it and a
// failure only gets logged.
package sound

import (
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerclock/internal/tournament"
)

// Player reacts to clock events.
type Player interface {
	Play(event tournament.Event)
}

// Runner launches an external command without waiting for it.
type Runner func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// CommandPlayer plays sound files by running an audio command such as
// afplay or paplay with the file as its only argument.
type CommandPlayer struct {
	command string
	files   map[tournament.EventType]string
	run     Runner
	logger  *log.Logger
}

// NewCommandPlayer maps the level-up and break-start files to their events.
// Files that do not exist are warned about and left unmapped.
func NewCommandPlayer(command, levelUp, breakStart string, logger *log.Logger) *CommandPlayer {
	p := &CommandPlayer{
		command: command,
		files:   make(map[tournament.EventType]string),
		run:     startCommand,
		logger:  logger.WithPrefix("sound"),
	}
	p.mapFile(tournament.EventTypeLevelStarted, levelUp)
	p.mapFile(tournament.EventTypeBreakStarted, breakStart)
	return p
}

// WithRunner replaces the command launcher. Used in tests.
func (p *CommandPlayer) WithRunner(run Runner) *CommandPlayer {
	p.run = run
	return p
}

func (p *CommandPlayer) mapFile(event tournament.EventType, path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		p.logger.Warn("Sound file not found", "event", event, "path", path)
		return
	}
	p.files[event] = path
}

// Play starts the file mapped to the event, if any.
func (p *CommandPlayer) Play(event tournament.Event) {
	path, ok := p.files[event.Type]
	if !ok {
		return
	}
	if err := p.run(p.command, path); err != nil {
		p.logger.Error("Failed to play sound", "event", event.Type, "path", path, "error", err)
	}
}

// Bell rings the terminal bell for level and break changes.
type Bell struct {
	out io.Writer
}

// NewBell writes bells to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

// Play rings once for level and break starts.
func (b *Bell) Play(event tournament.Event) {
	switch event.Type {
	case tournament.EventTypeLevelStarted, tournament.EventTypeBreakStarted:
		_, _ = io.WriteString(b.out, "\a")
	}
}

// New picks a CommandPlayer when a command is configured and a Bell on
// stderr otherwise.
func New(command, levelUp, breakStart string, logger *log.Logger) Player {
	if command == "" {
		return NewBell(os.Stderr)
	}
	return NewCommandPlayer(command, levelUp, breakStart, logger)
}
