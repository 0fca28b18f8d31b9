package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerclock/cmd/pokerclock/shared"
	"github.com/lox/pokerclock/internal/config"
	"github.com/lox/pokerclock/internal/sound"
	"github.com/lox/pokerclock/internal/structure"
	"github.com/lox/pokerclock/internal/tournament"
	"github.com/lox/pokerclock/internal/tui"
)

// RunCmd runs the clock, either as a full-screen display or headless with
// transitions written to the log.
type RunCmd struct {
	Config   string `kong:"default='pokerclock.hcl',help='Path to the HCL config file'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
	Headless bool   `kong:"help='Run without the display and log level changes to stderr'"`
	NoColor  bool   `kong:"help='Disable colours in the display'"`
	Players  int    `kong:"default='0',help='Number of entrants to register before the clock starts'"`
}

// announcement pairs a clock event with the display values at the moment it
// happened.
type announcement struct {
	event   tournament.Event
	display tournament.Display
}

func (c *RunCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Players < 0 {
		return fmt.Errorf("players must not be negative, got %d", c.Players)
	}

	if c.Headless {
		logger, err := shared.SetupLogger(os.Stderr, cfg.Log.Level, c.Debug)
		if err != nil {
			return err
		}
		return c.runHeadless(cfg, logger)
	}

	// The display owns the terminal, so logs go to a file
	logFile, err := shared.OpenLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := shared.SetupLogger(logFile, cfg.Log.Level, c.Debug)
	if err != nil {
		return err
	}
	logger.SetPrefix("pokerclock")
	return c.runDisplay(cfg, logger)
}

// newSession builds the engine with the configured schedule loaded and the
// requested entrants registered.
func (c *RunCmd) newSession(cfg *config.Config, logger *log.Logger) (*tournament.State, structure.Schedule) {
	schedule := cfg.Schedule(logger)
	if len(schedule) == 0 {
		logger.Warn("Blind structure has no valid rows, falling back to the default structure")
		schedule = structure.DefaultSchedule()
	}

	state := tournament.New(logger, cfg.StateOptions()...)
	state.Start(schedule)
	for range c.Players {
		state.AddPlayer()
	}

	logger.Info("Clock ready",
		"duration", tournament.FormatClock(schedule.TotalSeconds()),
		"players", state.Players())
	return state, schedule
}

func (c *RunCmd) runDisplay(cfg *config.Config, logger *log.Logger) error {
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state, schedule := c.newSession(cfg, logger)
	ticker := tournament.NewTicker(quartz.NewReal(), logger)
	defer ticker.Stop()

	model := tui.NewModel(ctx, tui.Config{
		State:       state,
		Ticker:      ticker,
		Sound:       sound.New(cfg.Sound.Command, cfg.Sound.LevelUp, cfg.Sound.BreakStart, logger),
		Schedule:    schedule,
		ChipOptions: cfg.Tournament.ChipOptions,
		Logger:      logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("display error: %w", err)
	}
	return nil
}

func (c *RunCmd) runHeadless(cfg *config.Config, logger *log.Logger) error {
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	state, _ := c.newSession(cfg, logger)
	ticker := tournament.NewTicker(quartz.NewReal(), logger)
	player := sound.New(cfg.Sound.Command, cfg.Sound.LevelUp, cfg.Sound.BreakStart, logger)

	g, gctx := errgroup.WithContext(ctx)
	announcements := make(chan announcement, 8)

	// The clock goroutine is the only one touching state; announcements
	// carry snapshots to the announcer.
	g.Go(func() error {
		defer close(announcements)
		err := tournament.Drive(gctx, state, ticker, func(event tournament.Event) {
			select {
			case announcements <- announcement{event: event, display: state.Display()}:
			case <-gctx.Done():
			}
		})
		if errors.Is(err, context.Canceled) {
			logger.Info("Clock stopped", "elapsed", state.Display().Elapsed)
			return nil
		}
		return err
	})

	g.Go(func() error {
		for a := range announcements {
			player.Play(a.event)
			announce(logger, a)
		}
		return nil
	})

	return g.Wait()
}

func announce(logger *log.Logger, a announcement) {
	d := a.display
	switch a.event.Type {
	case tournament.EventTypeLevelStarted:
		logger.Info(d.LevelLabel,
			"blinds", d.BlindsLabel,
			"remaining", d.LevelRemaining,
			"next_break", d.NextBreak,
			"elapsed", d.Elapsed)
	case tournament.EventTypeBreakStarted:
		logger.Info("Break started", "remaining", d.LevelRemaining, "elapsed", d.Elapsed)
	case tournament.EventTypeScheduleComplete:
		logger.Info("Schedule complete", "elapsed", d.Elapsed)
	}
}
