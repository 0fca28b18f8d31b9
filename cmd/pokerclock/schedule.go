package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/pokerclock/cmd/pokerclock/shared"
	"github.com/lox/pokerclock/internal/config"
	"github.com/lox/pokerclock/internal/structure"
	"github.com/lox/pokerclock/internal/tournament"
)

// ScheduleCmd prints the schedule a run would use.
type ScheduleCmd struct {
	Config string `kong:"default='pokerclock.hcl',help='Path to the HCL config file'"`
}

func (c *ScheduleCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := shared.SetupLogger(os.Stderr, cfg.Log.Level, false)
	if err != nil {
		return err
	}

	return printSchedule(os.Stdout, cfg.Schedule(logger))
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func printSchedule(w io.Writer, schedule structure.Schedule) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "LEVEL", "SMALL", "BIG", "ANTE", "MINUTES", "STARTS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	start := 0
	for i, entry := range schedule {
		minutes := strconv.Itoa(entry.DurationSeconds / 60)
		if entry.IsBreak() {
			t.Row(strconv.Itoa(i+1), "BREAK", "", "", "", minutes, tournament.FormatClock(start))
		} else {
			t.Row(strconv.Itoa(i+1),
				strconv.Itoa(entry.Level),
				tournament.FormatChips(entry.SmallBlind),
				tournament.FormatChips(entry.BigBlind),
				tournament.FormatChips(entry.Ante),
				minutes,
				tournament.FormatClock(start))
		}
		start += entry.DurationSeconds
	}

	_, err := fmt.Fprintf(w, "%s\nTotal: %s across %d levels\n",
		t.Render(), tournament.FormatClock(schedule.TotalSeconds()), schedule.Levels())
	return err
}
