package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerclock/internal/structure"
	"github.com/lox/pokerclock/internal/tournament"
)

// Config represents the complete clock configuration
type Config struct {
	Tournament *TournamentSettings `hcl:"tournament,block"`
	Sound      *SoundSettings      `hcl:"sound,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// TournamentSettings describes the blind structure and house rules. The
// structure and break settings are raw text; unparseable values fall back to
// defaults when the schedule is built.
type TournamentSettings struct {
	Structure      string `hcl:"structure,optional"`
	BreakLevels    string `hcl:"break_levels,optional"`
	BreakMinutes   string `hcl:"break_minutes,optional"`
	AllMinutes     int    `hcl:"all_minutes,optional"`
	StartingStack  int    `hcl:"starting_stack,optional"`
	HeadsUpMinutes int    `hcl:"heads_up_minutes,optional"`
	ChipOptions    []int  `hcl:"chip_options,optional"`
}

// SoundSettings configures transition sounds
type SoundSettings struct {
	Command    string `hcl:"command,optional"`
	LevelUp    string `hcl:"level_up,optional"`
	BreakStart string `hcl:"break_start,optional"`
}

// LogSettings configures logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// DefaultChipOptions are the chip amounts offered for top-ups.
var DefaultChipOptions = []int{1000, 3000, 5000, 10000, 40000, 50000}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Tournament: &TournamentSettings{
			Structure:      structure.DefaultStructure,
			BreakLevels:    structure.DefaultBreakLevels,
			BreakMinutes:   structure.DefaultBreakMinutes,
			StartingStack:  tournament.DefaultStartingStack,
			HeadsUpMinutes: tournament.DefaultHeadsUpSeconds / 60,
			ChipOptions:    append([]int(nil), DefaultChipOptions...),
		},
		Sound: &SoundSettings{
			LevelUp:    "levelup.mp3",
			BreakStart: "break.mp3",
		},
		Log: &LogSettings{
			Level: "info",
			File:  "pokerclock.log",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Tournament == nil {
		c.Tournament = defaults.Tournament
	}
	if c.Tournament.Structure == "" {
		c.Tournament.Structure = defaults.Tournament.Structure
	}
	// An empty break list is meaningful (no breaks), so only the duration is
	// back-filled.
	if c.Tournament.BreakMinutes == "" {
		c.Tournament.BreakMinutes = defaults.Tournament.BreakMinutes
	}
	if c.Tournament.StartingStack == 0 {
		c.Tournament.StartingStack = defaults.Tournament.StartingStack
	}
	if c.Tournament.HeadsUpMinutes == 0 {
		c.Tournament.HeadsUpMinutes = defaults.Tournament.HeadsUpMinutes
	}
	if len(c.Tournament.ChipOptions) == 0 {
		c.Tournament.ChipOptions = defaults.Tournament.ChipOptions
	}

	if c.Sound == nil {
		c.Sound = defaults.Sound
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Tournament.StartingStack <= 0 {
		return fmt.Errorf("starting stack must be positive, got %d", c.Tournament.StartingStack)
	}
	if c.Tournament.HeadsUpMinutes <= 0 {
		return fmt.Errorf("heads-up minutes must be positive, got %d", c.Tournament.HeadsUpMinutes)
	}
	if c.Tournament.AllMinutes < 0 {
		return fmt.Errorf("all_minutes must not be negative, got %d", c.Tournament.AllMinutes)
	}
	for _, chips := range c.Tournament.ChipOptions {
		if chips <= 0 {
			return fmt.Errorf("chip option must be positive, got %d", chips)
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// Schedule parses the configured structure and builds the schedule.
// Malformed rows are logged and skipped.
func (c *Config) Schedule(logger *log.Logger) structure.Schedule {
	levels, skipped := structure.ParseLevels(c.Tournament.Structure)
	for _, err := range skipped {
		logger.Warn("Skipping invalid blind row", "error", err)
	}

	if c.Tournament.AllMinutes > 0 {
		structure.SetAllDurations(levels, c.Tournament.AllMinutes*60)
	}

	var breakAfter []int
	if c.Tournament.BreakLevels != "" {
		breakAfter = structure.ParseBreakLevels(c.Tournament.BreakLevels)
		if breakAfter == nil {
			logger.Warn("Ignoring invalid break levels", "value", c.Tournament.BreakLevels)
		}
	}

	breakSeconds := structure.ParseBreakDuration(c.Tournament.BreakMinutes)
	return structure.Build(levels, breakAfter, breakSeconds)
}

// StateOptions returns the engine options for the configured house rules.
func (c *Config) StateOptions() []tournament.Option {
	return []tournament.Option{
		tournament.WithStartingStack(c.Tournament.StartingStack),
		tournament.WithHeadsUpSeconds(c.Tournament.HeadsUpMinutes * 60),
	}
}
