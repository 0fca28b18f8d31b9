package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerclock/internal/structure"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokerclock.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestLoad(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
		require.NoError(t, err)

		assert.Equal(t, DefaultConfig(), cfg)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, structure.DefaultSchedule(), cfg.Schedule(quietLogger()))
	})

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
tournament {
  structure = <<EOT
100/200/0/15
200/400/0/15
EOT
  break_levels     = "1"
  break_minutes    = 5
  starting_stack   = 25000
  heads_up_minutes = 3
  chip_options     = [500, 1000]
}

sound {
  command     = "paplay"
  level_up    = "up.ogg"
  break_start = "break.ogg"
}

log {
  level = "debug"
  file  = "clock.log"
}
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, 25000, cfg.Tournament.StartingStack)
		assert.Equal(t, 3, cfg.Tournament.HeadsUpMinutes)
		assert.Equal(t, []int{500, 1000}, cfg.Tournament.ChipOptions)
		assert.Equal(t, "paplay", cfg.Sound.Command)
		assert.Equal(t, "up.ogg", cfg.Sound.LevelUp)
		assert.Equal(t, "debug", cfg.Log.Level)

		schedule := cfg.Schedule(quietLogger())
		require.Len(t, schedule, 3)
		assert.Equal(t, 900, schedule[0].DurationSeconds)
		assert.Equal(t, structure.BreakEntry(300), schedule[1])
		assert.Equal(t, 400, schedule[2].BigBlind)
	})

	t.Run("partial file is back-filled", func(t *testing.T) {
		path := writeConfig(t, `
tournament {
  starting_stack = 10000
}
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 10000, cfg.Tournament.StartingStack)
		assert.Equal(t, structure.DefaultStructure, cfg.Tournament.Structure)
		assert.Equal(t, DefaultChipOptions, cfg.Tournament.ChipOptions)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "levelup.mp3", cfg.Sound.LevelUp)

		// no break_levels attribute means no breaks
		assert.Equal(t, 26, len(cfg.Schedule(quietLogger())))
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		path := writeConfig(t, `tournament {`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse HCL file")
	})

	t.Run("unknown attributes are reported", func(t *testing.T) {
		path := writeConfig(t, `
tournament {
  blinds = "1/2"
}
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode HCL")
	})
}

func TestSchedule(t *testing.T) {
	t.Run("bad rows and break settings fall back", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tournament.Structure = "100/200/0/10\nbroken\n200/400/0/10\n300/600/0/10"
		cfg.Tournament.BreakLevels = "1, x"
		cfg.Tournament.BreakMinutes = "soon"

		schedule := cfg.Schedule(quietLogger())

		assert.Len(t, schedule, 3)
		for _, e := range schedule {
			assert.False(t, e.IsBreak())
		}

		cfg.Tournament.BreakLevels = "2"
		schedule = cfg.Schedule(quietLogger())
		require.Len(t, schedule, 4)
		assert.Equal(t, structure.DefaultBreakSeconds, schedule[2].DurationSeconds)
	})

	t.Run("all minutes overrides every level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tournament.AllMinutes = 20

		for _, e := range cfg.Schedule(quietLogger()) {
			if !e.IsBreak() {
				assert.Equal(t, 1200, e.DurationSeconds)
			}
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"starting stack", func(c *Config) { c.Tournament.StartingStack = -1 }, "starting stack"},
		{"heads-up", func(c *Config) { c.Tournament.HeadsUpMinutes = -2 }, "heads-up"},
		{"all minutes", func(c *Config) { c.Tournament.AllMinutes = -5 }, "all_minutes"},
		{"chip option", func(c *Config) { c.Tournament.ChipOptions = []int{100, 0} }, "chip option"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
