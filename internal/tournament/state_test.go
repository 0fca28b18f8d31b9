package tournament

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerclock/internal/structure"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// twoLevelSchedule is Level 1 (15m), a 5m break, Level 2 (15m).
func twoLevelSchedule() structure.Schedule {
	levels := []structure.BlindLevel{
		{Level: 1, SmallBlind: 100, BigBlind: 200, DurationSeconds: 900},
		{Level: 2, SmallBlind: 200, BigBlind: 400, DurationSeconds: 900},
	}
	return structure.Build(levels, []int{1}, 300)
}

func startedState(t *testing.T, schedule structure.Schedule, opts ...Option) *State {
	t.Helper()
	s := New(quietLogger(), opts...)
	s.Start(schedule)
	return s
}

func eventTypes(events []Event) []EventType {
	var types []EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestNewStateIsIdle(t *testing.T) {
	s := New(quietLogger())

	assert.True(t, s.Paused())
	assert.False(t, s.HasSchedule())
	assert.Equal(t, structure.Entry{Kind: structure.KindLevel, Level: 1, DurationSeconds: 600}, s.CurrentEntry())

	t.Run("tick does nothing", func(t *testing.T) {
		assert.Nil(t, s.Tick())
		assert.Equal(t, 0, s.TotalElapsed())
	})

	t.Run("resume does nothing without a schedule", func(t *testing.T) {
		s.Resume()
		assert.True(t, s.Paused())
		assert.True(t, s.TogglePause())
	})

	t.Run("advance pauses and emits nothing", func(t *testing.T) {
		assert.Empty(t, s.AdvanceLevel())
		assert.True(t, s.Paused())
		assert.Equal(t, 0, s.Index())
	})

	t.Run("time to next break is zero", func(t *testing.T) {
		secs, none := s.TimeToNextBreak()
		assert.Equal(t, 0, secs)
		assert.False(t, none)
	})
}

func TestStart(t *testing.T) {
	s := startedState(t, twoLevelSchedule())

	assert.True(t, s.Paused())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 900, s.LevelRemaining())

	secs, none := s.TimeToNextBreak()
	assert.Equal(t, 900, secs)
	assert.False(t, none)

	t.Run("schedule is copied", func(t *testing.T) {
		schedule := twoLevelSchedule()
		s := startedState(t, schedule)
		s.AddPlayer()
		s.AddPlayer()
		require.True(t, s.SetHeadsUp())

		assert.Equal(t, 900, schedule[2].DurationSeconds)
		assert.Equal(t, 300, s.Schedule()[2].DurationSeconds)
	})

	t.Run("start discards the previous session", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.AddPlayer()
		s.Resume()
		s.Tick()

		s.Start(twoLevelSchedule())

		assert.Equal(t, 0, s.Players())
		assert.Equal(t, 0, s.TotalElapsed())
		assert.True(t, s.Paused())
	})
}

func TestAdvanceLevel(t *testing.T) {
	t.Run("emits break then level events", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())

		events := s.AdvanceLevel()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeBreakStarted, events[0].Type)
		assert.Equal(t, 1, events[0].Index)
		assert.True(t, events[0].Entry.IsBreak())
		assert.Equal(t, 300, s.LevelRemaining())

		events = s.AdvanceLevel()
		assert.Equal(t, []EventType{EventTypeLevelStarted}, eventTypes(events))
		assert.Equal(t, 2, events[0].Entry.Level)
		assert.Equal(t, 900, s.LevelRemaining())
	})

	t.Run("level to level emits level started", func(t *testing.T) {
		levels := []structure.BlindLevel{
			{Level: 1, BigBlind: 200, DurationSeconds: 600},
			{Level: 2, BigBlind: 400, DurationSeconds: 600},
		}
		s := startedState(t, structure.Build(levels, nil, 0))

		assert.Equal(t, []EventType{EventTypeLevelStarted}, eventTypes(s.AdvanceLevel()))
	})

	t.Run("at the last entry pauses without moving", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.AdvanceLevel()
		s.AdvanceLevel()
		s.Resume()
		s.AdjustTime(-100)

		events := s.AdvanceLevel()

		assert.Equal(t, []EventType{EventTypeScheduleComplete}, eventTypes(events))
		assert.True(t, s.Paused())
		assert.Equal(t, 2, s.Index())
		assert.Equal(t, 800, s.LevelRemaining())
	})

	t.Run("len(schedule) advances end paused on the last entry", func(t *testing.T) {
		schedule := structure.DefaultSchedule()
		s := startedState(t, schedule)
		s.Resume()

		for range schedule {
			s.AdvanceLevel()
		}

		assert.True(t, s.Paused())
		assert.Equal(t, len(schedule)-1, s.Index())
	})
}

func TestRetreatLevel(t *testing.T) {
	t.Run("no-op at the first entry", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.AdjustTime(-60)

		s.RetreatLevel()

		assert.Equal(t, 0, s.Index())
		assert.Equal(t, 840, s.LevelRemaining())
	})

	t.Run("retreat then advance restores position with a fresh countdown", func(t *testing.T) {
		schedule := structure.DefaultSchedule()
		for start := 1; start < len(schedule)-1; start++ {
			s := startedState(t, schedule)
			for range start {
				s.AdvanceLevel()
			}
			s.AdjustTime(-30)

			s.RetreatLevel()
			assert.Equal(t, start-1, s.Index())
			assert.Equal(t, schedule[start-1].DurationSeconds, s.LevelRemaining())

			s.AdvanceLevel()
			assert.Equal(t, start, s.Index())
			assert.Equal(t, schedule[start].DurationSeconds, s.LevelRemaining())
		}
	})
}

func TestTick(t *testing.T) {
	t.Run("paused clock does not move", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())

		assert.Nil(t, s.Tick())
		assert.Equal(t, 900, s.LevelRemaining())
	})

	t.Run("counts down and up", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.Resume()

		for range 10 {
			assert.Empty(t, s.Tick())
		}

		assert.Equal(t, 890, s.LevelRemaining())
		assert.Equal(t, 10, s.TotalElapsed())
		secs, _ := s.TimeToNextBreak()
		assert.Equal(t, 890, secs)
	})

	t.Run("runs the whole schedule to completion", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.Resume()

		var events []Event
		ticks := 0
		for !s.Paused() {
			events = append(events, s.Tick()...)
			ticks++
			require.LessOrEqual(t, ticks, 5000)
		}

		assert.Equal(t, 2100, ticks)
		assert.Equal(t, 2100, s.TotalElapsed())
		assert.Equal(t, 2, s.Index())
		assert.Equal(t, []EventType{
			EventTypeBreakStarted,
			EventTypeLevelStarted,
			EventTypeScheduleComplete,
		}, eventTypes(events))
	})

	t.Run("a zeroed countdown advances on the next tick", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.Resume()
		s.AdjustTime(-10000)
		assert.Equal(t, 0, s.LevelRemaining())

		events := s.Tick()

		assert.Equal(t, []EventType{EventTypeBreakStarted}, eventTypes(events))
		assert.Equal(t, 300, s.LevelRemaining())
	})
}

func TestAdjustAndSeek(t *testing.T) {
	t.Run("adjust adds time", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.AdjustTime(10)

		assert.Equal(t, 910, s.LevelRemaining())
		secs, _ := s.TimeToNextBreak()
		assert.Equal(t, 910, secs)
	})

	t.Run("adjust clamps at zero", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.AdjustTime(-901)

		assert.Equal(t, 0, s.LevelRemaining())
		assert.Equal(t, 0, s.Index())
	})

	t.Run("seek to half of a 600 second level", func(t *testing.T) {
		levels := []structure.BlindLevel{{Level: 1, BigBlind: 200, DurationSeconds: 600}}
		s := startedState(t, structure.Build(levels, nil, 0))

		s.SeekTime(0.5)

		assert.Equal(t, 300, s.LevelRemaining())
	})

	t.Run("seek to the edges", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())

		s.SeekTime(0)
		assert.Equal(t, 900, s.LevelRemaining())

		s.SeekTime(1)
		assert.Equal(t, 0, s.LevelRemaining())
	})
}

func TestTimeToNextBreak(t *testing.T) {
	levels := []structure.BlindLevel{
		{Level: 1, BigBlind: 200, DurationSeconds: 600},
		{Level: 2, BigBlind: 400, DurationSeconds: 700},
		{Level: 3, BigBlind: 600, DurationSeconds: 800},
		{Level: 4, BigBlind: 800, DurationSeconds: 900},
	}
	schedule := structure.Build(levels, []int{2}, 300)

	tests := []struct {
		name     string
		advances int
		wantSecs int
		wantNone bool
	}{
		{"sums levels up to the break", 0, 600 + 700, false},
		{"entry before the break is its own countdown", 1, 700, false},
		{"during a break", 2, 0, false},
		{"after the last break", 3, 0, true},
		{"on the last level", 4, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startedState(t, schedule)
			for range tt.advances {
				s.AdvanceLevel()
			}

			secs, none := s.TimeToNextBreak()
			assert.Equal(t, tt.wantSecs, secs)
			assert.Equal(t, tt.wantNone, none)
		})
	}

	t.Run("before every break equals the remaining countdown", func(t *testing.T) {
		schedule := structure.DefaultSchedule()
		s := startedState(t, schedule)
		for i := 0; i < len(schedule)-1; i++ {
			if schedule[i+1].IsBreak() {
				s.AdjustTime(-17)
				secs, none := s.TimeToNextBreak()
				assert.False(t, none)
				assert.Equal(t, s.LevelRemaining(), secs, "index %d", i)
			}
			s.AdvanceLevel()
		}
	})
}

func TestSetHeadsUp(t *testing.T) {
	t.Run("needs two entrants", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule())
		s.AddPlayer()

		assert.False(t, s.SetHeadsUp())
		assert.Equal(t, 1, s.Players())
		assert.Equal(t, 900, s.Schedule()[2].DurationSeconds)
	})

	t.Run("shortens later levels only", func(t *testing.T) {
		schedule := structure.DefaultSchedule()
		s := startedState(t, schedule)
		for range 5 {
			s.AddPlayer()
		}
		for range 3 {
			s.AdvanceLevel()
		}

		require.True(t, s.SetHeadsUp())

		assert.Equal(t, 2, s.Players())
		assert.Equal(t, 5, s.TotalPlayers())
		assert.Equal(t, 100000, s.AverageStack())

		got := s.Schedule()
		for i, entry := range got {
			switch {
			case i <= 3 || entry.IsBreak():
				assert.Equal(t, schedule[i].DurationSeconds, entry.DurationSeconds, "index %d", i)
			default:
				assert.Equal(t, DefaultHeadsUpSeconds, entry.DurationSeconds, "index %d", i)
			}
		}

		secs, _ := s.TimeToNextBreak()
		assert.Equal(t, s.LevelRemaining()+DefaultHeadsUpSeconds, secs)
	})

	t.Run("custom heads-up length", func(t *testing.T) {
		s := startedState(t, twoLevelSchedule(), WithHeadsUpSeconds(120))
		s.AddPlayer()
		s.AddPlayer()

		require.True(t, s.SetHeadsUp())
		assert.Equal(t, 120, s.Schedule()[2].DurationSeconds)
	})
}

func TestPlayersAndChips(t *testing.T) {
	t.Run("three players from empty", func(t *testing.T) {
		s := New(quietLogger())
		for range 3 {
			s.AddPlayer()
		}

		assert.Equal(t, 3, s.Players())
		assert.Equal(t, 3, s.TotalPlayers())
		assert.Equal(t, 120000, s.TotalChips())
		assert.Equal(t, 40000, s.AverageStack())
		assert.Equal(t, []string{"Guest_1", "Guest_2", "Guest_3"}, s.Entrants())
	})

	t.Run("remove keeps the last player and the chips", func(t *testing.T) {
		s := New(quietLogger())
		s.AddPlayer()
		s.AddPlayer()

		assert.True(t, s.RemovePlayer())
		assert.False(t, s.RemovePlayer())
		assert.Equal(t, 1, s.Players())
		assert.Equal(t, 2, s.TotalPlayers())
		assert.Equal(t, 80000, s.TotalChips())
		assert.Len(t, s.Entrants(), 2)
	})

	t.Run("names continue after removals", func(t *testing.T) {
		s := New(quietLogger())
		s.AddPlayer()
		s.AddPlayer()
		s.RemovePlayer()

		assert.Equal(t, "Guest_3", s.AddPlayer())
	})

	t.Run("average rounds up", func(t *testing.T) {
		s := New(quietLogger(), WithStartingStack(1000))
		s.AddPlayer()
		s.AddPlayer()
		s.AddPlayer()
		s.AddChips(1)

		assert.Equal(t, 1001, s.AverageStack())
	})

	t.Run("negative chip amounts are ignored", func(t *testing.T) {
		s := New(quietLogger())
		s.AddChips(-500)
		assert.Equal(t, 0, s.TotalChips())
	})

	t.Run("no players means zero average", func(t *testing.T) {
		s := New(quietLogger())
		s.AddChips(5000)
		assert.Equal(t, 0, s.AverageStack())
	})

	t.Run("average stack formula holds for random mutations", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 7))
		s := New(quietLogger())
		chips := []int{1000, 3000, 5000, 10000, 40000, 50000}

		for range 1000 {
			switch rng.IntN(3) {
			case 0:
				s.AddPlayer()
			case 1:
				s.RemovePlayer()
			case 2:
				s.AddChips(chips[rng.IntN(len(chips))])
			}

			want := 0
			if s.Players() > 0 {
				want = (s.TotalChips() + s.Players() - 1) / s.Players()
			}
			require.Equal(t, want, s.AverageStack())
		}
	})
}

func TestReset(t *testing.T) {
	s := startedState(t, twoLevelSchedule())
	s.AddPlayer()
	s.Resume()
	s.Tick()
	s.AdvanceLevel()

	s.Reset()

	assert.True(t, s.Paused())
	assert.False(t, s.HasSchedule())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.LevelRemaining())
	assert.Equal(t, 0, s.TotalElapsed())
	assert.Equal(t, 0, s.Players())
	assert.Equal(t, 0, s.TotalPlayers())
	assert.Equal(t, 0, s.TotalChips())
	assert.Empty(t, s.Entrants())
}
