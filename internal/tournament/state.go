// Package tournament implements the tournament clock engine.
//
// State owns a schedule built by package structure, the countdown for the
// current entry, the elapsed tournament time and the player/chip books. It is
// not safe for concurrent use: one goroutine (the display loop) applies both
// ticks and user commands, one at a time.
//
//	s := tournament.New(logger)
//	s.Start(structure.DefaultSchedule())
//	s.Resume()
//	events := s.Tick() // once per second while running
package tournament

import (
	"fmt"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerclock/internal/structure"
)

// Defaults carried over from the house rules.
const (
	DefaultStartingStack   = 40000
	DefaultHeadsUpSeconds  = 300
	defaultDurationSeconds = 600
)

// defaultEntry stands in for the current entry when no schedule is loaded.
var defaultEntry = structure.Entry{
	Kind:            structure.KindLevel,
	Level:           1,
	DurationSeconds: defaultDurationSeconds,
}

type stateConfig struct {
	startingStack  int
	headsUpSeconds int
}

// Option configures a State.
type Option func(*stateConfig)

// WithStartingStack sets the chips credited for every added player.
// Default is 40000 if not specified.
func WithStartingStack(chips int) Option {
	return func(c *stateConfig) {
		c.startingStack = chips
	}
}

// WithHeadsUpSeconds sets the level length applied by SetHeadsUp.
// Default is 300 if not specified.
func WithHeadsUpSeconds(seconds int) Option {
	return func(c *stateConfig) {
		c.headsUpSeconds = seconds
	}
}

// State is a single live tournament session.
type State struct {
	logger *log.Logger
	cfg    stateConfig

	schedule        structure.Schedule
	index           int
	levelRemaining  int
	totalElapsed    int
	timeToNextBreak int
	noMoreBreaks    bool
	paused          bool

	players      int
	totalPlayers int
	totalChips   int
	entrants     []string
}

// New creates an idle, paused session with no schedule.
func New(logger *log.Logger, opts ...Option) *State {
	cfg := stateConfig{
		startingStack:  DefaultStartingStack,
		headsUpSeconds: DefaultHeadsUpSeconds,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &State{
		logger: logger.WithPrefix("tournament"),
		cfg:    cfg,
	}
	s.Reset()
	return s
}

// Reset returns the session to its empty form: no schedule, no players,
// zeroed clocks, paused.
func (s *State) Reset() {
	s.schedule = nil
	s.index = 0
	s.levelRemaining = 0
	s.totalElapsed = 0
	s.timeToNextBreak = 0
	s.noMoreBreaks = false
	s.paused = true
	s.players = 0
	s.totalPlayers = 0
	s.totalChips = 0
	s.entrants = nil
	s.logger.Debug("Session reset")
}

// Start resets the session and loads a schedule. The schedule is copied, so
// later heads-up rewrites never touch the caller's slice. The clock stays
// paused until Resume.
func (s *State) Start(schedule structure.Schedule) {
	s.Reset()
	s.schedule = slices.Clone(schedule)
	s.resetLevelTimer()
	s.recalculateNextBreak()
	s.logger.Info("Tournament loaded",
		"entries", len(s.schedule),
		"levels", s.schedule.Levels(),
		"seconds", s.schedule.TotalSeconds())
}

// Tick advances the clock by one second. It does nothing while paused or
// before a schedule is loaded.
func (s *State) Tick() []Event {
	if s.paused || len(s.schedule) == 0 {
		return nil
	}

	s.levelRemaining--
	s.totalElapsed++
	if s.timeToNextBreak > 0 {
		s.timeToNextBreak--
	}

	if s.levelRemaining <= 0 {
		return s.AdvanceLevel()
	}
	return nil
}

// AdvanceLevel moves to the next schedule entry with a full countdown. At the
// last entry the clock pauses instead and the cursor stays put.
func (s *State) AdvanceLevel() []Event {
	var events []Event

	if s.index < len(s.schedule)-1 {
		prev := s.CurrentEntry()
		s.index++
		s.resetLevelTimer()

		cur := s.CurrentEntry()
		switch {
		case cur.IsBreak() && !prev.IsBreak():
			events = append(events, Event{Type: EventTypeBreakStarted, Index: s.index, Entry: cur})
			s.logger.Info("Break started", "index", s.index, "seconds", cur.DurationSeconds)
		case !cur.IsBreak():
			events = append(events, Event{Type: EventTypeLevelStarted, Index: s.index, Entry: cur})
			s.logger.Info("Level started", "level", cur.Level, "small", cur.SmallBlind, "big", cur.BigBlind, "ante", cur.Ante)
		}
	} else {
		s.paused = true
		if len(s.schedule) > 0 {
			events = append(events, Event{Type: EventTypeScheduleComplete, Index: s.index, Entry: s.CurrentEntry()})
			s.logger.Info("Schedule complete", "elapsed", s.totalElapsed)
		}
	}

	s.recalculateNextBreak()
	return events
}

// RetreatLevel steps back one entry and restarts it from its full duration.
func (s *State) RetreatLevel() {
	if s.index > 0 {
		s.index--
		s.resetLevelTimer()
		s.logger.Debug("Retreated", "index", s.index)
	}
	s.recalculateNextBreak()
}

// TogglePause flips the paused flag and returns the new value.
func (s *State) TogglePause() bool {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
	return s.paused
}

// Pause stops the countdown.
func (s *State) Pause() {
	s.paused = true
}

// Resume restarts the countdown. It has no effect before a schedule is loaded.
func (s *State) Resume() {
	if len(s.schedule) == 0 {
		return
	}
	s.paused = false
}

// AdjustTime adds delta seconds to the current countdown, never going below zero.
func (s *State) AdjustTime(delta int) {
	s.levelRemaining = max(s.levelRemaining+delta, 0)
	s.recalculateNextBreak()
}

// SeekTime sets the countdown so that fraction of the current entry has
// elapsed, rounded to the nearest second. fraction is not validated; callers
// clamp it to [0,1].
func (s *State) SeekTime(fraction float64) {
	duration := s.CurrentEntry().DurationSeconds
	s.levelRemaining = int(math.Round(float64(duration) * (1 - fraction)))
	s.recalculateNextBreak()
}

// SetHeadsUp drops to two players and shortens every level after the current
// one. It needs at least two players to have entered and reports whether it
// applied.
func (s *State) SetHeadsUp() bool {
	if s.totalPlayers < 2 {
		return false
	}

	s.players = 2
	for i := s.index + 1; i < len(s.schedule); i++ {
		if !s.schedule[i].IsBreak() {
			s.schedule[i].DurationSeconds = s.cfg.headsUpSeconds
		}
	}
	s.recalculateNextBreak()
	s.logger.Info("Heads-up", "level_seconds", s.cfg.headsUpSeconds)
	return true
}

// AddPlayer registers a new entrant with a starting stack and returns the
// generated entrant name.
func (s *State) AddPlayer() string {
	s.players++
	s.totalPlayers++
	s.totalChips += s.cfg.startingStack
	name := fmt.Sprintf("Guest_%d", s.totalPlayers)
	s.entrants = append(s.entrants, name)
	s.logger.Debug("Player added", "name", name, "players", s.players)
	return name
}

// RemovePlayer marks one player as out. The last player is never removed and
// chips stay in play. It reports whether the count changed.
func (s *State) RemovePlayer() bool {
	if s.players <= 1 {
		return false
	}
	s.players--
	s.logger.Debug("Player removed", "players", s.players)
	return true
}

// AddChips puts extra chips into play, such as a rebuy or add-on. Negative
// amounts are ignored.
func (s *State) AddChips(amount int) {
	if amount < 0 {
		return
	}
	s.totalChips += amount
}

// TimeToNextBreak returns the seconds until the next break starts. The second
// value is true when no break remains in the schedule; the seconds are then 0.
// During a break, or without a schedule, it returns (0, false).
func (s *State) TimeToNextBreak() (int, bool) {
	return s.timeToNextBreak, s.noMoreBreaks
}

func (s *State) recalculateNextBreak() {
	s.timeToNextBreak, s.noMoreBreaks = s.calculateTimeToNextBreak()
}

func (s *State) calculateTimeToNextBreak() (int, bool) {
	if len(s.schedule) == 0 || s.CurrentEntry().IsBreak() {
		return 0, false
	}

	timeLeft := s.levelRemaining
	for _, entry := range s.schedule[s.index+1:] {
		if entry.IsBreak() {
			return timeLeft, false
		}
		timeLeft += entry.DurationSeconds
	}
	return 0, true
}

// levelsUntilBreak counts levels from the cursor up to the next break and
// reports whether a break was found.
func (s *State) levelsUntilBreak() (int, bool) {
	n := 0
	for _, entry := range s.schedule[s.index:] {
		if entry.IsBreak() {
			return n, true
		}
		n++
	}
	return n, false
}

func (s *State) resetLevelTimer() {
	s.levelRemaining = s.CurrentEntry().DurationSeconds
}

// CurrentEntry returns the entry under the cursor, or a 600 second level 1
// with no blinds when no schedule is loaded.
func (s *State) CurrentEntry() structure.Entry {
	if len(s.schedule) == 0 || s.index >= len(s.schedule) {
		return defaultEntry
	}
	return s.schedule[s.index]
}

// NextLevel returns the first level entry after the cursor.
func (s *State) NextLevel() (structure.Entry, bool) {
	for i := s.index + 1; i < len(s.schedule); i++ {
		if !s.schedule[i].IsBreak() {
			return s.schedule[i], true
		}
	}
	return structure.Entry{}, false
}

// CurrentBigBlind is the big blind used for stack ratios. During a break it
// is the big blind of the level just played.
func (s *State) CurrentBigBlind() int {
	cur := s.CurrentEntry()
	if !cur.IsBreak() {
		return cur.BigBlind
	}
	if s.index > 0 {
		return s.schedule[s.index-1].BigBlind
	}
	return 0
}

// AverageStack is the chips in play divided by the remaining players,
// rounded up.
func (s *State) AverageStack() int {
	if s.players <= 0 {
		return 0
	}
	return (s.totalChips + s.players - 1) / s.players
}

// Schedule returns a copy of the loaded schedule.
func (s *State) Schedule() structure.Schedule {
	return slices.Clone(s.schedule)
}

// HasSchedule reports whether a tournament is loaded.
func (s *State) HasSchedule() bool {
	return len(s.schedule) > 0
}

// Index returns the cursor into the schedule.
func (s *State) Index() int {
	return s.index
}

// Paused reports whether the countdown is stopped.
func (s *State) Paused() bool {
	return s.paused
}

// LevelRemaining returns the seconds left in the current entry.
func (s *State) LevelRemaining() int {
	return s.levelRemaining
}

// TotalElapsed returns the seconds the clock has run.
func (s *State) TotalElapsed() int {
	return s.totalElapsed
}

// Players returns the players still in.
func (s *State) Players() int {
	return s.players
}

// TotalPlayers returns every player ever added.
func (s *State) TotalPlayers() int {
	return s.totalPlayers
}

// TotalChips returns the chips in play.
func (s *State) TotalChips() int {
	return s.totalChips
}

// Entrants returns the entrant names in the order they joined.
func (s *State) Entrants() []string {
	return slices.Clone(s.entrants)
}
