package tournament

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// Display holds every value a presentation layer renders on a refresh.
type Display struct {
	Elapsed         string // HH:MM:SS
	LevelRemaining  string // MM:SS
	NextBreak       string // HH:MM:SS, or --:--:-- when no break remains
	NextBreakDetail string
	NoMoreBreaks    bool

	LevelLabel     string
	BlindsLabel    string
	NextLevelLabel string
	OnBreak        bool
	Paused         bool

	Players        string
	TotalChips     string
	TotalChipsBB   string
	AverageStack   string
	AverageStackBB string

	// Progress is the elapsed fraction of the current entry, 0..1.
	Progress float64
}

// Display computes the current display values.
func (s *State) Display() Display {
	cur := s.CurrentEntry()
	nextBreak, noMoreBreaks := s.TimeToNextBreak()

	d := Display{
		Elapsed:        FormatClock(s.totalElapsed),
		LevelRemaining: FormatCountdown(s.levelRemaining),
		NextBreak:      FormatClock(nextBreak),
		NoMoreBreaks:   noMoreBreaks,
		OnBreak:        cur.IsBreak(),
		Paused:         s.paused,
		Players:        fmt.Sprintf("%d/%d", s.players, s.totalPlayers),
		TotalChips:     FormatChips(s.totalChips),
		AverageStack:   FormatChips(s.AverageStack()),
		Progress:       s.progress(),
	}

	if cur.IsBreak() {
		d.LevelLabel = "BREAK"
		d.BlindsLabel = "Tournament is paused"
		d.NextBreakDetail = "Now Break"
	} else {
		d.LevelLabel = fmt.Sprintf("Level %d", cur.Level)
		d.BlindsLabel = "Blinds: " + formatBlinds(cur.SmallBlind, cur.BigBlind, cur.Ante)
		if left, found := s.levelsUntilBreak(); found {
			d.NextBreakDetail = fmt.Sprintf("%d level(s) left", left)
		} else {
			d.NextBreakDetail = "No more breaks"
		}
	}
	if noMoreBreaks {
		d.NextBreak = "--:--:--"
	}

	if next, ok := s.NextLevel(); ok {
		d.NextLevelLabel = fmt.Sprintf("Next Level %d: %s", next.Level, formatBlinds(next.SmallBlind, next.BigBlind, next.Ante))
	} else {
		d.NextLevelLabel = "Last Level"
	}

	bigBlind := s.CurrentBigBlind()
	d.TotalChipsBB = formatBigBlinds(s.totalChips, bigBlind)
	d.AverageStackBB = formatBigBlinds(s.AverageStack(), bigBlind)

	return d
}

func (s *State) progress() float64 {
	if len(s.schedule) == 0 {
		return 0
	}
	duration := s.CurrentEntry().DurationSeconds
	if duration <= 0 {
		return 0
	}
	p := 1 - float64(s.levelRemaining)/float64(duration)
	return min(max(p, 0), 1)
}

func formatBlinds(small, big, ante int) string {
	if ante > 0 {
		return numbers.Sprintf("%d / %d / %d", small, big, ante)
	}
	return numbers.Sprintf("%d / %d", small, big)
}

func formatBigBlinds(chips, bigBlind int) string {
	if bigBlind <= 0 {
		return "(0 BB)"
	}
	return numbers.Sprintf("(%.1f BB)", float64(chips)/float64(bigBlind))
}

// FormatChips renders a chip count with comma grouping.
func FormatChips(chips int) string {
	return numbers.Sprintf("%d", chips)
}

// FormatClock renders seconds as HH:MM:SS. Negative values render as zero.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// FormatCountdown renders seconds as MM:SS. Minutes are not wrapped into
// hours. Negative values render as zero.
func FormatCountdown(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
