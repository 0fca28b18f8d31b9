// Package structure builds tournament blind schedules.
//
// A schedule is an ordered list of entries, each either a blind level or a
// break. Breaks are only ever inserted between two levels, so a schedule never
// ends on a break and never holds two breaks in a row.
//
//	levels := structure.DefaultLevels()
//	schedule := structure.Build(levels, []int{5, 10}, 7*60)
package structure

import "fmt"

// BlindLevel is one configured row of a blind structure.
type BlindLevel struct {
	Level           int
	SmallBlind      int
	BigBlind        int
	Ante            int
	DurationSeconds int
}

// EntryKind distinguishes levels from breaks within a schedule
type EntryKind int

const (
	KindLevel EntryKind = iota
	KindBreak
)

// String returns the string representation of the entry kind
func (k EntryKind) String() string {
	switch k {
	case KindLevel:
		return "level"
	case KindBreak:
		return "break"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// Entry is a single step of a schedule. Break entries only carry a duration.
type Entry struct {
	Kind            EntryKind
	Level           int
	SmallBlind      int
	BigBlind        int
	Ante            int
	DurationSeconds int
}

// IsBreak reports whether the entry is a break.
func (e Entry) IsBreak() bool {
	return e.Kind == KindBreak
}

// LevelEntry converts a configured row into a schedule entry.
func LevelEntry(l BlindLevel) Entry {
	return Entry{
		Kind:            KindLevel,
		Level:           l.Level,
		SmallBlind:      l.SmallBlind,
		BigBlind:        l.BigBlind,
		Ante:            l.Ante,
		DurationSeconds: l.DurationSeconds,
	}
}

// BreakEntry returns a break of the given length.
func BreakEntry(durationSeconds int) Entry {
	return Entry{Kind: KindBreak, DurationSeconds: durationSeconds}
}

// Schedule is the ordered sequence of levels and breaks a tournament walks through.
type Schedule []Entry

// Levels returns the number of level entries in the schedule.
func (s Schedule) Levels() int {
	n := 0
	for _, e := range s {
		if !e.IsBreak() {
			n++
		}
	}
	return n
}

// TotalSeconds returns the summed duration of every entry.
func (s Schedule) TotalSeconds() int {
	total := 0
	for _, e := range s {
		total += e.DurationSeconds
	}
	return total
}
