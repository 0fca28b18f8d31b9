package structure

// Build interleaves levels with breaks. A break of breakDurationSeconds follows
// every level whose number appears in breakAfter, except the final level.
// Level numbers in breakAfter that match no level are ignored.
func Build(levels []BlindLevel, breakAfter []int, breakDurationSeconds int) Schedule {
	breaks := make(map[int]struct{}, len(breakAfter))
	for _, level := range breakAfter {
		breaks[level] = struct{}{}
	}

	schedule := make(Schedule, 0, len(levels)+len(breaks))
	for i, level := range levels {
		schedule = append(schedule, LevelEntry(level))
		if _, ok := breaks[level.Level]; ok && i < len(levels)-1 {
			schedule = append(schedule, BreakEntry(breakDurationSeconds))
		}
	}
	return schedule
}

// SetAllDurations sets every level's duration to seconds, in place.
func SetAllDurations(levels []BlindLevel, seconds int) {
	for i := range levels {
		levels[i].DurationSeconds = seconds
	}
}

// ApplyDurationBelow copies the duration of levels[index] onto every later
// level, in place. An out of range index leaves levels unchanged.
func ApplyDurationBelow(levels []BlindLevel, index int) {
	if index < 0 || index >= len(levels) {
		return
	}
	duration := levels[index].DurationSeconds
	for i := index + 1; i < len(levels); i++ {
		levels[i].DurationSeconds = duration
	}
}
