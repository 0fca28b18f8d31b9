package structure

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// DefaultBreakSeconds is used when the break duration cannot be parsed.
const DefaultBreakSeconds = 420

// RowError describes a blind structure row that was skipped.
type RowError struct {
	Row  int // 1-based line number in the input
	Text string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d %q: %v", e.Row, e.Text, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ParseLevels reads rows of "small/big/ante/minutes". Numbers may use comma
// grouping ("1,000"). Blank lines are ignored. Malformed rows are skipped and
// reported; the remaining rows are numbered densely from 1.
func ParseLevels(text string) ([]BlindLevel, []error) {
	var levels []BlindLevel
	var skipped []error

	scanner := bufio.NewScanner(strings.NewReader(text))
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		level, err := parseRow(line)
		if err != nil {
			skipped = append(skipped, &RowError{Row: row, Text: line, Err: err})
			continue
		}
		level.Level = len(levels) + 1
		levels = append(levels, level)
	}

	return levels, skipped
}

func parseRow(line string) (BlindLevel, error) {
	fields := strings.Split(line, "/")
	if len(fields) != 4 {
		return BlindLevel{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	var values [4]int
	for i, field := range fields {
		v, err := parseAmount(field)
		if err != nil {
			return BlindLevel{}, err
		}
		values[i] = v
	}

	if values[3] <= 0 {
		return BlindLevel{}, fmt.Errorf("duration must be positive, got %d", values[3])
	}

	return BlindLevel{
		SmallBlind:      values[0],
		BigBlind:        values[1],
		Ante:            values[2],
		DurationSeconds: values[3] * 60,
	}, nil
}

func parseAmount(field string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(field), ",", "")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(field))
	}
	if v < 0 {
		return 0, fmt.Errorf("negative number %d", v)
	}
	return v, nil
}

// ParseBreakLevels parses a comma separated list of level numbers. Any invalid
// element yields an empty list.
func ParseBreakLevels(text string) []int {
	var levels []int
	for _, part := range strings.Split(text, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil
		}
		levels = append(levels, n)
	}
	return levels
}

// ParseBreakDuration converts a minute count into seconds, falling back to
// DefaultBreakSeconds for anything that is not a positive integer.
func ParseBreakDuration(text string) int {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || minutes <= 0 {
		return DefaultBreakSeconds
	}
	return minutes * 60
}
