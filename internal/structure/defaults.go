package structure

// DefaultStructure is the house main-event structure, one
// small/big/ante/minutes row per level.
const DefaultStructure = `100/200/200/15
200/300/300/15
200/400/400/15
300/500/500/15
300/600/600/15
400/800/800/15
500/1000/1000/15
600/1200/1200/15
800/1500/1500/15
1000/1500/1500/15
1000/2000/2000/12
1500/2500/2500/12
1500/3000/3000/12
2000/4000/4000/12
2500/5000/5000/12
3000/6000/6000/8
4000/8000/8000/8
5000/10000/10000/8
6000/12000/12000/8
8000/16000/16000/8
10000/20000/20000/6
15000/25000/25000/6
20000/30000/30000/6
20000/40000/40000/6
25000/50000/50000/6
30000/60000/60000/6`

// Defaults for break placement in the house structure.
const (
	DefaultBreakLevels  = "5, 10, 15, 20, 25"
	DefaultBreakMinutes = "7"
)

// DefaultLevels returns the parsed house structure.
func DefaultLevels() []BlindLevel {
	levels, _ := ParseLevels(DefaultStructure)
	return levels
}

// DefaultSchedule builds the house structure with its default breaks.
func DefaultSchedule() Schedule {
	return Build(DefaultLevels(), ParseBreakLevels(DefaultBreakLevels), ParseBreakDuration(DefaultBreakMinutes))
}
