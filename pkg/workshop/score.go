package workshop

import "sort"

const WorkWeeksPerYear = 50

var frequencyScores = map[Frequency]int{
	FrequencyDaily:   3,
	FrequencyWeekly:  2,
	FrequencyMonthly: 1,
}

// Time effort scores by hours per week
const (
	timeScoreLow    = 1 // <= 5h
	timeScoreMedium = 2 // > 5h
	timeScoreHigh   = 3 // > 10h
)

// ProcessScore ranks a process for automation priority. With errorProneness
// and automatable in 1..3 the result lies in 4..12.
func ProcessScore(p Process) int {
	timeScore := timeScoreLow
	hours := TimePerWeek(p)
	if hours > 10 {
		timeScore = timeScoreHigh
	} else if hours > 5 {
		timeScore = timeScoreMedium
	}

	return frequencyScores[p.Frequency] + timeScore + p.ErrorProneness + p.Automatable
}

// TimePerWeek returns the hours per week spent on p, assuming a five day week
// and four weeks per month. Missing inputs yield 0.
func TimePerWeek(p Process) float64 {
	if p.TimePerExecution == 0 || p.ExecutionsPerPeriod == 0 || p.Frequency == "" {
		return 0
	}

	hoursPerExecution := p.TimePerExecution / 60

	var executionsPerWeek float64
	switch p.Frequency {
	case FrequencyDaily:
		executionsPerWeek = p.ExecutionsPerPeriod * 5
	case FrequencyWeekly:
		executionsPerWeek = p.ExecutionsPerPeriod
	case FrequencyMonthly:
		executionsPerWeek = p.ExecutionsPerPeriod / 4
	}

	return hoursPerExecution * executionsPerWeek
}

func TimePerYear(p Process) float64 {
	return TimePerWeek(p) * WorkWeeksPerYear
}

// withScore is the only place a cached score is (re)computed.
func withScore(p Process) Process {
	p.Score = ProcessScore(p)
	return p
}

func effectiveScore(p Process) int {
	if p.Score != 0 {
		return p.Score
	}
	return ProcessScore(p)
}

// SortByScore returns a copy of processes ordered by score, highest first.
// Equal scores keep their input order.
func SortByScore(processes []Process) []Process {
	sorted := make([]Process, len(processes))
	for i, p := range processes {
		sorted[i] = p.clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return effectiveScore(sorted[i]) > effectiveScore(sorted[j])
	})
	return sorted
}

func TopProcesses(processes []Process, n int) []Process {
	sorted := SortByScore(processes)
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

type ScoreBadge string

const (
	BadgeCritical ScoreBadge = "critical"
	BadgeHigh     ScoreBadge = "high"
	BadgeMedium   ScoreBadge = "medium"
	BadgeLow      ScoreBadge = "low"
)

func BadgeFor(score int) ScoreBadge {
	switch {
	case score >= 10:
		return BadgeCritical
	case score >= 8:
		return BadgeHigh
	case score >= 6:
		return BadgeMedium
	default:
		return BadgeLow
	}
}
