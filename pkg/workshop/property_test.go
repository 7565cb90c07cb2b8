package workshop

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

func validProcess(freq int, minutes, executions float64, errorProneness, automatable int) Process {
	return Process{
		Name:                "generated",
		Frequency:           frequencies[freq],
		TimePerExecution:    minutes,
		ExecutionsPerPeriod: executions,
		ErrorProneness:      errorProneness,
		Automatable:         automatable,
	}
}

// TestScoreRange verifies every valid process scores between 4 and 12.
func TestScoreRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("score stays in 4..12 and is pure", prop.ForAll(
		func(freq int, minutes, executions float64, errorProneness, automatable int) bool {
			p := validProcess(freq, minutes, executions, errorProneness, automatable)
			score := ProcessScore(p)
			return score >= 4 && score <= 12 && score == ProcessScore(p)
		},
		gen.IntRange(0, 2),
		gen.Float64Range(1, 600),
		gen.Float64Range(1, 100),
		gen.IntRange(1, 3),
		gen.IntRange(1, 3),
	))

	properties.TestingRun(t)
}

func TestLoadDataIdempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("loading a document twice equals loading it once", prop.ForAll(
		func(name string, step int, rate float64) bool {
			doc := InitialDocument(fixedNow)
			doc.Customer.Name = name
			doc.CurrentStep = step
			doc.HourlyRate = rate

			r := newTestReducer()
			once := r.Reduce(initialState(), LoadData{Document: doc})
			twice := r.Reduce(once, LoadData{Document: doc})
			return reflect.DeepEqual(once, twice)
		},
		gen.AlphaString(),
		gen.IntRange(FirstStep, LastStep),
		gen.Float64Range(1, 500),
	))

	properties.TestingRun(t)
}

// historyAction maps op onto one of the actions that record history, picking
// targets from the current document.
func historyAction(s State, op, i int) Action {
	doc := s.Document
	switch op {
	case 0:
		return AddTool{Tool: Tool{Name: fmt.Sprintf("tool-%d", i), Frequency: FrequencyWeekly}}
	case 1:
		return AddProcess{Process: validProcess(i%3, 15, 2, 2, 2)}
	case 2:
		if len(doc.Processes) > 0 {
			return AddAutomationScenario{Scenario: Scenario{ProcessID: doc.Processes[0].ID, TimeSavingsPercent: 50}}
		}
	case 3:
		if len(doc.Tools) > 0 {
			name := fmt.Sprintf("renamed-%d", i)
			return UpdateTool{ID: doc.Tools[0].ID, Patch: ToolPatch{Name: &name}}
		}
	case 4:
		if len(doc.Processes) > 0 {
			return RemoveProcess{ID: doc.Processes[len(doc.Processes)-1].ID}
		}
	}
	return AddTool{Tool: Tool{Name: fmt.Sprintf("fallback-%d", i)}}
}

func TestUndoRedoInverse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("n undos followed by n redos restore the document", prop.ForAll(
		func(ops []int, count, n int) bool {
			r := newTestReducer()
			s := initialState()
			for i := 0; i < count; i++ {
				s = r.Reduce(s, historyAction(s, ops[i], i))
			}
			want := s.Document

			for i := 0; i < n; i++ {
				s = r.Reduce(s, Undo{})
			}
			for i := 0; i < n; i++ {
				s = r.Reduce(s, Redo{})
			}
			return reflect.DeepEqual(want, s.Document)
		},
		gen.SliceOfN(70, gen.IntRange(0, 4)),
		gen.IntRange(1, 70),
		gen.IntRange(1, MaxHistory),
	))

	properties.TestingRun(t)
}

func TestUndoRedoInverse_AtHistoryCap(t *testing.T) {
	r := newTestReducer()
	s := initialState()
	for i := 0; i < 60; i++ {
		s = r.Reduce(s, AddTool{Tool: Tool{Name: fmt.Sprintf("tool-%d", i)}})
	}
	want := s.Document

	for i := 0; i < MaxHistory-1; i++ {
		s = r.Reduce(s, Undo{})
	}
	require.False(t, s.CanUndo(), "oldest kept snapshot reached")
	oldest := s.Document

	s = r.Reduce(s, Undo{})
	assert.Equal(t, oldest, s.Document, "undo past the oldest snapshot is a no-op")

	for i := 0; i < MaxHistory; i++ {
		s = r.Reduce(s, Redo{})
	}
	assert.Equal(t, want, s.Document)
	assert.False(t, s.CanRedo())
}

func TestHistoryBound(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("history never exceeds the cap", prop.ForAll(
		func(ops []int) bool {
			r := newTestReducer()
			s := initialState()
			for _, op := range ops {
				switch op {
				case 0:
					s = r.Reduce(s, AddTool{Tool: Tool{Name: "t"}})
				case 1:
					s = r.Reduce(s, AddProcess{Process: validProcess(0, 10, 1, 1, 1)})
				case 2:
					s = r.Reduce(s, Undo{})
				case 3:
					s = r.Reduce(s, Redo{})
				default:
					s = r.Reduce(s, SetNotes{Notes: "n"})
				}
				if len(s.History) > MaxHistory || s.HistoryIndex >= len(s.History) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(120, gen.IntRange(0, 4)),
	))

	properties.TestingRun(t)
}

func TestROIIsAlwaysFinite(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("roi figures are finite for any price", prop.ForAll(
		func(price, savings, rate float64, confidence int) bool {
			proc := validProcess(0, 30, 10, 3, 3)
			proc.ID = "p"
			confidences := []Confidence{ConfidenceCertain, ConfidenceProbable, ConfidenceUncertain}
			scenarios := []Scenario{
				{ProcessID: "p", TimeSavingsPercent: savings, Confidence: confidences[confidence]},
				{ProcessID: "orphan", TimeSavingsPercent: savings},
			}

			res := ComputeROI([]Process{proc}, scenarios, rate, price)
			for _, v := range []float64{
				res.AverageROI, res.BestCaseROI, res.WorstCaseROI,
				res.AverageAmortization, res.BestCaseAmortization, res.WorstCaseAmortization,
			} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return false
				}
			}
			return price > 0 || (res.AverageROI == 0 && res.BestCaseROI == 0 && res.WorstCaseROI == 0)
		},
		gen.Float64Range(-1000, 100000),
		gen.Float64Range(0, 100),
		gen.Float64Range(1, 200),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}

func TestRecommendationIsTotal(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("every workflow count maps to a known tier", prop.ForAll(
		func(n int) bool {
			switch RecommendPackage(n) {
			case PackageStarter, PackageProfessional, PackageEnterprise:
				return true
			default:
				return false
			}
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}
