package workshop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeROI_WorkedExample(t *testing.T) {
	proc := dailyHeavyProcess()
	proc.ID = "p1"
	scenarios := []Scenario{{ID: "s1", ProcessID: "p1", TimeSavingsPercent: 80, Confidence: ConfidenceCertain, WorkflowsNeeded: 1}}

	res := ComputeROI([]Process{proc}, scenarios, 45, 36000)

	assert.InDelta(t, 1000.0, res.BestCaseTimeSavings, 1e-9)
	assert.InDelta(t, 1000.0, res.AverageTimeSavings, 1e-9)
	assert.InDelta(t, 700.0, res.WorstCaseTimeSavings, 1e-9)

	assert.InDelta(t, 45000.0, res.BestCaseCostSavings, 1e-9)
	assert.InDelta(t, 31500.0, res.WorstCaseCostSavings, 1e-9)

	assert.InDelta(t, 25.0, res.BestCaseROI, 1e-9)
	assert.InDelta(t, 9.6, res.BestCaseAmortization, 1e-9)

	assert.Equal(t, 36000.0, res.Investment)
	assert.Equal(t, 45.0, res.HourlyRate)
}

func TestComputeROI_ConfidenceMultiplier(t *testing.T) {
	proc := dailyHeavyProcess()
	proc.ID = "p1"

	tests := []struct {
		confidence Confidence
		want       float64
	}{
		{ConfidenceCertain, 1000},
		{ConfidenceProbable, 850},
		{ConfidenceUncertain, 700},
		{Confidence("unknown"), 850},
	}

	for _, tt := range tests {
		t.Run(string(tt.confidence), func(t *testing.T) {
			scenarios := []Scenario{{ProcessID: "p1", TimeSavingsPercent: 80, Confidence: tt.confidence}}
			res := ComputeROI([]Process{proc}, scenarios, 45, 36000)
			assert.InDelta(t, tt.want, res.AverageTimeSavings, 1e-9)
		})
	}
}

func TestComputeROI_ZeroPrice(t *testing.T) {
	proc := dailyHeavyProcess()
	proc.ID = "p1"
	scenarios := []Scenario{{ProcessID: "p1", TimeSavingsPercent: 50, Confidence: ConfidenceCertain}}

	res := ComputeROI([]Process{proc}, scenarios, 45, 0)

	assert.Zero(t, res.AverageROI)
	assert.Zero(t, res.BestCaseROI)
	assert.Zero(t, res.WorstCaseROI)
	assert.Zero(t, res.BestCaseAmortization)
	assert.False(t, math.IsNaN(res.AverageROI))
	assert.False(t, math.IsInf(res.AverageROI, 0))
}

func TestComputeROI_NegativePriceIsEchoed(t *testing.T) {
	res := ComputeROI(nil, nil, 45, -100)
	assert.Equal(t, -100.0, res.Investment)
	assert.Zero(t, res.AverageROI)
	assert.Zero(t, res.AverageAmortization)

	proc := dailyHeavyProcess()
	proc.ID = "p1"
	scenarios := []Scenario{{ProcessID: "p1", TimeSavingsPercent: 50, Confidence: ConfidenceCertain}}

	res = ComputeROI([]Process{proc}, scenarios, 45, -100)
	assert.Equal(t, -100.0, res.Investment)
	assert.Zero(t, res.BestCaseROI)
	assert.InDelta(t, -100/(res.BestCaseCostSavings/12), res.BestCaseAmortization, 1e-9)

	res = ComputeROI(nil, nil, 45, math.NaN())
	assert.Zero(t, res.Investment)
}

func TestComputeROI_NoSavings(t *testing.T) {
	res := ComputeROI(nil, nil, 45, 36000)

	assert.Zero(t, res.BestCaseTimeSavings)
	assert.Zero(t, res.AverageAmortization)
	assert.InDelta(t, -100.0, res.AverageROI, 1e-9)
}

func TestComputeROI_OrphanScenarioIsSkipped(t *testing.T) {
	proc := dailyHeavyProcess()
	proc.ID = "p1"
	scenarios := []Scenario{
		{ProcessID: "p1", TimeSavingsPercent: 80, Confidence: ConfidenceCertain},
		{ProcessID: "deleted", TimeSavingsPercent: 100, Confidence: ConfidenceCertain},
	}

	res := ComputeROI([]Process{proc}, scenarios, 45, 36000)

	assert.InDelta(t, 1000.0, res.BestCaseTimeSavings, 1e-9)
}

func TestComputeROI_DuplicateScenariosAreSummed(t *testing.T) {
	proc := dailyHeavyProcess()
	proc.ID = "p1"
	scenarios := []Scenario{
		{ProcessID: "p1", TimeSavingsPercent: 40, Confidence: ConfidenceCertain},
		{ProcessID: "p1", TimeSavingsPercent: 40, Confidence: ConfidenceCertain},
	}

	res := ComputeROI([]Process{proc}, scenarios, 45, 36000)

	assert.InDelta(t, 1000.0, res.BestCaseTimeSavings, 1e-9)
}

func TestDepartmentDistribution(t *testing.T) {
	processes := []Process{
		{ID: "p1", Department: "Sales", Frequency: FrequencyDaily, TimePerExecution: 30, ExecutionsPerPeriod: 10},
		{ID: "p2", Department: "Finance", Frequency: FrequencyWeekly, TimePerExecution: 60, ExecutionsPerPeriod: 2},
		{ID: "p3", Department: "Sales", Frequency: FrequencyWeekly, TimePerExecution: 60, ExecutionsPerPeriod: 1},
	}
	scenarios := []Scenario{
		{ProcessID: "p2", TimeSavingsPercent: 50},
		{ProcessID: "p1", TimeSavingsPercent: 80},
		{ProcessID: "p3", TimeSavingsPercent: 100},
		{ProcessID: "missing", TimeSavingsPercent: 100},
	}

	got := DepartmentDistribution(processes, scenarios)

	assert.Equal(t, []DepartmentSavings{
		{Name: "Finance", Value: 50},
		{Name: "Sales", Value: 1050},
	}, got)
}
