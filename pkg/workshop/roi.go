package workshop

import "math"

// worstCaseFactor is the flat haircut applied to best-case savings.
const worstCaseFactor = 0.7

var confidenceMultipliers = map[Confidence]float64{
	ConfidenceCertain:   1.0,
	ConfidenceProbable:  0.85,
	ConfidenceUncertain: 0.7,
}

func ConfidenceMultiplier(c Confidence) float64 {
	if m, ok := confidenceMultipliers[c]; ok {
		return m
	}
	return confidenceMultipliers[ConfidenceProbable]
}

// ROIResult holds yearly figures for the three projection cases.
type ROIResult struct {
	AverageTimeSavings   float64 `json:"averageTimeSavings"`
	BestCaseTimeSavings  float64 `json:"bestCaseTimeSavings"`
	WorstCaseTimeSavings float64 `json:"worstCaseTimeSavings"`

	AverageCostSavings   float64 `json:"averageCostSavings"`
	BestCaseCostSavings  float64 `json:"bestCaseCostSavings"`
	WorstCaseCostSavings float64 `json:"worstCaseCostSavings"`

	AverageROI   float64 `json:"averageROI"`
	BestCaseROI  float64 `json:"bestCaseROI"`
	WorstCaseROI float64 `json:"worstCaseROI"`

	AverageAmortization   float64 `json:"averageAmortization"`
	BestCaseAmortization  float64 `json:"bestCaseAmortization"`
	WorstCaseAmortization float64 `json:"worstCaseAmortization"`

	Investment float64 `json:"investment"`
	HourlyRate float64 `json:"hourlyRate"`
}

// ComputeROI projects yearly savings of the given scenarios. Scenarios whose
// process cannot be resolved contribute nothing; duplicates are summed.
func ComputeROI(processes []Process, scenarios []Scenario, hourlyRate, packagePrice float64) ROIResult {
	var average, best, worst float64

	for _, s := range scenarios {
		p, ok := FindProcess(processes, s.ProcessID)
		if !ok {
			continue
		}

		saved := TimePerYear(p) * s.TimeSavingsPercent / 100

		average += saved * ConfidenceMultiplier(s.Confidence)
		best += saved
		worst += saved * worstCaseFactor
	}

	investment := packagePrice
	if math.IsNaN(investment) {
		investment = 0
	}

	res := ROIResult{
		AverageTimeSavings:   average,
		BestCaseTimeSavings:  best,
		WorstCaseTimeSavings: worst,
		AverageCostSavings:   average * hourlyRate,
		BestCaseCostSavings:  best * hourlyRate,
		WorstCaseCostSavings: worst * hourlyRate,
		Investment:           investment,
		HourlyRate:           hourlyRate,
	}

	res.AverageROI = roiPercent(res.AverageCostSavings, investment)
	res.BestCaseROI = roiPercent(res.BestCaseCostSavings, investment)
	res.WorstCaseROI = roiPercent(res.WorstCaseCostSavings, investment)

	res.AverageAmortization = amortizationMonths(res.AverageCostSavings, investment)
	res.BestCaseAmortization = amortizationMonths(res.BestCaseCostSavings, investment)
	res.WorstCaseAmortization = amortizationMonths(res.WorstCaseCostSavings, investment)

	return res
}

// roiPercent is 0 when there is no investment to divide by.
func roiPercent(savings, investment float64) float64 {
	if investment <= 0 {
		return 0
	}
	return (savings - investment) / investment * 100
}

func amortizationMonths(savings, investment float64) float64 {
	if savings <= 0 {
		return 0
	}
	return investment / (savings / 12)
}

type DepartmentSavings struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DepartmentDistribution sums best-case yearly hours saved per department.
// Departments are returned in order of first appearance.
func DepartmentDistribution(processes []Process, scenarios []Scenario) []DepartmentSavings {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, s := range scenarios {
		p, ok := FindProcess(processes, s.ProcessID)
		if !ok {
			continue
		}
		if _, seen := totals[p.Department]; !seen {
			order = append(order, p.Department)
		}
		totals[p.Department] += TimePerYear(p) * s.TimeSavingsPercent / 100
	}

	out := make([]DepartmentSavings, 0, len(order))
	for _, dept := range order {
		out = append(out, DepartmentSavings{Name: dept, Value: int(math.Round(totals[dept]))})
	}
	return out
}
