package workshop

const topProcessCount = 5

type RankedProcess struct {
	Process
	Rank        int        `json:"rank"`
	Badge       ScoreBadge `json:"badge"`
	TimePerWeek float64    `json:"timePerWeek"`
	TimePerYear float64    `json:"timePerYear"`
}

// Analysis is everything steps 5 to 8 display, derived from one document.
type Analysis struct {
	RankedProcesses        []RankedProcess     `json:"rankedProcesses"`
	TopProcesses           []RankedProcess     `json:"topProcesses"`
	RequiredWorkflows      int                 `json:"requiredWorkflows"`
	RecommendedPackage     string              `json:"recommendedPackage"`
	PricingPackage         *Package            `json:"pricingPackage"`
	ROI                    ROIResult           `json:"roi"`
	DepartmentDistribution []DepartmentSavings `json:"departmentDistribution"`
}

func Analyze(doc Document) Analysis {
	sorted := SortByScore(doc.Processes)
	ranked := make([]RankedProcess, len(sorted))
	for i, p := range sorted {
		score := effectiveScore(p)
		p.Score = score
		ranked[i] = RankedProcess{
			Process:     p,
			Rank:        i + 1,
			Badge:       BadgeFor(score),
			TimePerWeek: TimePerWeek(p),
			TimePerYear: TimePerYear(p),
		}
	}

	top := ranked
	if len(top) > topProcessCount {
		top = top[:topProcessCount]
	}

	workflows := RequiredWorkflows(doc.AutomationScenarios)

	a := Analysis{
		RankedProcesses:        ranked,
		TopProcesses:           top,
		RequiredWorkflows:      workflows,
		RecommendedPackage:     RecommendPackage(workflows),
		DepartmentDistribution: DepartmentDistribution(doc.Processes, doc.AutomationScenarios),
	}

	var price float64
	if pkg, ok := doc.PricingPackage(); ok {
		a.PricingPackage = &pkg
		price = pkg.Price
	}
	a.ROI = ComputeROI(doc.Processes, doc.AutomationScenarios, doc.HourlyRate, price)

	return a
}
