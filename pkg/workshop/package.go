package workshop

const (
	PackageStarter      = "starter"
	PackageProfessional = "professional"
	PackageEnterprise   = "enterprise"
)

// Package is a pricing tier offered at the end of the workshop.
type Package struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Workflows   int      `json:"workflows"`
	Executions  int      `json:"executions"`
	Price       float64  `json:"price"`
	CustomAPIs  int      `json:"customApis"`
	Features    []string `json:"features"`
	Recommended bool     `json:"recommended,omitempty"`
}

// DefaultPackages returns a fresh copy of the built-in tiers.
func DefaultPackages() []Package {
	return []Package{
		{
			ID:         PackageStarter,
			Name:       "Starter",
			Workflows:  5,
			Executions: 60000,
			Price:      15000,
			CustomAPIs: 0,
			Features: []string{
				"5 workflows included",
				"60,000 executions/year",
				"Standard integrations",
				"Email support",
				"Documentation & tutorials",
			},
		},
		{
			ID:         PackageProfessional,
			Name:       "Professional",
			Workflows:  10,
			Executions: 180000,
			Price:      36000,
			CustomAPIs: 1,
			Features: []string{
				"10 workflows included",
				"180,000 executions/year",
				"1 custom API integration",
				"Priority support",
				"Extended integrations",
				"Monitoring & analytics",
			},
			Recommended: true,
		},
		{
			ID:         PackageEnterprise,
			Name:       "Enterprise",
			Workflows:  20,
			Executions: 450000,
			Price:      75000,
			CustomAPIs: 3,
			Features: []string{
				"20 workflows included",
				"450,000 executions/year",
				"3 custom API integrations",
				"Dedicated support",
				"White-label option",
				"SLA guarantee",
				"Individual onboarding",
			},
		},
	}
}

// RequiredWorkflows sums the workflows of all scenarios, counting an unset
// value as one.
func RequiredWorkflows(scenarios []Scenario) int {
	total := 0
	for _, s := range scenarios {
		if s.WorkflowsNeeded > 0 {
			total += s.WorkflowsNeeded
		} else {
			total++
		}
	}
	return total
}

// RecommendPackage maps workflow demand to a tier id. It is total: any input,
// including negative ones, yields a tier.
func RecommendPackage(requiredWorkflows int) string {
	if requiredWorkflows <= 5 {
		return PackageStarter
	}
	if requiredWorkflows <= 10 {
		return PackageProfessional
	}
	return PackageEnterprise
}

// Packages returns the custom tiers when set, the defaults otherwise.
func (d Document) Packages() []Package {
	if d.CustomPackages != nil {
		return d.CustomPackages
	}
	return DefaultPackages()
}

// PricingPackage is the tier the ROI is computed against: the selected one, or
// the second tier when nothing (or something unknown) is selected.
func (d Document) PricingPackage() (Package, bool) {
	packages := d.Packages()
	if d.SelectedPackage != nil {
		for _, p := range packages {
			if p.ID == *d.SelectedPackage {
				return p, true
			}
		}
	}
	switch {
	case len(packages) > 1:
		return packages[1], true
	case len(packages) == 1:
		return packages[0], true
	default:
		return Package{}, false
	}
}
