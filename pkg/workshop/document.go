package workshop

import (
	"encoding/json"
	"time"
)

// Wizard bounds
const (
	FirstStep = 1
	LastStep  = 8

	DefaultHourlyRate = 45.0
	MaxHistory        = 50
)

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// Documents exported by the first version of the wizard carry German labels.
var legacyFrequencies = map[string]Frequency{
	"Täglich":     FrequencyDaily,
	"Wöchentlich": FrequencyWeekly,
	"Monatlich":   FrequencyMonthly,
}

func (f *Frequency) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if legacy, ok := legacyFrequencies[raw]; ok {
		*f = legacy
		return nil
	}
	*f = Frequency(raw)
	return nil
}

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

type Confidence string

const (
	ConfidenceCertain   Confidence = "certain"
	ConfidenceProbable  Confidence = "probable"
	ConfidenceUncertain Confidence = "uncertain"
)

type Participant struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Customer struct {
	Name         string        `json:"name"`
	Industry     string        `json:"industry"`
	Employees    int           `json:"employees"`
	Date         string        `json:"date"`
	Participants []Participant `json:"participants"`
}

type Tool struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Frequency  Frequency `json:"frequency"`
	HasAPI     bool      `json:"hasAPI"`
	Department string    `json:"department,omitempty"`
}

// Process is a manual activity captured in step 3. Tools holds tool names and
// is never checked against Document.Tools.
type Process struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Department          string    `json:"department"`
	Description         string    `json:"description"`
	Tools               []string  `json:"tools"`
	Frequency           Frequency `json:"frequency"`
	TimePerExecution    float64   `json:"timePerExecution"`
	ExecutionsPerPeriod float64   `json:"executionsPerPeriod"`
	ErrorProneness      int       `json:"errorProneness"`
	Automatable         int       `json:"automatable"`
	Score               int       `json:"score"`
}

// Scenario proposes the automation of one process. ProcessID is a weak
// reference; it may outlive the process it points to.
type Scenario struct {
	ID                 string     `json:"id"`
	ProcessID          string     `json:"processId"`
	SollDescription    string     `json:"sollDescription"`
	TimeSavingsPercent float64    `json:"timeSavingsPercent"`
	Complexity         Complexity `json:"complexity"`
	WorkflowsNeeded    int        `json:"workflowsNeeded"`
	Confidence         Confidence `json:"confidence"`
}

type ActionItem struct {
	ID      string `json:"id"`
	Task    string `json:"task"`
	Owner   string `json:"owner,omitempty"`
	DueDate string `json:"dueDate,omitempty"`
	Done    bool   `json:"done"`
}

// Document is one wizard session without its undo bookkeeping.
type Document struct {
	CurrentStep         int          `json:"currentStep"`
	Customer            Customer     `json:"customer"`
	Tools               []Tool       `json:"tools"`
	Processes           []Process    `json:"processes"`
	AutomationScenarios []Scenario   `json:"automationScenarios"`
	SelectedPackage     *string      `json:"selectedPackage"`
	CustomPackages      []Package    `json:"customPackages"`
	HourlyRate          float64      `json:"hourlyRate"`
	Notes               string       `json:"notes"`
	ActionItems         []ActionItem `json:"actionItems"`
}

// State is what the reducer operates on. History entries are plain Documents,
// so a snapshot can never nest another history.
type State struct {
	Document
	History      []Document `json:"history"`
	HistoryIndex int        `json:"historyIndex"`
}

func (s State) CanUndo() bool {
	return s.HistoryIndex > 0 && s.HistoryIndex <= len(s.History)
}

func (s State) CanRedo() bool {
	return s.HistoryIndex >= 0 && s.HistoryIndex < len(s.History)-1
}

// InitialDocument returns the canonical empty session dated on the given day.
func InitialDocument(now time.Time) Document {
	return Document{
		CurrentStep: FirstStep,
		Customer: Customer{
			Participants: []Participant{},
			Date:         now.Format("2006-01-02"),
		},
		Tools:               []Tool{},
		Processes:           []Process{},
		AutomationScenarios: []Scenario{},
		HourlyRate:          DefaultHourlyRate,
		ActionItems:         []ActionItem{},
	}
}

// NewState wraps a document in a fresh single-entry history.
func NewState(doc Document) State {
	return State{
		Document:     doc.Clone(),
		History:      []Document{doc.Clone()},
		HistoryIndex: 0,
	}
}

// Normalize brings a document from outside the reducer in line with what the
// reducer itself produces: the step is within FirstStep..LastStep (FirstStep
// otherwise) and every cached process score is recomputed.
func Normalize(doc Document) Document {
	out := doc.Clone()
	if out.CurrentStep < FirstStep || out.CurrentStep > LastStep {
		out.CurrentStep = FirstStep
	}
	for i, p := range out.Processes {
		out.Processes[i] = withScore(p)
	}
	return out
}

// Clone returns a deep copy that shares no slices or pointers with d.
func (d Document) Clone() Document {
	out := d

	out.Customer.Participants = cloneSlice(d.Customer.Participants)
	out.Tools = cloneSlice(d.Tools)
	out.AutomationScenarios = cloneSlice(d.AutomationScenarios)
	out.ActionItems = cloneSlice(d.ActionItems)

	if d.Processes != nil {
		out.Processes = make([]Process, len(d.Processes))
		for i, p := range d.Processes {
			out.Processes[i] = p.clone()
		}
	}

	if d.CustomPackages != nil {
		out.CustomPackages = make([]Package, len(d.CustomPackages))
		for i, p := range d.CustomPackages {
			p.Features = cloneSlice(p.Features)
			out.CustomPackages[i] = p
		}
	}

	if d.SelectedPackage != nil {
		id := *d.SelectedPackage
		out.SelectedPackage = &id
	}

	return out
}

func (p Process) clone() Process {
	p.Tools = cloneSlice(p.Tools)
	return p
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// FindProcess resolves a weak process reference.
func FindProcess(processes []Process, id string) (Process, bool) {
	for _, p := range processes {
		if p.ID == id {
			return p, true
		}
	}
	return Process{}, false
}
