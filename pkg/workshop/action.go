package workshop

type ActionKind string

const (
	KindSetStep                  ActionKind = "SET_STEP"
	KindUpdateCustomer           ActionKind = "UPDATE_CUSTOMER"
	KindAddTool                  ActionKind = "ADD_TOOL"
	KindUpdateTool               ActionKind = "UPDATE_TOOL"
	KindRemoveTool               ActionKind = "REMOVE_TOOL"
	KindAddProcess               ActionKind = "ADD_PROCESS"
	KindUpdateProcess            ActionKind = "UPDATE_PROCESS"
	KindRemoveProcess            ActionKind = "REMOVE_PROCESS"
	KindAddAutomationScenario    ActionKind = "ADD_AUTOMATION_SCENARIO"
	KindUpdateAutomationScenario ActionKind = "UPDATE_AUTOMATION_SCENARIO"
	KindRemoveAutomationScenario ActionKind = "REMOVE_AUTOMATION_SCENARIO"
	KindSetSelectedPackage       ActionKind = "SET_SELECTED_PACKAGE"
	KindSetHourlyRate            ActionKind = "SET_HOURLY_RATE"
	KindSetNotes                 ActionKind = "SET_NOTES"
	KindSetCustomPackages        ActionKind = "SET_CUSTOM_PACKAGES"
	KindAddActionItem            ActionKind = "ADD_ACTION_ITEM"
	KindUpdateActionItem         ActionKind = "UPDATE_ACTION_ITEM"
	KindRemoveActionItem         ActionKind = "REMOVE_ACTION_ITEM"
	KindLoadData                 ActionKind = "LOAD_DATA"
	KindResetData                ActionKind = "RESET_DATA"
	KindUndo                     ActionKind = "UNDO"
	KindRedo                     ActionKind = "REDO"
)

// Action is the closed set of transitions the reducer understands. Only types
// declared in this package can implement it.
type Action interface {
	Kind() ActionKind
	action()
}

type (
	SetStep struct{ Step int }

	UpdateCustomer struct{ Patch CustomerPatch }

	AddTool    struct{ Tool Tool }
	UpdateTool struct {
		ID    string
		Patch ToolPatch
	}
	RemoveTool struct{ ID string }

	AddProcess    struct{ Process Process }
	UpdateProcess struct {
		ID    string
		Patch ProcessPatch
	}
	RemoveProcess struct{ ID string }

	AddAutomationScenario    struct{ Scenario Scenario }
	UpdateAutomationScenario struct {
		ID    string
		Patch ScenarioPatch
	}
	RemoveAutomationScenario struct{ ID string }

	SetSelectedPackage struct{ PackageID *string }
	SetHourlyRate      struct{ Rate float64 }
	SetNotes           struct{ Notes string }
	SetCustomPackages  struct{ Packages []Package }

	AddActionItem    struct{ Item ActionItem }
	UpdateActionItem struct {
		ID    string
		Patch ActionItemPatch
	}
	RemoveActionItem struct{ ID string }

	LoadData  struct{ Document Document }
	ResetData struct{}
	Undo      struct{}
	Redo      struct{}
)

func (SetStep) Kind() ActionKind                  { return KindSetStep }
func (UpdateCustomer) Kind() ActionKind           { return KindUpdateCustomer }
func (AddTool) Kind() ActionKind                  { return KindAddTool }
func (UpdateTool) Kind() ActionKind               { return KindUpdateTool }
func (RemoveTool) Kind() ActionKind               { return KindRemoveTool }
func (AddProcess) Kind() ActionKind               { return KindAddProcess }
func (UpdateProcess) Kind() ActionKind            { return KindUpdateProcess }
func (RemoveProcess) Kind() ActionKind            { return KindRemoveProcess }
func (AddAutomationScenario) Kind() ActionKind    { return KindAddAutomationScenario }
func (UpdateAutomationScenario) Kind() ActionKind { return KindUpdateAutomationScenario }
func (RemoveAutomationScenario) Kind() ActionKind { return KindRemoveAutomationScenario }
func (SetSelectedPackage) Kind() ActionKind       { return KindSetSelectedPackage }
func (SetHourlyRate) Kind() ActionKind            { return KindSetHourlyRate }
func (SetNotes) Kind() ActionKind                 { return KindSetNotes }
func (SetCustomPackages) Kind() ActionKind        { return KindSetCustomPackages }
func (AddActionItem) Kind() ActionKind            { return KindAddActionItem }
func (UpdateActionItem) Kind() ActionKind         { return KindUpdateActionItem }
func (RemoveActionItem) Kind() ActionKind         { return KindRemoveActionItem }
func (LoadData) Kind() ActionKind                 { return KindLoadData }
func (ResetData) Kind() ActionKind                { return KindResetData }
func (Undo) Kind() ActionKind                     { return KindUndo }
func (Redo) Kind() ActionKind                     { return KindRedo }

func (SetStep) action()                  {}
func (UpdateCustomer) action()           {}
func (AddTool) action()                  {}
func (UpdateTool) action()               {}
func (RemoveTool) action()               {}
func (AddProcess) action()               {}
func (UpdateProcess) action()            {}
func (RemoveProcess) action()            {}
func (AddAutomationScenario) action()    {}
func (UpdateAutomationScenario) action() {}
func (RemoveAutomationScenario) action() {}
func (SetSelectedPackage) action()       {}
func (SetHourlyRate) action()            {}
func (SetNotes) action()                 {}
func (SetCustomPackages) action()        {}
func (AddActionItem) action()            {}
func (UpdateActionItem) action()         {}
func (RemoveActionItem) action()         {}
func (LoadData) action()                 {}
func (ResetData) action()                {}
func (Undo) action()                     {}
func (Redo) action()                     {}

// Patches: a nil field leaves the target untouched.

type CustomerPatch struct {
	Name         *string
	Industry     *string
	Employees    *int
	Date         *string
	Participants *[]Participant
}

func (p CustomerPatch) apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Industry != nil {
		c.Industry = *p.Industry
	}
	if p.Employees != nil {
		c.Employees = *p.Employees
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
	if p.Participants != nil {
		c.Participants = cloneSlice(*p.Participants)
	}
	return c
}

type ToolPatch struct {
	Name       *string
	Category   *string
	Frequency  *Frequency
	HasAPI     *bool
	Department *string
}

func (p ToolPatch) apply(t Tool) Tool {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Frequency != nil {
		t.Frequency = *p.Frequency
	}
	if p.HasAPI != nil {
		t.HasAPI = *p.HasAPI
	}
	if p.Department != nil {
		t.Department = *p.Department
	}
	return t
}

type ProcessPatch struct {
	Name                *string
	Department          *string
	Description         *string
	Tools               *[]string
	Frequency           *Frequency
	TimePerExecution    *float64
	ExecutionsPerPeriod *float64
	ErrorProneness      *int
	Automatable         *int
}

func (p ProcessPatch) apply(proc Process) Process {
	if p.Name != nil {
		proc.Name = *p.Name
	}
	if p.Department != nil {
		proc.Department = *p.Department
	}
	if p.Description != nil {
		proc.Description = *p.Description
	}
	if p.Tools != nil {
		proc.Tools = cloneSlice(*p.Tools)
	}
	if p.Frequency != nil {
		proc.Frequency = *p.Frequency
	}
	if p.TimePerExecution != nil {
		proc.TimePerExecution = *p.TimePerExecution
	}
	if p.ExecutionsPerPeriod != nil {
		proc.ExecutionsPerPeriod = *p.ExecutionsPerPeriod
	}
	if p.ErrorProneness != nil {
		proc.ErrorProneness = *p.ErrorProneness
	}
	if p.Automatable != nil {
		proc.Automatable = *p.Automatable
	}
	return proc
}

type ScenarioPatch struct {
	ProcessID          *string
	SollDescription    *string
	TimeSavingsPercent *float64
	Complexity         *Complexity
	WorkflowsNeeded    *int
	Confidence         *Confidence
}

func (p ScenarioPatch) apply(s Scenario) Scenario {
	if p.ProcessID != nil {
		s.ProcessID = *p.ProcessID
	}
	if p.SollDescription != nil {
		s.SollDescription = *p.SollDescription
	}
	if p.TimeSavingsPercent != nil {
		s.TimeSavingsPercent = *p.TimeSavingsPercent
	}
	if p.Complexity != nil {
		s.Complexity = *p.Complexity
	}
	if p.WorkflowsNeeded != nil {
		s.WorkflowsNeeded = *p.WorkflowsNeeded
	}
	if p.Confidence != nil {
		s.Confidence = *p.Confidence
	}
	return s
}

type ActionItemPatch struct {
	Task    *string
	Owner   *string
	DueDate *string
	Done    *bool
}

func (p ActionItemPatch) apply(a ActionItem) ActionItem {
	if p.Task != nil {
		a.Task = *p.Task
	}
	if p.Owner != nil {
		a.Owner = *p.Owner
	}
	if p.DueDate != nil {
		a.DueDate = *p.DueDate
	}
	if p.Done != nil {
		a.Done = *p.Done
	}
	return a
}
