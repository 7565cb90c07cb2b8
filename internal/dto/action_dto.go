package dto

import (
	"encoding/json"

	"workshop-wizard-be/pkg/workshop"
)

// ActionRequest is one reducer action as sent by the wizard UI.
type ActionRequest struct {
	Type    string          `json:"type" validate:"required"`
	Payload json.RawMessage `json:"payload"`
}

// Payloads use the document's camelCase field names.

type SetStepPayload struct {
	Step int `json:"step" validate:"min=1,max=8"`
}

type ParticipantPayload struct {
	Name string `json:"name" validate:"required,min=2"`
	Role string `json:"role" validate:"required,min=2"`
}

type CustomerPatchPayload struct {
	Name         *string               `json:"name" validate:"omitempty,min=2"`
	Industry     *string               `json:"industry" validate:"omitempty,min=1"`
	Employees    *int                  `json:"employees" validate:"omitempty,min=1"`
	Date         *string               `json:"date" validate:"omitempty,min=1"`
	Participants *[]ParticipantPayload `json:"participants" validate:"omitempty,min=1,dive"`
}

type ToolPayload struct {
	Name       string             `json:"name" validate:"required,min=2"`
	Category   string             `json:"category" validate:"required"`
	Frequency  workshop.Frequency `json:"frequency" validate:"required,oneof=Daily Weekly Monthly"`
	HasAPI     bool               `json:"hasAPI"`
	Department string             `json:"department"`
}

type ToolPatchPayload struct {
	Id         string              `json:"id" validate:"required"`
	Name       *string             `json:"name" validate:"omitempty,min=2"`
	Category   *string             `json:"category" validate:"omitempty,min=1"`
	Frequency  *workshop.Frequency `json:"frequency" validate:"omitempty,oneof=Daily Weekly Monthly"`
	HasAPI     *bool               `json:"hasAPI"`
	Department *string             `json:"department"`
}

type ProcessPayload struct {
	Name                string             `json:"name" validate:"required,min=10"`
	Department          string             `json:"department" validate:"required"`
	Description         string             `json:"description" validate:"required,min=20"`
	Tools               []string           `json:"tools" validate:"min=1"`
	Frequency           workshop.Frequency `json:"frequency" validate:"required,oneof=Daily Weekly Monthly"`
	TimePerExecution    float64            `json:"timePerExecution" validate:"gte=1"`
	ExecutionsPerPeriod float64            `json:"executionsPerPeriod" validate:"gte=1"`
	ErrorProneness      int                `json:"errorProneness" validate:"min=1,max=3"`
	Automatable         int                `json:"automatable" validate:"min=1,max=3"`
}

type ProcessPatchPayload struct {
	Id                  string              `json:"id" validate:"required"`
	Name                *string             `json:"name" validate:"omitempty,min=10"`
	Department          *string             `json:"department" validate:"omitempty,min=1"`
	Description         *string             `json:"description" validate:"omitempty,min=20"`
	Tools               *[]string           `json:"tools" validate:"omitempty,min=1"`
	Frequency           *workshop.Frequency `json:"frequency" validate:"omitempty,oneof=Daily Weekly Monthly"`
	TimePerExecution    *float64            `json:"timePerExecution" validate:"omitempty,gte=1"`
	ExecutionsPerPeriod *float64            `json:"executionsPerPeriod" validate:"omitempty,gte=1"`
	ErrorProneness      *int                `json:"errorProneness" validate:"omitempty,min=1,max=3"`
	Automatable         *int                `json:"automatable" validate:"omitempty,min=1,max=3"`
}

type ScenarioPayload struct {
	ProcessId          string              `json:"processId"`
	SollDescription    string              `json:"sollDescription" validate:"required,min=20"`
	TimeSavingsPercent float64             `json:"timeSavingsPercent" validate:"gte=0,lte=100"`
	Complexity         workshop.Complexity `json:"complexity" validate:"required,oneof=low medium high"`
	WorkflowsNeeded    int                 `json:"workflowsNeeded" validate:"min=1"`
	Confidence         workshop.Confidence `json:"confidence" validate:"required,oneof=certain probable uncertain"`
}

type ScenarioPatchPayload struct {
	Id                 string               `json:"id" validate:"required"`
	ProcessId          *string              `json:"processId"`
	SollDescription    *string              `json:"sollDescription" validate:"omitempty,min=20"`
	TimeSavingsPercent *float64             `json:"timeSavingsPercent" validate:"omitempty,gte=0,lte=100"`
	Complexity         *workshop.Complexity `json:"complexity" validate:"omitempty,oneof=low medium high"`
	WorkflowsNeeded    *int                 `json:"workflowsNeeded" validate:"omitempty,min=1"`
	Confidence         *workshop.Confidence `json:"confidence" validate:"omitempty,oneof=certain probable uncertain"`
}

type ActionItemPayload struct {
	Task    string `json:"task" validate:"required"`
	Owner   string `json:"owner"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}

type ActionItemPatchPayload struct {
	Id      string  `json:"id" validate:"required"`
	Task    *string `json:"task" validate:"omitempty,min=1"`
	Owner   *string `json:"owner"`
	DueDate *string `json:"dueDate"`
	Done    *bool   `json:"done"`
}

type RemovePayload struct {
	Id string `json:"id" validate:"required"`
}

type SelectedPackagePayload struct {
	PackageId *string `json:"packageId"`
}

type HourlyRatePayload struct {
	Rate float64 `json:"rate" validate:"gte=0"`
}

type NotesPayload struct {
	Notes string `json:"notes"`
}

type CustomPackagesPayload struct {
	Packages []workshop.Package `json:"packages" validate:"dive"`
}

// LoadDataPayload carries an envelope or a bare document.
type LoadDataPayload struct {
	Data json.RawMessage `json:"data"`
}

// DocumentRules checks a document that did not come from the reducer (load,
// import, create from data). Looser than ProcessPayload, since drafts may lack
// names and descriptions, but strict on everything the score is derived from.
type DocumentRules struct {
	Processes []ProcessRules `validate:"dive"`
}

type ProcessRules struct {
	Frequency           workshop.Frequency `validate:"oneof=Daily Weekly Monthly"`
	TimePerExecution    float64            `validate:"gte=0"`
	ExecutionsPerPeriod float64            `validate:"gte=0"`
	ErrorProneness      int                `validate:"min=1,max=3"`
	Automatable         int                `validate:"min=1,max=3"`
}
