package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/pkg/serverutils"
	"workshop-wizard-be/pkg/workshop"
)

// ActionMapper turns a validated ActionRequest into a reducer action.
// Anything it rejects is reported as a ValidationError, so invalid input
// never reaches the reducer.
type ActionMapper struct{}

func NewActionMapper() *ActionMapper {
	return &ActionMapper{}
}

func invalid(field, message string) error {
	return &serverutils.ValidationError{Fields: []serverutils.FieldError{{Field: field, Message: message}}}
}

// decodePayload unmarshals and validates the payload into out.
func decodePayload(raw json.RawMessage, out interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return invalid("payload", "is required")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return invalid("payload", fmt.Sprintf("malformed: %v", err))
	}
	return serverutils.ValidateRequest(out)
}

func (m *ActionMapper) ToAction(req dto.ActionRequest) (workshop.Action, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	switch workshop.ActionKind(req.Type) {
	case workshop.KindSetStep:
		var p dto.SetStepPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.SetStep{Step: p.Step}, nil

	case workshop.KindUpdateCustomer:
		var p dto.CustomerPatchPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.UpdateCustomer{Patch: customerPatch(p)}, nil

	case workshop.KindAddTool:
		var p dto.ToolPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.AddTool{Tool: workshop.Tool{
			Name:       p.Name,
			Category:   p.Category,
			Frequency:  p.Frequency,
			HasAPI:     p.HasAPI,
			Department: p.Department,
		}}, nil

	case workshop.KindUpdateTool:
		var p dto.ToolPatchPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.UpdateTool{ID: p.Id, Patch: workshop.ToolPatch{
			Name:       p.Name,
			Category:   p.Category,
			Frequency:  p.Frequency,
			HasAPI:     p.HasAPI,
			Department: p.Department,
		}}, nil

	case workshop.KindRemoveTool:
		var p dto.RemovePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.RemoveTool{ID: p.Id}, nil

	case workshop.KindAddProcess:
		var p dto.ProcessPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.AddProcess{Process: workshop.Process{
			Name:                p.Name,
			Department:          p.Department,
			Description:         p.Description,
			Tools:               p.Tools,
			Frequency:           p.Frequency,
			TimePerExecution:    p.TimePerExecution,
			ExecutionsPerPeriod: p.ExecutionsPerPeriod,
			ErrorProneness:      p.ErrorProneness,
			Automatable:         p.Automatable,
		}}, nil

	case workshop.KindUpdateProcess:
		var p dto.ProcessPatchPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.UpdateProcess{ID: p.Id, Patch: workshop.ProcessPatch{
			Name:                p.Name,
			Department:          p.Department,
			Description:         p.Description,
			Tools:               p.Tools,
			Frequency:           p.Frequency,
			TimePerExecution:    p.TimePerExecution,
			ExecutionsPerPeriod: p.ExecutionsPerPeriod,
			ErrorProneness:      p.ErrorProneness,
			Automatable:         p.Automatable,
		}}, nil

	case workshop.KindRemoveProcess:
		var p dto.RemovePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.RemoveProcess{ID: p.Id}, nil

	case workshop.KindAddAutomationScenario:
		var p dto.ScenarioPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.AddAutomationScenario{Scenario: workshop.Scenario{
			ProcessID:          p.ProcessId,
			SollDescription:    p.SollDescription,
			TimeSavingsPercent: p.TimeSavingsPercent,
			Complexity:         p.Complexity,
			WorkflowsNeeded:    p.WorkflowsNeeded,
			Confidence:         p.Confidence,
		}}, nil

	case workshop.KindUpdateAutomationScenario:
		var p dto.ScenarioPatchPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.UpdateAutomationScenario{ID: p.Id, Patch: workshop.ScenarioPatch{
			ProcessID:          p.ProcessId,
			SollDescription:    p.SollDescription,
			TimeSavingsPercent: p.TimeSavingsPercent,
			Complexity:         p.Complexity,
			WorkflowsNeeded:    p.WorkflowsNeeded,
			Confidence:         p.Confidence,
		}}, nil

	case workshop.KindRemoveAutomationScenario:
		var p dto.RemovePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.RemoveAutomationScenario{ID: p.Id}, nil

	case workshop.KindSetSelectedPackage:
		var p dto.SelectedPackagePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.SetSelectedPackage{PackageID: p.PackageId}, nil

	case workshop.KindSetHourlyRate:
		var p dto.HourlyRatePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.SetHourlyRate{Rate: p.Rate}, nil

	case workshop.KindSetNotes:
		var p dto.NotesPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.SetNotes{Notes: p.Notes}, nil

	case workshop.KindSetCustomPackages:
		var p dto.CustomPackagesPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.SetCustomPackages{Packages: p.Packages}, nil

	case workshop.KindAddActionItem:
		var p dto.ActionItemPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.AddActionItem{Item: workshop.ActionItem{
			Task:    p.Task,
			Owner:   p.Owner,
			DueDate: p.DueDate,
			Done:    p.Done,
		}}, nil

	case workshop.KindUpdateActionItem:
		var p dto.ActionItemPatchPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.UpdateActionItem{ID: p.Id, Patch: workshop.ActionItemPatch{
			Task:    p.Task,
			Owner:   p.Owner,
			DueDate: p.DueDate,
			Done:    p.Done,
		}}, nil

	case workshop.KindRemoveActionItem:
		var p dto.RemovePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return workshop.RemoveActionItem{ID: p.Id}, nil

	case workshop.KindLoadData:
		var p dto.LoadDataPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		doc, err := DecodeDocument(p.Data)
		var verr *serverutils.ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		if err != nil {
			return nil, invalid("payload.data", err.Error())
		}
		return workshop.LoadData{Document: doc}, nil

	case workshop.KindResetData:
		return workshop.ResetData{}, nil
	case workshop.KindUndo:
		return workshop.Undo{}, nil
	case workshop.KindRedo:
		return workshop.Redo{}, nil
	}

	return nil, invalid("type", fmt.Sprintf("unknown action type %q", req.Type))
}

// DecodeDocument accepts a versioned envelope or a bare document. Processes
// failing DocumentRules are reported as a ValidationError; everything else is
// normalized.
func DecodeDocument(raw json.RawMessage) (workshop.Document, error) {
	env, err := workshop.DecodeEnvelope(raw)
	if err != nil {
		return workshop.Document{}, err
	}
	doc, _, err := workshop.Unwrap(env)
	if err != nil {
		return workshop.Document{}, err
	}

	rules := dto.DocumentRules{Processes: make([]dto.ProcessRules, len(doc.Processes))}
	for i, p := range doc.Processes {
		rules.Processes[i] = dto.ProcessRules{
			Frequency:           p.Frequency,
			TimePerExecution:    p.TimePerExecution,
			ExecutionsPerPeriod: p.ExecutionsPerPeriod,
			ErrorProneness:      p.ErrorProneness,
			Automatable:         p.Automatable,
		}
	}
	if err := serverutils.ValidateRequest(rules); err != nil {
		return workshop.Document{}, err
	}

	return workshop.Normalize(doc), nil
}

func customerPatch(p dto.CustomerPatchPayload) workshop.CustomerPatch {
	patch := workshop.CustomerPatch{
		Name:      p.Name,
		Industry:  p.Industry,
		Employees: p.Employees,
		Date:      p.Date,
	}
	if p.Participants != nil {
		participants := make([]workshop.Participant, len(*p.Participants))
		for i, pp := range *p.Participants {
			participants[i] = workshop.Participant{Name: pp.Name, Role: pp.Role}
		}
		patch.Participants = &participants
	}
	return patch
}
