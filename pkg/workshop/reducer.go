package workshop

import (
	"time"

	"github.com/google/uuid"
)

// Reducer applies actions to a State. It holds no session data; the id
// generator and clock are its only dependencies.
type Reducer struct {
	newID func() string
	now   func() time.Time
}

type Option func(*Reducer)

// WithIDGenerator replaces the element id generator. Ids only need to be
// unique within one session.
func WithIDGenerator(fn func() string) Option {
	return func(r *Reducer) { r.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(r *Reducer) { r.now = fn }
}

func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		newID: timeOrderedID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultReducer = NewReducer()

// Reduce applies a with the default id generator and wall clock.
func Reduce(s State, a Action) State {
	return defaultReducer.Reduce(s, a)
}

func timeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RecordsHistory reports whether a successful transition of this kind is
// appended to the undo history.
func RecordsHistory(a Action) bool {
	switch a.(type) {
	case AddTool, UpdateTool, RemoveTool,
		AddProcess, UpdateProcess, RemoveProcess,
		AddAutomationScenario, UpdateAutomationScenario, RemoveAutomationScenario:
		return true
	default:
		return false
	}
}

// Reduce returns the state that follows s after a. The input state is never
// modified and every action on every state yields a defined result.
func (r *Reducer) Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetStep:
		next := s.cloneState()
		next.CurrentStep = act.Step
		return next

	case UpdateCustomer:
		next := s.cloneState()
		next.Customer = act.Patch.apply(next.Customer)
		return next

	case AddTool:
		doc := s.Document.Clone()
		tool := act.Tool
		tool.ID = r.newID()
		doc.Tools = append(doc.Tools, tool)
		return s.record(doc)

	case UpdateTool:
		doc := s.Document.Clone()
		for i, t := range doc.Tools {
			if t.ID == act.ID {
				doc.Tools[i] = act.Patch.apply(t)
			}
		}
		return s.record(doc)

	case RemoveTool:
		doc := s.Document.Clone()
		doc.Tools = filter(doc.Tools, func(t Tool) bool { return t.ID != act.ID })
		return s.record(doc)

	case AddProcess:
		doc := s.Document.Clone()
		proc := act.Process.clone()
		proc.ID = r.newID()
		doc.Processes = append(doc.Processes, withScore(proc))
		return s.record(doc)

	case UpdateProcess:
		doc := s.Document.Clone()
		for i, p := range doc.Processes {
			if p.ID == act.ID {
				doc.Processes[i] = withScore(act.Patch.apply(p))
			}
		}
		return s.record(doc)

	case RemoveProcess:
		// Scenarios pointing at the process are left in place.
		doc := s.Document.Clone()
		doc.Processes = filter(doc.Processes, func(p Process) bool { return p.ID != act.ID })
		return s.record(doc)

	case AddAutomationScenario:
		doc := s.Document.Clone()
		scenario := act.Scenario
		scenario.ID = r.newID()
		doc.AutomationScenarios = append(doc.AutomationScenarios, scenario)
		return s.record(doc)

	case UpdateAutomationScenario:
		doc := s.Document.Clone()
		for i, sc := range doc.AutomationScenarios {
			if sc.ID == act.ID {
				doc.AutomationScenarios[i] = act.Patch.apply(sc)
			}
		}
		return s.record(doc)

	case RemoveAutomationScenario:
		doc := s.Document.Clone()
		doc.AutomationScenarios = filter(doc.AutomationScenarios, func(sc Scenario) bool { return sc.ID != act.ID })
		return s.record(doc)

	case SetSelectedPackage:
		next := s.cloneState()
		next.SelectedPackage = nil
		if act.PackageID != nil {
			id := *act.PackageID
			next.SelectedPackage = &id
		}
		return next

	case SetHourlyRate:
		next := s.cloneState()
		next.HourlyRate = act.Rate
		return next

	case SetNotes:
		next := s.cloneState()
		next.Notes = act.Notes
		return next

	case SetCustomPackages:
		next := s.cloneState()
		next.CustomPackages = Document{CustomPackages: act.Packages}.Clone().CustomPackages
		return next

	case AddActionItem:
		next := s.cloneState()
		item := act.Item
		item.ID = r.newID()
		next.ActionItems = append(next.ActionItems, item)
		return next

	case UpdateActionItem:
		next := s.cloneState()
		for i, item := range next.ActionItems {
			if item.ID == act.ID {
				next.ActionItems[i] = act.Patch.apply(item)
			}
		}
		return next

	case RemoveActionItem:
		next := s.cloneState()
		next.ActionItems = filter(next.ActionItems, func(item ActionItem) bool { return item.ID != act.ID })
		return next

	case LoadData:
		return NewState(act.Document)

	case ResetData:
		return NewState(InitialDocument(r.now()))

	case Undo:
		if !s.CanUndo() {
			return s
		}
		return s.moveTo(s.HistoryIndex - 1)

	case Redo:
		if !s.CanRedo() {
			return s
		}
		return s.moveTo(s.HistoryIndex + 1)

	default:
		return s
	}
}

// record appends doc to the history, dropping any redo branch and keeping at
// most MaxHistory entries.
func (s State) record(doc Document) State {
	keep := s.HistoryIndex + 1
	if keep > len(s.History) {
		keep = len(s.History)
	}
	if keep < 0 {
		keep = 0
	}

	history := make([]Document, 0, keep+1)
	history = append(history, s.History[:keep]...)
	history = append(history, doc.Clone())
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}

	return State{
		Document:     doc,
		History:      history,
		HistoryIndex: len(history) - 1,
	}
}

// moveTo adopts the snapshot at i and keeps the whole history for redo.
func (s State) moveTo(i int) State {
	return State{
		Document:     s.History[i].Clone(),
		History:      cloneSlice(s.History),
		HistoryIndex: i,
	}
}

// cloneState copies the document for a transition that leaves history alone.
// Snapshots are never mutated in place, so the history slice can be shared.
func (s State) cloneState() State {
	return State{
		Document:     s.Document.Clone(),
		History:      s.History,
		HistoryIndex: s.HistoryIndex,
	}
}

func filter[T any](in []T, keep func(T) bool) []T {
	if in == nil {
		return nil
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
