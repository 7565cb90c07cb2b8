package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/entity"
	"workshop-wizard-be/internal/mapper"
	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/internal/pkg/serverutils"
	"workshop-wizard-be/internal/repository/contract"
	"workshop-wizard-be/internal/repository/specification"
	"workshop-wizard-be/internal/repository/unitofwork"
	"workshop-wizard-be/pkg/events"
	"workshop-wizard-be/pkg/store"
	"workshop-wizard-be/pkg/workshop"

	"github.com/google/uuid"
)

type IWorkshopService interface {
	GetAll(ctx context.Context, userId uuid.UUID, query dto.ListWorkshopsQuery) ([]*dto.WorkshopSummaryResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkshopRequest) (*dto.WorkshopResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.WorkshopResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateWorkshopRequest) (*dto.WorkshopResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	Dispatch(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ActionRequest) (*dto.DispatchResponse, error)
	Reset(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DispatchResponse, error)
	ApplyTemplate(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ApplyTemplateRequest) (*dto.DispatchResponse, error)

	Analysis(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AnalysisResponse, error)
	Export(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*workshop.Envelope, error)
	Import(ctx context.Context, userId uuid.UUID, id uuid.UUID, raw []byte) (*dto.DispatchResponse, error)
	ExportCSV(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]byte, error)
}

type workshopService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessions     contract.SessionRepository
	autosave     IPublisherService
	events       events.Publisher
	notifier     SessionNotifier
	templates    *workshop.TemplateCatalog
	reducer      *workshop.Reducer
	actionMapper *mapper.ActionMapper
	locks        *keyedMutex
	logger       logger.ILogger
	now          func() time.Time
}

func NewWorkshopService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionRepository,
	autosave IPublisherService,
	eventPublisher events.Publisher,
	notifier SessionNotifier,
	templates *workshop.TemplateCatalog,
	log logger.ILogger,
) IWorkshopService {
	if notifier == nil {
		notifier = NopSessionNotifier{}
	}
	return &workshopService{
		uowFactory:   uowFactory,
		sessions:     sessions,
		autosave:     autosave,
		events:       eventPublisher,
		notifier:     notifier,
		templates:    templates,
		reducer:      workshop.NewReducer(),
		actionMapper: mapper.NewActionMapper(),
		locks:        newKeyedMutex(),
		logger:       log,
		now:          time.Now,
	}
}

func (c *workshopService) GetAll(ctx context.Context, userId uuid.UUID, query dto.ListWorkshopsQuery) ([]*dto.WorkshopSummaryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.UserOwnedBy{UserID: userId}}
	if query.Query != "" {
		specs = append(specs, specification.TitleContains{Query: query.Query})
	}
	if query.Completed != nil {
		specs = append(specs, specification.ByCompletion{Completed: *query.Completed})
	}

	workshops, err := uow.WorkshopRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.WorkshopSummaryResponse, 0, len(workshops))
	for _, w := range workshops {
		res = append(res, &dto.WorkshopSummaryResponse{
			Id:           w.Id,
			Title:        w.Title,
			CustomerName: w.Document.Customer.Name,
			ProcessCount: len(w.Document.Processes),
			CurrentStep:  w.CurrentStep,
			IsCompleted:  w.IsCompleted,
			LastAccessed: w.LastAccessed,
			CreatedAt:    w.CreatedAt,
			UpdatedAt:    w.UpdatedAt,
		})
	}
	return res, nil
}

func (c *workshopService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkshopRequest) (*dto.WorkshopResponse, error) {
	now := c.now()

	doc := workshop.InitialDocument(now)
	if len(req.Data) > 0 && string(req.Data) != "null" {
		decoded, err := decodeDocument(req.Data)
		if err != nil {
			return nil, err
		}
		doc = decoded
	}

	w := &entity.Workshop{
		Id:           uuid.New(),
		UserId:       userId,
		Title:        req.Title,
		Document:     doc,
		CurrentStep:  doc.CurrentStep,
		LastAccessed: now,
		CreatedAt:    now,
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WorkshopRepository().Create(ctx, w); err != nil {
		return nil, err
	}

	session := store.NewSession(w.Id.String(), userId.String(), w.Document, now)
	if err := c.sessions.Save(ctx, session); err != nil {
		// The workshop exists; the next Show opens the session again.
		c.logger.Warn("WorkshopService", "Failed to open live session", map[string]interface{}{
			"workshop_id": w.Id.String(),
			"error":       err.Error(),
		})
	}

	c.publish(ctx, events.NewWorkshopEvent(events.WorkshopCreated, w.Id.String(), userId.String(), now, map[string]interface{}{
		"title": w.Title,
	}))

	return toWorkshopResponse(w, session), nil
}

func (c *workshopService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.WorkshopResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	w, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if w.Migrated() {
		c.logger.Warn("WorkshopService", "Workshop stored with an older document version", map[string]interface{}{
			"workshop_id": id.String(),
			"version":     w.Version,
		})
	}

	now := c.now()
	if err := uow.WorkshopRepository().TouchLastAccessed(ctx, id, now); err != nil {
		return nil, err
	}
	w.LastAccessed = now

	unlock := c.locks.Lock(id.String())
	defer unlock()

	session, err := c.openSession(ctx, userId, id, w)
	if err != nil {
		return nil, err
	}

	return toWorkshopResponse(w, session), nil
}

func (c *workshopService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateWorkshopRequest) (*dto.WorkshopResponse, error) {
	var actions []workshop.Action
	if len(req.Data) > 0 && string(req.Data) != "null" {
		doc, err := decodeDocument(req.Data)
		if err != nil {
			return nil, err
		}
		actions = append(actions, workshop.LoadData{Document: doc})
	}
	if req.CurrentStep != nil {
		actions = append(actions, workshop.SetStep{Step: *req.CurrentStep})
	}

	unlock := c.locks.Lock(id.String())
	defer unlock()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	w, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	session, err := c.openSession(ctx, userId, id, w)
	if err != nil {
		return nil, err
	}

	now := c.now()
	for _, a := range actions {
		session.Apply(c.reducer, a, now)
	}

	wasCompleted := w.IsCompleted
	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.IsCompleted != nil {
		w.IsCompleted = *req.IsCompleted
	}
	w.Document = session.State.Document
	w.CurrentStep = session.State.CurrentStep
	w.LastAccessed = now
	w.UpdatedAt = &now

	if err := uow.WorkshopRepository().Update(ctx, w); err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	// An autosave already in flight may still write the previous revision.
	c.requestAutosave(ctx, id, userId, session.Revision)
	c.notifier.SessionChanged(ctx, id, toDispatchResponse(session))

	if w.IsCompleted && !wasCompleted {
		c.publish(ctx, events.NewWorkshopEvent(events.WorkshopCompleted, id.String(), userId.String(), now, map[string]interface{}{
			"title": w.Title,
		}))
	}

	return toWorkshopResponse(w, session), nil
}

func (c *workshopService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	unlock := c.locks.Lock(id.String())
	defer unlock()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.WorkshopRepository().Delete(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrWorkshopNotFound
	}

	if err := c.sessions.Delete(ctx, id.String()); err != nil {
		c.logger.Warn("WorkshopService", "Failed to drop live session", map[string]interface{}{
			"workshop_id": id.String(),
			"error":       err.Error(),
		})
	}

	c.publish(ctx, events.NewWorkshopEvent(events.WorkshopDeleted, id.String(), userId.String(), c.now(), nil))
	return nil
}

func (c *workshopService) Dispatch(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ActionRequest) (*dto.DispatchResponse, error) {
	action, err := c.actionMapper.ToAction(*req)
	if err != nil {
		return nil, err
	}

	session, err := c.apply(ctx, userId, id, action)
	if err != nil {
		return nil, err
	}
	return toDispatchResponse(session), nil
}

// Reset clears the session and writes the empty document right away rather
// than waiting for autosave.
func (c *workshopService) Reset(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DispatchResponse, error) {
	session, err := c.apply(ctx, userId, id, workshop.ResetData{})
	if err != nil {
		return nil, err
	}
	if err := c.persist(ctx, id, session); err != nil {
		return nil, err
	}
	return toDispatchResponse(session), nil
}

// ApplyTemplate adds the template's tools and processes as regular actions,
// so each one can be undone.
func (c *workshopService) ApplyTemplate(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ApplyTemplateRequest) (*dto.DispatchResponse, error) {
	var (
		tmpl workshop.Template
		err  error
	)
	if req.TemplateId != "" {
		tmpl, err = c.templates.ByID(req.TemplateId)
	} else {
		tmpl, err = c.templates.ByIndustry(req.Industry)
	}
	if err != nil {
		if errors.Is(err, workshop.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	session, err := c.apply(ctx, userId, id, tmpl.Actions()...)
	if err != nil {
		return nil, err
	}
	return toDispatchResponse(session), nil
}

func (c *workshopService) Analysis(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AnalysisResponse, error) {
	doc, err := c.liveDocument(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return &dto.AnalysisResponse{
		WorkshopId: id,
		Analysis:   workshop.Analyze(doc),
	}, nil
}

func (c *workshopService) Export(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*workshop.Envelope, error) {
	doc, err := c.liveDocument(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	env := workshop.Wrap(doc, c.now())
	return &env, nil
}

func (c *workshopService) Import(ctx context.Context, userId uuid.UUID, id uuid.UUID, raw []byte) (*dto.DispatchResponse, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}

	session, err := c.apply(ctx, userId, id, workshop.LoadData{Document: doc})
	if err != nil {
		return nil, err
	}
	if err := c.persist(ctx, id, session); err != nil {
		return nil, err
	}

	c.publish(ctx, events.NewWorkshopEvent(events.WorkshopImported, id.String(), userId.String(), c.now(), map[string]interface{}{
		"processes": len(doc.Processes),
	}))
	return toDispatchResponse(session), nil
}

func (c *workshopService) ExportCSV(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]byte, error) {
	doc, err := c.liveDocument(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return processCSV(doc)
}

// decodeDocument passes rule violations through field by field and reports
// anything unreadable as ErrInvalidDocument.
func decodeDocument(raw []byte) (workshop.Document, error) {
	doc, err := mapper.DecodeDocument(raw)
	var verr *serverutils.ValidationError
	if errors.As(err, &verr) {
		return workshop.Document{}, verr
	}
	if err != nil {
		return workshop.Document{}, ErrInvalidDocument
	}
	return doc, nil
}

func (c *workshopService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Workshop, error) {
	w, err := uow.WorkshopRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWorkshopNotFound
	}
	return w, nil
}

// openSession returns the live session for id, opening one from the stored
// document when none exists. w may be nil; it is loaded if needed. The caller
// must hold the workshop lock.
func (c *workshopService) openSession(ctx context.Context, userId, id uuid.UUID, w *entity.Workshop) (*store.Session, error) {
	session, err := c.sessions.Get(ctx, id.String())
	if err != nil {
		return nil, err
	}
	if session != nil {
		if session.UserID != userId.String() {
			return nil, ErrWorkshopNotFound
		}
		return session, nil
	}

	if w == nil {
		uow := c.uowFactory.NewUnitOfWork(ctx)
		if w, err = c.findOwned(ctx, uow, userId, id); err != nil {
			return nil, err
		}
	}

	session = store.NewSession(id.String(), userId.String(), w.Document, c.now())
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// apply runs actions against the live session under the workshop lock and
// schedules an autosave.
func (c *workshopService) apply(ctx context.Context, userId, id uuid.UUID, actions ...workshop.Action) (*store.Session, error) {
	unlock := c.locks.Lock(id.String())
	defer unlock()

	session, err := c.openSession(ctx, userId, id, nil)
	if err != nil {
		return nil, err
	}

	now := c.now()
	for _, a := range actions {
		session.Apply(c.reducer, a, now)
	}

	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	c.requestAutosave(ctx, id, userId, session.Revision)
	c.notifier.SessionChanged(ctx, id, toDispatchResponse(session))
	return session, nil
}

func (c *workshopService) liveDocument(ctx context.Context, userId, id uuid.UUID) (workshop.Document, error) {
	unlock := c.locks.Lock(id.String())
	defer unlock()

	session, err := c.openSession(ctx, userId, id, nil)
	if err != nil {
		return workshop.Document{}, err
	}
	return session.State.Document, nil
}

func (c *workshopService) persist(ctx context.Context, id uuid.UUID, session *store.Session) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	saved, err := uow.WorkshopRepository().SaveDocument(ctx, id, session.State.Document, c.now())
	if err != nil {
		return err
	}
	if !saved {
		return ErrWorkshopNotFound
	}
	return nil
}

func (c *workshopService) requestAutosave(ctx context.Context, id, userId uuid.UUID, revision int64) {
	payload, err := json.Marshal(dto.AutosaveMessage{WorkshopId: id, UserId: userId, Revision: revision})
	if err == nil {
		err = c.autosave.Publish(ctx, payload)
	}
	if err != nil {
		c.logger.Error("WorkshopService", "Failed to schedule autosave", map[string]interface{}{
			"workshop_id": id.String(),
			"error":       err,
		})
	}
}

func (c *workshopService) publish(ctx context.Context, event events.Event) {
	if err := c.events.Publish(ctx, event); err != nil {
		c.logger.Warn("WorkshopService", "Failed to publish "+event.EventType()+" event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func sessionInfo(session *store.Session) dto.SessionInfo {
	if session == nil {
		return dto.SessionInfo{}
	}
	return dto.SessionInfo{
		Revision:     session.Revision,
		CanUndo:      session.State.CanUndo(),
		CanRedo:      session.State.CanRedo(),
		HistoryIndex: session.State.HistoryIndex,
		HistoryLen:   len(session.State.History),
	}
}

func toWorkshopResponse(w *entity.Workshop, session *store.Session) *dto.WorkshopResponse {
	doc := w.Document
	if session != nil {
		doc = session.State.Document
	}
	return &dto.WorkshopResponse{
		Id:           w.Id,
		Title:        w.Title,
		Version:      w.Version,
		Data:         doc,
		CurrentStep:  doc.CurrentStep,
		IsCompleted:  w.IsCompleted,
		LastAccessed: w.LastAccessed,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
		Session:      sessionInfo(session),
	}
}

func toDispatchResponse(session *store.Session) *dto.DispatchResponse {
	return &dto.DispatchResponse{
		Data:    session.State.Document,
		Session: sessionInfo(session),
	}
}
