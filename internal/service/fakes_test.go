package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/entity"
	"workshop-wizard-be/internal/repository/contract"
	"workshop-wizard-be/internal/repository/specification"
	"workshop-wizard-be/internal/repository/unitofwork"
	"workshop-wizard-be/pkg/events"
	"workshop-wizard-be/pkg/workshop"

	"github.com/google/uuid"
)

// fakeDB backs the fake repositories. It understands the specifications the
// services actually use.
type fakeDB struct {
	mu        sync.Mutex
	users     map[uuid.UUID]entity.User
	workshops map[uuid.UUID]entity.Workshop
	saves     int
	saveErr   error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:     make(map[uuid.UUID]entity.User),
		workshops: make(map[uuid.UUID]entity.Workshop),
	}
}

func (db *fakeDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{db: db}
}

func (db *fakeDB) workshop(id uuid.UUID) (entity.Workshop, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	w, ok := db.workshops[id]
	return w, ok
}

func (db *fakeDB) saveCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.saves
}

type fakeUoW struct {
	db *fakeDB
}

func (u *fakeUoW) Begin(ctx context.Context) error { return nil }
func (u *fakeUoW) Commit() error                   { return nil }
func (u *fakeUoW) Rollback() error                 { return nil }

func (u *fakeUoW) UserRepository() contract.UserRepository {
	return &fakeUserRepo{db: u.db}
}

func (u *fakeUoW) WorkshopRepository() contract.WorkshopRepository {
	return &fakeWorkshopRepo{db: u.db}
}

type fakeUserRepo struct {
	db *fakeDB
}

func matchUser(u entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != strings.ToLower(strings.TrimSpace(s.Email)) {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if matchUser(u, specs) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, u := range r.db.users {
		if matchUser(u, specs) {
			n++
		}
	}
	return n, nil
}

type fakeWorkshopRepo struct {
	db *fakeDB
}

func matchWorkshop(w entity.Workshop, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if w.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if w.UserId != s.UserID {
				return false
			}
		case specification.TitleContains:
			if !strings.Contains(strings.ToLower(w.Title), strings.ToLower(s.Query)) {
				return false
			}
		case specification.ByCompletion:
			if w.IsCompleted != s.Completed {
				return false
			}
		}
	}
	return true
}

func stored(w entity.Workshop) entity.Workshop {
	w.Document = w.Document.Clone()
	w.Version = workshop.Version
	return w
}

func (r *fakeWorkshopRepo) Create(ctx context.Context, w *entity.Workshop) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.workshops[w.Id] = stored(*w)
	w.Version = workshop.Version
	return nil
}

func (r *fakeWorkshopRepo) Update(ctx context.Context, w *entity.Workshop) error {
	return r.Create(ctx, w)
}

func (r *fakeWorkshopRepo) Delete(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, w := range r.db.workshops {
		if matchWorkshop(w, specs) {
			delete(r.db.workshops, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkshopRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workshop, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, w := range r.db.workshops {
		if matchWorkshop(w, specs) {
			found := stored(w)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkshopRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workshop, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Workshop
	for _, w := range r.db.workshops {
		if matchWorkshop(w, specs) {
			found := stored(w)
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastAccessed.After(out[j].LastAccessed) })
	return out, nil
}

func (r *fakeWorkshopRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *fakeWorkshopRepo) TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if w, ok := r.db.workshops[id]; ok {
		w.LastAccessed = at
		r.db.workshops[id] = w
	}
	return nil
}

func (r *fakeWorkshopRepo) SaveDocument(ctx context.Context, id uuid.UUID, doc workshop.Document, at time.Time) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.saveErr != nil {
		return false, r.db.saveErr
	}
	w, ok := r.db.workshops[id]
	if !ok {
		return false, nil
	}
	w.Document = doc.Clone()
	w.CurrentStep = doc.CurrentStep
	w.LastAccessed = at
	w.UpdatedAt = &at
	r.db.workshops[id] = w
	r.db.saves++
	return true, nil
}

// recordingPublisher captures autosave requests.
type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

// recordingEvents captures domain events.
type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

// recordingNotifier captures live session broadcasts.
type recordingNotifier struct {
	mu        sync.Mutex
	revisions []int64
}

func (n *recordingNotifier) SessionChanged(ctx context.Context, workshopId uuid.UUID, update *dto.DispatchResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.revisions = append(n.revisions, update.Session.Revision)
}

func (n *recordingNotifier) sent() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64(nil), n.revisions...)
}

var errStorageDown = errors.New("storage down")
