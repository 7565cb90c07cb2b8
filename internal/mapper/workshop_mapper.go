package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"workshop-wizard-be/internal/entity"
	"workshop-wizard-be/internal/model"
	"workshop-wizard-be/pkg/workshop"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WorkshopMapper struct {
	now func() time.Time
}

func NewWorkshopMapper() *WorkshopMapper {
	return &WorkshopMapper{now: time.Now}
}

// ToEntity unwraps the stored envelope. Rows written before the envelope
// existed hold a bare document and come back with an empty Version.
func (m *WorkshopMapper) ToEntity(w *model.Workshop) (*entity.Workshop, error) {
	if w == nil {
		return nil, nil
	}

	env, err := workshop.DecodeEnvelope(w.Data)
	if err != nil {
		return nil, fmt.Errorf("workshop %s: %w", w.Id, err)
	}
	doc, _, err := workshop.Unwrap(env)
	if err != nil {
		return nil, fmt.Errorf("workshop %s: %w", w.Id, err)
	}

	var deletedAt *time.Time
	if w.DeletedAt.Valid {
		t := w.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Workshop{
		Id:           w.Id,
		UserId:       w.UserId,
		Title:        w.Title,
		Document:     doc,
		Version:      env.Version,
		CurrentStep:  w.CurrentStep,
		IsCompleted:  w.IsCompleted,
		LastAccessed: w.LastAccessed,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    w.DeletedAt.Valid,
	}, nil
}

// ToModel always writes the current envelope version.
func (m *WorkshopMapper) ToModel(w *entity.Workshop) (*model.Workshop, error) {
	if w == nil {
		return nil, nil
	}

	data, err := m.EncodeDocument(w.Document)
	if err != nil {
		return nil, err
	}

	var deletedAt gorm.DeletedAt
	if w.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *w.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Workshop{
		Id:           w.Id,
		UserId:       w.UserId,
		Title:        w.Title,
		Data:         data,
		CurrentStep:  w.CurrentStep,
		IsCompleted:  w.IsCompleted,
		LastAccessed: w.LastAccessed,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}, nil
}

func (m *WorkshopMapper) EncodeDocument(doc workshop.Document) (datatypes.JSON, error) {
	raw, err := json.Marshal(workshop.Wrap(doc, m.now()))
	if err != nil {
		return nil, fmt.Errorf("encode workshop document: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func (m *WorkshopMapper) ToEntities(workshops []*model.Workshop) ([]*entity.Workshop, error) {
	entities := make([]*entity.Workshop, 0, len(workshops))
	for _, w := range workshops {
		e, err := m.ToEntity(w)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
