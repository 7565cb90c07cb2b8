package implementation

import (
	"context"
	"errors"
	"time"

	"workshop-wizard-be/internal/entity"
	"workshop-wizard-be/internal/mapper"
	"workshop-wizard-be/internal/model"
	"workshop-wizard-be/internal/repository/contract"
	"workshop-wizard-be/internal/repository/scope"
	"workshop-wizard-be/internal/repository/specification"
	"workshop-wizard-be/pkg/workshop"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkshopRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkshopMapper
}

func NewWorkshopRepository(db *gorm.DB) contract.WorkshopRepository {
	return &WorkshopRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkshopMapper(),
	}
}

func (r *WorkshopRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkshopRepositoryImpl) Create(ctx context.Context, w *entity.Workshop) error {
	m, err := r.mapper.ToModel(w)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*w = *created
	return nil
}

func (r *WorkshopRepositoryImpl) Update(ctx context.Context, w *entity.Workshop) error {
	m, err := r.mapper.ToModel(w)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	updated, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*w = *updated
	return nil
}

func (r *WorkshopRepositoryImpl) Delete(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	result := query.Delete(&model.Workshop{})
	return result.RowsAffected, result.Error
}

func (r *WorkshopRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workshop, error) {
	var m model.Workshop
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *WorkshopRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workshop, error) {
	var models []*model.Workshop
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByLastAccessedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *WorkshopRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Workshop{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WorkshopRepositoryImpl) TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Workshop{}).
		Where("id = ?", id).
		UpdateColumn("last_accessed", at).Error
}

func (r *WorkshopRepositoryImpl) SaveDocument(ctx context.Context, id uuid.UUID, doc workshop.Document, at time.Time) (bool, error) {
	data, err := r.mapper.EncodeDocument(doc)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&model.Workshop{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"data":          data,
			"current_step":  doc.CurrentStep,
			"last_accessed": at,
			"updated_at":    at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
