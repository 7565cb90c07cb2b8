package service

import (
	"errors"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/pkg/workshop"
)

// ICatalogService serves the static reference data of the wizard.
type ICatalogService interface {
	GetPackages() *dto.PackagesResponse
	GetTemplates() []dto.TemplateSummary
	GetTemplate(id string) (*workshop.Template, error)
}

type catalogService struct {
	templates *workshop.TemplateCatalog
}

func NewCatalogService(templates *workshop.TemplateCatalog) ICatalogService {
	return &catalogService{templates: templates}
}

func (s *catalogService) GetPackages() *dto.PackagesResponse {
	return &dto.PackagesResponse{Packages: workshop.DefaultPackages()}
}

func (s *catalogService) GetTemplates() []dto.TemplateSummary {
	all := s.templates.All()
	res := make([]dto.TemplateSummary, 0, len(all))
	for _, t := range all {
		res = append(res, dto.TemplateSummary{
			Id:           t.ID,
			Name:         t.Name,
			Industries:   t.Industries,
			ToolCount:    len(t.Tools),
			ProcessCount: len(t.Processes),
		})
	}
	return res
}

func (s *catalogService) GetTemplate(id string) (*workshop.Template, error) {
	t, err := s.templates.ByID(id)
	if err != nil {
		if errors.Is(err, workshop.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}
