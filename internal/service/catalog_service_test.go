package service

import (
	"testing"

	"workshop-wizard-be/pkg/workshop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService(t *testing.T) {
	templates, err := workshop.LoadTemplates()
	require.NoError(t, err)
	svc := NewCatalogService(templates)

	assert.Equal(t, workshop.DefaultPackages(), svc.GetPackages().Packages)

	summaries := svc.GetTemplates()
	require.Len(t, summaries, 3)
	assert.Equal(t, "ecommerce", summaries[1].Id)
	assert.Equal(t, 6, summaries[1].ToolCount)
	assert.Equal(t, 4, summaries[1].ProcessCount)

	tpl, err := svc.GetTemplate("services")
	require.NoError(t, err)
	assert.Equal(t, "services", tpl.ID)

	_, err = svc.GetTemplate("mining")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
