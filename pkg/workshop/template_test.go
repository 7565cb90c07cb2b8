package workshop

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplates(t *testing.T) {
	catalog, err := LoadTemplates()
	require.NoError(t, err)

	all := catalog.All()
	require.Len(t, all, 3)
	assert.Equal(t, "b2b", all[0].ID)
	assert.Equal(t, "ecommerce", all[1].ID)
	assert.Equal(t, "services", all[2].ID)

	ecommerce, err := catalog.ByID("ecommerce")
	require.NoError(t, err)
	assert.Len(t, ecommerce.Tools, 6)
	assert.Len(t, ecommerce.Processes, 4)
	for _, p := range ecommerce.Processes {
		score := ProcessScore(p)
		assert.GreaterOrEqual(t, score, 4, p.Name)
		assert.LessOrEqual(t, score, 12, p.Name)
	}
}

func TestTemplateCatalog_ByIndustry(t *testing.T) {
	catalog, err := LoadTemplates()
	require.NoError(t, err)

	tpl, err := catalog.ByIndustry("consulting")
	require.NoError(t, err)
	assert.Equal(t, "services", tpl.ID)

	_, err = catalog.ByIndustry("Mining")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = catalog.ByID("mining")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestParseTemplate_NormalizesLegacyFrequency(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/legacy.yaml": {Data: []byte(`
id: legacy
name: Legacy
industries: [Handwerk]
tools:
  - {name: Excel, category: Spreadsheets, frequency: Täglich, hasAPI: false}
processes:
  - name: Weekly timesheet consolidation
    department: Office
    description: Timesheets are collected from every team and merged by hand.
    tools: [Excel]
    frequency: Wöchentlich
    timePerExecution: 90
    executionsPerPeriod: 1
    errorProneness: 2
    automatable: 2
`)},
		"tpl/README.md": {Data: []byte("ignored")},
	}

	catalog, err := loadTemplatesFrom(fsys, "tpl")
	require.NoError(t, err)

	tpl, err := catalog.ByID("legacy")
	require.NoError(t, err)
	assert.Equal(t, FrequencyDaily, tpl.Tools[0].Frequency)
	assert.Equal(t, FrequencyWeekly, tpl.Processes[0].Frequency)
	assert.Equal(t, []string{"Excel"}, tpl.Processes[0].Tools)
}

func TestParseTemplate_RequiresID(t *testing.T) {
	_, err := parseTemplate([]byte("name: nameless\n"))
	assert.Error(t, err)
}

func TestTemplate_ActionsApplyThroughReducer(t *testing.T) {
	catalog, err := LoadTemplates()
	require.NoError(t, err)
	tpl, err := catalog.ByID("ecommerce")
	require.NoError(t, err)

	r := newTestReducer()
	s := initialState()
	for _, a := range tpl.Actions() {
		s = r.Reduce(s, a)
	}

	assert.Len(t, s.Tools, len(tpl.Tools))
	assert.Len(t, s.Processes, len(tpl.Processes))
	for _, p := range s.Processes {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, ProcessScore(p), p.Score)
	}
	assert.Len(t, s.History, 1+len(tpl.Tools)+len(tpl.Processes))
}
