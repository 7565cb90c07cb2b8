package workshop

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

var ErrTemplateNotFound = errors.New("template not found")

// Template pre-fills the tool landscape and process capture for an industry.
type Template struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Industries []string  `json:"industries" yaml:"industries"`
	Tools      []Tool    `json:"tools" yaml:"-"`
	Processes  []Process `json:"processes" yaml:"-"`
}

type templateFile struct {
	Template `yaml:",inline"`
	Tools    []struct {
		Name       string `yaml:"name"`
		Category   string `yaml:"category"`
		Frequency  string `yaml:"frequency"`
		HasAPI     bool   `yaml:"hasAPI"`
		Department string `yaml:"department"`
	} `yaml:"tools"`
	Processes []struct {
		Name                string   `yaml:"name"`
		Department          string   `yaml:"department"`
		Description         string   `yaml:"description"`
		Tools               []string `yaml:"tools"`
		Frequency           string   `yaml:"frequency"`
		TimePerExecution    float64  `yaml:"timePerExecution"`
		ExecutionsPerPeriod float64  `yaml:"executionsPerPeriod"`
		ErrorProneness      int      `yaml:"errorProneness"`
		Automatable         int      `yaml:"automatable"`
	} `yaml:"processes"`
}

// TemplateCatalog is the set of templates shipped with the binary.
type TemplateCatalog struct {
	templates []Template
}

func LoadTemplates() (*TemplateCatalog, error) {
	return loadTemplatesFrom(templateFS, "templates")
}

func loadTemplatesFrom(fsys fs.FS, dir string) (*TemplateCatalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	catalog := &TemplateCatalog{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		raw, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		tpl, err := parseTemplate(raw)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", entry.Name(), err)
		}
		catalog.templates = append(catalog.templates, tpl)
	}

	sort.Slice(catalog.templates, func(i, j int) bool {
		return catalog.templates[i].ID < catalog.templates[j].ID
	})
	return catalog, nil
}

func parseTemplate(raw []byte) (Template, error) {
	var file templateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Template{}, err
	}
	if file.ID == "" {
		return Template{}, errors.New("template id is required")
	}

	tpl := file.Template
	tpl.Tools = make([]Tool, 0, len(file.Tools))
	for _, t := range file.Tools {
		tpl.Tools = append(tpl.Tools, Tool{
			Name:       t.Name,
			Category:   t.Category,
			Frequency:  normalizeFrequency(t.Frequency),
			HasAPI:     t.HasAPI,
			Department: t.Department,
		})
	}

	tpl.Processes = make([]Process, 0, len(file.Processes))
	for _, p := range file.Processes {
		tpl.Processes = append(tpl.Processes, Process{
			Name:                p.Name,
			Department:          p.Department,
			Description:         p.Description,
			Tools:               p.Tools,
			Frequency:           normalizeFrequency(p.Frequency),
			TimePerExecution:    p.TimePerExecution,
			ExecutionsPerPeriod: p.ExecutionsPerPeriod,
			ErrorProneness:      p.ErrorProneness,
			Automatable:         p.Automatable,
		})
	}
	return tpl, nil
}

func normalizeFrequency(raw string) Frequency {
	if legacy, ok := legacyFrequencies[raw]; ok {
		return legacy
	}
	return Frequency(raw)
}

func (c *TemplateCatalog) All() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

func (c *TemplateCatalog) ByID(id string) (Template, error) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

// ByIndustry finds the template registered for an industry, case-insensitive.
func (c *TemplateCatalog) ByIndustry(industry string) (Template, error) {
	for _, t := range c.templates {
		for _, ind := range t.Industries {
			if strings.EqualFold(ind, industry) {
				return t, nil
			}
		}
	}
	return Template{}, ErrTemplateNotFound
}

// Actions expands the template into the reducer actions that apply it.
func (t Template) Actions() []Action {
	actions := make([]Action, 0, len(t.Tools)+len(t.Processes))
	for _, tool := range t.Tools {
		actions = append(actions, AddTool{Tool: tool})
	}
	for _, proc := range t.Processes {
		actions = append(actions, AddProcess{Process: proc.clone()})
	}
	return actions
}
