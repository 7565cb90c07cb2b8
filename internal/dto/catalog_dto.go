package dto

import "workshop-wizard-be/pkg/workshop"

type PackagesResponse struct {
	Packages []workshop.Package `json:"packages"`
}

type TemplateSummary struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Industries   []string `json:"industries"`
	ToolCount    int      `json:"tool_count"`
	ProcessCount int      `json:"process_count"`
}
