package dto

import (
	"encoding/json"
	"time"

	"workshop-wizard-be/pkg/workshop"

	"github.com/google/uuid"
)

type CreateWorkshopRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	// Data is optional: a versioned envelope or a bare document.
	Data json.RawMessage `json:"data"`
}

type UpdateWorkshopRequest struct {
	Title       *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Data        json.RawMessage `json:"data"`
	CurrentStep *int            `json:"current_step" validate:"omitempty,min=1,max=8"`
	IsCompleted *bool           `json:"is_completed"`
}

type ListWorkshopsQuery struct {
	Query     string
	Completed *bool
}

type WorkshopSummaryResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	CustomerName string     `json:"customer_name"`
	ProcessCount int        `json:"process_count"`
	CurrentStep  int        `json:"current_step"`
	IsCompleted  bool       `json:"is_completed"`
	LastAccessed time.Time  `json:"last_accessed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type WorkshopResponse struct {
	Id           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Version      string            `json:"version"`
	Data         workshop.Document `json:"data"`
	CurrentStep  int               `json:"current_step"`
	IsCompleted  bool              `json:"is_completed"`
	LastAccessed time.Time         `json:"last_accessed"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    *time.Time        `json:"updated_at"`
	Session      SessionInfo       `json:"session"`
}

// SessionInfo describes the live session behind a workshop.
type SessionInfo struct {
	Revision     int64 `json:"revision"`
	CanUndo      bool  `json:"can_undo"`
	CanRedo      bool  `json:"can_redo"`
	HistoryIndex int   `json:"history_index"`
	HistoryLen   int   `json:"history_length"`
}

type DispatchResponse struct {
	Data    workshop.Document `json:"data"`
	Session SessionInfo       `json:"session"`
}

type AnalysisResponse struct {
	WorkshopId uuid.UUID         `json:"workshop_id"`
	Analysis   workshop.Analysis `json:"analysis"`
}

type ApplyTemplateRequest struct {
	TemplateId string `json:"template_id" validate:"required_without=Industry"`
	Industry   string `json:"industry" validate:"required_without=TemplateId"`
}

// AutosaveMessage is published on the autosave topic after every applied action.
type AutosaveMessage struct {
	WorkshopId uuid.UUID `json:"workshop_id"`
	UserId     uuid.UUID `json:"user_id"`
	Revision   int64     `json:"revision"`
}
