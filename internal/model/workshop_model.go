package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Workshop stores the session document as a versioned JSON envelope.
type Workshop struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index:idx_workshops_user_accessed,priority:1"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Data         datatypes.JSON `gorm:"type:jsonb;not null"`
	CurrentStep  int            `gorm:"not null;default:1"`
	IsCompleted  bool           `gorm:"not null;default:false"`
	LastAccessed time.Time      `gorm:"not null;index:idx_workshops_user_accessed,priority:2,sort:desc"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Workshop) TableName() string {
	return "workshops"
}
