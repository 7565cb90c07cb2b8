package specification

import "gorm.io/gorm"

type ByCompletion struct {
	Completed bool
}

func (s ByCompletion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_completed = ?", s.Completed)
}

// TitleContains matches workshop titles case-insensitively
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}
