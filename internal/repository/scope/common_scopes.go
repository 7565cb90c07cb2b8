package scope

import "gorm.io/gorm"

// OrderByLastAccessedDesc lists the most recently opened workshops first.
func OrderByLastAccessedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("last_accessed DESC").Order("created_at DESC")
}
