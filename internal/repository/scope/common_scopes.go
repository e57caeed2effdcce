package scope

import "gorm.io/gorm"

// OrderByUpdatedDesc breaks updated_at ties by creation time so listings are stable.
func OrderByUpdatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("created_at DESC")
}
