package database

import (
	"notetaking-be/internal/model"

	"gorm.io/gorm"
)

// Models lists every table owned by the application.
func Models() []interface{} {
	return []interface{}{
		&model.Note{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
