package specification

import (
	"notetaking-be/internal/entity"
	"notetaking-be/internal/repository/scope"

	"gorm.io/gorm"
)

type ByNoteType struct {
	Type entity.NoteType
}

func (s ByNoteType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type.String())
}

// MostRecentlyUpdated is the list ordering used by every listing endpoint.
type MostRecentlyUpdated struct{}

func (s MostRecentlyUpdated) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByUpdatedDesc)
}
