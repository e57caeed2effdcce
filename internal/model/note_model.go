package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   *string   `gorm:"type:text"`
	Type      string    `gorm:"type:varchar(16);not null;index"`
	FilePath  *string   `gorm:"type:varchar(512)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"`
}

func (Note) TableName() string {
	return "notes"
}
