package bootstrap

import (
	"notetaking-be/internal/config"
	"notetaking-be/internal/controller"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/internal/service"
	"notetaking-be/pkg/media"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	HealthController controller.IHealthController

	// Shared infrastructure
	Logger     logger.ILogger
	MediaStore *media.LocalStore
}

// NewContainer wires every dependency. The caller owns log and is responsible for Sync.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	mediaStore := media.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	// 2. Services
	noteService := service.NewNoteService(uowFactory, mediaStore, log)
	healthService := service.NewHealthService(uowFactory)

	// 3. Controllers
	return &Container{
		NoteController:   controller.NewNoteController(noteService),
		HealthController: controller.NewHealthController(healthService),
		Logger:           log,
		MediaStore:       mediaStore,
	}
}
