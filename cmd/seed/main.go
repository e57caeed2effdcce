package main

import (
	"context"
	"log"

	"notetaking-be/internal/config"
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/internal/service"
	"notetaking-be/pkg/database"
	"notetaking-be/pkg/media"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(database.GormConfig{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	noteService := service.NewNoteService(
		uowFactory,
		media.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes),
		logger.NewNopLogger(),
	)

	created, err := seedNotes(context.Background(), uowFactory, noteService)
	if err != nil {
		log.Fatalf("Error: Seeding failed: %v", err)
	}
	log.Printf("Success: %d demo note(s) created.", created)
}

// seedNotes adds a few text notes to an empty database and leaves existing data alone.
func seedNotes(ctx context.Context, uowFactory unitofwork.RepositoryFactory, noteService service.INoteService) (int, error) {
	count, err := uowFactory.NewUnitOfWork(ctx).NoteRepository().Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Info: %d note(s) already present, skipping seed", count)
		return 0, nil
	}

	samples := []struct {
		title   string
		content string
	}{
		{"Welcome", "Create text notes here, or record audio and attach images from the other tabs."},
		{"Shopping", "milk, eggs, bread"},
		{"Meeting notes", "Agree on the release date and owners for the open items."},
	}

	for _, s := range samples {
		content := s.content
		if _, err := noteService.CreateText(ctx, &dto.CreateTextNoteRequest{Title: s.title, Content: &content}); err != nil {
			return 0, err
		}
	}
	return len(samples), nil
}
