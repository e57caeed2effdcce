package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notetaking-be/internal/dto"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/mapper"
	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/pkg/media"

	"github.com/google/uuid"
)

const noteModule = "note_service"

const (
	msgNoteNotFound    = "Note not found"
	msgInvalidNoteType = "Invalid note type"
)

type INoteService interface {
	CreateText(ctx context.Context, req *dto.CreateTextNoteRequest) (*dto.NoteResponse, error)
	CreateAudio(ctx context.Context, req *dto.CreateAudioNoteRequest, upload *media.Upload) (*dto.NoteResponse, error)
	CreateImage(ctx context.Context, req *dto.CreateImageNoteRequest, upload *media.Upload) (*dto.NoteResponse, error)
	List(ctx context.Context) ([]*dto.NoteResponse, error)
	ListByType(ctx context.Context, noteType string) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	mediaStore media.Store
	mapper     *mapper.NoteMapper
	logger     logger.ILogger
	now        func() time.Time
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	mediaStore media.Store,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		mediaStore: mediaStore,
		mapper:     mapper.NewNoteMapper(),
		logger:     log,
		now:        time.Now,
	}
}

// timestamp is truncated to the precision every supported database keeps.
func (c *noteService) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

func (c *noteService) CreateText(ctx context.Context, req *dto.CreateTextNoteRequest) (*dto.NoteResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	return c.insert(ctx, &entity.Note{
		Title:   req.Title,
		Content: req.Content,
		Type:    entity.NoteTypeText,
	})
}

func (c *noteService) CreateAudio(ctx context.Context, req *dto.CreateAudioNoteRequest, upload *media.Upload) (*dto.NoteResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, apperror.MissingAttachment("Audio file is required")
	}

	return c.createWithMedia(ctx, media.KindAudio, upload, &entity.Note{
		Title: req.Title,
		Type:  entity.NoteTypeAudio,
	})
}

func (c *noteService) CreateImage(ctx context.Context, req *dto.CreateImageNoteRequest, upload *media.Upload) (*dto.NoteResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, apperror.MissingAttachment("Image file is required")
	}

	return c.createWithMedia(ctx, media.KindImage, upload, &entity.Note{
		Title:   req.Title,
		Content: req.Content,
		Type:    entity.NoteTypeImage,
	})
}

// createWithMedia writes the file first and removes it again if the row cannot be stored,
// so a failed create never leaves an orphaned upload behind.
func (c *noteService) createWithMedia(ctx context.Context, kind media.Kind, upload *media.Upload, note *entity.Note) (*dto.NoteResponse, error) {
	filePath, err := c.mediaStore.Store(ctx, kind, upload)
	if err != nil {
		return nil, mediaError(kind, err)
	}
	note.FilePath = &filePath

	res, err := c.insert(ctx, note)
	if err != nil {
		if rmErr := c.mediaStore.Remove(context.WithoutCancel(ctx), filePath); rmErr != nil {
			c.logger.Error(noteModule, "Failed to remove media after insert failure", map[string]interface{}{
				"file_path": filePath,
				"error":     rmErr,
			})
		}
		return nil, err
	}

	return res, nil
}

func (c *noteService) insert(ctx context.Context, note *entity.Note) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	now := c.timestamp()
	note.Id = uuid.New()
	note.CreatedAt = now
	note.UpdatedAt = now

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, apperror.Store("failed to save note", err)
	}

	stored, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
	if err != nil {
		return nil, apperror.Store("failed to load note", err)
	}
	if stored == nil {
		return nil, apperror.Store("failed to load note", fmt.Errorf("note %s missing after insert", note.Id))
	}

	c.logger.Info(noteModule, "Note created", map[string]interface{}{
		"note_id": stored.Id.String(),
		"type":    stored.Type.String(),
	})

	return c.mapper.ToResponse(stored), nil
}

func (c *noteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx, specification.MostRecentlyUpdated{})
	if err != nil {
		return nil, apperror.Store("failed to list notes", err)
	}

	return c.mapper.ToResponses(notes), nil
}

func (c *noteService) ListByType(ctx context.Context, noteType string) ([]*dto.NoteResponse, error) {
	req := dto.ListNotesByTypeRequest{Type: noteType}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return nil, apperror.Validation(msgInvalidNoteType)
	}
	t := entity.NoteType(req.Type)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByNoteType{Type: t},
		specification.MostRecentlyUpdated{},
	)
	if err != nil {
		return nil, apperror.Store("failed to list notes", err)
	}

	return c.mapper.ToResponses(notes), nil
}

func (c *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Store("failed to load note", err)
	}
	if note == nil {
		return nil, apperror.NotFound(msgNoteNotFound)
	}

	return c.mapper.ToResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Store("failed to start transaction", err)
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.Store("failed to load note", err)
	}
	if note == nil {
		return nil, apperror.NotFound(msgNoteNotFound)
	}

	// An empty title keeps the old one, same as an absent one
	if req.Title != nil && *req.Title != "" {
		note.Title = *req.Title
	}
	if req.Content.Set {
		note.Content = req.Content.Value
	}

	now := c.timestamp()
	if !now.After(note.UpdatedAt) {
		now = note.UpdatedAt.Add(time.Microsecond)
	}
	note.UpdatedAt = now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperror.Store("failed to update note", err)
	}

	updated, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.Store("failed to load note", err)
	}
	if updated == nil {
		return nil, apperror.NotFound(msgNoteNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Store("failed to commit note update", err)
	}

	return c.mapper.ToResponse(updated), nil
}

func (c *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.Store("failed to load note", err)
	}
	if note == nil {
		return apperror.NotFound(msgNoteNotFound)
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return apperror.Store("failed to delete note", err)
	}

	// The row is gone either way; a stale file is only logged
	if note.Type.HasMedia() && note.FilePath != nil {
		if err := c.mediaStore.Remove(ctx, *note.FilePath); err != nil {
			c.logger.Warn(noteModule, "Failed to remove media file", map[string]interface{}{
				"note_id":   id.String(),
				"file_path": *note.FilePath,
				"error":     err.Error(),
			})
		}
	}

	c.logger.Info(noteModule, "Note deleted", map[string]interface{}{
		"note_id": id.String(),
	})

	return nil
}

func mediaError(kind media.Kind, err error) error {
	switch {
	case errors.Is(err, media.ErrUnsupportedMedia):
		return apperror.UnsupportedMedia(fmt.Sprintf("Only %s files are allowed", kind), err)
	case errors.Is(err, media.ErrPayloadTooLarge):
		return apperror.PayloadTooLarge("File too large", err)
	default:
		return apperror.Store("failed to store media file", err)
	}
}
