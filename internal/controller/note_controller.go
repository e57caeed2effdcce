package controller

import (
	"mime/multipart"

	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/service"
	"notetaking-be/pkg/media"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	ListByType(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	CreateText(ctx *fiber.Ctx) error
	CreateAudio(ctx *fiber.Ctx) error
	CreateImage(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", c.List)
	h.Get("type/:type", c.ListByType)
	h.Get(":id", c.Show)
	h.Post("text", c.CreateText)
	h.Post("audio", c.CreateAudio)
	h.Post("image", c.CreateImage)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) ListByType(ctx *fiber.Ctx) error {
	res, err := c.noteService.ListByType(ctx.UserContext(), ctx.Params("type"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := parseNoteId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) CreateText(ctx *fiber.Ctx) error {
	var req dto.CreateTextNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.CreateText(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) CreateAudio(ctx *fiber.Ctx) error {
	var req dto.CreateAudioNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	upload, closeFn, err := formUpload(ctx, string(media.KindAudio))
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := c.noteService.CreateAudio(ctx.UserContext(), &req, upload)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) CreateImage(ctx *fiber.Ctx) error {
	var req dto.CreateImageNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	upload, closeFn, err := formUpload(ctx, string(media.KindImage))
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := c.noteService.CreateImage(ctx.UserContext(), &req, upload)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := parseNoteId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := parseNoteId(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(dto.DeleteNoteResponse{Message: "Note deleted successfully"})
}

// parseNoteId treats a malformed id like an unknown one.
func parseNoteId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Note not found")
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

// formUpload opens the multipart file in field. A missing file yields a nil upload so
// the service can report it with its own message.
func formUpload(ctx *fiber.Ctx, field string) (*media.Upload, func(), error) {
	noop := func() {}

	fh, err := ctx.FormFile(field)
	if err != nil {
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, apperror.Store("failed to open upload", err)
	}

	return fileUpload(fh, f), func() { _ = f.Close() }, nil
}

func fileUpload(fh *multipart.FileHeader, f multipart.File) *media.Upload {
	return &media.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Reader:      f,
	}
}
