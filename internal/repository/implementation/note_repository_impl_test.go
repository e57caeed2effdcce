package implementation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"notetaking-be/internal/entity"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewGormDB(database.GormConfig{
		Driver:   database.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "notes.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func newNote(title string, noteType entity.NoteType, updatedAt time.Time) *entity.Note {
	content := title + " content"
	return &entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Content:   &content,
		Type:      noteType,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestNoteRepositoryCreateAndFindOne(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	filePath := "uploads/images/1-abc.png"
	note := newNote("Whiteboard", entity.NoteTypeImage, time.Now().UTC())
	note.FilePath = &filePath

	require.NoError(t, repo.Create(ctx, note))

	found, err := repo.FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, note.Id, found.Id)
	assert.Equal(t, "Whiteboard", found.Title)
	assert.Equal(t, entity.NoteTypeImage, found.Type)
	require.NotNil(t, found.FilePath)
	assert.Equal(t, filePath, *found.FilePath)
	assert.WithinDuration(t, note.CreatedAt, found.CreatedAt, time.Millisecond)
}

func TestNoteRepositoryFindOneAbsent(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))

	found, err := repo.FindOne(context.Background(), specification.ByID{ID: uuid.New()})
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestNoteRepositoryFindAllOrderingAndType(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	base := time.Now().UTC().Add(-time.Hour)
	oldest := newNote("oldest", entity.NoteTypeText, base)
	middle := newNote("middle", entity.NoteTypeAudio, base.Add(time.Minute))
	newest := newNote("newest", entity.NoteTypeText, base.Add(2*time.Minute))

	for _, n := range []*entity.Note{middle, oldest, newest} {
		require.NoError(t, repo.Create(ctx, n))
	}

	all, err := repo.FindAll(ctx, specification.MostRecentlyUpdated{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(all))

	texts, err := repo.FindAll(ctx,
		specification.ByNoteType{Type: entity.NoteTypeText},
		specification.MostRecentlyUpdated{},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "oldest"}, titles(texts))

	count, err := repo.Count(ctx, specification.ByNoteType{Type: entity.NoteTypeAudio})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNoteRepositoryUpdateTouchesOnlyEditableColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	created := time.Now().UTC().Add(-time.Minute)
	filePath := "uploads/audio/1-abc.mp3"
	note := newNote("Voice memo", entity.NoteTypeAudio, created)
	note.Content = nil
	note.FilePath = &filePath
	require.NoError(t, repo.Create(ctx, note))

	updatedAt := time.Now().UTC()
	content := "transcript"
	require.NoError(t, repo.Update(ctx, &entity.Note{
		Id:        note.Id,
		Title:     "Renamed memo",
		Content:   &content,
		Type:      entity.NoteTypeText, // ignored
		UpdatedAt: updatedAt,
	}))

	found, err := repo.FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "Renamed memo", found.Title)
	require.NotNil(t, found.Content)
	assert.Equal(t, "transcript", *found.Content)
	assert.Equal(t, entity.NoteTypeAudio, found.Type)
	require.NotNil(t, found.FilePath)
	assert.Equal(t, filePath, *found.FilePath)
	assert.True(t, found.UpdatedAt.After(found.CreatedAt))
}

func TestNoteRepositoryUpdateMissingIsSilent(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))

	err := repo.Update(context.Background(), &entity.Note{
		Id:        uuid.New(),
		Title:     "ghost",
		UpdatedAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
}

func TestNoteRepositoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	note := newNote("Shopping", entity.NoteTypeText, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, note))

	require.NoError(t, repo.Delete(ctx, note.Id))
	require.NoError(t, repo.Delete(ctx, note.Id))

	found, err := repo.FindOne(ctx, specification.ByID{ID: note.Id})
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func titles(notes []*entity.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
