package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notetaking-be/internal/bootstrap"
	"notetaking-be/internal/config"
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type testServer struct {
	app       *fiber.App
	uploadDir string
}

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *testServer {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			CorsAllowedOrigins: "*",
		},
		Database: config.DatabaseConfig{
			Driver:     database.DriverSQLite,
			Connection: filepath.Join(dir, "notes.db"),
			LogLevel:   "silent",
		},
		Upload: config.UploadConfig{
			Dir:      filepath.Join(dir, "uploads"),
			MaxBytes: 10 * 1024 * 1024,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	db, err := database.NewGormDB(database.GormConfig{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	container := bootstrap.NewContainer(db, cfg, logger.NewNopLogger())
	return &testServer{
		app:       New(cfg, container).GetApp(),
		uploadDir: cfg.Upload.Dir,
	}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.do(t, req)
}

func (s *testServer) files(t *testing.T) []string {
	t.Helper()

	var files []string
	_ = filepath.Walk(s.uploadDir, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	return files
}

func uploadRequest(t *testing.T, path string, fields map[string]string, fileField, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestTextNoteLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.doJSON(t, fiber.MethodPost, "/api/notes/text", map[string]string{"title": "Shopping", "content": "milk"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.NoteResponse](t, resp)
	assert.Equal(t, "Shopping", created.Title)
	assert.Equal(t, "text", created.Type)
	assert.Nil(t, created.FilePath)

	resp = s.doJSON(t, fiber.MethodPut, "/api/notes/"+created.Id.String(), map[string]string{"title": "Groceries"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decode[dto.NoteResponse](t, resp)
	assert.Equal(t, "Groceries", updated.Title)
	require.NotNil(t, updated.Content)
	assert.Equal(t, "milk", *updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	resp = s.doJSON(t, fiber.MethodGet, "/api/notes", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.NoteResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "Groceries", list[0].Title)

	resp = s.doJSON(t, fiber.MethodDelete, "/api/notes/"+created.Id.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Note deleted successfully", decode[dto.DeleteNoteResponse](t, resp).Message)

	resp = s.doJSON(t, fiber.MethodGet, "/api/notes/"+created.Id.String(), nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, serverutils.ErrorBody{Code: 404, Message: "Note not found"}, decode[serverutils.ErrorBody](t, resp))

	resp = s.doJSON(t, fiber.MethodDelete, "/api/notes/"+created.Id.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateTextNoteAcceptsForm(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(fiber.MethodPost, "/api/notes/text", strings.NewReader("title=Form+note&content=hello"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp := s.do(t, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	note := decode[dto.NoteResponse](t, resp)
	assert.Equal(t, "Form note", note.Title)
	require.NotNil(t, note.Content)
	assert.Equal(t, "hello", *note.Content)
}

func TestUpdateClearsContentWithNull(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.doJSON(t, fiber.MethodPost, "/api/notes/text", map[string]string{"title": "Draft", "content": "tbd"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.NoteResponse](t, resp)

	req := httptest.NewRequest(fiber.MethodPut, "/api/notes/"+created.Id.String(), strings.NewReader(`{"content":null}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp = s.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := decode[dto.NoteResponse](t, resp)
	assert.Equal(t, "Draft", updated.Title)
	assert.Nil(t, updated.Content)
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name    string
		req     func() *http.Request
		status  int
		message string
	}{
		{
			name: "text without title",
			req: func() *http.Request {
				r := httptest.NewRequest(fiber.MethodPost, "/api/notes/text", strings.NewReader(`{"content":"x"}`))
				r.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return r
			},
			status:  fiber.StatusBadRequest,
			message: "Title is required",
		},
		{
			name: "audio without file",
			req: func() *http.Request {
				return uploadRequest(t, "/api/notes/audio", map[string]string{"title": "memo"}, "", "", "", nil)
			},
			status:  fiber.StatusBadRequest,
			message: "Audio file is required",
		},
		{
			name: "image without title",
			req: func() *http.Request {
				return uploadRequest(t, "/api/notes/image", nil, "image", "a.png", "image/png", pngBytes)
			},
			status:  fiber.StatusBadRequest,
			message: "Title is required",
		},
		{
			name: "unknown type",
			req: func() *http.Request {
				return httptest.NewRequest(fiber.MethodGet, "/api/notes/type/video", nil)
			},
			status:  fiber.StatusBadRequest,
			message: "Invalid note type",
		},
		{
			name: "malformed id",
			req: func() *http.Request {
				return httptest.NewRequest(fiber.MethodGet, "/api/notes/not-a-uuid", nil)
			},
			status:  fiber.StatusNotFound,
			message: "Note not found",
		},
		{
			name: "image through audio",
			req: func() *http.Request {
				return uploadRequest(t, "/api/notes/audio", map[string]string{"title": "memo"}, "audio", "a.png", "image/png", pngBytes)
			},
			status:  fiber.StatusUnsupportedMediaType,
			message: "Only audio files are allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, tt.req())
			require.Equal(t, tt.status, resp.StatusCode)

			body := decode[serverutils.ErrorBody](t, resp)
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}

	resp := s.doJSON(t, fiber.MethodGet, "/api/notes", nil)
	assert.Empty(t, decode[[]dto.NoteResponse](t, resp))
	assert.Empty(t, s.files(t))
}

func TestOversizedUploads(t *testing.T) {
	t.Run("body over the request limit", func(t *testing.T) {
		s := newTestServer(t, nil)

		content := bytes.Repeat([]byte{'a'}, 15*1024*1024)
		resp := s.do(t, uploadRequest(t, "/api/notes/audio", map[string]string{"title": "long"}, "audio", "long.mp3", "audio/mpeg", content))
		assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

		resp = s.doJSON(t, fiber.MethodGet, "/api/notes", nil)
		assert.Empty(t, decode[[]dto.NoteResponse](t, resp))
		assert.Empty(t, s.files(t))
	})

	t.Run("file over the media cap", func(t *testing.T) {
		s := newTestServer(t, func(cfg *config.Config) {
			cfg.Upload.MaxBytes = 1024
		})

		content := bytes.Repeat([]byte{'a'}, 4096)
		resp := s.do(t, uploadRequest(t, "/api/notes/audio", map[string]string{"title": "long"}, "audio", "long.mp3", "audio/mpeg", content))
		require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, "File too large", decode[serverutils.ErrorBody](t, resp).Message)
		assert.Empty(t, s.files(t))
	})
}

func TestMediaNoteServedAndDeleted(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, uploadRequest(t, "/api/notes/image",
		map[string]string{"title": "Whiteboard", "content": "sprint plan"},
		"image", "board.png", "image/png", pngBytes))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	note := decode[dto.NoteResponse](t, resp)
	require.NotNil(t, note.FilePath)
	assert.True(t, strings.HasPrefix(*note.FilePath, "uploads/images/"))
	require.NotNil(t, note.Content)
	assert.Equal(t, "sprint plan", *note.Content)

	resp = s.do(t, httptest.NewRequest(fiber.MethodGet, "/"+*note.FilePath, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, served)

	resp = s.doJSON(t, fiber.MethodGet, "/api/notes/type/image", nil)
	require.Len(t, decode[[]dto.NoteResponse](t, resp), 1)

	resp = s.doJSON(t, fiber.MethodDelete, "/api/notes/"+note.Id.String(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, s.files(t))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.doJSON(t, fiber.MethodGet, "/api/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Notes: 0}, decode[dto.HealthResponse](t, resp))
}

func TestClientBuildFallback(t *testing.T) {
	buildDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "index.html"), []byte("<html>notes</html>"), 0644))

	s := newTestServer(t, func(cfg *config.Config) {
		cfg.App.ClientBuildDir = buildDir
	})

	resp := s.do(t, httptest.NewRequest(fiber.MethodGet, "/notes/123", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html>notes</html>", string(body))

	resp = s.do(t, httptest.NewRequest(fiber.MethodGet, "/api/unknown", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
