package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lithammer/shortuuid/v3"
)

// DefaultMaxBytes is the per-file upload cap.
const DefaultMaxBytes int64 = 10 * 1024 * 1024

// PublicPrefix is the URL prefix the upload root is served under.
const PublicPrefix = "uploads"

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrInvalidPath      = errors.New("path outside media root")
)

type Kind string

const (
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

// Dir is the subdirectory files of this kind are written to.
func (k Kind) Dir() string {
	if k == KindImage {
		return "images"
	}
	return "audio"
}

func (k Kind) mimePrefix() string {
	return string(k) + "/"
}

// Upload describes one incoming file. Size may be -1 when unknown.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Store interface {
	Store(ctx context.Context, kind Kind, upload *Upload) (string, error)
	Remove(ctx context.Context, relativePath string) error
}

type LocalStore struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

func NewLocalStore(root string, maxBytes int64) *LocalStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &LocalStore{
		root:     root,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) MaxBytes() int64 {
	return s.maxBytes
}

// Store validates the upload against kind and the size cap, then writes it under
// <root>/<kind dir>/ and returns the public relative path ("uploads/audio/...").
func (s *LocalStore) Store(ctx context.Context, kind Kind, upload *Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if upload == nil || upload.Reader == nil {
		return "", fmt.Errorf("empty upload")
	}
	if upload.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrPayloadTooLarge, upload.Size, s.maxBytes)
	}

	// Peek enough bytes for content sniffing without consuming the stream
	br := bufio.NewReaderSize(upload.Reader, 3072)
	head, err := br.Peek(3072)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", fmt.Errorf("read upload: %w", err)
	}

	contentType, detected := resolveContentType(upload.ContentType, head)
	if !strings.HasPrefix(contentType, kind.mimePrefix()) {
		return "", fmt.Errorf("%w: %q is not %s", ErrUnsupportedMedia, contentType, strings.TrimSuffix(kind.mimePrefix(), "/"))
	}

	dir := filepath.Join(s.root, kind.Dir())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := s.generateName(upload.Filename, detected)
	dstPath := filepath.Join(dir, filename)
	partPath := dstPath + ".part"

	if err := s.writeLimited(partPath, br); err != nil {
		_ = os.Remove(partPath)
		return "", err
	}
	if err := os.Rename(partPath, dstPath); err != nil {
		_ = os.Remove(partPath)
		return "", err
	}

	return path.Join(PublicPrefix, kind.Dir(), filename), nil
}

func (s *LocalStore) writeLimited(dstPath string, src io.Reader) error {
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	// One byte past the cap tells an oversized stream apart from an exact fit
	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return err
	}
	if n > s.maxBytes {
		return fmt.Errorf("%w: stream exceeds limit of %d bytes", ErrPayloadTooLarge, s.maxBytes)
	}

	return dst.Sync()
}

// generateName is "<unix millis>-<short uuid><ext>".
func (s *LocalStore) generateName(original string, detected *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if ext == "" && detected != nil {
		ext = detected.Extension()
	}
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), shortuuid.New(), ext)
}

// Remove deletes a file previously returned by Store. A missing file is not an error.
func (s *LocalStore) Remove(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(relativePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) resolve(relativePath string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(relativePath))
	clean = strings.TrimPrefix(clean, "/")
	clean = strings.TrimPrefix(clean, PublicPrefix+"/")

	if clean == "" || clean == "." || clean == PublicPrefix {
		return "", ErrInvalidPath
	}

	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(clean))

	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidPath
	}
	return full, nil
}

// resolveContentType trusts the declared type unless it is missing or generic,
// in which case the leading bytes decide.
func resolveContentType(declared string, head []byte) (string, *mimetype.MIME) {
	detected := mimetype.Detect(head)

	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}

	if declared == "" || declared == "application/octet-stream" {
		ct := detected.String()
		if i := strings.IndexByte(ct, ';'); i >= 0 {
			ct = ct[:i]
		}
		return ct, detected
	}

	if !strings.HasPrefix(detected.String(), strings.SplitN(declared, "/", 2)[0]+"/") {
		// Declared type wins, but the sniffed extension is meaningless for it
		return declared, nil
	}
	return declared, detected
}
