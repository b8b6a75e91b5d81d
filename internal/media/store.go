// Package media persists uploaded files under the upload directory and turns
// a domain.MediaSource into the URL stored on an entity.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dom/studio-api/internal/domain"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Kind restricts which content types an upload may have
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("uploaded file is empty")
)

var allowedTypes = map[Kind]map[string]string{
	KindImage: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	},
	KindVideo: {
		"video/mp4":       ".mp4",
		"video/webm":      ".webm",
		"video/quicktime": ".mov",
	},
}

type Store struct {
	dir       string
	urlPrefix string
	thumbs    *Thumbnailer
	now       func() time.Time
}

// NewStore creates dir if needed. Files are served by the static handler
// mounted at urlPrefix.
func NewStore(dir, urlPrefix string, thumbs *Thumbnailer) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		thumbs:    thumbs,
		now:       time.Now,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Resolve turns src into stored media. A nil src resolves to nil so callers
// can tell "nothing supplied" apart from an empty URL.
func (s *Store) Resolve(ctx context.Context, src domain.MediaSource, kind Kind) (*domain.StoredMedia, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case domain.RemoteURL:
		u := strings.TrimSpace(string(v))
		if u == "" {
			return nil, nil
		}
		return &domain.StoredMedia{URL: u}, nil
	case domain.UploadedFile:
		return s.Save(ctx, v, kind)
	case *domain.UploadedFile:
		return s.Save(ctx, *v, kind)
	default:
		return nil, fmt.Errorf("unknown media source %T", src)
	}
}

// Save writes f to <dir>/<yyyy>/<mm>/<uuid><ext>. The extension comes from
// the sniffed content type, never from the client's file name.
func (s *Store) Save(ctx context.Context, f domain.UploadedFile, kind Kind) (*domain.StoredMedia, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyFile
	}
	head = head[:n]

	mimeType := http.DetectContentType(head)
	if mimeType == "application/octet-stream" && f.ContentType != "" {
		mimeType = f.ContentType
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	ext, ok := allowedTypes[kind][mimeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an accepted %s type", ErrUnsupportedType, mimeType, kind)
	}

	id := uuid.New().String()
	relDir := s.now().Format("2006/01")
	relPath := path.Join(relDir, id+ext)
	absPath := filepath.Join(s.dir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("create storage path: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	size, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), f.Body))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(absPath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	stored := &domain.StoredMedia{
		URL:      s.urlPrefix + "/" + relPath,
		Filename: filepath.Base(f.Filename),
		MimeType: mimeType,
		Size:     size,
		Written:  true,
	}

	if kind == KindImage && s.thumbs != nil {
		thumbRel := path.Join(relDir, id+"_thumb.jpg")
		thumbAbs := filepath.Join(s.dir, filepath.FromSlash(thumbRel))
		if err := s.thumbs.Create(absPath, thumbAbs); err != nil {
			log.WithFields(log.Fields{"file": relPath, "error": err}).Warn("thumbnail generation failed")
		} else {
			stored.ThumbnailURL = s.urlPrefix + "/" + thumbRel
		}
	}

	log.WithFields(log.Fields{
		"file":      relPath,
		"mime_type": mimeType,
		"size":      size,
	}).Info("media stored")

	return stored, nil
}

// Discard removes files written for m. Used when persisting the owning entity
// fails after the upload was already saved. URLs supplied by the caller are
// left alone, even when they point into the upload directory.
func (s *Store) Discard(m *domain.StoredMedia) {
	if m == nil || !m.Written {
		return
	}
	for _, u := range []string{m.URL, m.ThumbnailURL} {
		if p, ok := s.localPath(u); ok {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.WithFields(log.Fields{"file": p, "error": err}).Warn("failed to discard media")
			}
		}
	}
}

func (s *Store) localPath(u string) (string, bool) {
	if u == "" || !strings.HasPrefix(u, s.urlPrefix+"/") {
		return "", false
	}
	rel := path.Clean("/" + strings.TrimPrefix(u, s.urlPrefix+"/"))
	return filepath.Join(s.dir, filepath.FromSlash(rel)), true
}
