package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sobnin/sobnin-backend/pkg/config"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// StoredFile describes an uploaded image as exposed to clients.
type StoredFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Service stores menu and category images on the local media directory.
type Service interface {
	Store(ctx context.Context, fileName string, src io.Reader) (*StoredFile, error)
}

type service struct {
	cfg config.MediaConfig
}

// NewService builds a media service writing under the configured directory.
func NewService(cfg config.MediaConfig) (Service, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("media directory required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	return &service{cfg: cfg}, nil
}

func (s *service) Store(ctx context.Context, fileName string, src io.Reader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type").WithDetails(map[string]any{"extension": ext})
	}

	name := uuid.NewString() + ext
	dest := filepath.Join(s.cfg.Dir, name)

	out, err := os.Create(dest)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create media file")
	}
	defer out.Close()

	written, err := io.Copy(out, src)
	if err != nil {
		os.Remove(dest)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write media file")
	}

	return &StoredFile{Path: "/media/" + name, Size: written}, nil
}
