package imagestore

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

// Store downloads recipe images and keeps them on local disk, one file per
// recipe. Re-downloads overwrite in place.
type Store interface {
	// Download fetches sourceURL and stores it under the recipe's key.
	// The provider token is forwarded since recipe managers protect their
	// media endpoints. Returns the storage key and detected mime type.
	Download(ctx context.Context, recipeID uuid.UUID, sourceURL, authToken string) (key, mimeType string, err error)
	// Path resolves a storage key to the absolute file path.
	Path(key string) string
	Delete(key string) error
}

type store struct {
	dir  string
	http *resty.Client
	log  *logger.Logger
}

func NewStore(dir string, logg *logger.Logger) (Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	rc := resty.New().SetTimeout(30 * time.Second)
	return &store{dir: dir, http: rc, log: logg.With("client", "ImageStore")}, nil
}

func (s *store) Download(ctx context.Context, recipeID uuid.UUID, sourceURL, authToken string) (string, string, error) {
	req := s.http.R().SetContext(ctx)
	if authToken != "" {
		req.SetAuthToken(authToken)
	}
	resp, err := req.Get(sourceURL)
	if err != nil {
		return "", "", fmt.Errorf("download image: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", "", fmt.Errorf("download image: status %d", resp.StatusCode())
	}
	body := resp.Body()
	if len(body) == 0 {
		return "", "", fmt.Errorf("download image: empty body")
	}

	mimeType := resp.Header().Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(mimeType)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/webp"
	}

	key := fmt.Sprintf("recipes/%s%s", recipeID, extFor(mimeType))
	if err := os.WriteFile(s.Path(key), body, 0o644); err != nil {
		return "", "", fmt.Errorf("write image: %w", err)
	}
	return key, mimeType, nil
}

func (s *store) Path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}

func (s *store) Delete(key string) error {
	err := os.Remove(s.Path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func extFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ".webp"
	}
}
