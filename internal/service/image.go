package service

import (
	"context"
	"strings"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/imagestore"
	"storefront-backend/internal/metrics"
)

type ImageService interface {
	Get(ctx context.Context, path string) (string, error)
	Put(ctx context.Context, path string, dataURL string) error
}

type imageServiceImpl struct {
	store imagestore.Store
}

func NewImageService(store imagestore.Store) ImageService {
	return &imageServiceImpl{
		store: store,
	}
}

func (s *imageServiceImpl) Get(ctx context.Context, path string) (string, error) {
	key := normalizePath(path)
	if key == "" {
		return "", apperr.E(apperr.KindInvalidRequest, "path is required", nil)
	}

	dataURL, err := s.store.Get(ctx, key)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			metrics.ImageStoreMissesTotal.Inc()
		}
		return "", err
	}
	return dataURL, nil
}

func (s *imageServiceImpl) Put(ctx context.Context, path string, dataURL string) error {
	key := normalizePath(path)
	if key == "" {
		return apperr.E(apperr.KindInvalidRequest, "path is required", nil)
	}
	if !strings.HasPrefix(dataURL, "data:") {
		return apperr.E(apperr.KindInvalidRequest, "dataUrl must be a data URL", nil)
	}
	return s.store.Put(ctx, key, dataURL)
}

// normalizePath strips one leading slash and one images/ prefix so that
// "/images/foo.png", "images/foo.png" and "foo.png" all address the same key.
func normalizePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "images/")
	return path
}
