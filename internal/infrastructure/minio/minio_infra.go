package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/internal/infrastructure"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/jitter"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"

	"github.com/google/uuid"
)

// MinioInfrastructure управляет загрузкой и очисткой изображений товаров в MinIO.
type MinioInfrastructure struct {
	imageRepo   usecase.ImageRepository
	minioCfg    *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(
	imageRepo usecase.ImageRepository,
	minioCfg *cfg.MinIOCfg,
	logger logger.Logger,
	shutdownCtx context.Context,
) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:   imageRepo,
		minioCfg:    minioCfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// UploadImages загружает изображения параллельно с ограничением одновременных
// операций. Первая ошибка отменяет остальные загрузки и запускает фоновую
// очистку уже записанных объектов.
func (m *MinioInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadImagesReq) (*usecase.UploadImagesRes, error) {
	const op = "MinioInfrastructure.UploadImages"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keyCh := make(chan string, len(req.Images))
	errCh := make(chan error, len(req.Images))
	sem := make(chan struct{}, m.minioCfg.UploadImagesLimit)

	var uploadWg sync.WaitGroup
	for _, image := range req.Images {
		uploadWg.Add(1)
		go func() {
			defer uploadWg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
			if err != nil {
				errCh <- fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err)
				return
			}

			imageID := uuid.NewString()
			objKey := fmt.Sprintf("%s/%s-%s.%s", req.Prefix, image.Name, imageID, ext)
			newImage := domain.NewImage(imageID, m.minioCfg.BucketName, objKey, image.Data, &image.Size, &image.MimeType)

			key, err := m.imageRepo.Upload(ctx, newImage)
			if err != nil {
				errCh <- fmt.Errorf("upload %s failed: %w", image.Name, err)
				return
			}

			keyCh <- key
		}()
	}

	go func() {
		uploadWg.Wait()
		close(errCh)
		close(keyCh)
	}()

	keys := make([]string, 0, len(req.Images))
	done := false
	defer func() {
		if !done && len(keys) > 0 {
			m.wg.Add(1)
			go m.cleanupUploadedKeys(keys)
		}
	}()

	for completed := 0; completed < len(req.Images); {
		select {
		case key, ok := <-keyCh:
			if ok {
				keys = append(keys, key)
				completed++
			}
		case err, ok := <-errCh:
			if ok {
				cancel()
				return nil, e.Wrap(op, err)
			}
		case <-ctx.Done():
			cancel()
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	done = true
	return usecase.NewUploadImagesRes(keys), nil
}

// CleanupImages запускает фоновую очистку указанных ключей.
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет объекты с экспоненциальным отступлением и джиттером.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: cleaning up %d uploaded keys", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	const maxAttempts = 3
	for _, key := range keys {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if err := m.imageRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < maxAttempts-1 {
				sleepTime := jitter.ExponentialBackoff(time.Second, 10*time.Second, attempt, jitter.DefaultJitter)
				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
