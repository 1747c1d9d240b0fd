package minio

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
)

// ImageRepo реализует репозиторий изображений поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает изображение в MinIO и возвращает ключ объекта.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	reader := bytes.NewReader(image.Bytes)

	info, err := i.mc.PutObject(ctx, i.cfg.BucketName, image.ObjectKey, reader, *image.Size, minio.PutObjectOptions{
		ContentType: *image.ContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// PresignPut выдаёт подписанную ссылку на прямую загрузку объекта.
// Content-Type входит в подпись: загрузка с другим типом будет отклонена.
func (i *ImageRepo) PresignPut(ctx context.Context, objectKey string, contentType string) (string, error) {
	header := http.Header{}
	header.Set("Content-Type", contentType)

	presigned, err := i.mc.PresignHeader(ctx, http.MethodPut, i.cfg.BucketName, objectKey,
		i.cfg.PresignExpiry, url.Values{}, header)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return presigned.String(), nil
}
