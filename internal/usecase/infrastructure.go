package usecase

import "context"

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// ImageStore загружает изображения в объектное хранилище пачкой и умеет
// компенсировать частично выполненную загрузку.
type ImageStore interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}
