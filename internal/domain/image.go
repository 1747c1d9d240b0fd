package domain

// Image описывает объект изображения для загрузки в S3-хранилище.
type Image struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	Bytes     []byte
	// Size равный -1 означает поток неизвестной длины; в этом случае
	// клиент хранилища выделяет буфер максимального размера.
	Size        *int64
	ContentType *string // например "image/jpeg"
}

func NewImage(id, bucket, objectKey string, data []byte, size *int64, contentType *string) *Image {
	return &Image{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Bytes:       data,
		Size:        size,
		ContentType: contentType,
	}
}
