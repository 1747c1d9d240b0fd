package infrastructure

import "github.com/sainaman-tech/storefront-backend/pkg/e"

// GetExtensionFromMIME сопоставляет MIME-тип изображения расширению файла.
// Витрина принимает только jpeg, png и webp.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "", e.ErrUnsupportedMediaType
	}
}
