package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// cartTokenHeader — заголовок с токеном корзины устройства.
// Сервер возвращает его в теле ответа корзины; клиент хранит и передаёт.
const cartTokenHeader = "X-Cart-Token"

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrProductNameRequired):
		return http.StatusBadRequest, e.ErrProductNameRequired.Error()
	case errors.Is(err, e.ErrSlugRequired):
		return http.StatusBadRequest, e.ErrSlugRequired.Error()
	case errors.Is(err, e.ErrCategoryRequired):
		return http.StatusBadRequest, e.ErrCategoryRequired.Error()
	case errors.Is(err, e.ErrPriceMustBePositive):
		return http.StatusBadRequest, e.ErrPriceMustBePositive.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrEmptyCart):
		return http.StatusBadRequest, e.ErrEmptyCart.Error()
	case errors.Is(err, e.ErrShippingRequired):
		return http.StatusBadRequest, e.ErrShippingRequired.Error()
	case errors.Is(err, e.ErrNoImages):
		return http.StatusBadRequest, e.ErrNoImages.Error()
	case errors.Is(err, e.ErrTooManyImages):
		return http.StatusBadRequest, e.ErrTooManyImages.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, e.ErrOrderNotFound.Error()
	case errors.Is(err, e.ErrUserNotFound):
		return http.StatusNotFound, e.ErrUserNotFound.Error()
	case errors.Is(err, e.ErrEmailTaken):
		return http.StatusConflict, e.ErrEmailTaken.Error()
	case errors.Is(err, e.ErrSlugTaken):
		return http.StatusConflict, e.ErrSlugTaken.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON разбирает тело запроса в dst, отклоняя пустое или битое тело.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return nil
}

// cartToken возвращает токен корзины из заголовка запроса.
func cartToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(cartTokenHeader))
}

// bearerToken извлекает bearer-токен из заголовка Authorization.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}

// pathID разбирает числовой сегмент пути.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrStatusBadRequest
	}

	return id, nil
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("price is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000).Mul(decimal.NewFromInt(100))
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

// parseOptionalPrice разбирает необязательную цену (скидку); пустая строка — nil.
func parseOptionalPrice(s string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	cents, err := parsePriceToCents(s)
	if err != nil {
		return nil, err
	}

	return &cents, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.ErrExpectedMultipart
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseImages(files []*multipart.FileHeader) ([]usecase.UploadImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.UploadImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}

		images = append(images, usecase.UploadImage{
			Name:     fh.Filename,
			MimeType: mimeType,
			Size:     int64(len(data)),
			Data:     data,
		})
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
