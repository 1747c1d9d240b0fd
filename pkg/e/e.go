package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
	ErrInternalServerError  = fmt.Errorf("internal server error")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrSlugRequired         = fmt.Errorf("slug is required")
	ErrCategoryRequired     = fmt.Errorf("category name is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidQuantity      = fmt.Errorf("invalid quantity")
	ErrEmptyCart            = fmt.Errorf("cart is empty")
	ErrShippingRequired     = fmt.Errorf("shipping details are required")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")

	// 401 / 403
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrForbidden          = fmt.Errorf("forbidden")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrOrderNotFound    = fmt.Errorf("order not found")
	ErrUserNotFound     = fmt.Errorf("user not found")

	// 409 Conflict
	ErrEmailTaken = fmt.Errorf("email is already registered")
	ErrSlugTaken  = fmt.Errorf("slug is already taken")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
