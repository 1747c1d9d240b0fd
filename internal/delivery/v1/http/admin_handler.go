package http

import (
	"net/http"

	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUC
	imageStore   usecase.ImageStore
	logger       logger.Logger
}

func NewAdminHandler(adminUsecase usecase.AdminUC, imageStore usecase.ImageStore, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		imageStore:   imageStore,
		logger:       logger,
	}
}

// Цены принимаются строками вида "599.99" и хранятся в центах.
type saveProductRequest struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	DiscountPrice string   `json:"discount_price,omitempty"`
	Images        []string `json:"images"`
	InStock       bool     `json:"in_stock"`
	IsFeatured    bool     `json:"is_featured"`
	CategoryID    *int64   `json:"category_id,omitempty"`
}

type saveCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type presignUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type presignUploadResponse struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int64  `json:"expires_in"`
}

type uploadImagesResponse struct {
	Keys []string `json:"keys"`
}

// createProduct
//
//	@Summary	Создать товар
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		saveProductRequest	true	"Товар"
//	@Success	201		{object}	productResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/admin/products [post]
func (h *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSaveProduct(r, 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := h.adminUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary	Обновить товар
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int					true	"Идентификатор товара"
//	@Param		request	body		saveProductRequest	true	"Товар"
//	@Success	200		{object}	productResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/admin/products/{id} [put]
func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := h.parseSaveProduct(r, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := h.adminUsecase.UpdateProduct(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Архивировать товар
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Идентификатор товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/products/{id} [delete]
func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.adminUsecase.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createCategory
//
//	@Summary	Создать категорию
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		saveCategoryRequest	true	"Категория"
//	@Success	201		{object}	categoryResponse
//	@Router		/admin/categories [post]
func (h *AdminHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req saveCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	category, err := h.adminUsecase.CreateCategory(r.Context(), &usecase.SaveCategoryReq{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCategoryResponse(category))
}

// updateCategory
//
//	@Summary	Обновить категорию
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int					true	"Идентификатор категории"
//	@Param		request	body		saveCategoryRequest	true	"Категория"
//	@Success	200		{object}	categoryResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/admin/categories/{id} [put]
func (h *AdminHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req saveCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	category, err := h.adminUsecase.UpdateCategory(r.Context(), &usecase.SaveCategoryReq{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(category))
}

// deleteCategory
//
//	@Summary	Деактивировать категорию
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Идентификатор категории"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/categories/{id} [delete]
func (h *AdminHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.adminUsecase.DeleteCategory(r.Context(), id); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// presignUpload
//
//	@Summary		Подписать прямую загрузку изображения
//	@Description	Возвращает ссылку для PUT-загрузки напрямую в хранилище
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		presignUploadRequest	true	"Имя файла и MIME-тип"
//	@Success		200		{object}	presignUploadResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/admin/uploads/presign [post]
func (h *AdminHandler) presignUpload(w http.ResponseWriter, r *http.Request) {
	var req presignUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.adminUsecase.PresignUpload(r.Context(), &usecase.PresignUploadReq{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, presignUploadResponse{
		URL:       res.URL,
		ObjectKey: res.ObjectKey,
		ExpiresIn: res.ExpiresIn,
	})
}

// uploadImages
//
//	@Summary		Загрузить изображения через бэкенд
//	@Description	Принимает multipart-форму; при ошибке частично загруженные объекты удаляются
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			prefix	formData	string	false	"Каталог в бакете (обычно slug товара)"
//	@Param			images	formData	file	true	"Файлы изображений"
//	@Success		201		{object}	uploadImagesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/admin/uploads [post]
func (h *AdminHandler) uploadImages(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	prefix := r.FormValue("prefix")
	if prefix == "" {
		prefix = "uploads"
	}

	res, err := h.imageStore.UploadImages(r.Context(), &usecase.UploadImagesReq{
		Prefix: prefix,
		Images: images,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, uploadImagesResponse{Keys: res.Keys})
}

func (h *AdminHandler) parseSaveProduct(r *http.Request, id int64) (*usecase.SaveProductReq, error) {
	var req saveProductRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	price, err := parsePriceToCents(req.Price)
	if err != nil {
		return nil, err
	}

	discountPrice, err := parseOptionalPrice(req.DiscountPrice)
	if err != nil {
		return nil, err
	}

	return &usecase.SaveProductReq{
		ID:            id,
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         price,
		DiscountPrice: discountPrice,
		Images:        req.Images,
		InStock:       req.InStock,
		IsFeatured:    req.IsFeatured,
		CategoryID:    req.CategoryID,
	}, nil
}
