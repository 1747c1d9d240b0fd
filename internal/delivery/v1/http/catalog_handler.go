package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

type productResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	Price          int64    `json:"price"`
	DiscountPrice  *int64   `json:"discount_price,omitempty"`
	EffectivePrice int64    `json:"effective_price"`
	Images         []string `json:"images"`
	InStock        bool     `json:"in_stock"`
	IsFeatured     bool     `json:"is_featured"`
	Category       string   `json:"category"`
}

type listProductsResponse struct {
	Products     []productResponse `json:"products"`
	TotalMatched int               `json:"total_matched"`
	HasMore      bool              `json:"has_more"`
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// listProducts
//
//	@Summary		Список товаров каталога
//	@Description	Применяет фильтр по категории, поиск, сортировку по цене и порог показа
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query		string	false	"Slug категории или all"
//	@Param			q			query		string	false	"Поисковая строка"
//	@Param			sort		query		string	false	"none | low-high | high-low"
//	@Param			show_all	query		bool	false	"Показать весь отфильтрованный список"
//	@Param			viewport	query		int		false	"Ширина вьюпорта клиента в px"
//	@Success		200			{object}	listProductsResponse
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	showAll, _ := strconv.ParseBool(q.Get("show_all"))
	viewport, _ := strconv.Atoi(q.Get("viewport"))

	res, err := h.catalogUsecase.ListProducts(r.Context(), &usecase.ListProductsReq{
		Category:      q.Get("category"),
		Query:         q.Get("q"),
		Sort:          q.Get("sort"),
		ShowAll:       showAll,
		ViewportWidth: viewport,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toListProductsResponse(res))
}

// getProduct
//
//	@Summary	Карточка товара по слагу
//	@Tags		catalog
//	@Produce	json
//	@Param		slug	path		string	true	"Slug товара"
//	@Success	200		{object}	productResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/{slug} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// listCategories
//
//	@Summary	Активные категории каталога
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}	categoryResponse
//	@Router		/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, toCategoryResponse(&categories[i]))
	}

	WriteSuccess(w, http.StatusOK, result)
}

func toProductResponse(p *usecase.ProductInfo) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		DiscountPrice:  p.DiscountPrice,
		EffectivePrice: p.EffectivePrice,
		Images:         p.Images,
		InStock:        p.InStock,
		IsFeatured:     p.IsFeatured,
		Category:       p.Category,
	}
}

func toListProductsResponse(res *usecase.ListProductsRes) listProductsResponse {
	products := make([]productResponse, 0, len(res.Products))
	for i := range res.Products {
		products = append(products, toProductResponse(&res.Products[i]))
	}

	return listProductsResponse{
		Products:     products,
		TotalMatched: res.TotalMatched,
		HasMore:      res.HasMore,
	}
}

func toCategoryResponse(c *usecase.CategoryInfo) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}
