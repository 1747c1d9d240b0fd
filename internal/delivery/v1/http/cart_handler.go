package http

import (
	"net/http"

	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type cartLineResponse struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Image          string `json:"image"`
	Price          int64  `json:"price"`
	DiscountPrice  *int64 `json:"discount_price,omitempty"`
	EffectivePrice int64  `json:"effective_price"`
	Quantity       int64  `json:"quantity"`
	LineTotal      int64  `json:"line_total"`
}

type cartResponse struct {
	Token      string             `json:"token"`
	Lines      []cartLineResponse `json:"lines"`
	TotalCount int64              `json:"total_count"`
	TotalPrice int64              `json:"total_price"`
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type updateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// getCart
//
//	@Summary	Текущее состояние корзины
//	@Tags		cart
//	@Produce	json
//	@Param		X-Cart-Token	header		string	false	"Токен корзины устройства"
//	@Success	200				{object}	cartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.GetCart(r.Context(), cartToken(r))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Существующая позиция получает +1 и свежий снимок цен
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-Token	header		string			false	"Токен корзины устройства"
//	@Param			request			body		addItemRequest	true	"Идентификатор товара"
//	@Success		200				{object}	cartResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUsecase.AddToCart(r.Context(), cartToken(r), req.ProductID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// updateQuantity
//
//	@Summary		Выставить количество позиции
//	@Description	Нулевое количество удаляет позицию; отрицательное обрезается до нуля
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-Token	header		string					false	"Токен корзины устройства"
//	@Param			productID		path		int						true	"Идентификатор товара"
//	@Param			request			body		updateQuantityRequest	true	"Новое количество"
//	@Success		200				{object}	cartResponse
//	@Router			/cart/items/{productID} [patch]
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	// Отрицательные количества трактуются как удаление позиции
	if req.Quantity < 0 {
		req.Quantity = 0
	}

	cart, err := h.cartUsecase.UpdateQuantity(r.Context(), cartToken(r), productID, req.Quantity)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// removeItem
//
//	@Summary	Удалить позицию из корзины
//	@Tags		cart
//	@Produce	json
//	@Param		X-Cart-Token	header		string	false	"Токен корзины устройства"
//	@Param		productID		path		int		true	"Идентификатор товара"
//	@Success	200				{object}	cartResponse
//	@Router		/cart/items/{productID} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUsecase.RemoveItem(r.Context(), cartToken(r), productID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// clearCart
//
//	@Summary	Опустошить корзину
//	@Tags		cart
//	@Param		X-Cart-Token	header	string	false	"Токен корзины устройства"
//	@Success	204
//	@Router		/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartUsecase.ClearCart(r.Context(), cartToken(r)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCartResponse(cart *usecase.CartRes) cartResponse {
	lines := make([]cartLineResponse, 0, len(cart.Lines))
	for i := range cart.Lines {
		line := &cart.Lines[i]
		lines = append(lines, cartLineResponse{
			ProductID:      line.ProductID,
			Name:           line.Name,
			Slug:           line.Slug,
			Image:          line.Image,
			Price:          line.Price,
			DiscountPrice:  line.DiscountPrice,
			EffectivePrice: line.EffectivePrice,
			Quantity:       line.Quantity,
			LineTotal:      line.LineTotal,
		})
	}

	return cartResponse{
		Token:      cart.Token,
		Lines:      lines,
		TotalCount: cart.TotalCount,
		TotalPrice: cart.TotalPrice,
	}
}
