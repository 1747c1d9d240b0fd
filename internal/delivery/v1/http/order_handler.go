package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type checkoutRequest struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type checkoutResponse struct {
	OrderID string `json:"order_id"`
	Total   int64  `json:"total"`
}

type orderItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

type orderResponse struct {
	OrderID      string              `json:"order_id"`
	CustomerName string              `json:"customer_name"`
	Email        string              `json:"email"`
	Address      string              `json:"address"`
	Total        int64               `json:"total"`
	Status       string              `json:"status"`
	Items        []orderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
}

// checkout
//
//	@Summary		Оформить заказ из корзины
//	@Description	Позиции корзины фиксируются по эффективной цене и разворачиваются в единичные записи
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-Token	header		string			true	"Токен корзины устройства"
//	@Param			request			body		checkoutRequest	true	"Данные доставки"
//	@Success		201				{object}	checkoutResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var userID int64
	if user := userFromCtx(r.Context()); user != nil {
		userID = user.ID
	}

	res, err := h.orderUsecase.Checkout(r.Context(), &usecase.CheckoutReq{
		CartToken:    cartToken(r),
		UserID:       userID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, checkoutResponse{
		OrderID: res.OrderID,
		Total:   res.Total,
	})
}

// getOrder
//
//	@Summary	Заказ по публичному идентификатору
//	@Tags		orders
//	@Produce	json
//	@Param		publicID	path		string	true	"Публичный идентификатор заказа"
//	@Success	200			{object}	orderResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/orders/{publicID} [get]
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUsecase.GetOrder(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// listMyOrders
//
//	@Summary	Заказы текущего пользователя
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		orderResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/orders [get]
func (h *OrderHandler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	user := userFromCtx(r.Context())

	orders, err := h.orderUsecase.ListUserOrders(r.Context(), user.ID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]orderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, toOrderResponse(&orders[i]))
	}

	WriteSuccess(w, http.StatusOK, result)
}

func toOrderResponse(order *usecase.OrderInfo) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return orderResponse{
		OrderID:      order.OrderID,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Address:      order.Address,
		Total:        order.Total,
		Status:       order.Status,
		Items:        items,
		CreatedAt:    order.CreatedAt,
	}
}
