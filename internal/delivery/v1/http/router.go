package http

import (
	"github.com/go-chi/chi/v5"
	_ "github.com/sainaman-tech/storefront-backend/docs" // Импорт сгенерированных файлов
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(
	catalogUC usecase.CatalogUC,
	cartUC usecase.CartUC,
	orderUC usecase.OrderUC,
	authUC usecase.AuthUC,
	adminUC usecase.AdminUC,
	imageStore usecase.ImageStore,
) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5001/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCatalogRoutes(v1, NewCatalogHandler(catalogUC, r.logger))
		registerCartRoutes(v1, NewCartHandler(cartUC, r.logger))
		registerOrderRoutes(v1, NewOrderHandler(orderUC, r.logger), authUC, r.logger)
		registerAuthRoutes(v1, NewAuthHandler(authUC, r.logger))
		registerAdminRoutes(v1, NewAdminHandler(adminUC, imageStore, r.logger), authUC, r.logger)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{slug}", h.getProduct)
	})
	router.Get("/categories", h.listCategories)
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Get("/", h.getCart)
		cr.Delete("/", h.clearCart)
		cr.Post("/items", h.addItem)
		cr.Patch("/items/{productID}", h.updateQuantity)
		cr.Delete("/items/{productID}", h.removeItem)
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler, authUC usecase.AuthUC, log logger.Logger) {
	router.Route("/orders", func(or chi.Router) {
		// Гостевое оформление разрешено: авторизация необязательна
		or.With(optionalAuthMiddleware(authUC)).Post("/", h.checkout)
		or.Get("/{publicID}", h.getOrder)
		or.With(authMiddleware(authUC, log)).Get("/", h.listMyOrders)
	})
}

func registerAuthRoutes(router chi.Router, h *AuthHandler) {
	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", h.signup)
		ar.Post("/login", h.login)
		ar.Get("/verify", h.verify)
		ar.Post("/logout", h.logout)
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler, authUC usecase.AuthUC, log logger.Logger) {
	router.Route("/admin", func(ad chi.Router) {
		ad.Use(authMiddleware(authUC, log))
		ad.Use(adminMiddleware())

		ad.Post("/products", h.createProduct)
		ad.Put("/products/{id}", h.updateProduct)
		ad.Delete("/products/{id}", h.deleteProduct)

		ad.Post("/categories", h.createCategory)
		ad.Put("/categories/{id}", h.updateCategory)
		ad.Delete("/categories/{id}", h.deleteCategory)

		ad.Post("/uploads", h.uploadImages)
		ad.Post("/uploads/presign", h.presignUpload)
	})
}
