package usecase

import "context"

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductInfo, error)
	ListCategories(ctx context.Context) ([]CategoryInfo, error)
}

type CartUC interface {
	GetCart(ctx context.Context, token string) (*CartRes, error)
	AddToCart(ctx context.Context, token string, productID int64) (*CartRes, error)
	UpdateQuantity(ctx context.Context, token string, productID, quantity int64) (*CartRes, error)
	RemoveItem(ctx context.Context, token string, productID int64) (*CartRes, error)
	ClearCart(ctx context.Context, token string) error
}

type OrderUC interface {
	Checkout(ctx context.Context, req *CheckoutReq) (*CheckoutRes, error)
	GetOrder(ctx context.Context, publicID string) (*OrderInfo, error)
	ListUserOrders(ctx context.Context, userID int64) ([]OrderInfo, error)
}

type AuthUC interface {
	Signup(ctx context.Context, req *SignupReq) (*AuthRes, error)
	Login(ctx context.Context, req *LoginReq) (*AuthRes, error)
	Verify(ctx context.Context, token string) (*UserInfo, error)
	Logout(ctx context.Context, token string, cartToken string) error
}

type AdminUC interface {
	CreateProduct(ctx context.Context, req *SaveProductReq) (*ProductInfo, error)
	UpdateProduct(ctx context.Context, req *SaveProductReq) (*ProductInfo, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, req *SaveCategoryReq) (*CategoryInfo, error)
	UpdateCategory(ctx context.Context, req *SaveCategoryReq) (*CategoryInfo, error)
	DeleteCategory(ctx context.Context, id int64) error
	PresignUpload(ctx context.Context, req *PresignUploadReq) (*PresignUploadRes, error)
}
