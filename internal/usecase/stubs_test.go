package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/tr"
)

//
// ---------- STUBS & FAKES ----------
//

// nopLogger глушит логирование в тестах.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// stubProductRepo хранит товары в памяти.
type stubProductRepo struct {
	products map[int64]domain.Product
	listErr  error
}

func newStubProductRepo(products ...domain.Product) *stubProductRepo {
	repo := &stubProductRepo{products: make(map[int64]domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (s *stubProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	result := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	return result, nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return &p, nil
}

func (s *stubProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (s *stubProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	cp := *product
	cp.ID = int64(len(s.products) + 1)
	s.products[cp.ID] = cp
	return &cp, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if _, ok := s.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}
	s.products[product.ID] = *product
	cp := *product
	return &cp, nil
}

func (s *stubProductRepo) Archive(ctx context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// stubCategoryRepo хранит категории в памяти.
type stubCategoryRepo struct {
	categories []domain.Category
	listErr    error
}

func (s *stubCategoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.categories, nil
}

func (s *stubCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	cp := *category
	cp.ID = int64(len(s.categories) + 1)
	cp.IsActive = true
	s.categories = append(s.categories, cp)
	return &cp, nil
}

func (s *stubCategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories[i] = *category
			cp := *category
			return &cp, nil
		}
	}
	return nil, e.ErrCategoryNotFound
}

func (s *stubCategoryRepo) Deactivate(ctx context.Context, id int64) error {
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].IsActive = false
			return nil
		}
	}
	return e.ErrCategoryNotFound
}

// stubCartRepo хранит снимки корзин в памяти; ошибок не возвращает по контракту.
type stubCartRepo struct {
	carts map[string]*domain.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func (s *stubCartRepo) Load(ctx context.Context, token string) *domain.Cart {
	cart, ok := s.carts[token]
	if !ok {
		return domain.NewCart()
	}

	cp := domain.NewCart()
	cp.Lines = append(cp.Lines, cart.Lines...)
	return cp
}

func (s *stubCartRepo) Save(ctx context.Context, token string, cart *domain.Cart) {
	cp := domain.NewCart()
	cp.Lines = append(cp.Lines, cart.Lines...)
	s.carts[token] = cp
}

func (s *stubCartRepo) Delete(ctx context.Context, token string) {
	delete(s.carts, token)
}

// stubSessionRepo хранит сессии в памяти.
type stubSessionRepo struct {
	sessions map[string]int64
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]int64)}
}

func (s *stubSessionRepo) Save(ctx context.Context, token string, userID int64) error {
	s.sessions[token] = userID
	return nil
}

func (s *stubSessionRepo) Get(ctx context.Context, token string) (int64, error) {
	userID, ok := s.sessions[token]
	if !ok {
		return 0, e.ErrUnauthorized
	}
	return userID, nil
}

func (s *stubSessionRepo) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

// stubUserRepo хранит пользователей в памяти.
type stubUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]domain.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, e.ErrEmailTaken
		}
	}

	s.nextID++
	cp := *user
	cp.ID = s.nextID
	s.users[cp.ID] = cp
	return &cp, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, e.ErrUserNotFound
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

// stubCacheRepo имитирует кэш каталога. Прогрев кэша идёт из фоновой
// горутины, поэтому доступ к полям под мьютексом.
type stubCacheRepo struct {
	mu          sync.Mutex
	catalog     []domain.Product
	getErr      error
	setCalls    int
	invalidated int
}

func (s *stubCacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.catalog, nil
}

func (s *stubCacheRepo) SetCatalog(ctx context.Context, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCalls++
	s.catalog = products
	return nil
}

func (s *stubCacheRepo) InvalidateCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidated++
	s.catalog = nil
	return nil
}

func (s *stubCacheRepo) invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

func cartWithLine() *domain.Cart {
	cart := domain.NewCart()
	cart.Lines = append(cart.Lines, domain.CartLine{
		ProductID: 1,
		Name:      "Жемчужное ожерелье",
		Slug:      "pearl-necklace",
		Price:     59999,
		Quantity:  1,
	})
	return cart
}

// stubTx подменяет pgx.Tx в транзакционных тестах: фиксирует только
// факт коммита или отката.
type stubTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *stubTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

// stubTxBeginner реализует transaction.Transactional поверх stubTx.
type stubTxBeginner struct {
	tx *stubTx
}

func (b *stubTxBeginner) BeginTx(ctx context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return b.tx, nil
}

// stubOrderRepo хранит заказы в памяти и отмечает, пришёл ли Create
// с транзакцией в контексте.
type stubOrderRepo struct {
	orders []domain.Order
	sawTx  bool
}

func (s *stubOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if _, err := tr.TxFromCtx(ctx); err == nil {
		s.sawTx = true
	}

	cp := *order
	cp.ID = int64(len(s.orders) + 1)
	s.orders = append(s.orders, cp)
	return &cp, nil
}

func (s *stubOrderRepo) GetByPublicID(ctx context.Context, publicID string) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].PublicID == publicID {
			cp := s.orders[i]
			return &cp, nil
		}
	}
	return nil, e.ErrOrderNotFound
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for i := range s.orders {
		if s.orders[i].UserID == userID {
			result = append(result, s.orders[i])
		}
	}
	return result, nil
}

// stubOutboxRepo собирает созданные события.
type stubOutboxRepo struct {
	created   []*OutboxEvent
	createErr error
}

func (s *stubOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}

	cp := *event
	cp.ID = int64(len(s.created) + 1)
	s.created = append(s.created, &cp)
	return &cp, nil
}

func (s *stubOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (s *stubOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

// stubImageRepo подписывает загрузки без похода в хранилище.
type stubImageRepo struct {
	presigned []string
}

func (s *stubImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	return image.ObjectKey, nil
}

func (s *stubImageRepo) Delete(ctx context.Context, key string) error {
	return nil
}

func (s *stubImageRepo) PresignPut(ctx context.Context, objectKey string, contentType string) (string, error) {
	s.presigned = append(s.presigned, objectKey)
	return fmt.Sprintf("https://minio.local/bucket/%s?signed", objectKey), nil
}
