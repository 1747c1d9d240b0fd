package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase реализует регистрацию, вход и проверку bearer-сессий.
// Сессии хранятся в Redis с TTL; признак администратора вычисляется
// сравнением email с настроенным адресом администратора магазина.
type AuthUseCase struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	cartRepo    CartRepository
	authCfg     *cfg.AuthCfg
	logger      logger.Logger
}

func NewAuthUC(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	cartRepo CartRepository,
	authCfg *cfg.AuthCfg,
	logger logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cartRepo:    cartRepo,
		authCfg:     authCfg,
		logger:      logger,
	}
}

// Signup регистрирует покупателя и сразу открывает сессию.
func (a *AuthUseCase) Signup(ctx context.Context, req *SignupReq) (*AuthRes, error) {
	const op = "AuthUseCase.Signup"

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.Password == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.authCfg.BcryptCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.Create(ctx, domain.NewUser(
		strings.TrimSpace(req.Name),
		normalizeEmail(req.Email),
		string(hash),
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return a.openSession(ctx, op, user)
}

// Login проверяет учётные данные и открывает сессию.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*AuthRes, error) {
	const op = "AuthUseCase.Login"

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}
		return nil, e.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	return a.openSession(ctx, op, user)
}

// Verify восстанавливает пользователя по токену сессии.
func (a *AuthUseCase) Verify(ctx context.Context, token string) (*UserInfo, error) {
	const op = "AuthUseCase.Verify"

	if token == "" {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	userID, err := a.sessionRepo.Get(ctx, token)
	if err != nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	info := a.newUserInfo(user)
	return &info, nil
}

// Logout закрывает сессию и очищает корзину устройства.
func (a *AuthUseCase) Logout(ctx context.Context, token string, cartToken string) error {
	const op = "AuthUseCase.Logout"

	if token != "" {
		if err := a.sessionRepo.Delete(ctx, token); err != nil {
			a.logger.Warnf("%s: failed to delete session: %v", op, err)
		}
	}

	if cartToken != "" {
		a.cartRepo.Delete(ctx, cartToken)
	}

	return nil
}

func (a *AuthUseCase) openSession(ctx context.Context, op string, user *domain.User) (*AuthRes, error) {
	token := uuid.NewString()
	if err := a.sessionRepo.Save(ctx, token, user.ID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &AuthRes{
		Token: token,
		User:  a.newUserInfo(user),
	}, nil
}

func (a *AuthUseCase) newUserInfo(user *domain.User) UserInfo {
	return UserInfo{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: strings.EqualFold(user.Email, a.authCfg.AdminEmail),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
