package http

import (
	"net/http"

	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// signup
//
//	@Summary	Регистрация покупателя
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		signupRequest	true	"Данные регистрации"
//	@Success	201		{object}	authResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/auth/signup [post]
func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.authUsecase.Signup(r.Context(), &usecase.SignupReq{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toAuthResponse(res))
}

// login
//
//	@Summary	Вход покупателя
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		loginRequest	true	"Учётные данные"
//	@Success	200		{object}	authResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.authUsecase.Login(r.Context(), &usecase.LoginReq{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toAuthResponse(res))
}

// verify
//
//	@Summary	Проверка bearer-токена
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	userResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/verify [get]
func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.Verify(r.Context(), bearerToken(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserResponse(user))
}

// logout
//
//	@Summary		Выход
//	@Description	Закрывает сессию и очищает корзину устройства
//	@Tags			auth
//	@Security		BearerAuth
//	@Param			X-Cart-Token	header	string	false	"Токен корзины устройства"
//	@Success		204
//	@Router			/auth/logout [post]
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.Logout(r.Context(), bearerToken(r), cartToken(r)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(user *usecase.UserInfo) userResponse {
	return userResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}

func toAuthResponse(res *usecase.AuthRes) authResponse {
	return authResponse{
		Token: res.Token,
		User:  toUserResponse(&res.User),
	}
}
