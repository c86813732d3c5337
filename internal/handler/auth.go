package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
}

type userInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type loginResp struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token,omitempty"`
	User    *userInfo `json:"user,omitempty"`
}

type signupResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  uint64 `json:"userId,omitempty"`
}

// Login verifies credentials against the stored bcrypt hash and
// returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResp{Message: "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, loginResp{Message: "username/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, loginResp{Message: "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, loginResp{Message: "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, loginResp{Message: "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, loginResp{Message: "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Success: true,
		Message: "login ok",
		Token:   access.Token,
		User:    &userInfo{ID: u.ID, Username: u.Username, Email: u.Email, Name: u.Name},
	})
}

// Signup creates a new account. Usernames are unique; the password is
// stored only as a bcrypt hash.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, signupResp{Message: "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, signupResp{Message: "username/password required"})
	}

	u := model.User{
		Username: req.Username,
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Gender:   strings.TrimSpace(req.Gender),
	}
	if req.BirthDate != "" {
		birth, err := utils.ParseDate(req.BirthDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, signupResp{Message: "invalid birthDate"})
		}
		u.BirthDate = &birth
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, signupResp{Message: "username already taken"})
		}
		return c.JSON(http.StatusInternalServerError, signupResp{Message: "create user failed"})
	}

	return c.JSON(http.StatusCreated, signupResp{Success: true, Message: "signup complete", UserID: id})
}

// Validate reports whether the Authorization header carries a token we
// issued. The response is a bare boolean either way.
func (h *AuthHandler) Validate(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusOK, false)
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	if _, err := utils.ParseAccessToken(h.Cfg.JWTSecret, raw); err != nil {
		return c.JSON(http.StatusOK, false)
	}
	return c.JSON(http.StatusOK, true)
}
