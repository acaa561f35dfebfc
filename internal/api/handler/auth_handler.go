package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// AuthHandler exposes signup and login. Both delegate account work to the
// auth provider through the service; this layer only shapes HTTP.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Role      string `json:"role" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type signupResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    *domain.Identity `json:"user"`
	Session *domain.Session  `json:"session"`
}

type loginResponse struct {
	Success bool             `json:"success"`
	Session *domain.Session  `json:"session"`
	User    *domain.Identity `json:"user"`
}

// Signup creates a new account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  authFailure
// @Failure      500   {object}  authFailure
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authFailure{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authFailure{Error: err.Error()})
	}

	result, err := h.authService.SignUp(c.Request().Context(), ports.SignUpParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Role:      req.Role,
	})
	if err != nil {
		var pe *domain.ProviderError
		switch {
		case errors.Is(err, domain.ErrMissingFields),
			errors.Is(err, domain.ErrPasswordTooShort),
			errors.Is(err, domain.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, authFailure{Error: err.Error()})
		case errors.As(err, &pe):
			return c.JSON(http.StatusBadRequest, authFailure{Error: pe.Message})
		}
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Success: true,
		Message: result.Message,
		User:    result.User,
		Session: result.Session,
	})
}

// Login authenticates with email and password.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  authFailure
// @Failure      401   {object}  authFailure
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authFailure{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authFailure{Error: "Email and password are required."})
	}

	session, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		var pe *domain.ProviderError
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, authFailure{Error: "Email and password are required."})
		case errors.As(err, &pe):
			return c.JSON(http.StatusUnauthorized, authFailure{Error: pe.Message})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, authFailure{Error: "Login failed. No session or user data returned."})
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Success: true, Session: session, User: user})
}
