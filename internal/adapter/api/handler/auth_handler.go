package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/usecase"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=8"`
	FirstName     string   `json:"first_name" validate:"required"`
	LastName      string   `json:"last_name"`
	Bio           string   `json:"bio"`
	HomeCountry   string   `json:"home_country"`
	TravelHistory []string `json:"travel_history"`
	StayDuration  int      `json:"stay_duration" validate:"omitempty,gt=0"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Bio:           req.Bio,
		HomeCountry:   req.HomeCountry,
		TravelHistory: req.TravelHistory,
		StayDuration:  req.StayDuration,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Refresh(c.Request().Context(), req.Token)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return response.Error(c, errors.Unauthorized("Authorization header required", nil))
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
	}

	if err := h.authUseCase.Logout(c.Request().Context(), parts[1]); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}
