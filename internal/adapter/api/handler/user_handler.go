package handler

import (
	"github.com/labstack/echo/v4"

	"trailtrade/internal/usecase"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/response"
)

type UserHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewUserHandler(authUseCase *usecase.AuthUseCase) *UserHandler {
	return &UserHandler{
		authUseCase: authUseCase,
	}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

type updateProfileRequest struct {
	FirstName     *string  `json:"first_name"`
	LastName      *string  `json:"last_name"`
	Bio           *string  `json:"bio"`
	HomeCountry   *string  `json:"home_country"`
	TravelHistory []string `json:"travel_history"`
	StayDuration  *int     `json:"stay_duration"`
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	user, err := h.authUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
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
	return response.Success(c, user)
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.VerifyEmail(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) VerifyLiveness(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.VerifyLiveness(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) VerifySocial(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		VerifierID string `json:"verifier_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.VerifySocial(c.Request().Context(), uid, req.VerifierID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) RefreshLocation(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.RefreshLocation(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
