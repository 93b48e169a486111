package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/usecase"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/response"
	"trailtrade/pkg/utils"
)

type GearHandler struct {
	gearUseCase *usecase.GearUseCase
}

func NewGearHandler(gearUseCase *usecase.GearUseCase) *GearHandler {
	return &GearHandler{
		gearUseCase: gearUseCase,
	}
}

type createGearRequest struct {
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description"`
	Price        float64         `json:"price" validate:"required,gt=0"`
	Category     string          `json:"category" validate:"required"`
	Condition    string          `json:"condition" validate:"required,oneof=Unopened 'Like New' Used"`
	Images       []string        `json:"images" validate:"required,min=1"`
	Tags         []string        `json:"tags"`
	Location     entity.Location `json:"location"`
	StayDuration int             `json:"stay_duration" validate:"omitempty,gt=0"`
}

func (h *GearHandler) CreateGear(c echo.Context) error {
	var req createGearRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	item, err := h.gearUseCase.Create(c.Request().Context(), sellerID, usecase.CreateGearInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     entity.GearCategory(req.Category),
		Condition:    entity.GearCondition(req.Condition),
		Images:       req.Images,
		Tags:         req.Tags,
		Location:     req.Location,
		StayDuration: req.StayDuration,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, item)
}

type updateGearRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *float64         `json:"price"`
	Category    *string          `json:"category"`
	Condition   *string          `json:"condition"`
	Images      []string         `json:"images"`
	Tags        []string         `json:"tags"`
	Location    *entity.Location `json:"location"`
	IsActive    *bool            `json:"is_active"`
}

func (h *GearHandler) UpdateGear(c echo.Context) error {
	id := c.Param("id")
	sellerID := c.Get("uid").(string)

	var req updateGearRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	input := usecase.UpdateGearInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Tags:        req.Tags,
		Location:    req.Location,
		IsActive:    req.IsActive,
	}
	if req.Category != nil {
		category := entity.GearCategory(*req.Category)
		input.Category = &category
	}
	if req.Condition != nil {
		condition := entity.GearCondition(*req.Condition)
		input.Condition = &condition
	}

	item, err := h.gearUseCase.Update(c.Request().Context(), id, sellerID, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

func (h *GearHandler) DeleteGear(c echo.Context) error {
	id := c.Param("id")
	sellerID := c.Get("uid").(string)

	if err := h.gearUseCase.Delete(c.Request().Context(), id, sellerID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Listing deleted",
	})
}

// ListGear serves the catalog. The persisted filter applies by default;
// query parameters override it for the single request.
func (h *GearHandler) ListGear(c echo.Context) error {
	ctx := c.Request().Context()
	viewerID := c.Get("uid").(string)

	filter, err := h.gearUseCase.Filter(ctx)
	if err != nil {
		return response.Error(c, err)
	}
	if category := c.QueryParam("category"); category != "" {
		filter.Category = entity.GearCategory(category)
	}
	if query := c.QueryParam("q"); query != "" {
		filter.Query = query
	}
	if raw := c.QueryParam("max_distance_km"); raw != "" {
		if distance, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxDistanceKm = distance
		}
	}
	if raw := c.QueryParam("min_verification_level"); raw != "" {
		if level, err := strconv.Atoi(raw); err == nil {
			filter.MinVerificationLevel = level
		}
	}

	items, err := h.gearUseCase.ListForUser(ctx, viewerID, filter)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	total := len(items)
	start := pagination.Offset
	if start > total {
		start = total
	}
	end := start + pagination.PageSize
	if end > total {
		end = total
	}

	return response.Paginated(c, items[start:end], int64(total), pagination.Page, pagination.PageSize)
}

func (h *GearHandler) GetGear(c echo.Context) error {
	id := c.Param("id")
	viewerID := c.Get("uid").(string)

	detail, err := h.gearUseCase.GetForUser(c.Request().Context(), id, viewerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, detail)
}

func (h *GearHandler) ListMyGear(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	items, err := h.gearUseCase.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *GearHandler) FlagGear(c echo.Context) error {
	id := c.Param("id")

	count, err := h.gearUseCase.FlagAsStore(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{
		"store_flag_count": count,
	})
}

func (h *GearHandler) GetFilter(c echo.Context) error {
	filter, err := h.gearUseCase.Filter(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, filter)
}

type saveFilterRequest struct {
	Category             string  `json:"category"`
	Query                string  `json:"query"`
	MaxDistanceKm        float64 `json:"max_distance_km" validate:"gte=0"`
	MinVerificationLevel int     `json:"min_verification_level" validate:"gte=0,lte=3"`
}

func (h *GearHandler) SaveFilter(c echo.Context) error {
	var req saveFilterRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	filter, err := h.gearUseCase.SaveFilter(c.Request().Context(), entity.GearFilter{
		Category:             entity.GearCategory(req.Category),
		Query:                req.Query,
		MaxDistanceKm:        req.MaxDistanceKm,
		MinVerificationLevel: req.MinVerificationLevel,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, filter)
}

func (h *GearHandler) ClearFilter(c echo.Context) error {
	if err := h.gearUseCase.ClearFilter(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, entity.GearFilter{})
}
