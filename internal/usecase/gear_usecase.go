package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/domain/repository"
	"trailtrade/internal/infrastructure/geo"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/logger"
)

type GearUseCase struct {
	gearRepo repository.GearRepository
	userRepo repository.UserRepository
}

func NewGearUseCase(gearRepo repository.GearRepository, userRepo repository.UserRepository) *GearUseCase {
	return &GearUseCase{
		gearRepo: gearRepo,
		userRepo: userRepo,
	}
}

type CreateGearInput struct {
	Title       string
	Description string
	Price       float64
	Category    entity.GearCategory
	Condition   entity.GearCondition
	Images      []string
	Tags        []string
	Location    entity.Location

	// Days until the seller leaves town; defaults to the seller's own stay.
	StayDuration int
}

// GearDetail joins a listing with seller facts for display.
type GearDetail struct {
	*entity.GearItem
	SellerName              string   `json:"seller_name,omitempty"`
	SellerVerificationLevel int      `json:"seller_verification_level"`
	DistanceKm              *float64 `json:"distance_km,omitempty"`
}

func (uc *GearUseCase) Create(ctx context.Context, sellerID string, input CreateGearInput) (*entity.GearItem, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.Validation("title is required")
	}
	if input.Price <= 0 {
		return nil, errors.Validation("price must be a positive number")
	}
	if input.Category == "" {
		return nil, errors.Validation("category is required")
	}
	if !input.Category.Valid() {
		return nil, errors.Validation("unknown category")
	}
	if !input.Condition.Valid() {
		return nil, errors.Validation("condition must be Unopened, Like New or Used")
	}
	if len(input.Images) == 0 {
		return nil, errors.Validation("at least one image is required")
	}

	stay := input.StayDuration
	if stay <= 0 {
		stay = seller.StayDuration
	}
	if stay <= 0 {
		stay = defaultStayDuration
	}

	now := time.Now()
	item := &entity.GearItem{
		ID:           uuid.NewString(),
		SellerID:     sellerID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		Condition:    input.Condition,
		Images:       input.Images,
		Tags:         normalizeTags(input.Tags),
		Location:     input.Location,
		StayDuration: stay,
		CreatedAt:    now,
		// Derived once from the stay duration; edits never recompute it.
		ExpiresAt: now.AddDate(0, 0, stay),
		IsActive:  true,
		UpdatedAt: now,
	}

	if err := uc.gearRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

type UpdateGearInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *entity.GearCategory
	Condition   *entity.GearCondition
	Images      []string
	Tags        []string
	Location    *entity.Location
	IsActive    *bool
}

// Update edits a listing in place. Identity, creation time, expiry and the
// store-flag counter are not editable.
func (uc *GearUseCase) Update(ctx context.Context, id, sellerID string, input UpdateGearInput) (*entity.GearItem, error) {
	item, err := uc.gearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can edit this listing", nil)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, errors.Validation("title is required")
		}
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, errors.Validation("price must be a positive number")
		}
		item.Price = *input.Price
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, errors.Validation("unknown category")
		}
		item.Category = *input.Category
	}
	if input.Condition != nil {
		if !input.Condition.Valid() {
			return nil, errors.Validation("condition must be Unopened, Like New or Used")
		}
		item.Condition = *input.Condition
	}
	if input.Images != nil {
		if len(input.Images) == 0 {
			return nil, errors.Validation("at least one image is required")
		}
		item.Images = input.Images
	}
	if input.Tags != nil {
		item.Tags = normalizeTags(input.Tags)
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	item.UpdatedAt = time.Now()

	if err := uc.gearRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *GearUseCase) Delete(ctx context.Context, id, sellerID string) error {
	item, err := uc.gearRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.SellerID != sellerID {
		return errors.Forbidden("Only the seller can delete this listing", nil)
	}
	return uc.gearRepo.Delete(ctx, id)
}

// FlagAsStore records a community report that a listing looks like commercial
// selling. The counter only accumulates; no threshold delists automatically.
func (uc *GearUseCase) FlagAsStore(ctx context.Context, id string) (int, error) {
	return uc.gearRepo.IncrementStoreFlag(ctx, id)
}

func (uc *GearUseCase) GetByID(ctx context.Context, id string, viewer *entity.Coordinates) (*GearDetail, error) {
	item, err := uc.gearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toDetail(ctx, item, viewer), nil
}

func (uc *GearUseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.GearItem, error) {
	return uc.gearRepo.ListBySeller(ctx, sellerID)
}

// List returns the filtered catalog view. The filter is applied as a pure
// function over the full catalog on every call; no cached view is kept.
func (uc *GearUseCase) List(ctx context.Context, filter entity.GearFilter, viewer *entity.Coordinates) ([]*GearDetail, error) {
	items, err := uc.gearRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := uc.applyFilter(ctx, items, filter, viewer)

	out := make([]*GearDetail, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, uc.toDetail(ctx, item, viewer))
	}
	return out, nil
}

// ListForUser resolves the viewer's stored coordinates before listing, so
// distances and the distance filter stage work without the client resending
// its position.
func (uc *GearUseCase) ListForUser(ctx context.Context, viewerID string, filter entity.GearFilter) ([]*GearDetail, error) {
	return uc.List(ctx, filter, uc.viewerCoords(ctx, viewerID))
}

func (uc *GearUseCase) GetForUser(ctx context.Context, id, viewerID string) (*GearDetail, error) {
	return uc.GetByID(ctx, id, uc.viewerCoords(ctx, viewerID))
}

// viewerCoords returns nil when the viewer has no usable location, which
// disables distance computation rather than measuring from the null island.
func (uc *GearUseCase) viewerCoords(ctx context.Context, viewerID string) *entity.Coordinates {
	viewer, err := uc.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil
	}
	coords := viewer.CurrentLocation.Coordinates
	if coords.Latitude == 0 && coords.Longitude == 0 && viewer.CurrentLocation.City == "" {
		return nil
	}
	return &coords
}

func (uc *GearUseCase) Filter(ctx context.Context) (entity.GearFilter, error) {
	return uc.gearRepo.Filter(ctx)
}

func (uc *GearUseCase) SaveFilter(ctx context.Context, filter entity.GearFilter) (entity.GearFilter, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return entity.GearFilter{}, errors.Validation("unknown category")
	}
	if filter.MaxDistanceKm < 0 {
		return entity.GearFilter{}, errors.Validation("max distance must not be negative")
	}
	if filter.MinVerificationLevel < 0 || filter.MinVerificationLevel > 3 {
		return entity.GearFilter{}, errors.Validation("minimum verification level must be between 0 and 3")
	}
	if err := uc.gearRepo.SaveFilter(ctx, filter); err != nil {
		return entity.GearFilter{}, err
	}
	return filter, nil
}

func (uc *GearUseCase) ClearFilter(ctx context.Context) error {
	return uc.gearRepo.SaveFilter(ctx, entity.GearFilter{})
}

// applyFilter runs the configured filter stages. Category and text query
// always apply when set. The distance stage needs viewer coordinates and a
// positive radius; the verification stage needs a positive minimum level and
// a resolvable seller. Unset stages pass everything through.
func (uc *GearUseCase) applyFilter(ctx context.Context, items []*entity.GearItem, filter entity.GearFilter, viewer *entity.Coordinates) []*entity.GearItem {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	levels := map[string]int{}
	if filter.MinVerificationLevel > 0 {
		for _, item := range items {
			if _, ok := levels[item.SellerID]; ok {
				continue
			}
			seller, err := uc.userRepo.GetByID(ctx, item.SellerID)
			if err != nil {
				logger.Warn("Seller %s not resolvable for verification filter: %v", item.SellerID, err)
				continue
			}
			levels[item.SellerID] = seller.VerificationLevel
		}
	}

	var out []*entity.GearItem
	for _, item := range items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		if filter.MaxDistanceKm > 0 && viewer != nil {
			d := geo.DistanceKm(
				geo.Position{Latitude: viewer.Latitude, Longitude: viewer.Longitude},
				geo.Position{Latitude: item.Location.Coordinates.Latitude, Longitude: item.Location.Coordinates.Longitude},
			)
			if d > filter.MaxDistanceKm {
				continue
			}
		}
		if filter.MinVerificationLevel > 0 {
			if level, ok := levels[item.SellerID]; !ok || level < filter.MinVerificationLevel {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item *entity.GearItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}

func (uc *GearUseCase) toDetail(ctx context.Context, item *entity.GearItem, viewer *entity.Coordinates) *GearDetail {
	detail := &GearDetail{GearItem: item}

	if seller, err := uc.userRepo.GetByID(ctx, item.SellerID); err == nil {
		detail.SellerName = seller.DisplayName()
		detail.SellerVerificationLevel = seller.VerificationLevel
	}

	if viewer != nil {
		d := geo.DistanceKm(
			geo.Position{Latitude: viewer.Latitude, Longitude: viewer.Longitude},
			geo.Position{Latitude: item.Location.Coordinates.Latitude, Longitude: item.Location.Coordinates.Longitude},
		)
		detail.DistanceKm = &d
	}
	return detail
}

// normalizeTags lower-cases, trims and de-duplicates.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
