package entity

import (
	"time"
)

type GearCategory string

const (
	CategoryBackpacks   GearCategory = "Backpacks"
	CategorySleeping    GearCategory = "Sleeping"
	CategoryClothing    GearCategory = "Clothing"
	CategoryFootwear    GearCategory = "Footwear"
	CategoryCooking     GearCategory = "Cooking"
	CategoryElectronics GearCategory = "Electronics"
	CategoryCamping     GearCategory = "Camping"
	CategoryHiking      GearCategory = "Hiking"
	CategoryWater       GearCategory = "Water"
	CategoryTravel      GearCategory = "Travel"
	CategoryPhotography GearCategory = "Photography"
	CategoryBooks       GearCategory = "Books"
	CategoryAccessories GearCategory = "Accessories"
	CategoryOther       GearCategory = "Other"
)

var GearCategories = []GearCategory{
	CategoryBackpacks, CategorySleeping, CategoryClothing, CategoryFootwear,
	CategoryCooking, CategoryElectronics, CategoryCamping, CategoryHiking,
	CategoryWater, CategoryTravel, CategoryPhotography, CategoryBooks,
	CategoryAccessories, CategoryOther,
}

func (c GearCategory) Valid() bool {
	for _, known := range GearCategories {
		if c == known {
			return true
		}
	}
	return false
}

type GearCondition string

const (
	ConditionUnopened GearCondition = "Unopened"
	ConditionLikeNew  GearCondition = "Like New"
	ConditionUsed     GearCondition = "Used"
)

func (c GearCondition) Valid() bool {
	return c == ConditionUnopened || c == ConditionLikeNew || c == ConditionUsed
}

type GearItem struct {
	ID          string        `json:"id"`
	SellerID    string        `json:"seller_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Category    GearCategory  `json:"category"`
	Condition   GearCondition `json:"condition"`
	Images      []string      `json:"images"`
	Tags        []string      `json:"tags"`
	Location    Location      `json:"location"`

	// Days the seller remains in town. ExpiresAt is derived from it once, at
	// creation, and never recomputed on edit.
	StayDuration int       `json:"stay_duration"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`

	IsActive bool `json:"is_active"`

	// Community reports marking the listing as suspected commercial selling.
	// Only ever increments.
	StoreFlagCount int `json:"store_flag_count"`

	UpdatedAt time.Time `json:"updated_at"`
}

// GearFilter is the persisted filter preference set for the catalog view.
// Zero values disable the corresponding stage.
type GearFilter struct {
	Category             GearCategory `json:"category,omitempty"`
	Query                string       `json:"query,omitempty"`
	MaxDistanceKm        float64      `json:"max_distance_km,omitempty"`
	MinVerificationLevel int          `json:"min_verification_level,omitempty"`
}
