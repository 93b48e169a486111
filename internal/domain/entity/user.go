package entity

import (
	"time"
)

// Verification kinds a user can hold. The verification level is derived from
// the set: email unlocks level 1, liveness level 2, social level 3.
const (
	VerificationEmail    = "email"
	VerificationLiveness = "liveness"
	VerificationSocial   = "social"
)

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Bio           string   `json:"bio,omitempty"`
	HomeCountry   string   `json:"home_country,omitempty"`
	TravelHistory []string `json:"travel_history,omitempty"`

	CurrentLocation Location `json:"current_location"`
	StayDuration    int      `json:"stay_duration"`
	MemberSince     string   `json:"member_since,omitempty"`

	VerificationLevel int      `json:"verification_level"`
	Verifications     []string `json:"verifications"`

	BuyCount  int `json:"buy_count"`
	SellCount int `json:"sell_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) HasVerification(kind string) bool {
	for _, v := range u.Verifications {
		if v == kind {
			return true
		}
	}
	return false
}
