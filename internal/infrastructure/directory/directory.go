package directory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/domain/repository"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/logger"
)

// DefaultPassword is the credential every seeded traveler starts with.
const DefaultPassword = "Passw0rd!"

type seedUser struct {
	ID            string
	Email         string
	FirstName     string
	LastName      string
	Bio           string
	HomeCountry   string
	TravelHistory []string
	City          string
	Country       string
	Latitude      float64
	Longitude     float64
	StayDuration  int
	Verifications []string
	Level         int
	BuyCount      int
	SellCount     int
}

// The static traveler directory standing in for a user-lookup service.
var seedUsers = []seedUser{
	{
		ID: "u-emma", Email: "emma@example.com", FirstName: "Emma", LastName: "Wilson",
		Bio:         "Backpacking through Southeast Asia for 6 months. Love hiking and photography!",
		HomeCountry: "United Kingdom", TravelHistory: []string{"Japan", "Vietnam", "Cambodia", "Thailand"},
		City: "Bangkok", Country: "Thailand", Latitude: 13.7563, Longitude: 100.5018,
		StayDuration:  7,
		Verifications: []string{entity.VerificationEmail, entity.VerificationLiveness, entity.VerificationSocial},
		Level:         3, BuyCount: 3, SellCount: 2,
	},
	{
		ID: "u-miguel", Email: "miguel@example.com", FirstName: "Miguel", LastName: "Rodriguez",
		Bio:         "Digital nomad exploring Asia. Always looking for hiking buddies!",
		HomeCountry: "Spain", TravelHistory: []string{"Thailand", "Indonesia", "Malaysia"},
		City: "Chiang Mai", Country: "Thailand", Latitude: 18.7883, Longitude: 98.9853,
		StayDuration:  10,
		Verifications: []string{entity.VerificationEmail, entity.VerificationLiveness, entity.VerificationSocial},
		Level:         3, BuyCount: 1, SellCount: 5,
	},
	{
		ID: "u-sarah", Email: "sarah@example.com", FirstName: "Sarah", LastName: "Johnson",
		Bio:         "First time in Southeast Asia! Looking to connect with fellow travelers.",
		HomeCountry: "Canada", TravelHistory: []string{"Thailand", "Laos", "Vietnam"},
		City: "Bangkok", Country: "Thailand", Latitude: 13.7563, Longitude: 100.5018,
		StayDuration:  5,
		Verifications: []string{entity.VerificationEmail, entity.VerificationLiveness},
		Level:         2, BuyCount: 2, SellCount: 0,
	},
	{
		ID: "u-david", Email: "david@example.com", FirstName: "David", LastName: "Chen",
		Bio:         "Trekking my way from Nepal down to Indonesia. Selling gear as I go.",
		HomeCountry: "Australia", TravelHistory: []string{"Nepal", "India", "Thailand"},
		City: "Bangkok", Country: "Thailand", Latitude: 13.7563, Longitude: 100.5018,
		StayDuration:  14,
		Verifications: []string{entity.VerificationEmail},
		Level:         1, BuyCount: 0, SellCount: 3,
	},
}

// Seed inserts the directory into the user repository. Existing entries are
// left untouched, so it is safe to run on every start.
func Seed(ctx context.Context, userRepo repository.UserRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, s := range seedUsers {
		existing, err := userRepo.GetByEmail(ctx, s.Email)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return err
		}
		if existing != nil {
			continue
		}

		now := time.Now()
		user := &entity.User{
			ID:            s.ID,
			Email:         s.Email,
			PasswordHash:  string(hash),
			FirstName:     s.FirstName,
			LastName:      s.LastName,
			Bio:           s.Bio,
			HomeCountry:   s.HomeCountry,
			TravelHistory: s.TravelHistory,
			CurrentLocation: entity.Location{
				City:    s.City,
				Country: s.Country,
				Coordinates: entity.Coordinates{
					Latitude:  s.Latitude,
					Longitude: s.Longitude,
				},
			},
			StayDuration:      s.StayDuration,
			MemberSince:       "2023",
			VerificationLevel: s.Level,
			Verifications:     s.Verifications,
			BuyCount:          s.BuyCount,
			SellCount:         s.SellCount,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		logger.Info("Seeded directory user %s (%s)", user.ID, user.Email)
	}

	return nil
}
