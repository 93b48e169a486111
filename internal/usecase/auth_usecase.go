package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/domain/repository"
	"trailtrade/internal/infrastructure/geo"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/logger"
)

const defaultStayDuration = 7

type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	geo      geo.Provider
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer, geoProvider geo.Provider) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		geo:      geoProvider,
	}
}

type RegisterInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Bio           string
	HomeCountry   string
	TravelHistory []string
	StayDuration  int
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("Email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	stay := input.StayDuration
	if stay <= 0 {
		stay = defaultStayDuration
	}

	now := time.Now()
	user := &entity.User{
		ID:                uuid.NewString(),
		Email:             strings.ToLower(input.Email),
		PasswordHash:      string(hash),
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Bio:               input.Bio,
		HomeCountry:       input.HomeCountry,
		TravelHistory:     input.TravelHistory,
		StayDuration:      stay,
		MemberSince:       strconv.Itoa(now.Year()),
		VerificationLevel: 0,
		Verifications:     []string{},
		BuyCount:          0,
		SellCount:         0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// Best effort; signup succeeds with an unknown location.
	uc.refreshLocation(ctx, user)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}

	// Refresh the traveler's position on login. Failure to obtain a location
	// never fails the login.
	if uc.refreshLocation(ctx, user) {
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			logger.Warn("Failed to store refreshed location for %s: %v", user.ID, err)
		}
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Logout is a client-side token discard; the server keeps no session state.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return nil
}

// Refresh trades a still-valid token for a fresh one.
func (uc *AuthUseCase) Refresh(ctx context.Context, token string) (*AuthResult, error) {
	userID, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	fresh, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: fresh}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	FirstName     *string
	LastName      *string
	Bio           *string
	HomeCountry   *string
	TravelHistory []string
	StayDuration  *int
}

// UpdateProfile merges mutable profile facts. Identity, counters and the
// verification set are not writable through it.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.HomeCountry != nil {
		user.HomeCountry = *input.HomeCountry
	}
	if input.TravelHistory != nil {
		user.TravelHistory = input.TravelHistory
	}
	if input.StayDuration != nil {
		if *input.StayDuration <= 0 {
			return nil, errors.Validation("stay duration must be a positive number of days")
		}
		user.StayDuration = *input.StayDuration
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) VerifyEmail(ctx context.Context, userID string) (*entity.User, error) {
	return uc.addVerification(ctx, userID, entity.VerificationEmail, 1)
}

func (uc *AuthUseCase) VerifyLiveness(ctx context.Context, userID string) (*entity.User, error) {
	return uc.addVerification(ctx, userID, entity.VerificationLiveness, 2)
}

func (uc *AuthUseCase) VerifySocial(ctx context.Context, userID, verifierID string) (*entity.User, error) {
	if verifierID == userID {
		return nil, errors.BadRequest("You cannot vouch for yourself", nil)
	}
	if _, err := uc.userRepo.GetByID(ctx, verifierID); err != nil {
		return nil, errors.NotFound("Verifier", err)
	}
	return uc.addVerification(ctx, userID, entity.VerificationSocial, 3)
}

// addVerification is idempotent: adding a kind the user already holds is a
// no-op, and the level only ever moves up.
func (uc *AuthUseCase) addVerification(ctx context.Context, userID, kind string, level int) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.HasVerification(kind) {
		user.Verifications = append(user.Verifications, kind)
	}
	if user.VerificationLevel < level {
		user.VerificationLevel = level
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) RefreshLocation(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.refreshLocation(ctx, user)
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// refreshLocation asks the geolocation provider for the current position and
// reverse-geocodes it onto the user. Every failure degrades to keeping the
// previous location. Reports whether anything changed.
func (uc *AuthUseCase) refreshLocation(ctx context.Context, user *entity.User) bool {
	granted, err := uc.geo.RequestPermission(ctx)
	if err != nil || !granted {
		logger.Debug("Location permission unavailable for %s: %v", user.Email, err)
		return false
	}

	pos, err := uc.geo.CurrentPosition(ctx)
	if err != nil {
		logger.Warn("Failed to read current position: %v", err)
		return false
	}

	place, err := uc.geo.ReverseGeocode(ctx, pos)
	if err != nil {
		logger.Warn("Failed to reverse-geocode position: %v", err)
		return false
	}

	city := place.City
	if city == "" {
		city = user.CurrentLocation.City
	}
	if city == "" {
		city = "Unknown City"
	}
	country := place.Country
	if country == "" {
		country = user.CurrentLocation.Country
	}
	if country == "" {
		country = "Unknown Country"
	}

	user.CurrentLocation = entity.Location{
		City:    city,
		Country: country,
		Coordinates: entity.Coordinates{
			Latitude:  pos.Latitude,
			Longitude: pos.Longitude,
		},
	}
	return true
}
