package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/usecase"
	"trailtrade/pkg/errors"
)

func TestCreateGearDerivesExpiry(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")

	item, err := env.gear.Create(context.Background(), seller.ID, usecase.CreateGearInput{
		Title:        "MSR PocketRocket",
		Price:        30,
		Category:     entity.CategoryCooking,
		Condition:    entity.ConditionLikeNew,
		Images:       []string{"stove.jpg"},
		StayDuration: 5,
	})
	require.NoError(t, err)

	assert.True(t, item.IsActive)
	assert.Equal(t, 5, item.StayDuration)
	assert.Equal(t, item.CreatedAt.AddDate(0, 0, 5), item.ExpiresAt)
}

func TestCreateGearFallsBackToSellerStay(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")

	item := env.createGear(t, seller.ID, 100)
	// Registration defaulted the seller's stay to a week.
	assert.Equal(t, 7, item.StayDuration)
	assert.Equal(t, item.CreatedAt.AddDate(0, 0, 7), item.ExpiresAt)
}

func TestCreateGearValidation(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")

	base := usecase.CreateGearInput{
		Title:     "Tent",
		Price:     80,
		Category:  entity.CategoryCamping,
		Condition: entity.ConditionUsed,
		Images:    []string{"tent.jpg"},
	}

	bad := base
	bad.Price = 0
	_, err := env.gear.Create(context.Background(), seller.ID, bad)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	bad = base
	bad.Category = "Kitchenware"
	_, err = env.gear.Create(context.Background(), seller.ID, bad)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	bad = base
	bad.Condition = "Worn"
	_, err = env.gear.Create(context.Background(), seller.ID, bad)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	bad = base
	bad.Images = nil
	_, err = env.gear.Create(context.Background(), seller.ID, bad)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestUpdateGearKeepsExpiry(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	item := env.createGear(t, seller.ID, 100)
	originalExpiry := item.ExpiresAt

	price := 90.0
	updated, err := env.gear.Update(context.Background(), item.ID, seller.ID, usecase.UpdateGearInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 90.0, updated.Price)
	assert.True(t, originalExpiry.Equal(updated.ExpiresAt))
}

func TestUpdateGearOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	other := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 100)

	title := "Stolen listing"
	_, err := env.gear.Update(context.Background(), item.ID, other.ID, usecase.UpdateGearInput{Title: &title})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	err = env.gear.Delete(context.Background(), item.ID, other.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestFlagAsStoreAccumulates(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	item := env.createGear(t, seller.ID, 100)

	for i := 1; i <= 3; i++ {
		count, err := env.gear.FlagAsStore(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	// Flags never delist on their own.
	detail, err := env.gear.GetByID(context.Background(), item.ID, nil)
	require.NoError(t, err)
	assert.True(t, detail.IsActive)
	assert.Equal(t, 3, detail.StoreFlagCount)
}

func TestListAppliesCategoryAndQuery(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")

	_, err := env.gear.Create(context.Background(), seller.ID, usecase.CreateGearInput{
		Title: "Osprey Farpoint 40", Price: 120,
		Category: entity.CategoryBackpacks, Condition: entity.ConditionUsed,
		Images: []string{"a.jpg"}, Tags: []string{"Travel", "Carry-On"},
	})
	require.NoError(t, err)
	_, err = env.gear.Create(context.Background(), seller.ID, usecase.CreateGearInput{
		Title: "Jetboil Flash", Price: 60,
		Category: entity.CategoryCooking, Condition: entity.ConditionLikeNew,
		Images: []string{"b.jpg"},
	})
	require.NoError(t, err)

	ctx := context.Background()

	byCategory, err := env.gear.List(ctx, entity.GearFilter{Category: entity.CategoryBackpacks}, nil)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Osprey Farpoint 40", byCategory[0].Title)

	// Query matches title, description and tags, case-insensitively.
	byQuery, err := env.gear.List(ctx, entity.GearFilter{Query: "carry-on"}, nil)
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Osprey Farpoint 40", byQuery[0].Title)

	all, err := env.gear.List(ctx, entity.GearFilter{}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListDistanceStage(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")

	bangkok := entity.Location{
		City: "Bangkok", Country: "Thailand",
		Coordinates: entity.Coordinates{Latitude: 13.7563, Longitude: 100.5018},
	}
	chiangMai := entity.Location{
		City: "Chiang Mai", Country: "Thailand",
		Coordinates: entity.Coordinates{Latitude: 18.7883, Longitude: 98.9853},
	}

	_, err := env.gear.Create(context.Background(), seller.ID, usecase.CreateGearInput{
		Title: "Local tent", Price: 50,
		Category: entity.CategoryCamping, Condition: entity.ConditionUsed,
		Images: []string{"a.jpg"}, Location: bangkok,
	})
	require.NoError(t, err)
	_, err = env.gear.Create(context.Background(), seller.ID, usecase.CreateGearInput{
		Title: "Faraway tent", Price: 50,
		Category: entity.CategoryCamping, Condition: entity.ConditionUsed,
		Images: []string{"b.jpg"}, Location: chiangMai,
	})
	require.NoError(t, err)

	viewer := &entity.Coordinates{Latitude: 13.7563, Longitude: 100.5018}

	near, err := env.gear.List(context.Background(), entity.GearFilter{MaxDistanceKm: 50}, viewer)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "Local tent", near[0].Title)

	// Without viewer coordinates the distance stage is skipped entirely.
	noViewer, err := env.gear.List(context.Background(), entity.GearFilter{MaxDistanceKm: 50}, nil)
	require.NoError(t, err)
	assert.Len(t, noViewer, 2)
}

func TestListVerificationStage(t *testing.T) {
	env := newTestEnv(t)
	unverified := env.register(t, "emma@example.com", "Emma")
	verified := env.register(t, "miguel@example.com", "Miguel")
	_, err := env.auth.VerifyLiveness(context.Background(), verified.ID)
	require.NoError(t, err)

	env.createGear(t, unverified.ID, 40)
	trusted := env.createGear(t, verified.ID, 60)

	out, err := env.gear.List(context.Background(), entity.GearFilter{MinVerificationLevel: 2}, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, trusted.ID, out[0].ID)
	assert.Equal(t, 2, out[0].SellerVerificationLevel)
}

func TestSaveFilterRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	want := entity.GearFilter{Category: entity.CategoryHiking, MaxDistanceKm: 25, MinVerificationLevel: 1}
	_, err := env.gear.SaveFilter(ctx, want)
	require.NoError(t, err)

	got, err := env.gear.Filter(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, env.gear.ClearFilter(ctx))
	got, err = env.gear.Filter(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.GearFilter{}, got)

	_, err = env.gear.SaveFilter(ctx, entity.GearFilter{MinVerificationLevel: 4})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestGetByIDJoinsSellerAndDistance(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	item := env.createGear(t, seller.ID, 100)

	viewer := &entity.Coordinates{Latitude: 13.7563, Longitude: 100.5018}
	detail, err := env.gear.GetByID(context.Background(), item.ID, viewer)
	require.NoError(t, err)

	assert.Equal(t, "Emma", detail.SellerName)
	require.NotNil(t, detail.DistanceKm)
	assert.InDelta(t, 0, *detail.DistanceKm, 0.001)
	assert.WithinDuration(t, time.Now(), detail.CreatedAt, time.Minute)
}
