package geo

import (
	"context"
	"errors"
	"math"
)

// ErrPermissionDenied is returned when the provider refuses to report a
// position. Callers degrade to "location unknown"; it is never fatal.
var ErrPermissionDenied = errors.New("geo: permission denied")

type Position struct {
	Latitude  float64
	Longitude float64
}

type Place struct {
	City    string
	Country string
}

// Provider exposes the device geolocation capabilities the flows depend on.
type Provider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (Position, error)
	ReverseGeocode(ctx context.Context, pos Position) (Place, error)
}

// StaticProvider reports a fixed position and place, configured at startup.
// It stands in for a device location service.
type StaticProvider struct {
	position Position
	place    Place
}

func NewStaticProvider(lat, lng float64, city, country string) *StaticProvider {
	return &StaticProvider{
		position: Position{Latitude: lat, Longitude: lng},
		place:    Place{City: city, Country: country},
	}
}

func (p *StaticProvider) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (p *StaticProvider) CurrentPosition(ctx context.Context) (Position, error) {
	return p.position, nil
}

func (p *StaticProvider) ReverseGeocode(ctx context.Context, pos Position) (Place, error) {
	return p.place, nil
}

// DeniedProvider refuses every request. Used to exercise the degraded path.
type DeniedProvider struct{}

func (DeniedProvider) RequestPermission(ctx context.Context) (bool, error) {
	return false, nil
}

func (DeniedProvider) CurrentPosition(ctx context.Context) (Position, error) {
	return Position{}, ErrPermissionDenied
}

func (DeniedProvider) ReverseGeocode(ctx context.Context, pos Position) (Place, error) {
	return Place{}, ErrPermissionDenied
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two positions.
func DistanceKm(a, b Position) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
