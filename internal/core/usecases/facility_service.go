package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/ports"
	"github.com/kumbhsarthi/sarthi/internal/pkg/geospatial"
	"github.com/kumbhsarthi/sarthi/internal/pkg/metrics"
)

// DefaultNearbyRadiusMeters is used when a query does not specify a radius.
const DefaultNearbyRadiusMeters = 5000

// FacilityService answers "what is near me" queries against the catalog.
type FacilityService struct {
	catalog ports.FacilityCatalog
	cache   ports.CacheService
}

// NewFacilityService creates a new FacilityService.
func NewFacilityService(catalog ports.FacilityCatalog, cache ports.CacheService) *FacilityService {
	return &FacilityService{catalog: catalog, cache: cache}
}

// All returns the entire catalog, insertion order preserved.
func (s *FacilityService) All(ctx context.Context) []domain.Facility {
	return s.catalog.All()
}

// ByCategory returns all facilities of one category.
func (s *FacilityService) ByCategory(ctx context.Context, category domain.FacilityCategory) []domain.Facility {
	return s.catalog.ByCategory(category)
}

// GetByID returns a single facility, or nil when absent.
func (s *FacilityService) GetByID(ctx context.Context, id string) *domain.Facility {
	f, ok := s.catalog.GetByID(id)
	if !ok {
		return nil
	}
	return f
}

// FindNearby returns facilities within radiusMeters of origin, annotated with
// distance and sorted ascending. Ties keep catalog insertion order. A zero
// category means all categories; a zero radius means the default 5 km.
func (s *FacilityService) FindNearby(ctx context.Context, origin domain.GeoPoint, category domain.FacilityCategory, radiusMeters float64) ([]domain.Facility, error) {
	if err := domain.ValidateCoordinate(origin.Lat, origin.Lng); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultNearbyRadiusMeters
	}

	cacheKey := fmt.Sprintf("facilities:nearby:%.4f:%.4f:%s:%.0f", origin.Lat, origin.Lng, category, radiusMeters)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var out []domain.Facility
			if err := json.Unmarshal(data, &out); err == nil {
				metrics.CacheHits.WithLabelValues("facilities_nearby").Inc()
				return out, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("facilities_nearby").Inc()
	}

	out := s.nearby(origin, category, radiusMeters)

	// Cache for 5 minutes (the catalog never changes, only query points vary)
	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return out, nil
}

func (s *FacilityService) nearby(origin domain.GeoPoint, category domain.FacilityCategory, radiusMeters float64) []domain.Facility {
	candidates := s.catalog.All()
	if category != "" {
		candidates = s.catalog.ByCategory(category)
	}

	minLat, minLng, maxLat, maxLng := geospatial.BoundingBox(origin.Lat, origin.Lng, radiusMeters)
	box := domain.Bounds{MinLat: minLat, MinLng: minLng, MaxLat: maxLat, MaxLng: maxLng}

	var out []domain.Facility
	for _, f := range candidates {
		// Coarse rectangle filter before the exact distance
		if !box.Contains(f.Location) {
			continue
		}
		d := geospatial.Haversine(origin.Lat, origin.Lng, f.Location.Lat, f.Location.Lng)
		if d > radiusMeters {
			continue
		}
		dist := d
		f.Distance = &dist
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Distance < *out[j].Distance
	})
	return out
}

// Nearest returns the closest facility of a category, with no radius bound.
// A nil result is a miss, not an error.
func (s *FacilityService) Nearest(ctx context.Context, origin domain.GeoPoint, category domain.FacilityCategory) (*domain.Facility, error) {
	if err := domain.ValidateCoordinate(origin.Lat, origin.Lng); err != nil {
		return nil, err
	}

	// Earth's half circumference comfortably bounds any distance.
	out := s.nearby(origin, category, 21000000)
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// Directions renders a human-facing hint with distance and compass direction.
func (s *FacilityService) Directions(ctx context.Context, origin domain.GeoPoint, facilityID string) (string, error) {
	if err := domain.ValidateCoordinate(origin.Lat, origin.Lng); err != nil {
		return "", err
	}
	f, ok := s.catalog.GetByID(facilityID)
	if !ok {
		return "", fmt.Errorf("facility %s: %w", facilityID, domain.ErrFacilityNotFound)
	}

	d := geospatial.Haversine(origin.Lat, origin.Lng, f.Location.Lat, f.Location.Lng)
	bearing := geospatial.Bearing(origin.Lat, origin.Lng, f.Location.Lat, f.Location.Lng)
	direction := geospatial.CompassDirection(bearing)

	text := fmt.Sprintf("%s (%s) is %s to your %s.", f.Name, f.NameLocal, geospatial.FormatDistance(d), direction)
	if f.Description != "" {
		text += " " + f.Description
	}
	return text, nil
}

// NavigationURL builds the hand-off URL for an external map application.
// platform "ios" yields an Apple Maps URI; anything else a Google Maps
// directions URL.
func NavigationURL(dest domain.GeoPoint, label, platform string) string {
	if platform == "ios" {
		return fmt.Sprintf("maps://maps.apple.com/?daddr=%f,%f&q=%s",
			dest.Lat, dest.Lng, url.QueryEscape(label))
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f",
		dest.Lat, dest.Lng)
}
