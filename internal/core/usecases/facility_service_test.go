package usecases_test

import (
	"context"
	"strings"
	"testing"

	"github.com/kumbhsarthi/sarthi/internal/adapters/catalog"
	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
	"github.com/kumbhsarthi/sarthi/internal/pkg/geospatial"
)

var ramkundSide = domain.GeoPoint{Lat: 19.9975, Lng: 73.7899}

func newFacilitySvc() *usecases.FacilityService {
	return usecases.NewFacilityService(catalog.New(), nil)
}

func TestFindNearby_RamkundScenario(t *testing.T) {
	svc := newFacilitySvc()

	ghats, err := svc.FindNearby(context.Background(), ramkundSide, domain.CategoryGhat, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ghats) == 0 {
		t.Fatal("expected ghats within 5 km of Ramkund")
	}
	if ghats[0].ID != "ramkund" {
		t.Errorf("expected ramkund nearest, got %s", ghats[0].ID)
	}
	if *ghats[0].Distance >= 20 {
		t.Errorf("Ramkund should be under 20 m away, got %f", *ghats[0].Distance)
	}
	for _, f := range ghats {
		if f.Category == domain.CategoryMedical {
			t.Errorf("medical facility %s leaked into ghat query", f.ID)
		}
	}
}

func TestFindNearby_RadiusFilter(t *testing.T) {
	svc := newFacilitySvc()
	cat := catalog.New()

	radius := 800.0
	got, err := svc.FindNearby(context.Background(), ramkundSide, "", radius)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	returned := make(map[string]bool)
	for _, f := range got {
		returned[f.ID] = true
		if *f.Distance > radius {
			t.Errorf("facility %s beyond radius: %f", f.ID, *f.Distance)
		}
	}
	// Everything not returned must genuinely be out of range.
	for _, f := range cat.All() {
		if returned[f.ID] {
			continue
		}
		d := geospatial.Haversine(ramkundSide.Lat, ramkundSide.Lng, f.Location.Lat, f.Location.Lng)
		if d <= radius {
			t.Errorf("facility %s within %f m but missing from results", f.ID, radius)
		}
	}
}

func TestFindNearby_SortedAscending(t *testing.T) {
	svc := newFacilitySvc()

	got, err := svc.FindNearby(context.Background(), ramkundSide, "", 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if *got[i].Distance < *got[i-1].Distance {
			t.Fatalf("results not sorted: %f before %f", *got[i-1].Distance, *got[i].Distance)
		}
	}
}

func TestFindNearby_DefaultRadius(t *testing.T) {
	svc := newFacilitySvc()

	// Trimbakeshwar is ~28 km out; the 5 km default must exclude it.
	got, err := svc.FindNearby(context.Background(), ramkundSide, domain.CategoryTemple, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range got {
		if f.ID == "trimbakeshwar" {
			t.Error("trimbakeshwar should be outside the default radius")
		}
	}
}

func TestFindNearby_EmptyMiss(t *testing.T) {
	svc := newFacilitySvc()

	// Middle of the Arabian Sea: nothing within 5 km.
	got, err := svc.FindNearby(context.Background(), domain.GeoPoint{Lat: 15.0, Lng: 65.0}, "", 5000)
	if err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestFindNearby_InvalidOrigin(t *testing.T) {
	svc := newFacilitySvc()
	if _, err := svc.FindNearby(context.Background(), domain.GeoPoint{Lat: 95, Lng: 0}, "", 5000); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
}

func TestNearest(t *testing.T) {
	svc := newFacilitySvc()

	// Even from far away, Nearest has no radius bound.
	f, err := svc.Nearest(context.Background(), domain.GeoPoint{Lat: 15.0, Lng: 65.0}, domain.CategoryMedical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f == nil {
		t.Fatal("expected a facility")
	}
	if f.Category != domain.CategoryMedical {
		t.Errorf("expected medical, got %s", f.Category)
	}

	// A category with no entries yields nil, not an error.
	none, err := svc.Nearest(context.Background(), ramkundSide, domain.FacilityCategory("heliport"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil facility, got %s", none.ID)
	}
}

func TestDirections(t *testing.T) {
	svc := newFacilitySvc()

	// Tapovan lies to the northeast of Ramkund.
	text, err := svc.Directions(context.Background(), ramkundSide, "tapovan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Tapovan") {
		t.Errorf("directions missing facility name: %q", text)
	}
	if !strings.Contains(text, "northeast") {
		t.Errorf("expected northeast hint, got %q", text)
	}

	if _, err := svc.Directions(context.Background(), ramkundSide, "nope"); err == nil {
		t.Error("expected error for unknown facility")
	}
}

func TestNavigationURL(t *testing.T) {
	dest := domain.GeoPoint{Lat: 19.9975, Lng: 73.7898}

	ios := usecases.NavigationURL(dest, "Ramkund", "ios")
	if !strings.HasPrefix(ios, "maps://maps.apple.com/") {
		t.Errorf("unexpected ios url: %q", ios)
	}

	web := usecases.NavigationURL(dest, "Ramkund", "android")
	if !strings.HasPrefix(web, "https://www.google.com/maps/dir/") {
		t.Errorf("unexpected web url: %q", web)
	}
}

// --- cache interaction ---

type mapCache struct {
	data map[string][]byte
	sets int
	gets int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, context.Canceled // any error means miss
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestFindNearby_CacheAside(t *testing.T) {
	cache := newMapCache()
	svc := usecases.NewFacilityService(catalog.New(), cache)

	first, err := svc.FindNearby(context.Background(), ramkundSide, domain.CategoryGhat, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache fill, got %d", cache.sets)
	}

	second, err := svc.FindNearby(context.Background(), ramkundSide, domain.CategoryGhat, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("second query should hit the cache, sets=%d", cache.sets)
	}
	if len(first) != len(second) {
		t.Errorf("cached result differs: %d vs %d", len(first), len(second))
	}
}
