package geospatial

import (
	"math"
	"testing"
)

func TestHaversine_Identity(t *testing.T) {
	if d := Haversine(19.9975, 73.7898, 19.9975, 73.7898); d != 0 {
		t.Errorf("distance to self should be 0, got %f", d)
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{19.9975, 73.7898, 20.0012, 73.7945},
		{43.263, -2.935, 19.9322, 73.5305},
		{-33.86, 151.21, 51.50, -0.12},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("asymmetric distance: %f vs %f", ab, ba)
		}
		if ab < 0 {
			t.Errorf("negative distance %f", ab)
		}
	}
}

func TestHaversine_ShortRange(t *testing.T) {
	// 0.0001° of longitude at ~20°N is on the order of 10 m.
	d := Haversine(19.9975, 73.7898, 19.9975, 73.7899)
	if d <= 0 || d >= 20 {
		t.Errorf("expected a distance under 20 m, got %f", d)
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Ramkund to Trimbakeshwar is roughly 28 km.
	d := Haversine(19.9975, 73.7898, 19.9322, 73.5305)
	if d < 25000 || d > 31000 {
		t.Errorf("expected ~28 km, got %f m", d)
	}
}

func TestBearing_Cardinal(t *testing.T) {
	// Due north: same longitude, higher latitude.
	b := Bearing(19.0, 73.0, 20.0, 73.0)
	if math.Abs(b) > 0.5 {
		t.Errorf("expected bearing ~0 (north), got %f", b)
	}

	// Due east at the equator.
	b = Bearing(0, 73.0, 0, 74.0)
	if math.Abs(b-90) > 0.5 {
		t.Errorf("expected bearing ~90 (east), got %f", b)
	}

	// Due south.
	b = Bearing(20.0, 73.0, 19.0, 73.0)
	if math.Abs(b-180) > 0.5 {
		t.Errorf("expected bearing ~180 (south), got %f", b)
	}
}

func TestBearing_Range(t *testing.T) {
	b := Bearing(20.0, 74.0, 19.0, 73.0) // southwest-ish
	if b < 0 || b >= 360 {
		t.Errorf("bearing out of range: %f", b)
	}
}

func TestCompassDirection(t *testing.T) {
	cases := []struct {
		bearing float64
		want    string
	}{
		{0, "north"},
		{22, "north"},
		{23, "northeast"},
		{45, "northeast"},
		{90, "east"},
		{135, "southeast"},
		{180, "south"},
		{225, "southwest"},
		{270, "west"},
		{315, "northwest"},
		{359, "north"},
	}
	for _, c := range cases {
		if got := CompassDirection(c.bearing); got != c.want {
			t.Errorf("CompassDirection(%f) = %s, want %s", c.bearing, got, c.want)
		}
	}
}

func TestBoundingBox_ContainsCenterRing(t *testing.T) {
	minLat, minLng, maxLat, maxLng := BoundingBox(19.9975, 73.7898, 500)
	if minLat >= 19.9975 || maxLat <= 19.9975 {
		t.Error("box does not straddle center latitude")
	}
	if minLng >= 73.7898 || maxLng <= 73.7898 {
		t.Error("box does not straddle center longitude")
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(842.3); got != "842 m" {
		t.Errorf("got %q", got)
	}
	if got := FormatDistance(1340); got != "1.3 km" {
		t.Errorf("got %q", got)
	}
}
