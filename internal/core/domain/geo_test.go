package domain

import "testing"

func TestBoundsContains(t *testing.T) {
	box := Bounds{MinLat: 19.9, MinLng: 73.7, MaxLat: 20.1, MaxLng: 73.9}

	cases := []struct {
		name string
		p    GeoPoint
		want bool
	}{
		{"center", GeoPoint{Lat: 20.0, Lng: 73.8}, true},
		{"on min edge", GeoPoint{Lat: 19.9, Lng: 73.7}, true},
		{"on max edge", GeoPoint{Lat: 20.1, Lng: 73.9}, true},
		{"north of box", GeoPoint{Lat: 20.2, Lng: 73.8}, false},
		{"west of box", GeoPoint{Lat: 20.0, Lng: 73.6}, false},
	}
	for _, c := range cases {
		if got := box.Contains(c.p); got != c.want {
			t.Errorf("%s: Contains(%+v) = %v, want %v", c.name, c.p, got, c.want)
		}
	}
}
